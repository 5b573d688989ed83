// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

// Group is a named list of worker names used for bulk control: signal
// operations and joins fan out to every member through the worker
// runtime.
//
// A group tracks names, not workers. It is not an entry in the worker
// registry, holds no reference to the workers themselves, and members
// need not exist: operations on names with no registered worker are the
// usual no-ops. Duplicate members are allowed and receive the operation
// once per occurrence.
//
// Groups are expected to be mutated by the orchestrating goroutine only;
// the member list is not locked.
type Group struct {
	amq     *AMQ
	name    string
	members []string
}

// NewGroup creates an empty worker group. The name must be non-empty.
func (a *AMQ) NewGroup(name string) (*Group, error) {
	if name == "" {
		return nil, ErrGroupName
	}
	return &Group{amq: a, name: name}, nil
}

// Name returns the group's name.
func (g *Group) Name() string {
	return g.name
}

// AddWorker appends a worker name to the group. Duplicates are not
// rejected.
func (g *Group) AddWorker(name string) {
	g.members = append(g.members, name)
}

// RemoveWorker removes the first occurrence of name from the group,
// reporting whether one was removed.
func (g *Group) RemoveWorker(name string) bool {
	for i, member := range g.members {
		if member == name {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return true
		}
	}
	return false
}

// SignalSet applies SignalSet to every member.
func (g *Group) SignalSet(mask Signal) {
	for _, member := range g.members {
		g.amq.SignalSet(member, mask)
	}
}

// SignalClear applies SignalClear to every member.
func (g *Group) SignalClear(mask Signal) {
	for _, member := range g.members {
		g.amq.SignalClear(member, mask)
	}
}

// Wait joins every member in turn, returning once all of them have
// exited. Members must have been terminated (or be about to stop) for
// Wait to return.
func (g *Group) Wait() {
	for _, member := range g.members {
		g.amq.WorkerWait(member)
	}
}
