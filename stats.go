// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package amq

// statsMinSentinel is the initial Min value, replaced by the first sample.
const statsMinSentinel = 999999.9999

// Stats holds per-worker dispatch statistics in milliseconds.
//
// Only consumer workers accrue samples; each delivered message contributes
// the duration the consumer's queue wait actually blocked. Producers keep
// the zero-valued block (Min at its sentinel) for interface uniformity.
//
// Average and Deviation are running estimators, not the textbook sample
// statistics: each new sample v applies
//
//	count++
//	average   = (average + v) / count
//	deviation = (deviation + |v - average|) / count
//
// The estimators decay old contributions quickly and are meant for
// coarse-grained monitoring of queue wait behavior, not analysis.
type Stats struct {
	Count     uint64
	Min       float64
	Max       float64
	Average   float64
	Deviation float64
}

// newStats returns a zero block with Min at its sentinel.
func newStats() Stats {
	return Stats{Min: statsMinSentinel}
}

// update folds one wait sample (milliseconds) into the block.
func (s *Stats) update(v float64) {
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}

	s.Count++
	s.Average = (s.Average + v) / float64(s.Count)

	d := v - s.Average
	if d < 0 {
		d = -d
	}
	s.Deviation = (s.Deviation + d) / float64(s.Count)
}
