package detect

import "sort"

// mergeEvents assembles the final event list. Acoustic clusters that start
// inside a suppressor span (padded by epsilon) are that event's own energy
// ripple, so they are dropped rather than double-reported. Suppressors are
// the prolongations plus any in-word repetitions reclassified out of them.
// Events append in kind priority order, then a stable sort by start time
// keeps that priority as the tiebreak for identical starts.
func mergeEvents(cfg Config, reps, acoustic, prolongs, blocks, suppressors []Event) []Event {
	kept := acoustic[:0:0]
	for _, a := range acoustic {
		if !insideSuppressor(a, suppressors, cfg.OverlapEpsilonSec) {
			kept = append(kept, a)
		}
	}

	events := make([]Event, 0, len(reps)+len(kept)+len(prolongs)+len(blocks))
	events = append(events, reps...)
	events = append(events, kept...)
	events = append(events, prolongs...)
	events = append(events, blocks...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events
}

func insideSuppressor(a Event, suppressors []Event, eps float64) bool {
	for _, s := range suppressors {
		if a.Start >= s.Start-eps && a.Start <= s.End+eps {
			return true
		}
	}
	return false
}
