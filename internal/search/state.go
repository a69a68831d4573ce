package search

// state tracks one inner quality search. Explicit states keep the
// termination rules testable on their own, instead of scattering break
// conditions through the loop.
type state int

const (
	// searching: probes remain and the range has not collapsed.
	searching state = iota
	// converged: an in-window result was found and the search stopped.
	converged
	// exhausted: budget spent or range collapsed with nothing in window.
	exhausted
)

func (s state) String() string {
	switch s {
	case searching:
		return "searching"
	case converged:
		return "converged"
	case exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
