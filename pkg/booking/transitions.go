package booking

// transitions enumerates the reachable statuses from each non-terminal state.
// Statuses absent from the map are terminal.
var transitions = map[Status][]Status{
	StatusRequested: {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:  {StatusCompleted, StatusCancelled},
}

// canTransition reports whether a booking in status from may move to.
func canTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
