package types

// Challenge is one wellness challenge on the home screen.
type Challenge struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// AllDone reports whether a non-empty list is fully completed.
func AllDone(cs []Challenge) bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.Done {
			return false
		}
	}
	return true
}
