package model

// Candidate is one scored advocate in a recommendation list.
type Candidate struct {
	Advocate *Advocate
	Score    float64
	Reasons  []string
}

// AssistantReply is the assistant's answer to one client message: the text
// to show, a session token for turn continuity, and any case facts the
// assistant extracted from the exchange.
type AssistantReply struct {
	Text         string
	SessionToken string
	Fragment     *ProfileFragment
}

// FallbackMatch is the frozen score recorded when a client selects an
// advocate who was not in the recommendation list.
func FallbackMatch() (float64, []string) {
	return 50, []string{"Selected by client"}
}
