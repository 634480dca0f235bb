package domain

// Interaction is one inbound chat event: a command, a button tap or a
// free-text message. The transport collaborator supplies the voter id
// and display name; the payload carries either a command token, a named
// action token, or a "key|choice" pair.
type Interaction struct {
	VoterID     VoterID `json:"voter_id"`
	DisplayName string  `json:"display_name"`
	Payload     string  `json:"payload"`
}

// Choice is one selectable action offered back to the voter.
type Choice struct {
	Label   string `json:"label"`
	Payload string `json:"payload"`
}

// Reply is the outbound presentation contract: text plus an ordered
// list of selectable actions. Rendering is the transport's job.
type Reply struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices,omitempty"`
}
