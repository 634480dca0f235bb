package domain

type Question struct {
	Key     string   `json:"key"`
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

// Questions is the fixed ordered ballot catalog. Voters answer every
// question in this order, one choice each, no skipping.
var Questions = []Question{
	{
		Key: "q1",
		Text: `AGHAI Members' Special Assembly to APPROVE/REJECT the following URGENT resolution:

1. APPROVE/REJECT the conduct of immediate AGHAI Board elections to ensure continuity of governance and prevent any leadership or administrative vacuum after April 1, 2026, when the incoming Board is scheduled to officially assume responsibility.`,
		Choices: []string{"APPROVE", "REJECT"},
	},
	{
		Key: "q2",
		Text: `2. APPROVE/REJECT the appointment of the following nominees to serve as the AGHAI Election Committee:

• Manny de Leon
• Annabelle Yong
• Conrad Alampay
• Ernie Manansala
• Elvie Guzman

All of whom have agreed to serve.`,
		Choices: []string{"APPROVE", "REJECT"},
	},
	{
		Key: "q3",
		Text: `3. APPROVE/REJECT the adoption of Electronic Online Voting for the 2026 AGHAI elections using secure platforms with identity verification, audit trails, and safeguards in compliance with RA 9904 and DHSUD guidelines.`,
		Choices: []string{"APPROVE", "REJECT"},
	},
	{
		Key: "q4",
		Text: `4. APPROVE ONE of the following proposed director term structures:

4a. All 11 directors serve 2-year terms; elections every 2 years.

OR

4b. Top 5 serve 2 years; next 6 serve 1 year to retain staggered terms.`,
		Choices: []string{"4a", "4b"},
	},
}

func QuestionByKey(key string) (Question, bool) {
	for _, q := range Questions {
		if q.Key == key {
			return q, true
		}
	}
	return Question{}, false
}

// NextQuestion returns the question following the given key in catalog
// order, or false when the key is the last question (or unknown).
func NextQuestion(key string) (Question, bool) {
	for i, q := range Questions {
		if q.Key == key && i+1 < len(Questions) {
			return Questions[i+1], true
		}
	}
	return Question{}, false
}

func (q Question) ValidChoice(choice string) bool {
	for _, c := range q.Choices {
		if c == choice {
			return true
		}
	}
	return false
}
