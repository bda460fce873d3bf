package entity

// User - a registered player. Name and email are unique; the score is a
// running tally that only the score ledger mutates and may go negative.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Score int    `json:"score"`
}
