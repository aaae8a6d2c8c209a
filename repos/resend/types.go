package resend

// SlotMail carries everything the notification templates need about one
// slot and its match.
type SlotMail struct {
	Name       string
	Contact    string
	Category   string
	MatchTitle string
	Date       string
	Time       string
	Location   string
}
