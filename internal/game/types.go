package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Muter is the soundtrack control the game toggles with M.
type Muter interface {
	ToggleMute() bool
}
