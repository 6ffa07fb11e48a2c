package domain

// GuessOutcome classifies the effect of a submitted guess.
type GuessOutcome string

const (
	// GuessIgnored means the guess was blank or there was no question to answer.
	GuessIgnored GuessOutcome = "ignored"
	// GuessCorrect means the guess opened a new answer slot.
	GuessCorrect GuessOutcome = "correct"
	// GuessAlreadyOpen means the guess matched a slot that was already revealed.
	GuessAlreadyOpen GuessOutcome = "already_open"
	// GuessIncorrect means the guess matched nothing and the wrong popup is pending.
	GuessIncorrect GuessOutcome = "incorrect"
)

// GuessResult is returned to the caller of a guess so it can show feedback.
// Text and Points are only set for correct and already-open outcomes.
type GuessResult struct {
	Outcome GuessOutcome `json:"outcome"`
	Rank    int          `json:"rank,omitempty"`
	Text    string       `json:"text,omitempty"`
	Points  int          `json:"points,omitempty"`
}

// SlotView is a display-ready answer slot. Hidden slots carry only their rank.
type SlotView struct {
	Rank                     int    `json:"rank"`
	Revealed                 bool   `json:"revealed"`
	Text                     string `json:"text,omitempty"`
	Points                   int    `json:"points,omitempty"`
	Highlighted              bool   `json:"highlighted"`
	RemainingHighlightMillis int64  `json:"remainingHighlightMillis"`
}

// BoardSnapshot is what the presentation layer draws.
type BoardSnapshot struct {
	Index     int        `json:"index"`
	Count     int        `json:"count"`
	Exhausted bool       `json:"exhausted"`
	Notice    string     `json:"notice,omitempty"`
	Prompt    string     `json:"prompt,omitempty"`
	Slots     []SlotView `json:"slots"`
	// RefreshAfterMillis tells the client when to redraw so an expiring highlight is dropped; 0 means no redraw is needed.
	RefreshAfterMillis int64 `json:"refreshAfterMillis"`
}
