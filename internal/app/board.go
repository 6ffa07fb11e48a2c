package app

import (
	"sort"
	"sync"
	"time"

	"feud-board-service/internal/domain"
	"github.com/samber/lo"
)

// HighlightDuration is how long a freshly revealed slot stays highlighted.
const HighlightDuration = 2 * time.Second

const emptyNotice = "no questions loaded yet"

// Board is the quiz session state machine for a single host display.
// All reads and writes go through its methods and are serialized by mu.
type Board struct {
	questions []domain.Question
	now       func() time.Time

	mu                 sync.Mutex
	index              int
	revealed           map[int]struct{}
	lastRevealed       int // 0 when nothing is highlighted
	highlightStartedAt time.Time
	wrongPending       bool
	subscribers        map[chan domain.BoardSnapshot]struct{}
}

// NewBoard creates a board over a fixed question list.
func NewBoard(questions []domain.Question) *Board {
	return NewBoardWithClock(questions, time.Now)
}

// NewBoardWithClock allows deterministic highlight windows in tests.
func NewBoardWithClock(questions []domain.Question, now func() time.Time) *Board {
	return &Board{
		questions:   questions,
		now:         now,
		revealed:    make(map[int]struct{}),
		subscribers: make(map[chan domain.BoardSnapshot]struct{}),
	}
}

// SubmitGuess matches a free-text guess against the current question.
func (b *Board) SubmitGuess(guess string) domain.GuessResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitGuessLocked(guess)
}

// GuessAndSnapshot is SubmitGuess plus the board view right after it, taken under the same lock.
func (b *Board) GuessAndSnapshot(guess string) (domain.GuessResult, domain.BoardSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := b.submitGuessLocked(guess)
	return result, b.snapshotLocked()
}

// Reveal opens a slot on the host's behalf. It reports whether the slot was newly revealed.
func (b *Board) Reveal(rank int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revealRankLocked(rank)
}

// RevealAndSnapshot is Reveal plus the board view right after it.
func (b *Board) RevealAndSnapshot(rank int) (bool, domain.BoardSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	revealed := b.revealRankLocked(rank)
	return revealed, b.snapshotLocked()
}

// Next moves to the following question; it is a no-op on the last one.
func (b *Board) Next() bool {
	moved, _ := b.move(1)
	return moved
}

// Prev moves to the previous question; it is a no-op on the first one.
func (b *Board) Prev() bool {
	moved, _ := b.move(-1)
	return moved
}

// NextAndSnapshot is Next plus the board view right after it.
func (b *Board) NextAndSnapshot() (bool, domain.BoardSnapshot) {
	return b.move(1)
}

// PrevAndSnapshot is Prev plus the board view right after it.
func (b *Board) PrevAndSnapshot() (bool, domain.BoardSnapshot) {
	return b.move(-1)
}

func (b *Board) move(delta int) (bool, domain.BoardSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	target := b.index + delta
	if target < 0 || target >= len(b.questions) {
		return false, b.snapshotLocked()
	}
	b.index = target
	b.revealed = make(map[int]struct{})
	b.clearHighlightLocked()
	b.wrongPending = false
	b.broadcastLocked()
	return true, b.snapshotLocked()
}

func (b *Board) submitGuessLocked(guess string) domain.GuessResult {
	if domain.NormalizeAnswer(guess) == "" || b.exhaustedLocked() {
		return domain.GuessResult{Outcome: domain.GuessIgnored}
	}

	slot, ok := b.questions[b.index].Match(guess)
	if !ok {
		b.wrongPending = true
		b.broadcastLocked()
		return domain.GuessResult{Outcome: domain.GuessIncorrect}
	}

	result := domain.GuessResult{Rank: slot.Rank, Text: slot.Text, Points: slot.Points}
	if _, open := b.revealed[slot.Rank]; open {
		result.Outcome = domain.GuessAlreadyOpen
		return result
	}

	b.revealLocked(slot.Rank)
	result.Outcome = domain.GuessCorrect
	b.broadcastLocked()
	return result
}

func (b *Board) revealRankLocked(rank int) bool {
	if b.exhaustedLocked() {
		return false
	}
	if _, ok := b.questions[b.index].Slot(rank); !ok {
		return false
	}
	if _, open := b.revealed[rank]; open {
		return false
	}
	b.revealLocked(rank)
	b.broadcastLocked()
	return true
}

// CurrentQuestion returns the question on display, or false when no questions were loaded.
func (b *Board) CurrentQuestion() (domain.Question, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.exhaustedLocked() {
		return domain.Question{}, false
	}
	return b.questions[b.index], true
}

// QuestionIndex returns the 0-based position of the current question.
func (b *Board) QuestionIndex() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index
}

// QuestionCount returns how many questions were loaded.
func (b *Board) QuestionCount() int {
	return len(b.questions)
}

// Exhausted reports the terminal empty-board state.
func (b *Board) Exhausted() bool {
	return len(b.questions) == 0
}

// IsRevealed reports whether rank is open on the current question.
func (b *Board) IsRevealed(rank int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revealed[rank]
	return ok
}

// RevealedRanks returns the open ranks of the current question in ascending order.
func (b *Board) RevealedRanks() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	ranks := lo.Keys(b.revealed)
	sort.Ints(ranks)
	return ranks
}

// IsHighlighted reports whether rank is inside its highlight window.
// An elapsed window is cleared as a side effect.
func (b *Board) IsHighlighted(rank int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remainingLocked(rank) > 0
}

// RemainingHighlight returns how much of rank's highlight window is left.
func (b *Board) RemainingHighlight(rank int) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remainingLocked(rank)
}

// PopupActive reports a pending wrong-guess popup and clears it.
func (b *Board) PopupActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	active := b.wrongPending
	b.wrongPending = false
	return active
}

// Snapshot renders the current state for display without consuming the popup signal.
func (b *Board) Snapshot() domain.BoardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot after every state change.
// The caller must invoke the returned cancel function to avoid leaks.
func (b *Board) Subscribe() (<-chan domain.BoardSnapshot, func()) {
	ch := make(chan domain.BoardSnapshot, 8)

	// the initial snapshot is queued under the lock so no broadcast can land ahead of it
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Board) exhaustedLocked() bool {
	return len(b.questions) == 0
}

func (b *Board) revealLocked(rank int) {
	b.revealed[rank] = struct{}{}
	b.lastRevealed = rank
	b.highlightStartedAt = b.now()
	b.wrongPending = false
}

func (b *Board) clearHighlightLocked() {
	b.lastRevealed = 0
	b.highlightStartedAt = time.Time{}
}

func (b *Board) remainingLocked(rank int) time.Duration {
	if b.lastRevealed == 0 {
		return 0
	}
	elapsed := b.now().Sub(b.highlightStartedAt)
	if elapsed >= HighlightDuration {
		b.clearHighlightLocked()
		return 0
	}
	if rank != b.lastRevealed {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return HighlightDuration - elapsed
}

func (b *Board) snapshotLocked() domain.BoardSnapshot {
	if b.exhaustedLocked() {
		return domain.BoardSnapshot{Exhausted: true, Notice: emptyNotice, Slots: []domain.SlotView{}}
	}

	q := b.questions[b.index]
	var refresh time.Duration
	slots := lo.Map(q.Answers, func(slot domain.AnswerSlot, _ int) domain.SlotView {
		view := domain.SlotView{Rank: slot.Rank}
		if _, open := b.revealed[slot.Rank]; !open {
			return view
		}
		remaining := b.remainingLocked(slot.Rank)
		if remaining > refresh {
			refresh = remaining
		}
		view.Revealed = true
		view.Text = slot.Text
		view.Points = slot.Points
		view.Highlighted = remaining > 0
		view.RemainingHighlightMillis = remaining.Milliseconds()
		return view
	})

	return domain.BoardSnapshot{
		Index:              b.index,
		Count:              len(b.questions),
		Prompt:             q.Prompt,
		Slots:              slots,
		RefreshAfterMillis: ceilMillis(refresh),
	}
}

// ceilMillis rounds up so a client timer never fires inside the window.
func ceilMillis(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}

func (b *Board) broadcastLocked() {
	snapshot := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot so a slow display never blocks the host
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
