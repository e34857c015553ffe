// internal/machine/types.go
//
// Core type definitions for the Pangram game machine.
// Defines:
//   - State: the two machine states (ready/validating).
//   - MessageKind: classification of the transient user-facing message.
//   - Event: the uniform event vocabulary shared by UIs and agents.
//   - Snapshot: the observable state exposed to callers.

package machine

// State is the machine's current mode.
// Possible values:
//   - "ready":      accepting composition and submission events.
//   - "validating": one asynchronous dictionary check in flight.
type State string

const (
	StateReady      State = "ready"
	StateValidating State = "validating"
)

// MessageKind classifies LastMessage for rendering.
type MessageKind string

const (
	KindInfo    MessageKind = "info"
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
	KindPangram MessageKind = "pangram"
)

// EventType enumerates the machine's event vocabulary.
type EventType string

const (
	EventAddLetter  EventType = "ADD_LETTER"
	EventDeleteLast EventType = "DELETE_LAST"
	EventClear      EventType = "CLEAR"
	EventSubmit     EventType = "SUBMIT"
	EventSubmitWord EventType = "SUBMIT_WORD"
	EventNewPuzzle  EventType = "NEW_PUZZLE"
)

// Event is one input to the machine. Letter is used by ADD_LETTER,
// Word by SUBMIT_WORD; both are ignored otherwise.
type Event struct {
	Type   EventType `json:"type"`
	Letter string    `json:"letter,omitempty"`
	Word   string    `json:"word,omitempty"`
}

// Convenience constructors for the event vocabulary.

func AddLetter(r rune) Event    { return Event{Type: EventAddLetter, Letter: string(r)} }
func DeleteLast() Event         { return Event{Type: EventDeleteLast} }
func Clear() Event              { return Event{Type: EventClear} }
func Submit() Event             { return Event{Type: EventSubmit} }
func SubmitWord(w string) Event { return Event{Type: EventSubmitWord, Word: w} }
func NewPuzzle() Event          { return Event{Type: EventNewPuzzle} }

// Snapshot is the observable state handed to UIs and agents.
// FoundWords is sorted; Letters holds the seven puzzle letters in order.
type Snapshot struct {
	State           State       `json:"state"`
	Letters         string      `json:"letters"`
	Center          string      `json:"center"`
	PendingInput    string      `json:"pendingInput"`
	FoundWords      []string    `json:"foundWords"`
	Score           int         `json:"score"`
	LastMessage     string      `json:"lastMessage"`
	LastMessageKind MessageKind `json:"lastMessageKind"`
	PuzzleIndex     int         `json:"puzzleIndex"`
}
