// internal/machine/machine.go
//
// The Pangram game state machine.
// Responsibilities:
//   - Own one round's mutable context (puzzle, pending input, found words,
//     score, transient message) behind a single lock.
//   - Process events strictly one at a time; no two transitions run
//     concurrently for the same instance.
//   - Orchestrate the asynchronous dictionary check as a single in-flight
//     operation, tagged with a puzzle epoch so stale completions are
//     discarded after NEW_PUZZLE.
//
// Policy decisions:
//   - Local rule rejections resolve synchronously inside Dispatch; only the
//     dictionary lookup runs asynchronously.
//   - All events except NEW_PUZZLE are ignored while validating.
//   - Oracle errors are indistinguishable from "not a word" to the player:
//     the word is rejected either way (fail closed).

package machine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/pangramlab/pangram/internal/dict"
	"github.com/pangramlab/pangram/internal/puzzle"
	"github.com/pangramlab/pangram/internal/rules"
)

// Machine runs one Pangram game. Create with New; all methods are safe for
// concurrent use, with events serialized by an internal mutex.
type Machine struct {
	mu sync.Mutex

	id     string
	oracle dict.Oracle

	state       State
	puz         puzzle.Puzzle
	puzzleIndex int
	pending     []rune
	found       []string        // sorted, lowercase
	foundSet    map[string]bool // same members as found
	score       int
	lastMsg     string
	lastKind    MessageKind

	// settled is non-nil while a validation is in flight and is closed when
	// the machine returns to ready, waking AwaitReady callers.
	settled chan struct{}

	// epoch identifies the current puzzle round. Bumped on NEW_PUZZLE so an
	// in-flight validation started under an older puzzle can never commit
	// into the new round.
	epoch uint64
}

// New constructs a machine on the catalog puzzle at startIndex (mod catalog
// size), in the ready state with an empty context.
func New(oracle dict.Oracle, startIndex int) *Machine {
	m := &Machine{
		id:          randomID(),
		oracle:      oracle,
		state:       StateReady,
		lastKind:    KindInfo,
		puz:         puzzle.Get(startIndex),
		puzzleIndex: startIndex % puzzle.Size(),
		foundSet:    map[string]bool{},
	}
	if m.puzzleIndex < 0 {
		m.puzzleIndex += puzzle.Size()
	}
	return m
}

// ID returns the machine's instance identifier.
func (m *Machine) ID() string { return m.id }

// Dispatch applies one event. Events arriving while a validation is in
// flight are ignored, except NEW_PUZZLE which abandons the in-flight check.
func (m *Machine) Dispatch(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateValidating {
		if ev.Type == EventNewPuzzle {
			m.rotatePuzzle()
		}
		return
	}

	switch ev.Type {
	case EventAddLetter:
		m.addLetter(ev.Letter)
	case EventDeleteLast:
		if len(m.pending) > 0 {
			m.pending = m.pending[:len(m.pending)-1]
		}
	case EventClear:
		m.pending = nil
		m.lastMsg, m.lastKind = "", KindInfo
	case EventSubmit:
		if len(m.pending) < rules.MinWordLength {
			m.lastMsg, m.lastKind = "need at least 4 letters", KindError
			return
		}
		m.beginValidation()
	case EventSubmitWord:
		m.pending = m.filterToPuzzle(ev.Word)
		if len(m.pending) < rules.MinWordLength {
			m.pending = nil
			m.lastMsg, m.lastKind = "need at least 4 valid letters", KindError
			return
		}
		m.beginValidation()
	case EventNewPuzzle:
		m.rotatePuzzle()
	}
}

// addLetter appends a puzzle letter to the pending input. Letters outside
// the puzzle are silently ignored so hosts don't have to pre-filter
// keystrokes.
func (m *Machine) addLetter(s string) {
	rs := []rune(s)
	if len(rs) != 1 {
		return
	}
	if !m.puz.Has(rs[0]) {
		return
	}
	m.pending = append(m.pending, unicode.ToUpper(rs[0]))
	m.lastMsg, m.lastKind = "", KindInfo
}

// filterToPuzzle keeps only characters belonging to the puzzle's letter set,
// preserving order and canonicalizing to uppercase.
func (m *Machine) filterToPuzzle(word string) []rune {
	var out []rune
	for _, r := range word {
		if m.puz.Has(r) {
			out = append(out, unicode.ToUpper(r))
		}
	}
	return out
}

// beginValidation captures the pending input as the word under test and
// runs the validation chain: local rules synchronously, then the dictionary
// oracle asynchronously. Callers hold m.mu.
func (m *Machine) beginValidation() {
	word := strings.ToLower(string(m.pending))
	m.state = StateValidating
	m.settled = make(chan struct{})

	if v := rules.ValidateLocalRules(word, m.puz.LetterString(), m.puz.Center, m.foundSet); !v.OK {
		// Local rejection: no dictionary call needed.
		m.resolve(v.Reason, KindError, 0, false, "")
		return
	}

	epoch := m.epoch
	go m.checkWord(epoch, word)
}

// checkWord performs the oracle lookup off the lock and commits the outcome.
func (m *Machine) checkWord(epoch uint64, word string) {
	ok, err := m.oracle.CheckWord(context.Background(), word)

	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		// The puzzle changed while we were looking the word up; this result
		// belongs to a finished round.
		log.Debug().Str("machine", m.id).Str("word", word).Msg("discarding stale validation result")
		return
	}

	switch {
	case err != nil:
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed; rejecting")
		m.resolve("could not validate word", KindError, 0, false, "")
	case !ok:
		m.resolve("not a valid word", KindError, 0, false, "")
	default:
		pts := rules.ScoreWord(word, m.puz.LetterString())
		pangram := rules.IsPangram(word, m.puz.LetterString())
		m.resolve("", KindSuccess, pts, pangram, word)
	}
}

// resolve finishes a validation: commits an accepted word (when word is
// non-empty), sets the transient message, clears pending input, and returns
// to ready. Callers hold m.mu.
func (m *Machine) resolve(msg string, kind MessageKind, pts int, pangram bool, word string) {
	if word != "" {
		i := sort.SearchStrings(m.found, word)
		m.found = append(m.found, "")
		copy(m.found[i+1:], m.found[i:])
		m.found[i] = word
		m.foundSet[word] = true
		m.score += pts

		if pangram {
			msg, kind = pointsMessage("Pangram!", pts), KindPangram
		} else {
			msg = pointsMessage("Nice", pts)
		}
	}
	m.lastMsg, m.lastKind = msg, kind
	m.pending = nil
	m.state = StateReady
	if m.settled != nil {
		close(m.settled)
		m.settled = nil
	}
}

func pointsMessage(prefix string, pts int) string {
	if pts == 1 {
		return fmt.Sprintf("%s +1 point", prefix)
	}
	return fmt.Sprintf("%s +%d points", prefix, pts)
}

// rotatePuzzle advances to the next catalog entry and resets the round.
// Bumping the epoch makes any in-flight validation stale. Callers hold m.mu.
func (m *Machine) rotatePuzzle() {
	m.puzzleIndex = (m.puzzleIndex + 1) % puzzle.Size()
	m.puz = puzzle.Get(m.puzzleIndex)
	m.pending = nil
	m.found = nil
	m.foundSet = map[string]bool{}
	m.score = 0
	m.lastMsg, m.lastKind = "", KindInfo
	m.epoch++
	m.state = StateReady
	if m.settled != nil {
		close(m.settled)
		m.settled = nil
	}
}

// Snapshot returns a copy of the observable state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	words := make([]string, len(m.found))
	copy(words, m.found)
	return Snapshot{
		State:           m.state,
		Letters:         m.puz.LetterString(),
		Center:          string(m.puz.Center),
		PendingInput:    string(m.pending),
		FoundWords:      words,
		Score:           m.score,
		LastMessage:     m.lastMsg,
		LastMessageKind: m.lastKind,
		PuzzleIndex:     m.puzzleIndex,
	}
}

// Stats summarizes the current round's found words.
func (m *Machine) Stats() rules.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rules.WordStats(m.found, m.puz.LetterString())
}

// AwaitReady blocks until the machine leaves the validating state or ctx is
// done, returning the snapshot it last observed. Hosts use this to report a
// settled snapshot after a submission.
func (m *Machine) AwaitReady(ctx context.Context) Snapshot {
	for {
		m.mu.Lock()
		ch := m.settled
		m.mu.Unlock()
		s := m.Snapshot()
		if s.State != StateValidating || ch == nil {
			return s
		}
		select {
		case <-ctx.Done():
			return s
		case <-ch:
		}
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
