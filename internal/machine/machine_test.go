package machine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangramlab/pangram/internal/puzzle"
)

// fakeOracle counts calls and answers from a fixed set. When gate is
// non-nil, CheckWord blocks until the gate is closed, which lets tests pin
// the machine in the validating state.
type fakeOracle struct {
	mu    sync.Mutex
	calls int
	words map[string]bool
	err   error
	gate  chan struct{}
}

func (f *fakeOracle) CheckWord(_ context.Context, w string) (bool, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return false, f.err
	}
	return f.words[w], nil
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func accepting(words ...string) *fakeOracle {
	m := map[string]bool{}
	for _, w := range words {
		m[w] = true
	}
	return &fakeOracle{words: m}
}

func settle(t *testing.T, m *Machine) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s := m.AwaitReady(ctx)
	require.NotEqual(t, StateValidating, s.State, "machine stuck validating")
	return s
}

func TestSubmitWordScenario(t *testing.T) {
	// Spec scenario: RACK then CRACKING on the RACKING/K puzzle.
	o := accepting("rack", "cracking")
	m := New(o, 0)

	m.Dispatch(SubmitWord("RACK"))
	s := settle(t, m)
	assert.Equal(t, []string{"rack"}, s.FoundWords)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, KindSuccess, s.LastMessageKind)

	m.Dispatch(SubmitWord("CRACKING"))
	s = settle(t, m)
	assert.Equal(t, 16, s.Score)
	assert.Equal(t, []string{"cracking", "rack"}, s.FoundWords, "kept sorted")
	assert.Equal(t, KindPangram, s.LastMessageKind)
	assert.Empty(t, s.PendingInput)
}

func TestSubmitWordFiltersInvalidLetters(t *testing.T) {
	o := accepting("rack")
	m := New(o, 0)

	// Extraneous characters are stripped, not fatal.
	m.Dispatch(SubmitWord("r-a!c k?z"))
	s := settle(t, m)
	assert.Equal(t, []string{"rack"}, s.FoundWords)
	assert.Equal(t, 1, s.Score)
}

func TestSubmitWordWithNoValidLetters(t *testing.T) {
	o := accepting()
	m := New(o, 0)

	m.Dispatch(SubmitWord("XXXX"))
	s := m.Snapshot()
	assert.Equal(t, StateReady, s.State)
	assert.Equal(t, KindError, s.LastMessageKind)
	assert.Contains(t, s.LastMessage, "4")
	assert.Zero(t, o.callCount(), "no dictionary call for an unfillable submission")
}

func TestLocalRejectionSkipsDictionary(t *testing.T) {
	o := accepting("rain")
	m := New(o, 0)

	// Too short via composed SUBMIT.
	m.Dispatch(AddLetter('R'))
	m.Dispatch(AddLetter('A'))
	m.Dispatch(Submit())
	s := m.Snapshot()
	assert.Equal(t, StateReady, s.State)
	assert.Equal(t, KindError, s.LastMessageKind)
	assert.Zero(t, o.callCount())

	// Missing center letter: rejected locally too.
	m.Dispatch(SubmitWord("rain"))
	s = settle(t, m)
	assert.Equal(t, KindError, s.LastMessageKind)
	assert.Contains(t, s.LastMessage, "K")
	assert.Zero(t, o.callCount())
	assert.Zero(t, s.Score)
}

func TestDuplicateSubmissionIsIdempotent(t *testing.T) {
	o := accepting("rack")
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	s := settle(t, m)
	require.Equal(t, 1, s.Score)

	m.Dispatch(SubmitWord("RACK"))
	s = settle(t, m)
	assert.Equal(t, 1, s.Score, "no double scoring")
	assert.Equal(t, []string{"rack"}, s.FoundWords)
	assert.Equal(t, "already found", s.LastMessage)
	assert.Equal(t, 1, o.callCount(), "duplicate rejected before any dictionary call")
}

func TestDictionaryRejection(t *testing.T) {
	o := accepting() // knows no words
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	s := settle(t, m)
	assert.Zero(t, s.Score)
	assert.Empty(t, s.FoundWords)
	assert.Equal(t, "not a valid word", s.LastMessage)
	assert.Equal(t, KindError, s.LastMessageKind)
}

func TestOracleErrorFailsClosed(t *testing.T) {
	o := &fakeOracle{err: errors.New("network down")}
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	s := settle(t, m)
	assert.Equal(t, StateReady, s.State, "machine never sticks in validating")
	assert.Zero(t, s.Score)
	assert.Empty(t, s.FoundWords)
	assert.Equal(t, KindError, s.LastMessageKind)
	assert.Contains(t, s.LastMessage, "could not validate")
}

func TestComposition(t *testing.T) {
	m := New(accepting(), 0)

	m.Dispatch(AddLetter('r'))
	m.Dispatch(AddLetter('Z')) // not in puzzle: silently ignored
	m.Dispatch(AddLetter('a'))
	assert.Equal(t, "RA", m.Snapshot().PendingInput, "canonical uppercase")

	m.Dispatch(DeleteLast())
	assert.Equal(t, "R", m.Snapshot().PendingInput)

	m.Dispatch(DeleteLast())
	m.Dispatch(DeleteLast()) // empty delete is a no-op
	assert.Empty(t, m.Snapshot().PendingInput)

	m.Dispatch(AddLetter('k'))
	m.Dispatch(Clear())
	s := m.Snapshot()
	assert.Empty(t, s.PendingInput)
	assert.Empty(t, s.LastMessage)
}

func TestComposedSubmitUsesPendingInput(t *testing.T) {
	o := accepting("rack")
	m := New(o, 0)

	for _, r := range "rack" {
		m.Dispatch(AddLetter(r))
	}
	m.Dispatch(Submit())
	s := settle(t, m)
	assert.Equal(t, []string{"rack"}, s.FoundWords)
	assert.Empty(t, s.PendingInput, "pending cleared on resolution")
}

func TestNewPuzzleResets(t *testing.T) {
	o := accepting("rack")
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	s := settle(t, m)
	require.Equal(t, 1, s.Score)

	m.Dispatch(NewPuzzle())
	s = m.Snapshot()
	assert.Zero(t, s.Score)
	assert.Empty(t, s.FoundWords)
	assert.Empty(t, s.PendingInput)
	assert.Equal(t, 1, s.PuzzleIndex)
	assert.Equal(t, puzzle.Get(1).LetterString(), s.Letters)

	// Rotation wraps around the catalog.
	for i := 0; i < puzzle.Size()-1; i++ {
		m.Dispatch(NewPuzzle())
	}
	assert.Equal(t, 0, m.Snapshot().PuzzleIndex)
}

func TestEventsIgnoredWhileValidating(t *testing.T) {
	o := accepting("rack", "rick")
	o.gate = make(chan struct{})
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	require.Equal(t, StateValidating, m.Snapshot().State)

	// All of these arrive mid-validation and must be dropped.
	m.Dispatch(SubmitWord("rick"))
	m.Dispatch(Submit())
	m.Dispatch(AddLetter('r'))
	m.Dispatch(DeleteLast())
	m.Dispatch(Clear())

	close(o.gate)
	s := settle(t, m)
	assert.Equal(t, []string{"rack"}, s.FoundWords)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 1, o.callCount(), "second submit never reached the oracle")
}

func TestStaleValidationDiscardedAfterNewPuzzle(t *testing.T) {
	o := accepting("rack")
	o.gate = make(chan struct{})
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	require.Equal(t, StateValidating, m.Snapshot().State)

	// Abandon the in-flight check.
	m.Dispatch(NewPuzzle())
	s := m.Snapshot()
	assert.Equal(t, StateReady, s.State)
	assert.Equal(t, 1, s.PuzzleIndex)

	close(o.gate)
	// Give the stale completion time to arrive; it must not corrupt the new round.
	time.Sleep(50 * time.Millisecond)
	s = m.Snapshot()
	assert.Zero(t, s.Score)
	assert.Empty(t, s.FoundWords)
	assert.Empty(t, s.LastMessage)
}

func TestScoreMonotonicWithinPuzzle(t *testing.T) {
	o := accepting("rack", "crack", "racking")
	m := New(o, 0)

	prev := 0
	for _, w := range []string{"rack", "nope", "crack", "rack", "racking", "zzzz"} {
		m.Dispatch(SubmitWord(w))
		s := settle(t, m)
		assert.GreaterOrEqual(t, s.Score, prev, "score never decreases within a puzzle")
		prev = s.Score
	}
	assert.Equal(t, 20, prev) // 1 + 5 + 14
}

func TestAwaitReadyWakesOnResolve(t *testing.T) {
	o := accepting("rack")
	o.gate = make(chan struct{})
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	require.Equal(t, StateValidating, m.Snapshot().State)

	done := make(chan Snapshot, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- m.AwaitReady(ctx)
	}()

	close(o.gate)
	select {
	case s := <-done:
		assert.Equal(t, StateReady, s.State)
		assert.Equal(t, 1, s.Score)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("AwaitReady did not wake after the validation resolved")
	}
}

func TestAwaitReadyHonorsContext(t *testing.T) {
	o := accepting("rack")
	o.gate = make(chan struct{})
	defer close(o.gate)
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := m.AwaitReady(ctx)
	assert.Equal(t, StateValidating, s.State, "returns the unsettled snapshot when the context ends first")
}

func TestStats(t *testing.T) {
	o := accepting("rack", "cracking")
	m := New(o, 0)

	m.Dispatch(SubmitWord("rack"))
	settle(t, m)
	m.Dispatch(SubmitWord("cracking"))
	settle(t, m)

	st := m.Stats()
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 1, st.PangramCount)
}
