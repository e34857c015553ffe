// internal/puzzle/catalog.go
//
// Puzzle catalog and construction for the Pangram game.
// Responsibilities:
//   - Hold the fixed, ordered set of built-in puzzles (7 distinct letters + center).
//   - Deterministic selection by index (wraps modulo catalog size).
//   - Auxiliary selectors: seeded random pick, HMAC-derived daily index.
//   - Validated construction of custom puzzles with typed errors.
//
// A Puzzle is immutable once constructed; letters are canonical uppercase.

package puzzle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Puzzle is one round's letter set: seven distinct uppercase letters,
// one of which is the required center letter.
type Puzzle struct {
	Letters [7]rune // canonical uppercase, all distinct
	Center  rune    // always a member of Letters
}

// LetterString returns the seven letters as a single uppercase string,
// in catalog order.
func (p Puzzle) LetterString() string {
	var b strings.Builder
	for _, r := range p.Letters {
		b.WriteRune(r)
	}
	return b.String()
}

// Has reports whether r (case-insensitive) is one of the puzzle's letters.
func (p Puzzle) Has(r rune) bool {
	u := unicode.ToUpper(r)
	for _, l := range p.Letters {
		if l == u {
			return true
		}
	}
	return false
}

// catalog is the built-in puzzle set. Order is fixed so that benchmark runs
// are reproducible; index 0 is the canonical RACKING/K puzzle.
var catalog = []Puzzle{
	mustPuzzle("RACKING", 'K'),
	mustPuzzle("PLANTER", 'T'),
	mustPuzzle("HOLDING", 'O'),
	mustPuzzle("COMBINE", 'O'),
	mustPuzzle("DUSTPAN", 'A'),
	mustPuzzle("WHISTLE", 'S'),
	mustPuzzle("PRODUCE", 'C'),
	mustPuzzle("FORMULA", 'O'),
}

// mustPuzzle builds a catalog entry and panics on invalid data.
// Only used for the static catalog above, which is covered by tests.
func mustPuzzle(letters string, center rune) Puzzle {
	p, err := NewCustom(letters, center)
	if err != nil {
		panic("puzzle: bad catalog entry " + letters + ": " + err.Error())
	}
	return p
}

// Size returns the number of built-in puzzles.
func Size() int { return len(catalog) }

// Get returns the catalog entry at index mod Size().
// Negative indexes are normalized into range.
func Get(index int) Puzzle {
	n := len(catalog)
	i := index % n
	if i < 0 {
		i += n
	}
	return catalog[i]
}

// Random returns a catalog puzzle chosen by a seeded PRNG.
// The same seed always yields the same puzzle.
func Random(seed int64) Puzzle {
	r := rand.New(rand.NewSource(seed))
	return catalog[r.Intn(len(catalog))]
}

// DailyIndex returns a deterministic catalog index for a date using
// HMAC(salt, YYYY-MM-DD) % Size(). Dates are keyed in UTC.
func DailyIndex(date time.Time, salt string) int {
	dk := date.UTC().Format("2006-01-02")
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(len(catalog)))
}

// NewCustom validates and constructs a puzzle from caller-supplied letters.
// Validation is case-insensitive; the result is canonical uppercase.
// Returns ErrWrongLetterCount, ErrDuplicateLetters, or ErrCenterNotInLetters
// when the corresponding invariant fails.
func NewCustom(letters string, center rune) (Puzzle, error) {
	rs := []rune(strings.ToUpper(strings.TrimSpace(letters)))
	if len(rs) != 7 {
		return Puzzle{}, ErrWrongLetterCount
	}
	seen := map[rune]bool{}
	var p Puzzle
	for i, r := range rs {
		if r < 'A' || r > 'Z' {
			return Puzzle{}, ErrWrongLetterCount
		}
		if seen[r] {
			return Puzzle{}, ErrDuplicateLetters
		}
		seen[r] = true
		p.Letters[i] = r
	}
	c := unicode.ToUpper(center)
	if !seen[c] {
		return Puzzle{}, ErrCenterNotInLetters
	}
	p.Center = c
	return p, nil
}
