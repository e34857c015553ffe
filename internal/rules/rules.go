// internal/rules/rules.go
//
// Pure word-acceptance and scoring rules for the Pangram game.
// Responsibilities:
//   - Pangram detection (word covers all seven puzzle letters).
//   - Letter availability and center-letter checks.
//   - Ordered local validation (the cheap checks that run before any
//     dictionary lookup).
//   - The scoring formula and per-round aggregate stats.
//
// Everything here is side-effect free; the dictionary lookup lives in the
// dict package and is orchestrated by the machine.

package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// MinWordLength is the shortest submittable word.
const MinWordLength = 4

// PangramBonus is the flat bonus added on top of a pangram's length score.
const PangramBonus = 7

// IsPangram reports whether word uses every distinct letter of the puzzle
// at least once (case-insensitive). Word length is irrelevant: any word
// whose letter set covers all seven counts, including words longer than 7.
func IsPangram(word, letters string) bool {
	have := map[rune]bool{}
	for _, r := range strings.ToUpper(word) {
		have[r] = true
	}
	for _, r := range strings.ToUpper(letters) {
		if !have[r] {
			return false
		}
	}
	return true
}

// UsesOnlyAvailableLetters reports whether every character of word is one of
// the puzzle letters (case-insensitive). Repeats are fine.
func UsesOnlyAvailableLetters(word, letters string) bool {
	avail := map[rune]bool{}
	for _, r := range strings.ToUpper(letters) {
		avail[r] = true
	}
	for _, r := range strings.ToUpper(word) {
		if !avail[r] {
			return false
		}
	}
	return true
}

// ContainsCenter reports whether word contains the required center letter
// (case-insensitive).
func ContainsCenter(word string, center rune) bool {
	return strings.ContainsRune(strings.ToUpper(word), unicode.ToUpper(center))
}

// Verdict is the outcome of the local (pre-dictionary) validation pass.
type Verdict struct {
	OK     bool
	Reason string // empty when OK; user-facing rejection reason otherwise
}

// accepted is the zero-reason passing verdict.
var accepted = Verdict{OK: true}

// ValidateLocalRules runs the ordered local checks; the first failure wins.
//
// Order:
//  1. word shorter than MinWordLength
//  2. missing center letter
//  3. uses a letter outside the available seven
//  4. already found this round (case-insensitive)
//
// A passing verdict is necessary but not sufficient — the word still has to
// clear the dictionary check.
func ValidateLocalRules(word, letters string, center rune, found map[string]bool) Verdict {
	if len([]rune(word)) < MinWordLength {
		return Verdict{Reason: fmt.Sprintf("words must be at least %d letters", MinWordLength)}
	}
	if !ContainsCenter(word, center) {
		return Verdict{Reason: fmt.Sprintf("word must contain the letter %c", unicode.ToUpper(center))}
	}
	if !UsesOnlyAvailableLetters(word, letters) {
		return Verdict{Reason: "word uses unavailable letters"}
	}
	if found[strings.ToLower(word)] {
		return Verdict{Reason: "already found"}
	}
	return accepted
}

// ScoreWord returns the point value of an accepted word.
// Base value is the word length, except a 4-letter word scores a flat 1.
// A pangram earns an additional PangramBonus on top of its length.
func ScoreWord(word, letters string) int {
	n := len([]rune(word))
	score := n
	if n == MinWordLength {
		score = 1
	}
	if IsPangram(word, letters) {
		score += PangramBonus
	}
	return score
}

// Stats aggregates the words found in a round.
type Stats struct {
	Count             int     `json:"count"`
	PangramCount      int     `json:"pangramCount"`
	AverageLength     float64 `json:"averageLength"`
	UniqueLettersUsed int     `json:"uniqueLettersUsed"`
}

// WordStats summarizes found words against the puzzle letters.
// AverageLength is 0 when no words have been found.
func WordStats(found []string, letters string) Stats {
	st := Stats{Count: len(found)}
	if len(found) == 0 {
		return st
	}
	used := map[rune]bool{}
	totalLen := 0
	for _, w := range found {
		totalLen += len([]rune(w))
		if IsPangram(w, letters) {
			st.PangramCount++
		}
		for _, r := range strings.ToUpper(w) {
			used[r] = true
		}
	}
	st.AverageLength = float64(totalLen) / float64(len(found))
	st.UniqueLettersUsed = len(used)
	return st
}
