// internal/dict/wordlist.go
//
// Word list management for the dictionary oracle.
//
// Responsibilities:
//   - Load a word list from an environment-provided file or fall back to the
//     embedded default list.
//   - Maintain a set for O(1) membership lookups.
//   - Supply Stats for diagnostics endpoints.
//
// Initialization behavior (NewWordList):
//   1. If DICT_WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise use the embedded default list.
//
// Constraints:
//   - Words must be at least 4 alphabetic letters (a-z).
//   - Lists are normalized to lowercase.

package dict

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"os"
	"strings"
)

//go:embed words_default.txt
var embeddedWords string

// WordList is an offline Oracle backed by an in-memory set.
type WordList struct {
	words map[string]struct{}
}

// NewWordList loads the word list once, from DICT_WORDS_FILE if set or the
// embedded defaults otherwise. Returns an error if the list ends up empty.
func NewWordList() (*WordList, error) {
	var list []string
	if path := os.Getenv("DICT_WORDS_FILE"); path != "" {
		var err error
		list, err = readWordFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		list = normalizeLines(embeddedWords)
	}
	if len(list) == 0 {
		return nil, errors.New("dict: word list is empty")
	}
	return &WordList{words: toSet(list)}, nil
}

// NewWordListFrom builds a list directly from words; used by tests and by
// hosts that manage their own list loading.
func NewWordListFrom(words []string) *WordList {
	var list []string
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) >= 4 && isAlpha(w) {
			list = append(list, w)
		}
	}
	return &WordList{words: toSet(list)}
}

// CheckWord is a pure set-membership test; it never fails.
func (l *WordList) CheckWord(_ context.Context, word string) (bool, error) {
	_, ok := l.words[strings.ToLower(word)]
	return ok, nil
}

// Stats returns the number of loaded words.
func (l *WordList) Stats() int { return len(l.words) }

// readWordFile loads one word per line from a file, lowercases, trims, and
// keeps only valid alphabetic words of at least 4 letters.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) >= 4 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into a slice of
// valid lowercase words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) >= 4 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
