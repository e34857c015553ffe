// internal/dict/oracle.go
//
// The dictionary oracle answers "is this a real word?". The game machine
// treats it as an injected capability and fails closed: any error from an
// oracle counts as a rejection, never an acceptance.

package dict

import "context"

// Oracle is the authoritative word check.
// Implementations may be backed by a local word list (preferred,
// deterministic, offline) or a remote lookup service.
type Oracle interface {
	// CheckWord reports whether word is a real word. An error means the
	// lookup could not be completed; callers must treat that as "no".
	CheckWord(ctx context.Context, word string) (bool, error)
}

// Chain consults a local word list first and falls back to a secondary
// oracle for words the list doesn't know. A nil fallback makes the chain
// equivalent to the list alone.
type Chain struct {
	List     *WordList
	Fallback Oracle
}

// CheckWord returns true on a list hit; otherwise defers to the fallback.
func (c *Chain) CheckWord(ctx context.Context, word string) (bool, error) {
	if c.List != nil {
		if ok, _ := c.List.CheckWord(ctx, word); ok {
			return true, nil
		}
	}
	if c.Fallback == nil {
		return false, nil
	}
	return c.Fallback.CheckWord(ctx, word)
}
