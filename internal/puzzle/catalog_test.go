package puzzle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogInvariants(t *testing.T) {
	require.Greater(t, Size(), 0)
	for i := 0; i < Size(); i++ {
		p := Get(i)
		seen := map[rune]bool{}
		for _, r := range p.Letters {
			assert.GreaterOrEqual(t, r, 'A')
			assert.LessOrEqual(t, r, 'Z')
			assert.False(t, seen[r], "puzzle %d repeats %c", i, r)
			seen[r] = true
		}
		assert.Len(t, seen, 7)
		assert.True(t, seen[p.Center], "puzzle %d center %c not in letters", i, p.Center)
	}
}

func TestGetWraps(t *testing.T) {
	assert.Equal(t, Get(0), Get(Size()))
	assert.Equal(t, Get(1), Get(Size()+1))
	assert.Equal(t, Get(Size()-1), Get(-1))
}

func TestFirstPuzzleIsRackingK(t *testing.T) {
	p := Get(0)
	assert.Equal(t, "RACKING", p.LetterString())
	assert.Equal(t, 'K', p.Center)
}

func TestNewCustom(t *testing.T) {
	p, err := NewCustom("racking", 'k')
	require.NoError(t, err)
	assert.Equal(t, "RACKING", p.LetterString(), "canonical uppercase")
	assert.Equal(t, 'K', p.Center)

	_, err = NewCustom("rackin", 'k')
	assert.ErrorIs(t, err, ErrWrongLetterCount)

	_, err = NewCustom("rackings", 'k')
	assert.ErrorIs(t, err, ErrWrongLetterCount)

	_, err = NewCustom("rAckinA", 'k')
	assert.ErrorIs(t, err, ErrDuplicateLetters, "duplicates detected case-insensitively")

	_, err = NewCustom("racking", 'z')
	assert.ErrorIs(t, err, ErrCenterNotInLetters)
}

func TestHasIsCaseInsensitive(t *testing.T) {
	p := Get(0)
	assert.True(t, p.Has('r'))
	assert.True(t, p.Has('R'))
	assert.False(t, p.Has('z'))
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	assert.Equal(t, Random(42), Random(42))
}

func TestDailyIndex(t *testing.T) {
	d := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	i := DailyIndex(d, "salt")
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, Size())
	assert.Equal(t, i, DailyIndex(d, "salt"), "same date, same index")
	assert.Equal(t, i, DailyIndex(d.Add(3*time.Hour), "salt"), "keyed by UTC date, not time")
}
