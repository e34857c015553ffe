package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangramlab/pangram/internal/dict"
	"github.com/pangramlab/pangram/internal/machine"
	"github.com/pangramlab/pangram/internal/store"
)

// newTestServer wires a server against a temp SQLite file and a small
// word-list oracle.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))

	words := dict.NewWordListFrom([]string{"rack", "crack", "cracking"})
	return New(store.NewMemoryRegistry(), db, words, words)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t)

	idx := 0
	rec := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{PuzzleIndex: &idx}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var created newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, "RACKING", created.Snapshot.Letters)
	assert.Equal(t, "K", created.Snapshot.Center)

	rec = doJSON(t, s, http.MethodPost, "/game/event", eventReq{
		GameID: created.GameID,
		Event:  machine.SubmitWord("RACK"),
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ev eventRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	assert.Equal(t, machine.StateReady, ev.Snapshot.State, "event response is settled")
	assert.Equal(t, 1, ev.Snapshot.Score)
	assert.Equal(t, []string{"rack"}, ev.Snapshot.FoundWords)

	rec = doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap machine.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Score)

	rec = doJSON(t, s, http.MethodGet, "/game/"+created.GameID+"/stats", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventUnknownGame(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/game/event", eventReq{
		GameID: "nope",
		Event:  machine.Submit(),
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "player_one", Password: "hunter2hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var me authUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "player_one", me.Username)

	rec = doJSON(t, s, http.MethodPost, "/auth/login",
		loginReq{Username: "player_one", Password: "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResultsAndLeaderboard(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/results", resultReq{
		Scenario:   "quick",
		Model:      "gpt-4o-mini",
		Score:      20,
		WordsFound: 3,
		TokensUsed: 1000,
		ToolCalls:  4,
		Efficiency: 20,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/leaderboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []lbRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "anonymous", rows[0].Username)
	assert.Equal(t, 20, rows[0].Score)
	assert.InDelta(t, 20.0, rows[0].Efficiency, 0.001)
}

func TestGenID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := genID()
		assert.Len(t, id, 22)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestSignupCreatesDistinctUsers(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "alpha", Password: "longenoughpw"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "beta", Password: "longenoughpw"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	a, err := s.findUserByUsername("alpha")
	require.NoError(t, err)
	b, err := s.findUserByUsername("beta")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestResultRequiresScenario(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/results", resultReq{Score: 5}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
