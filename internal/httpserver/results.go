// internal/httpserver/results.go
//
// Benchmark result persistence and the leaderboard.
// The bench CLI posts its report here after a run; rows are attributed to
// the authenticated user when a token is present, anonymous otherwise.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// resultReq mirrors the bench report fields worth persisting.
type resultReq struct {
	Scenario   string  `json:"scenario"`
	Model      string  `json:"model"`
	Score      int     `json:"score"`
	WordsFound int     `json:"wordsFound"`
	TokensUsed int     `json:"tokensUsed"`
	ToolCalls  int     `json:"toolCalls"`
	Efficiency float64 `json:"efficiency"`
}

// handlePostResult inserts a benchmark result row and bumps the submitting
// user's counters (best effort, non-fatal if the bump fails).
func (s *Server) handlePostResult(w http.ResponseWriter, r *http.Request) {
	var req resultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Scenario == "" {
		http.Error(w, `{"error":"scenario required"}`, http.StatusBadRequest)
		return
	}

	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	var userID any // nil for anonymous rows
	if me != nil {
		userID = me.ID
	}

	_, err := s.db.Exec(`INSERT INTO results
		(user_id, scenario, model, score, words_found, tokens_used, tool_calls, efficiency, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		userID, req.Scenario, req.Model, req.Score, req.WordsFound,
		req.TokensUsed, req.ToolCalls, req.Efficiency, nowRFC3339())
	if err != nil {
		log.Error().Err(err).Msg("insert result")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	if me != nil {
		if _, err := s.db.Exec(`UPDATE users SET runs = runs + 1,
			best_score = MAX(best_score, ?) WHERE id=?`, req.Score, me.ID); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump user stats")
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// lbRow is one leaderboard entry.
type lbRow struct {
	Username   string  `json:"username"`
	Scenario   string  `json:"scenario"`
	Model      string  `json:"model"`
	Score      int     `json:"score"`
	TokensUsed int     `json:"tokensUsed"`
	Efficiency float64 `json:"efficiency"`
	CreatedAt  string  `json:"createdAt"`
}

// handleLeaderboard returns the top results by efficiency.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`SELECT COALESCE(u.username, 'anonymous'),
			res.scenario, res.model, res.score, res.tokens_used, res.efficiency, res.created_at
		FROM results res LEFT JOIN users u ON u.id = res.user_id
		ORDER BY res.efficiency DESC, res.score DESC LIMIT 50`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []lbRow{}
	for rows.Next() {
		var row lbRow
		if err := rows.Scan(&row.Username, &row.Scenario, &row.Model, &row.Score,
			&row.TokensUsed, &row.Efficiency, &row.CreatedAt); err == nil {
			out = append(out, row)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}
