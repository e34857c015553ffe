// internal/bench/runner.go
//
// Benchmark harness. Drives a Player against the game machine through the
// same event API a UI would use: each proposed word becomes a SUBMIT_WORD
// event, and the harness reads score deltas off the settled snapshot.
// The harness never reaches into machine internals.

package bench

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pangramlab/pangram/internal/agent"
	"github.com/pangramlab/pangram/internal/dict"
	"github.com/pangramlab/pangram/internal/machine"
)

// Report is the outcome of one benchmark run.
// Efficiency is score per thousand tokens; 0 when no tokens were spent.
type Report struct {
	Scenario   string        `json:"scenario"`
	Model      string        `json:"model"`
	TokensUsed int           `json:"tokensUsed"`
	ToolCalls  int           `json:"toolCalls"`
	Score      int           `json:"score"`
	WordsFound int           `json:"wordsFound"`
	Efficiency float64       `json:"efficiency"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Efficiency computes score / (tokens/1000), guarding the zero-token case.
func Efficiency(score, tokens int) float64 {
	if tokens == 0 {
		return 0
	}
	return float64(score) / (float64(tokens) / 1000.0)
}

// Runner binds a player to an oracle for benchmark runs.
type Runner struct {
	Player agent.Player
	Oracle dict.Oracle
}

// Run executes one scenario and returns the report. The player is consulted
// up to MaxTurns times per round; a turn with no proposals ends the round
// early. Score accumulates across rounds (the machine itself resets score on
// each NEW_PUZZLE).
func (r *Runner) Run(ctx context.Context, sc Scenario) (Report, error) {
	rep := Report{Scenario: sc.Name, Model: sc.Model}
	start := time.Now()

	m := machine.New(r.Oracle, sc.PuzzleIndex)
	for round := 0; round < sc.Rounds; round++ {
		if round > 0 {
			m.Dispatch(machine.NewPuzzle())
		}
		snap := m.Snapshot()
		log.Info().Int("round", round).Str("letters", snap.Letters).
			Str("center", snap.Center).Msg("bench round start")

		for turn := 0; turn < sc.MaxTurns; turn++ {
			snap = m.Snapshot()
			t, err := r.Player.Propose(ctx, agent.View{
				Letters:    snap.Letters,
				Center:     snap.Center,
				FoundWords: snap.FoundWords,
				Score:      snap.Score,
			})
			if err != nil {
				return rep, err
			}
			rep.TokensUsed += t.TokensUsed
			if len(t.Words) == 0 {
				break
			}
			for _, w := range t.Words {
				m.Dispatch(machine.SubmitWord(w))
				rep.ToolCalls++
				snap = m.AwaitReady(ctx)
			}
		}

		final := m.AwaitReady(ctx)
		rep.Score += final.Score
		rep.WordsFound += len(final.FoundWords)
		log.Info().Int("round", round).Int("score", final.Score).
			Int("words", len(final.FoundWords)).Msg("bench round done")
	}

	rep.Elapsed = time.Since(start)
	rep.Efficiency = Efficiency(rep.Score, rep.TokensUsed)
	return rep, nil
}
