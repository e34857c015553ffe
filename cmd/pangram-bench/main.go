// cmd/pangram-bench/main.go
//
// Benchmark CLI. Runs an agent (LLM-backed or scripted) against the Pangram
// machine via the event API and reports score against token cost.
//
//	pangram-bench run --scenario scenarios/quick.yaml
//	pangram-bench run --scenario s.yaml --script words.txt
//	pangram-bench run --scenario s.yaml --post http://localhost:5180
//
// The scripted player reads one word per line from --script; a blank line
// separates turns.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pangramlab/pangram/internal/agent"
	"github.com/pangramlab/pangram/internal/bench"
	"github.com/pangramlab/pangram/internal/dict"
)

var (
	scenarioPath string
	scriptPath   string
	postURL      string
	authToken    string
	remoteDict   bool
)

var rootCmd = &cobra.Command{
	Use:   "pangram-bench",
	Short: "Benchmark agents against the Pangram word game",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one benchmark scenario and print the report",
	RunE:  runBench,
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a YAML scenario file (required)")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "play a scripted word file instead of an LLM")
	runCmd.Flags().StringVar(&postURL, "post", "", "server base URL to POST the result to")
	runCmd.Flags().StringVar(&authToken, "token", "", "bearer token for --post attribution")
	runCmd.Flags().BoolVar(&remoteDict, "remote-dict", false, "fall back to the remote dictionary API")
	_ = runCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(runCmd)
}

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, _ []string) error {
	sc, err := bench.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	words, err := dict.NewWordList()
	if err != nil {
		return err
	}
	var oracle dict.Oracle = words
	if remoteDict {
		oracle = &dict.Chain{List: words, Fallback: dict.NewRemote()}
	}

	player, err := buildPlayer(&sc)
	if err != nil {
		return err
	}

	runner := &bench.Runner{Player: player, Oracle: oracle}
	rep, err := runner.Run(cmd.Context(), sc)
	if err != nil {
		return fmt.Errorf("benchmark run: %w", err)
	}

	out, _ := json.MarshalIndent(rep, "", "  ")
	fmt.Println(string(out))

	if postURL != "" {
		if err := postResult(cmd.Context(), postURL, authToken, rep); err != nil {
			log.Warn().Err(err).Msg("failed to post result")
		} else {
			log.Info().Str("url", postURL).Msg("result posted")
		}
	}
	return nil
}

// buildPlayer picks the scripted player when --script is given, the OpenAI
// player otherwise. The scenario model is informational for scripted runs.
func buildPlayer(sc *bench.Scenario) (agent.Player, error) {
	if scriptPath != "" {
		turns, err := readScript(scriptPath)
		if err != nil {
			return nil, err
		}
		if sc.Model == "" {
			sc.Model = "scripted"
		}
		return agent.NewScripted(turns, 0), nil
	}
	return agent.NewOpenAI(sc.Model)
}

// readScript parses a word file into turns: one word per line, blank line
// separates turns.
func readScript(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var turns [][]string
	var cur []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			if len(cur) > 0 {
				turns = append(turns, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		turns = append(turns, cur)
	}
	return turns, sc.Err()
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
