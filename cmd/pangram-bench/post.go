// cmd/pangram-bench/post.go
//
// Posts a finished benchmark report to a running pangramd instance so it
// lands on the leaderboard. Attribution uses the optional bearer token.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pangramlab/pangram/internal/bench"
)

func postResult(ctx context.Context, baseURL, token string, rep bench.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	u := strings.TrimRight(baseURL, "/") + "/results"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post result: unexpected status %d", resp.StatusCode)
	}
	return nil
}
