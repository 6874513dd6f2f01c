package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"a11ydash/pkg/models"
)

type tally struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type overviewResponse struct {
	Items     []tally `json:"items"`
	BySection []tally `json:"bySection"`
	ByType    []tally `json:"byType"`
	ByWCAG    []tally `json:"byWcag"`
}

type touchpointListResponse struct {
	Total   int              `json:"total"`
	Items   []map[string]any `json:"items"`
	Message string           `json:"message"`
}

type issueListResponse struct {
	Total   int              `json:"total"`
	Items   []map[string]any `json:"items"`
	Message string           `json:"message"`
}

type apiClient struct {
	http    *http.Client
	baseURL string
}

func (c *apiClient) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.baseURL, "/")+endpoint, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func (c *apiClient) doJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	data, err := c.do(ctx, method, endpoint, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// withQuery appends the non-empty params to path.
func withQuery(path string, params map[string]string) string {
	qv := url.Values{}
	for k, v := range params {
		if v != "" {
			qv.Set(k, v)
		}
	}
	if len(qv) == 0 {
		return path
	}
	return path + "?" + qv.Encode()
}

func printTally(title string, entries []tally) {
	fmt.Println()
	fmt.Println(title)
	if len(entries) == 0 {
		fmt.Println("  " + models.NoResults)
		return
	}
	for _, e := range entries {
		fmt.Printf("  %-40s %d\n", e.Label, e.Value)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}
