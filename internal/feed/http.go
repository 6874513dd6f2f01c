package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// HTTPSource fetches the documents from {BaseURL}/data/{name}, all four in
// parallel. The first failure cancels the others and fails the load.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTP(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) Name() string { return "http:" + s.BaseURL }

func (s *HTTPSource) Load(ctx context.Context) (Documents, error) {
	bodies := make([][]byte, len(DocumentNames))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range DocumentNames {
		i, name := i, name
		g.Go(func() error {
			b, err := s.fetch(gctx, name)
			if err != nil {
				return loadError(name, err)
			}
			if err := checkJSON(name, b); err != nil {
				return err
			}
			bodies[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Documents{}, err
	}

	var docs Documents
	for i, name := range DocumentNames {
		docs.set(name, bodies[i])
	}
	return docs, nil
}

func (s *HTTPSource) fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/data/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}
