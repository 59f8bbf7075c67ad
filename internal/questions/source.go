package questions

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"wedding-trivia/internal/domain"
)

// Source loads quiz content. Loading is the one pessimistic path in the
// flow: a failed load blocks the quiz from starting.
type Source interface {
	Load(ctx context.Context) ([]domain.Question, error)
}

// FileSource reads tab-separated questions from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]domain.Question, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// HTTPSource fetches tab-separated questions from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Load(ctx context.Context) ([]domain.Question, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build questions request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch questions: HTTP %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}
