package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrNotFound marks an expected absence: the language simply has no
// dictionary. The Manager degrades it to an empty corpus with a warning.
var ErrNotFound = errors.New("dictionary not found")

// Source fetches the raw dictionary document for a language.
type Source interface {
	Fetch(ctx context.Context, language string) (*Document, error)
}

// FileSource reads dictionary documents from <Dir>/<language>.json.
type FileSource struct {
	Dir string
}

func (s FileSource) Fetch(_ context.Context, language string) (*Document, error) {
	path := filepath.Join(s.Dir, language+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeDocument(data, language)
}

// HTTPSource fetches dictionary documents from <BaseURL>/<language>.json.
// A 404 is treated as an expected absence, any other non-OK status is an
// error.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, language string) (*Document, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := fmt.Sprintf("%s/%s.json", s.BaseURL, language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return decodeDocument(data, language)
}

func decodeDocument(data []byte, language string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dictionary for %q: %w", language, err)
	}
	if doc.Language == "" {
		doc.Language = language
	}
	return &doc, nil
}
