package corpus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/c.json":
			fmt.Fprint(w, `{"language":"c","entries":[{"text":"for","type":"keyword"},{"text":"while","type":"keyword"}]}`)
		case "/flaky.json":
			w.WriteHeader(http.StatusInternalServerError)
		case "/garbled.json":
			fmt.Fprint(w, `{"entries": [`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL}

	t.Run("ok decodes the document", func(t *testing.T) {
		doc, err := src.Fetch(context.Background(), "c")
		if err != nil {
			t.Fatal(err)
		}
		if doc.Language != "c" || len(doc.Entries) != 2 {
			t.Errorf("document = %q with %d entries, want \"c\" with 2", doc.Language, len(doc.Entries))
		}
	})

	t.Run("404 is an expected absence", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "fortran")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("server error is not an absence", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "flaky")
		if err == nil {
			t.Fatal("no error for a 500 response")
		}
		if errors.Is(err, ErrNotFound) {
			t.Error("500 reported as ErrNotFound; manager would log it as a mere absence")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		if _, err := src.Fetch(context.Background(), "garbled"); err == nil {
			t.Fatal("no error for a truncated document")
		}
	})
}
