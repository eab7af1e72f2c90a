package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hawklogic/ccserve/internal/utils"
	"github.com/hawklogic/ccserve/pkg/config"
	"github.com/hawklogic/ccserve/pkg/corpus"
	"github.com/hawklogic/ccserve/pkg/cursor"
	"github.com/hawklogic/ccserve/pkg/suggest"
)

// Server handles the IPC for completion requests.
type Server struct {
	manager *corpus.Manager
	cfg     *config.Config
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
}

// NewServer creates a completion server on stdin/stdout.
func NewServer(manager *corpus.Manager, cfg *config.Config) *Server {
	return NewServerIO(manager, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on explicit streams, mainly for tests.
func NewServerIO(manager *corpus.Manager, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		manager: manager,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
	}
}

// Start runs the request loop until the client disconnects.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")
	s.send(map[string]string{"status": "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "complete":
		s.handleComplete(req)
	case "context":
		s.handleContext(req)
	case "load":
		s.handleLoad(req)
	case "status":
		s.handleStatus(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	if req.Language == "" {
		s.sendError(req.ID, "missing 'lang' parameter", 400)
		return
	}
	if req.Prefix == "" {
		s.sendError(req.ID, "missing 'p' parameter", 400)
		return
	}
	if len(req.Prefix) > s.cfg.Engine.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d", s.cfg.Engine.MaxPrefix), 400)
		return
	}
	if !utils.IsIdentifier(req.Prefix) {
		log.Debugf("Rejecting non-identifier prefix %q", req.Prefix)
		s.send(CompleteResponse{ID: req.ID, Suggestions: []Suggestion{}})
		return
	}

	start := time.Now()
	c := s.manager.Load(context.Background(), req.Language)
	matches := suggest.Match(req.Prefix, c, s.limit(req.Limit))
	elapsed := time.Since(start)

	s.send(CompleteResponse{
		ID:          req.ID,
		Suggestions: wireSuggestions(matches),
		Count:       len(matches),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleContext derives the prefix from a raw buffer and cursor offset
// before matching, for hosts that do not track identifiers themselves.
func (s *Server) handleContext(req Request) {
	if req.Language == "" {
		s.sendError(req.ID, "missing 'lang' parameter", 400)
		return
	}

	start := time.Now()
	ctx := cursor.ExtractContext(req.Text, req.Cursor, req.Language)

	var matches []suggest.Suggestion
	if ctx.Prefix != "" {
		c := s.manager.Load(context.Background(), req.Language)
		matches = suggest.Match(ctx.Prefix, c, s.limit(req.Limit))
	}
	elapsed := time.Since(start)

	s.send(CompleteResponse{
		ID:          req.ID,
		Suggestions: wireSuggestions(matches),
		Count:       len(matches),
		Prefix:      ctx.Prefix,
		Line:        ctx.Line,
		Column:      ctx.Column,
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleLoad(req Request) {
	if req.Language == "" {
		s.sendError(req.ID, "missing 'lang' parameter", 400)
		return
	}
	c := s.manager.Load(context.Background(), req.Language)
	s.send(LoadResponse{ID: req.ID, Language: req.Language, Entries: len(c.Entries)})
}

func (s *Server) handleStatus(req Request) {
	langs := s.manager.Languages()
	sort.Strings(langs)
	s.send(StatusResponse{
		ID:          req.ID,
		Languages:   langs,
		MemoryBytes: s.manager.MemoryUsage(),
	})
}

func (s *Server) limit(requested int) int {
	if requested < 1 {
		return s.cfg.Engine.MaxResults
	}
	return requested
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func wireSuggestions(matches []suggest.Suggestion) []Suggestion {
	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = Suggestion{
			Text:        m.Text,
			Kind:        string(m.Type),
			Description: m.Description,
			Score:       m.Score,
		}
	}
	return out
}
