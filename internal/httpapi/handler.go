// Package httpapi exposes the single execution route the engine serves
// over HTTP: POST /execute, matching the declarative pipeline
// document/execution response wire contract exactly.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/dagflow/internal/dag"
	"github.com/alexisbeaulieu97/dagflow/internal/dagctxlog"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
	"github.com/alexisbeaulieu97/dagflow/internal/fingerprint"
	"github.com/alexisbeaulieu97/dagflow/internal/ir"
	"github.com/alexisbeaulieu97/dagflow/internal/registry"
	"github.com/alexisbeaulieu97/dagflow/internal/resultcache"
	"github.com/alexisbeaulieu97/dagflow/internal/scheduler"
)

// Server holds the shared state one /execute call needs: the component
// registry pipelines are built against, and the memoization/replay cache
// results are stored in.
type Server struct {
	registry *registry.Registry
	cache    *resultcache.Cache
	logger   *dagctxlog.Logger
}

// NewServer builds a Server.
func NewServer(reg *registry.Registry, cache *resultcache.Cache, logger *dagctxlog.Logger) *Server {
	return &Server{registry: reg, cache: cache, logger: logger}
}

// Routes returns the handler tree: exactly one route, POST /execute.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /execute", s.handleExecute)
	return mux
}

type executeResponse struct {
	Success      bool                      `json:"success"`
	Results      map[string]dagvalue.Value `json:"results,omitempty"`
	Error        string                    `json:"error,omitempty"`
	TookMs       int64                     `json:"took_ms"`
	CacheEnabled bool                      `json:"cache_enabled"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	ctx := dagctxlog.WithRequestID(r.Context(), requestID)
	noCache := isNoCache(r.Header.Get("Cache-Control"))
	defer r.Body.Close()

	results, err := s.execute(ctx, r.Body, requestID, noCache)

	resp := executeResponse{
		TookMs:       time.Since(start).Milliseconds(),
		CacheEnabled: !noCache,
	}
	if err != nil {
		resp.Success = false
		resp.Error = err.Error()
		s.logger.Warn(ctx, "execution failed", "error", err.Error())
	} else {
		resp.Success = true
		resp.Results = results
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) execute(ctx context.Context, body io.Reader, requestID string, noCache bool) (map[string]dagvalue.Value, error) {
	doc, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	parsed, err := ir.Parse(doc)
	if err != nil {
		return nil, err
	}

	graph, err := dag.Build(parsed, s.registry, dag.NewConfig())
	if err != nil {
		return nil, err
	}

	key := resultcache.Key{
		IRHash:     parsed.Hash(),
		InputsHash: fingerprint.SeedInputsHash(ir.SeedInputs(parsed)),
	}

	if !noCache {
		if record, ok := s.cache.Lookup(key); ok {
			return record.NodeResults, nil
		}
	}

	resultMap, err := scheduler.Execute(ctx, graph, scheduler.Options{RequestID: requestID})
	if err != nil {
		return nil, err
	}

	record := resultcache.NewRecord(requestID, resultMap)
	s.cache.Store(key, record)

	return record.NodeResults, nil
}

func isNoCache(cacheControl string) bool {
	return strings.Contains(strings.ToLower(cacheControl), "no-cache")
}
