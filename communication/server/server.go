package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"maxconnect4/cache"
	"maxconnect4/communication"
	"maxconnect4/engine"
	"maxconnect4/game"
	"maxconnect4/meta"
	"maxconnect4/searcher"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 16

type Options struct {
	DefaultDepth int
	MaxDepth     int
	Evaluator    string // Evaluator name
	Parallel     bool
	Cache        cache.MoveCache // Optional
}

// Server answers move requests with a fresh search per request, so requests
// run concurrently without shared search state.
type Server struct {
	options  Options
	evaluate game.Evaluate
	mux      *http.ServeMux
}

func NewServer(options Options) (*Server, error) {
	evaluate, err := game.EvaluatorByName(options.Evaluator)
	if err != nil {
		return nil, err
	}
	if options.DefaultDepth < meta.MIN_DEPTH || options.DefaultDepth > options.MaxDepth {
		return nil, fmt.Errorf("default depth %d not in [%d, %d]", options.DefaultDepth, meta.MIN_DEPTH, options.MaxDepth)
	}

	s := &Server{
		options:  options,
		evaluate: evaluate,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/move", s.handleMove)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("move server listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down move server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req communication.MoveRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	board, err := communication.DecodeBoard(req.Rows, req.Turn)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Only the standard grid is searched
	if board.Rows() != meta.ROWS || board.Columns() != meta.COLUMNS {
		writeJSONError(w, fmt.Sprintf("board must be %dx%d, got %dx%d", meta.ROWS, meta.COLUMNS, board.Rows(), board.Columns()), http.StatusBadRequest)
		return
	}

	depth := req.Depth
	if depth == 0 {
		depth = s.options.DefaultDepth
	}
	if depth < meta.MIN_DEPTH || depth > s.options.MaxDepth {
		writeJSONError(w, fmt.Sprintf("depth must be in [%d, %d]", meta.MIN_DEPTH, s.options.MaxDepth), http.StatusBadRequest)
		return
	}

	agent := engine.NewSearchAgent(searcher.NewAlphaBeta(
		searcher.WithDepth(depth),
		searcher.WithEvaluationFn(s.evaluate),
		searcher.WithParallelExpansion(s.options.Parallel),
	), s.options.Evaluator, s.options.Cache)

	move, err := agent.FindMove(r.Context(), board)
	if errors.Is(err, game.ErrNoLegalMove) {
		writeJSONError(w, game.ErrNoLegalMove.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("move search failed")
		writeJSONError(w, "search failed", http.StatusInternalServerError)
		return
	}

	rows, turn := communication.EncodeBoard(move.Board)
	log.Debug().Msgf("depth %d move for player %d: column %d", depth, board.Turn(), move.Column+1)
	writeJSON(w, http.StatusOK, communication.MoveResponse{
		Column: move.Column + 1,
		Value:  move.Value,
		Cached: move.Cached,
		Rows:   rows,
		Turn:   turn,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, communication.ErrorResponse{Error: message})
}
