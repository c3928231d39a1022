// Package main implements the Battlesnake API server.
//
// It translates the per-turn request payload into a game snapshot and asks
// the heuristic decision engine for a move. The server carries no decision
// logic of its own.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/jj-bali/battlesnake-team-10/agent"
	"github.com/jj-bali/battlesnake-team-10/game"
	"github.com/jj-bali/battlesnake-team-10/logging"
	"github.com/jj-bali/battlesnake-team-10/rules"
	"github.com/jj-bali/battlesnake-team-10/store"
)

// lookaheadMinBudget is the per-move time budget below which the forward
// simulation is switched off. The engine carries no mid-search deadline;
// latency is controlled by capping the search up front.
const lookaheadMinBudget = 150 * time.Millisecond

// lookaheadWithinBudget decides whether the lookahead fits the budget.
func lookaheadWithinBudget(enabled bool, budget time.Duration) bool {
	return enabled && budget >= lookaheadMinBudget
}

// Battlesnake API request/response types

type BattlesnakeInfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Color      string `json:"color"`
	Head       string `json:"head"`
	Tail       string `json:"tail"`
	Version    string `json:"version"`
}

type GameRequest struct {
	Game  Game        `json:"game"`
	Turn  int         `json:"turn"`
	Board Board       `json:"board"`
	You   Battlesnake `json:"you"`
}

type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Timeout int     `json:"timeout"`
	Source  string  `json:"source"`
}

type Ruleset struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Board struct {
	Height  int           `json:"height"`
	Width   int           `json:"width"`
	Food    []Coord       `json:"food"`
	Hazards []Coord       `json:"hazards"`
	Snakes  []Battlesnake `json:"snakes"`
}

type Battlesnake struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Health  int     `json:"health"`
	Body    []Coord `json:"body"`
	Latency string  `json:"latency"`
	Head    Coord   `json:"head"`
	Length  int     `json:"length"`
	Shout   string  `json:"shout"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MoveResponse struct {
	Move  string `json:"move"`
	Shout string `json:"shout,omitempty"`
}

// decisionArchive buffers one archive row per decision, keyed by game id,
// and flushes a game's rows into a parquet batch when the game ends.
// Handlers run concurrently, so access goes through the mutex.
type decisionArchive struct {
	outDir string

	mu   sync.Mutex
	rows map[string][]store.ArchiveTurnRow
}

func newDecisionArchive(outDir string) *decisionArchive {
	return &decisionArchive{outDir: outDir, rows: make(map[string][]store.ArchiveTurnRow)}
}

func (a *decisionArchive) record(gameID string, state *game.GameState, move int, shout string) {
	row := store.RowFromState(gameID, "server", state,
		map[string]int{state.YouId: move},
		map[string]string{state.YouId: shout})
	a.mu.Lock()
	a.rows[gameID] = append(a.rows[gameID], row)
	a.mu.Unlock()
}

func (a *decisionArchive) flush(gameID string) (string, int, error) {
	a.mu.Lock()
	rows := a.rows[gameID]
	delete(a.rows, gameID)
	a.mu.Unlock()

	if len(rows) == 0 {
		return "", 0, nil
	}
	path, err := store.WriteBatchParquetAtomic(a.outDir, rows)
	return path, len(rows), err
}

// Server wires the decision engine to the HTTP handlers.
type Server struct {
	engine  *agent.Engine
	log     *slog.Logger
	archive *decisionArchive
}

// NewServer builds the handler set. A nil archive disables decision
// archiving.
func NewServer(engine *agent.Engine, log *slog.Logger, archive *decisionArchive) *Server {
	return &Server{engine: engine, log: log, archive: archive}
}

// handleIndex returns the static display metadata.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	response := BattlesnakeInfoResponse{
		APIVersion: "1",
		Author:     "team-10",
		Color:      "#10a37f",
		Head:       "gamer",
		Tail:       "coffee",
		Version:    "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// handleStart is a lifecycle no-op beyond logging.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("game started",
		slog.String("game_id", req.Game.ID),
		slog.String("you", req.You.Name),
		slog.Int("snakes", len(req.Board.Snakes)),
	)
	w.WriteHeader(http.StatusOK)
}

// handleMove runs one decision.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := convertToGameState(&req)
	move, shout := s.engine.Decide(state)
	moveStr := rules.MoveName(move)

	if s.archive != nil {
		s.archive.record(req.Game.ID, state, move, shout)
	}

	s.log.Info("move",
		slog.String("game_id", req.Game.ID),
		slog.Int("turn", req.Turn),
		slog.String("move", moveStr),
		slog.String("shout", shout),
		slog.Duration("elapsed", time.Since(startTime)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MoveResponse{Move: moveStr, Shout: shout})
}

// handleEnd is a lifecycle no-op beyond logging the result.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	youAlive := false
	for _, snake := range req.Board.Snakes {
		if snake.ID == req.You.ID {
			youAlive = true
			break
		}
	}

	result := "lost"
	if youAlive {
		result = "won"
	} else if len(req.Board.Snakes) == 0 {
		result = "draw"
	}

	s.log.Info("game ended",
		slog.String("game_id", req.Game.ID),
		slog.Int("turn", req.Turn),
		slog.String("result", result),
	)

	if s.archive != nil {
		path, n, err := s.archive.flush(req.Game.ID)
		if err != nil {
			s.log.Error("archive flush failed",
				slog.String("game_id", req.Game.ID),
				slog.String("error", err.Error()),
			)
		} else if n > 0 {
			s.log.Info("game archived",
				slog.String("game_id", req.Game.ID),
				slog.String("path", path),
				slog.Int("rows", n),
			)
		}
	}
	w.WriteHeader(http.StatusOK)
}

// convertToGameState maps the API payload onto the engine's snapshot.
func convertToGameState(req *GameRequest) *game.GameState {
	state := &game.GameState{
		Width:  int32(req.Board.Width),
		Height: int32(req.Board.Height),
		YouId:  req.You.ID,
		Turn:   int32(req.Turn),
	}

	state.Food = make([]game.Point, len(req.Board.Food))
	for i, f := range req.Board.Food {
		state.Food[i] = game.Point{X: int32(f.X), Y: int32(f.Y)}
	}

	state.Hazards = make([]game.Point, len(req.Board.Hazards))
	for i, h := range req.Board.Hazards {
		state.Hazards[i] = game.Point{X: int32(h.X), Y: int32(h.Y)}
	}

	state.Snakes = make([]game.Snake, len(req.Board.Snakes))
	for i, s := range req.Board.Snakes {
		snake := game.Snake{
			Id:     s.ID,
			Health: int32(s.Health),
			Body:   make([]game.Point, len(s.Body)),
		}
		for j, b := range s.Body {
			snake.Body[j] = game.Point{X: int32(b.X), Y: int32(b.Y)}
		}
		state.Snakes[i] = snake
	}

	return state
}

func main() {
	listen := flag.String("listen", ":8080", "HTTP listen address")
	debug := flag.Bool("debug", false, "Enable per-decision debug logging")
	lookahead := flag.Bool("lookahead", true, "Enable multi-turn lookahead in the space fallback")
	moveBudget := flag.Duration("move-budget", 400*time.Millisecond, "Per-move time budget; tight budgets disable the lookahead")
	archiveDir := flag.String("archive-dir", "", "Write per-decision parquet archives here (empty disables)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(logging.NewPrettyHandler(os.Stdout, level))

	engine := agent.New(log, rand.New(rand.NewSource(time.Now().UnixNano())))
	engine.UseLookahead = lookaheadWithinBudget(*lookahead, *moveBudget)
	if *lookahead && !engine.UseLookahead {
		log.Info("lookahead disabled by move budget", slog.Duration("budget", *moveBudget))
	}

	var archive *decisionArchive
	if *archiveDir != "" {
		archive = newDecisionArchive(*archiveDir)
		log.Info("decision archiving enabled", slog.String("dir", *archiveDir))
	}

	server := NewServer(engine, log, archive)

	mux := http.NewServeMux()
	mux.HandleFunc("/", server.handleIndex)
	mux.HandleFunc("/start", server.handleStart)
	mux.HandleFunc("/move", server.handleMove)
	mux.HandleFunc("/end", server.handleEnd)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("battlesnake server listening", slog.String("addr", *listen))
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
