package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jj-bali/battlesnake-team-10/agent"
	"github.com/jj-bali/battlesnake-team-10/store"
)

func newTestServer() *Server {
	engine := agent.New(nil, rand.New(rand.NewSource(1)))
	return NewServer(engine, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func moveRequestJSON() string {
	req := GameRequest{
		Game: Game{ID: "g1", Timeout: 500},
		Turn: 12,
		Board: Board{
			Width:  11,
			Height: 11,
			Food:   []Coord{{X: 5, Y: 7}},
			Snakes: []Battlesnake{
				{
					ID:     "me",
					Health: 40,
					Body:   []Coord{{X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}},
					Head:   Coord{X: 5, Y: 5},
					Length: 3,
				},
			},
		},
		You: Battlesnake{
			ID:     "me",
			Health: 40,
			Body:   []Coord{{X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}},
			Head:   Coord{X: 5, Y: 5},
			Length: 3,
		},
	}
	b, _ := json.Marshal(req)
	return string(b)
}

func TestHandleIndex(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	server.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var info BattlesnakeInfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.APIVersion != "1" {
		t.Fatalf("apiversion=%q want=1", info.APIVersion)
	}
	if info.Author == "" || info.Color == "" {
		t.Fatalf("incomplete info: %+v", info)
	}
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", rec.Code)
	}
}

func TestHandleMove_ReturnsValidToken(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/move", strings.NewReader(moveRequestJSON()))
	server.handleMove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp MoveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	switch resp.Move {
	case "up", "down", "left", "right":
	default:
		t.Fatalf("move=%q", resp.Move)
	}
}

func TestHandleMove_BadJSON(t *testing.T) {
	server := newTestServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/move", strings.NewReader("{nope"))
	server.handleMove(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rec.Code)
	}
}

func TestHandleStartAndEnd(t *testing.T) {
	server := newTestServer()

	for _, path := range []string{"/start", "/end"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(moveRequestJSON()))
		if path == "/start" {
			server.handleStart(rec, req)
		} else {
			server.handleEnd(rec, req)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", path, rec.Code)
		}
	}
}

func TestHandleEnd_FlushesDecisionArchive(t *testing.T) {
	dir := t.TempDir()
	engine := agent.New(nil, rand.New(rand.NewSource(1)))
	server := NewServer(engine, slog.New(slog.NewTextHandler(io.Discard, nil)), newDecisionArchive(dir))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/move", strings.NewReader(moveRequestJSON()))
		server.handleMove(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("move %d: status=%d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	server.handleEnd(rec, httptest.NewRequest(http.MethodPost, "/end", strings.NewReader(moveRequestJSON())))
	if rec.Code != http.StatusOK {
		t.Fatalf("end: status=%d", rec.Code)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	if err != nil || len(files) != 1 {
		t.Fatalf("parquet files=%v err=%v want exactly one", files, err)
	}
	rows, err := store.ReadArchiveParquet(files[0])
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want=3", len(rows))
	}
	for _, row := range rows {
		if row.GameID != "g1" || row.Source != "server" {
			t.Fatalf("row meta: game=%q source=%q", row.GameID, row.Source)
		}
		if len(row.Snakes) != 1 || row.Snakes[0].ID != "me" {
			t.Fatalf("row snakes: %+v", row.Snakes)
		}
		if m := row.Snakes[0].Move; m < 0 || m > 3 {
			t.Fatalf("move=%d outside the four directions", m)
		}
		if row.Snakes[0].Reason == "" {
			t.Fatal("reason should carry the shout")
		}
	}

	// A second /end for the same game must not produce another batch.
	rec = httptest.NewRecorder()
	server.handleEnd(rec, httptest.NewRequest(http.MethodPost, "/end", strings.NewReader(moveRequestJSON())))
	files, _ = filepath.Glob(filepath.Join(dir, "*.parquet"))
	if len(files) != 1 {
		t.Fatalf("parquet files after repeat end=%v", files)
	}
}

func TestHandleEnd_NoArchiveConfigured(t *testing.T) {
	server := newTestServer()
	rec := httptest.NewRecorder()
	server.handleEnd(rec, httptest.NewRequest(http.MethodPost, "/end", strings.NewReader(moveRequestJSON())))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestLookaheadWithinBudget(t *testing.T) {
	cases := []struct {
		enabled bool
		budget  time.Duration
		want    bool
	}{
		{true, 400 * time.Millisecond, true},
		{true, lookaheadMinBudget, true},
		{true, lookaheadMinBudget - time.Millisecond, false},
		{true, 0, false},
		{false, time.Second, false},
	}
	for _, c := range cases {
		if got := lookaheadWithinBudget(c.enabled, c.budget); got != c.want {
			t.Fatalf("enabled=%v budget=%v: got %v want %v", c.enabled, c.budget, got, c.want)
		}
	}
}

func TestConvertToGameState(t *testing.T) {
	var req GameRequest
	if err := json.Unmarshal([]byte(moveRequestJSON()), &req); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	state := convertToGameState(&req)

	if state.Width != 11 || state.Height != 11 || state.Turn != 12 {
		t.Fatalf("board mismatch: %+v", state)
	}
	if state.YouId != "me" {
		t.Fatalf("you=%q", state.YouId)
	}
	if len(state.Food) != 1 || state.Food[0].X != 5 || state.Food[0].Y != 7 {
		t.Fatalf("food=%v", state.Food)
	}
	you := state.You()
	if you == nil || you.Health != 40 || len(you.Body) != 3 {
		t.Fatalf("snake mismatch: %+v", you)
	}
	if you.Head().X != 5 || you.Head().Y != 5 {
		t.Fatalf("head=%v", you.Head())
	}
}
