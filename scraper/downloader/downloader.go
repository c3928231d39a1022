// Package downloader fetches finished games from the public engine's
// per-game websocket event stream.
package downloader

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jj-bali/battlesnake-team-10/store"
)

// Config holds downloader configuration.
type Config struct {
	EngineURL      string // WebSocket URL template with one %s for the game ID
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// DefaultConfig returns the public engine endpoint with sane timeouts.
func DefaultConfig() Config {
	return Config{
		EngineURL:      "wss://engine.battlesnake.com/games/%s/events",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    30 * time.Second,
	}
}

// GameEvent is one message from the websocket stream.
type GameEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// GameInfo from the "game_info" event.
type GameInfo struct {
	Game    GameDetails `json:"game"`
	Ruleset RulesetInfo `json:"ruleset"`
}

type GameDetails struct {
	ID     string `json:"id"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
}

type RulesetInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// FrameData from "frame" events.
type FrameData struct {
	Turn    int32       `json:"turn"`
	Snakes  []SnakeData `json:"snakes"`
	Food    []Coord     `json:"food"`
	Hazards []Coord     `json:"hazards"`
}

type SnakeData struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Health int32   `json:"health"`
	Body   []Coord `json:"body"`
	Death  *Death  `json:"death,omitempty"`
}

type Coord struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type Death struct {
	Cause string `json:"cause"`
	Turn  int32  `json:"turn"`
}

// Result is one downloaded game converted to archive rows.
type Result struct {
	GameID  string
	Winner  string
	Ruleset string
	Rows    []store.ArchiveTurnRow
}

// DownloadGame connects to the game's event stream and converts every frame
// into an archive row.
func DownloadGame(config Config, gameID string) (Result, error) {
	url := fmt.Sprintf(config.EngineURL, gameID)

	dialer := websocket.Dialer{HandshakeTimeout: config.ConnectTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("connect %s: %w", url, err)
	}
	defer conn.Close()

	var info GameInfo
	var frames []FrameData

read:
	for {
		_ = conn.SetReadDeadline(time.Now().Add(config.ReadTimeout))

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			if len(frames) > 0 {
				// Partial stream; keep what we have.
				break
			}
			return Result{}, fmt.Errorf("read: %w", err)
		}

		var event GameEvent
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}

		switch event.Type {
		case "game_info":
			_ = json.Unmarshal(event.Data, &info)
		case "frame":
			var frame FrameData
			if err := json.Unmarshal(event.Data, &frame); err != nil {
				continue
			}
			frames = append(frames, frame)
		case "game_end":
			break read
		}
	}

	if len(frames) == 0 {
		return Result{}, fmt.Errorf("game %s: no frames", gameID)
	}

	rows := make([]store.ArchiveTurnRow, 0, len(frames))
	for _, f := range frames {
		rows = append(rows, frameToRow(gameID, info, f))
	}

	return Result{
		GameID:  gameID,
		Winner:  determineWinner(frames[len(frames)-1]),
		Ruleset: info.Ruleset.Name,
		Rows:    rows,
	}, nil
}

func frameToRow(gameID string, info GameInfo, f FrameData) store.ArchiveTurnRow {
	row := store.ArchiveTurnRow{
		GameID: gameID,
		Turn:   f.Turn,
		Width:  info.Game.Width,
		Height: info.Game.Height,
		Source: "scraper",
	}
	for _, c := range f.Food {
		row.FoodX = append(row.FoodX, c.X)
		row.FoodY = append(row.FoodY, c.Y)
	}
	for _, c := range f.Hazards {
		row.HazardX = append(row.HazardX, c.X)
		row.HazardY = append(row.HazardY, c.Y)
	}
	for _, s := range f.Snakes {
		as := store.ArchiveSnake{
			ID:     s.ID,
			Alive:  s.Death == nil,
			Health: s.Health,
			Move:   -1, // moves are not present in the event stream
		}
		for _, c := range s.Body {
			as.BodyX = append(as.BodyX, c.X)
			as.BodyY = append(as.BodyY, c.Y)
		}
		row.Snakes = append(row.Snakes, as)
	}
	return row
}

func determineWinner(last FrameData) string {
	winner := ""
	for _, s := range last.Snakes {
		if s.Death == nil {
			if winner != "" {
				return "" // more than one alive: no winner recorded
			}
			winner = s.ID
		}
	}
	return winner
}
