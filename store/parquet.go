// Package store persists played games as zstd-compressed parquet batches.
//
// One row per (game, turn), with nested snake data so food and hazards are
// not duplicated across snakes. Rows are written by the self-play executor
// and the scraper, and are convenient to inspect with any parquet tooling.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/jj-bali/battlesnake-team-10/game"
)

// ArchiveTurnRow is a single (game, turn) snapshot plus the move each snake
// chose on that turn.
//
// Move is the action taken by each snake: 0=Up, 1=Down, 2=Left, 3=Right,
// or -1 when unknown (e.g. the final frame, or scraped opponents).
type ArchiveTurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Width  int32  `parquet:"width"`
	Height int32  `parquet:"height"`

	FoodX []int32 `parquet:"food_x"`
	FoodY []int32 `parquet:"food_y"`

	HazardX []int32 `parquet:"hazard_x"`
	HazardY []int32 `parquet:"hazard_y"`

	Snakes []ArchiveSnake `parquet:"snakes"`

	// Source records which tool produced the row ("selfplay", "scraper").
	Source string `parquet:"source,dict"`
}

type ArchiveSnake struct {
	ID     string `parquet:"id,dict"`
	Alive  bool   `parquet:"alive"`
	Health int32  `parquet:"health"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	Move int32 `parquet:"move"`
	// Reason is the engine's shout for its own snakes ("food", "endgame", ...),
	// empty for opponents.
	Reason string `parquet:"reason,dict"`
}

// RowFromState converts a turn snapshot into an archive row. moves and
// reasons may be nil or partial; absent snakes get Move=-1.
func RowFromState(gameID, source string, state *game.GameState, moves map[string]int, reasons map[string]string) ArchiveTurnRow {
	row := ArchiveTurnRow{
		GameID: gameID,
		Turn:   state.Turn,
		Width:  state.Width,
		Height: state.Height,
		Source: source,
	}
	for _, f := range state.Food {
		row.FoodX = append(row.FoodX, f.X)
		row.FoodY = append(row.FoodY, f.Y)
	}
	for _, h := range state.Hazards {
		row.HazardX = append(row.HazardX, h.X)
		row.HazardY = append(row.HazardY, h.Y)
	}
	for _, s := range state.Snakes {
		as := ArchiveSnake{
			ID:     s.Id,
			Alive:  s.Health > 0,
			Health: s.Health,
			Move:   -1,
		}
		for _, p := range s.Body {
			as.BodyX = append(as.BodyX, p.X)
			as.BodyY = append(as.BodyY, p.Y)
		}
		if m, ok := moves[s.Id]; ok {
			as.Move = int32(m)
		}
		if r, ok := reasons[s.Id]; ok {
			as.Reason = r
		}
		row.Snakes = append(row.Snakes, as)
	}
	return row
}

// WriteArchiveParquet writes rows to outPath via a temp file and atomic
// rename, so readers never observe a partial file.
func WriteArchiveParquet(outPath string, rows []ArchiveTurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "archive_turn_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadArchiveParquet loads every row from one archive file.
func ReadArchiveParquet(path string) ([]ArchiveTurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[ArchiveTurnRow](f)
	defer reader.Close()

	rows := make([]ArchiveTurnRow, 0, 1024)
	buf := make([]ArchiveTurnRow, 256)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			break
		}
	}
	return rows, nil
}
