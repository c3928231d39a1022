// Package main crawls the public leaderboards, downloads new finished games
// over websocket, and archives them as parquet batches.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jj-bali/battlesnake-team-10/logging"
	"github.com/jj-bali/battlesnake-team-10/scraper/discovery"
	"github.com/jj-bali/battlesnake-team-10/scraper/downloader"
	"github.com/jj-bali/battlesnake-team-10/store"
)

func main() {
	outDir := flag.String("out-dir", getEnvOrDefault("OUT_DIR", "data/scraped"), "Directory to write batch .parquet files")
	logPath := flag.String("log-path", getEnvOrDefault("WRITTEN_LOG", "data/written_games.log"), "Append-only log of game IDs already written")
	flushGames := flag.Int("flush-games", getEnvIntOrDefault("FLUSH_GAMES", 200), "Flush when buffered games reaches this count")
	maxPlayers := flag.Int("max-players", getEnvIntOrDefault("MAX_PLAYERS", 50), "Maximum number of players to check per leaderboard")
	requestDelay := flag.Duration("delay", 500*time.Millisecond, "Delay between HTTP requests")
	flag.Parse()

	log := slog.New(logging.NewPrettyHandler(os.Stdout, slog.LevelInfo))

	written, err := store.OpenWrittenLog(*logPath)
	if err != nil {
		log.Error("open written log", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer written.Close()

	log.Info("starting scraper",
		slog.String("out_dir", *outDir),
		slog.String("written_log", *logPath),
		slog.Int("already_written", written.Count()),
		slog.Int("flush_games", *flushGames),
		slog.Int("max_players", *maxPlayers),
	)

	discConfig := discovery.DefaultConfig()
	discConfig.RequestDelay = *requestDelay
	discConfig.MaxPlayers = *maxPlayers

	discWorker := discovery.NewWorker(discConfig, log, written.SnapshotBoolMap())
	gameIDChan := make(chan string, 1000)

	go func() {
		defer close(gameIDChan)
		if err := discWorker.Discover(gameIDChan); err != nil {
			log.Warn("discovery error", slog.String("error", err.Error()))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	dlConfig := downloader.DefaultConfig()

	rowsBuf := make([]store.ArchiveTurnRow, 0, 1024)
	gamesBuf := make([]string, 0, *flushGames)
	var downloaded, failed int

	flush := func() {
		if len(rowsBuf) == 0 {
			return
		}
		outPath, err := store.WriteBatchParquetAtomic(*outDir, rowsBuf)
		if err != nil {
			log.Error("parquet flush failed", slog.Int("rows", len(rowsBuf)), slog.String("error", err.Error()))
			return
		}
		for _, id := range gamesBuf {
			if err := written.Add(id); err != nil {
				log.Warn("written log append failed", slog.String("game_id", id), slog.String("error", err.Error()))
			}
		}
		log.Info("parquet flush ok", slog.String("path", outPath), slog.Int("games", len(gamesBuf)), slog.Int("rows", len(rowsBuf)))
		rowsBuf = rowsBuf[:0]
		gamesBuf = gamesBuf[:0]
	}

loop:
	for {
		select {
		case <-sigChan:
			log.Info("interrupt, flushing")
			break loop
		case gameID, ok := <-gameIDChan:
			if !ok {
				break loop
			}
			if written.Contains(gameID) {
				continue
			}
			result, err := downloader.DownloadGame(dlConfig, gameID)
			if err != nil {
				failed++
				log.Warn("download failed", slog.String("game_id", gameID), slog.String("error", err.Error()))
				continue
			}
			downloaded++
			rowsBuf = append(rowsBuf, result.Rows...)
			gamesBuf = append(gamesBuf, gameID)
			log.Info("downloaded",
				slog.String("game_id", gameID),
				slog.Int("turns", len(result.Rows)),
				slog.String("winner", result.Winner),
			)
			if len(gamesBuf) >= *flushGames {
				flush()
			}
		}
	}

	flush()
	log.Info("scraper done", slog.Int("downloaded", downloaded), slog.Int("failed", failed))
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
