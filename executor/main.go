// Package main runs parallel self-play games of the heuristic engine and
// archives them as parquet batches, with a live terminal dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jj-bali/battlesnake-team-10/executor/selfplay"
	"github.com/jj-bali/battlesnake-team-10/store"
)

var totalMoves atomic.Int64
var totalGames atomic.Int64

type GameUpdate struct {
	WorkerID int
	Result   selfplay.GameResult
	Rows     int
}

type gameWriteRequest struct {
	rows []store.ArchiveTurnRow
}

type model struct {
	gamesPlayed int
	totalRows   int
	moves       int64
	startTime   time.Time
	recentGames []string
	updates     chan GameUpdate
	cancel      context.CancelFunc
}

func initialModel(updates chan GameUpdate, cancel context.CancelFunc) model {
	return model{
		startTime: time.Now(),
		updates:   updates,
		cancel:    cancel,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
	case TickMsg:
		m.moves = totalMoves.Load()
		return m, tickCmd()
	case GameUpdate:
		m.gamesPlayed++
		m.totalRows += msg.Rows
		logMsg := fmt.Sprintf("Worker %d: Winner %s, Steps %d, Rows %d", msg.WorkerID, msg.Result.WinnerId, msg.Result.Steps, msg.Rows)
		m.recentGames = append([]string{logMsg}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerSec := float64(m.gamesPlayed) / duration.Seconds()
	movesPerSec := float64(m.moves) / duration.Seconds()
	if duration.Seconds() < 1 {
		gamesPerSec = 0
		movesPerSec = 0
	}

	s := fmt.Sprintf("Games Played: %d\n", m.gamesPlayed)
	s += fmt.Sprintf("Rows Written: %d\n", m.totalRows)
	s += fmt.Sprintf("Total Moves:  %d\n", m.moves)
	s += fmt.Sprintf("Duration:     %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Games/Sec:    %.2f\n", gamesPerSec)
	s += fmt.Sprintf("Moves/Sec:    %.2f\n\n", movesPerSec)

	s += "Recent Games:\n"
	for _, g := range m.recentGames {
		s += g + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	outDir := flag.String("out-dir", "data/selfplay", "Output directory for archived parquet batches")
	workers := flag.Int("workers", 8, "Number of self-play workers")
	gamesPerFlush := flag.Int("games-per-flush", 50, "Number of games to buffer per parquet flush")
	maxGames := flag.Int64("max-games", 0, "If > 0, stop after this many games (across all workers)")
	noTUI := flag.Bool("no-tui", false, "Disable the dashboard and log to stderr instead")
	flag.Parse()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	if !*noTUI {
		// Keep stray log output away from the dashboard.
		f, err := os.OpenFile("selfplay.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	updates := make(chan GameUpdate, *workers)
	writeReqs := make(chan gameWriteRequest, (*workers)*4)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *gamesPerFlush, writeReqs)
		close(writerDone)
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerId int) {
			defer workerWG.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				rows, result := selfplay.PlayGame(ctx, workerId, false, func() {
					totalMoves.Add(1)
				})
				if len(rows) == 0 {
					continue
				}

				total := totalGames.Add(1)
				if *maxGames > 0 && total >= *maxGames {
					cancel()
				}

				writeReqs <- gameWriteRequest{rows: rows}

				// Avoid blocking shutdown if the UI stops consuming.
				select {
				case updates <- GameUpdate{WorkerID: workerId, Result: result, Rows: len(rows)}:
				default:
				}
			}
		}(i)
	}

	if *noTUI {
		runHeadless(ctx, updates)
	} else {
		p := tea.NewProgram(initialModel(updates, cancel), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Printf("dashboard error: %v", err)
		}
		cancel()
	}

	workerWG.Wait()
	close(writeReqs)
	<-writerDone
	log.Printf("Shutdown complete: final parquet flush done (games=%d)", totalGames.Load())
}

func runHeadless(ctx context.Context, updates <-chan GameUpdate) {
	startTime := time.Now()
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			log.Printf("Worker %d: Winner %s, Steps %d, Rows %d", update.WorkerID, update.Result.WinnerId, update.Result.Steps, update.Rows)
		case <-ticker.C:
			duration := time.Since(startTime)
			moves := totalMoves.Load()
			log.Printf("Stats: Games: %d, Moves/s: %.2f", totalGames.Load(), float64(moves)/duration.Seconds())
		}
	}
}

func parquetWriterLoop(outDir string, gamesPerFlush int, in <-chan gameWriteRequest) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	pendingRows := make([]store.ArchiveTurnRow, 0, 256*gamesPerFlush)
	pendingGames := 0

	flush := func() {
		if pendingGames == 0 || len(pendingRows) == 0 {
			return
		}
		outPath, err := store.WriteBatchParquetAtomic(outDir, pendingRows)
		if err != nil {
			log.Printf("Parquet flush failed (games=%d rows=%d): %v", pendingGames, len(pendingRows), err)
		} else {
			log.Printf("Parquet flush ok: %s (games=%d rows=%d)", outPath, pendingGames, len(pendingRows))
		}
		pendingRows = pendingRows[:0]
		pendingGames = 0
	}

	for req := range in {
		if len(req.rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, req.rows...)
		pendingGames++
		if pendingGames >= gamesPerFlush {
			flush()
		}
	}
	flush()
}
