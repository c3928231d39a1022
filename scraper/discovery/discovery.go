// Package discovery crawls the public Battlesnake leaderboards for game IDs
// worth downloading.
package discovery

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Config holds discovery worker configuration.
type Config struct {
	LeaderboardURLs []string      // Leaderboard pages to scrape
	RequestDelay    time.Duration // Politeness delay between HTTP requests
	MaxPlayers      int           // Players to check per leaderboard (0 = unlimited)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LeaderboardURLs: []string{
			"https://play.battlesnake.com/leaderboard/standard",
			"https://play.battlesnake.com/leaderboard/standard-duels",
		},
		RequestDelay: 500 * time.Millisecond,
		MaxPlayers:   100,
	}
}

// Worker discovers game IDs from the Battlesnake leaderboards.
type Worker struct {
	config   Config
	log      *slog.Logger
	client   *http.Client
	knownIDs map[string]bool
	gameIDRe *regexp.Regexp
}

// NewWorker creates a discovery worker. existingIDs lists games already
// archived; they are never re-emitted.
func NewWorker(config Config, log *slog.Logger, existingIDs map[string]bool) *Worker {
	if existingIDs == nil {
		existingIDs = make(map[string]bool)
	}
	return &Worker{
		config:   config,
		log:      log,
		client:   &http.Client{Timeout: 30 * time.Second},
		knownIDs: existingIDs,
		gameIDRe: regexp.MustCompile(`/game/([a-f0-9-]+)`),
	}
}

// Discover crawls every configured leaderboard and sends new game IDs on
// the channel. The caller owns the channel's lifetime.
func (w *Worker) Discover(gameIDChan chan<- string) error {
	total := 0
	for _, leaderboardURL := range w.config.LeaderboardURLs {
		w.log.Info("scraping leaderboard", slog.String("url", leaderboardURL))

		statsURLs, err := w.getPlayerStatsPages(leaderboardURL)
		if err != nil {
			w.log.Warn("leaderboard crawl failed", slog.String("url", leaderboardURL), slog.String("error", err.Error()))
			continue
		}
		if w.config.MaxPlayers > 0 && len(statsURLs) > w.config.MaxPlayers {
			statsURLs = statsURLs[:w.config.MaxPlayers]
		}

		for _, statsURL := range statsURLs {
			time.Sleep(w.config.RequestDelay)
			ids, err := w.getGameIDs(statsURL)
			if err != nil {
				w.log.Warn("player crawl failed", slog.String("url", statsURL), slog.String("error", err.Error()))
				continue
			}
			for _, id := range ids {
				if w.knownIDs[id] {
					continue
				}
				w.knownIDs[id] = true
				gameIDChan <- id
				total++
			}
		}
	}
	w.log.Info("discovery finished", slog.Int("new_games", total))
	return nil
}

// getPlayerStatsPages extracts each ranked player's stats page URL from a
// leaderboard page.
func (w *Worker) getPlayerStatsPages(leaderboardURL string) ([]string, error) {
	doc, err := w.fetch(leaderboardURL)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seen := map[string]bool{}
	doc.Find("a[href*='/leaderboard/']").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || seen[href] {
			return
		}
		if !statsPageRe.MatchString(href) {
			return
		}
		seen[href] = true
		urls = append(urls, "https://play.battlesnake.com"+href)
	})
	return urls, nil
}

var statsPageRe = regexp.MustCompile(`^/leaderboard/[^/]+/[^/]+/stats$`)

// getGameIDs extracts completed game IDs from a player's stats page.
func (w *Worker) getGameIDs(statsURL string) ([]string, error) {
	doc, err := w.fetch(statsURL)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	seen := map[string]bool{}
	doc.Find("a[href*='/game/']").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		m := w.gameIDRe.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	})
	return ids, nil
}

func (w *Worker) fetch(url string) (*goquery.Document, error) {
	resp, err := w.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
