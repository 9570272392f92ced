package links

import (
	"context"
	"strconv"
	"strings"

	"github.com/igegov/cv-portfolio/internal/fetch"
	"github.com/igegov/cv-portfolio/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel checks when none is configured.
const DefaultConcurrency = 8

// Result is the outcome of checking one game link.
type Result struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	Error     string `json:"error,omitempty"`
	Valid     bool   `json:"valid"`
	PageTitle string `json:"page_title,omitempty"`
}

// Checker verifies game URLs under BaseURL, trying alternative slugs for broken ones.
type Checker struct {
	BaseURL     string
	Concurrency int
	FetchTitles bool
	Options     *fetch.Options
	Logger      *zap.Logger
}

// Check verifies every game of a collection. Results keep the order of games.
// Broken links are reported in the results; the error is non-nil only when ctx ends.
func (c *Checker) Check(ctx context.Context, games []types.Game) ([]Result, error) {
	limit := c.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(games))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, game := range games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkGame(ctx, i, game)
			logger.Debug("checked link",
				zap.String("title", game.Name),
				zap.String("url", results[i].URL),
				zap.Int("status", results[i].Status))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Checker) checkGame(ctx context.Context, index int, game types.Game) Result {
	base := BaseSlug(game.Name, game.URL)
	url := GameURL(c.BaseURL, base)
	res, err := fetch.Head(ctx, url, c.Options)

	if !res.OK() {
		for _, slug := range RetryCandidates(game.Name, base) {
			retryURL := GameURL(c.BaseURL, slug)
			retry, retryErr := fetch.Head(ctx, retryURL, c.Options)
			if retry.OK() {
				res, err, url = retry, retryErr, retryURL
				break
			}
			// Prefer any HTTP answer over a network failure when reporting.
			if res.StatusCode == 0 {
				res, err, url = retry, retryErr, retryURL
			}
		}
	}

	out := Result{
		Index:  index,
		Title:  game.Name,
		URL:    url,
		Status: res.StatusCode,
		Valid:  res.OK(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	if out.Valid && c.FetchTitles {
		if title, terr := fetch.Title(ctx, url, c.Options); terr == nil {
			out.PageTitle = title
		}
	}
	return out
}

// Summary counts valid and broken results.
type Summary struct {
	Total        int      `json:"total"`
	Valid        int      `json:"valid"`
	Broken       int      `json:"broken"`
	ValidPercent float64  `json:"valid_percent"`
	BrokenLines  []string `json:"broken_lines,omitempty"`
}

// Summarize builds a Summary of results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Valid {
			s.Valid++
			continue
		}
		s.Broken++
		s.BrokenLines = append(s.BrokenLines, r.Title+": "+r.URL+" ("+r.Reason()+")")
	}
	if s.Total > 0 {
		s.ValidPercent = float64(s.Valid) * 100 / float64(s.Total)
	}
	return s
}

// Reason describes why a result is broken: the HTTP status, or the request error.
func (r Result) Reason() string {
	if r.Status != 0 {
		return "HTTP " + strconv.Itoa(r.Status)
	}
	if r.Error != "" {
		return strings.TrimSpace(r.Error)
	}
	return "network"
}
