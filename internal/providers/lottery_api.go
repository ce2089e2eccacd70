package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// DrawRecord is one past drawing as returned by the results API.
type DrawRecord struct {
	GameType    string
	Numbers     []int
	SpecialBall int
	DrawDate    time.Time
}

// Datasets per game on the open-data results API. Games without a dataset
// simply have no fetchable history.
var drawDatasets = map[string]string{
	"powerball":     "d6yy-54nr",
	"mega_millions": "5xaw-6ayf",
	"lotto_america": "tpit-sum3",
}

// LotteryAPIProvider pulls historical drawings from the public results
// API. Calls run through a circuit breaker so a flapping upstream cannot
// pile up timeouts.
type LotteryAPIProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewLotteryAPIProvider(baseURL, apiKey string, timeout time.Duration, failureThreshold int, logger *logrus.Logger) *LotteryAPIProvider {
	settings := gobreaker.Settings{
		Name:    "lottery-results-api",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &LotteryAPIProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// drawRow is the upstream wire format: winning numbers come as a single
// space-separated string.
type drawRow struct {
	DrawDate       string `json:"draw_date"`
	WinningNumbers string `json:"winning_numbers"`
	SpecialBall    string `json:"special_ball,omitempty"`
	Multiplier     string `json:"multiplier,omitempty"`
}

// FetchDraws returns up to limit recent drawings for the game, newest
// first. Games without a known dataset return an empty slice.
func (p *LotteryAPIProvider) FetchDraws(ctx context.Context, gameType string, limit int) ([]DrawRecord, error) {
	dataset, ok := drawDatasets[gameType]
	if !ok {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/%s.json?%s", p.baseURL, dataset, url.Values{
		"$order": {"draw_date DESC"},
		"$limit": {strconv.Itoa(limit)},
	}.Encode())

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s draws: %w", gameType, err)
	}

	rows := result.([]drawRow)
	records := make([]DrawRecord, 0, len(rows))
	for _, row := range rows {
		record, err := parseDrawRow(gameType, row)
		if err != nil {
			p.logger.Debugf("Skipping malformed draw row for %s: %v", gameType, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *LotteryAPIProvider) fetch(ctx context.Context, endpoint string) ([]drawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.apiKey != "" {
		req.Header.Set("X-App-Token", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results API returned status %d", resp.StatusCode)
	}

	var rows []drawRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return rows, nil
}

// parseDrawRow splits the space-separated winning numbers. Some datasets
// append the bonus ball as the final number instead of a separate field.
func parseDrawRow(gameType string, row drawRow) (DrawRecord, error) {
	drawDate, err := time.Parse("2006-01-02T15:04:05.000", row.DrawDate)
	if err != nil {
		drawDate, err = time.Parse("2006-01-02", row.DrawDate)
		if err != nil {
			return DrawRecord{}, fmt.Errorf("bad draw date %q", row.DrawDate)
		}
	}

	fields := strings.Fields(row.WinningNumbers)
	if len(fields) == 0 {
		return DrawRecord{}, fmt.Errorf("empty winning numbers")
	}

	numbers := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return DrawRecord{}, fmt.Errorf("bad number %q", f)
		}
		numbers = append(numbers, n)
	}

	special := 0
	if row.SpecialBall != "" {
		special, err = strconv.Atoi(row.SpecialBall)
		if err != nil {
			return DrawRecord{}, fmt.Errorf("bad special ball %q", row.SpecialBall)
		}
	} else if len(numbers) > 1 {
		special = numbers[len(numbers)-1]
		numbers = numbers[:len(numbers)-1]
	}

	return DrawRecord{
		GameType:    gameType,
		Numbers:     numbers,
		SpecialBall: special,
		DrawDate:    drawDate,
	}, nil
}
