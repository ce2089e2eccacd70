package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/models"
	"github.com/patternlab/lotto-engine/internal/providers"
	"github.com/patternlab/lotto-engine/pkg/database"
)

const fetchBatchSize = 100

// DrawFetcherService keeps the historical_draws table topped up from the
// results provider on a schedule, and prunes old rows daily.
type DrawFetcherService struct {
	db            *database.DB
	cache         *CacheService
	provider      *providers.LotteryAPIProvider
	logger        *logrus.Logger
	cron          *cron.Cron
	mu            sync.Mutex
	isRunning     bool
	fetchInterval time.Duration
	retention     time.Duration
}

func NewDrawFetcherService(
	db *database.DB,
	cache *CacheService,
	provider *providers.LotteryAPIProvider,
	logger *logrus.Logger,
	fetchInterval time.Duration,
	retentionDays int,
) *DrawFetcherService {
	return &DrawFetcherService{
		db:            db,
		cache:         cache,
		provider:      provider,
		logger:        logger,
		cron:          cron.New(),
		fetchInterval: fetchInterval,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start begins the scheduled draw fetching
func (s *DrawFetcherService) Start(runInitialFetch bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("draw fetcher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.fetchInterval.String())
	_, err := s.cron.AddFunc(schedule, s.fetchAllGames)
	if err != nil {
		return fmt.Errorf("failed to schedule draw fetcher: %w", err)
	}

	// Daily cleanup of drawings past retention
	_, err = s.cron.AddFunc("0 3 * * *", s.cleanupOldDraws)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if runInitialFetch {
		go s.fetchAllGames()
	}

	s.logger.Info("Draw fetcher service started")
	return nil
}

// Stop halts the scheduled draw fetching
func (s *DrawFetcherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	s.logger.Info("Draw fetcher service stopped")
}

func (s *DrawFetcherService) fetchAllGames() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, cfg := range engine.ListGameConfigs() {
		if err := s.fetchGame(ctx, cfg.ID); err != nil {
			s.logger.Errorf("Failed to fetch draws for %s: %v", cfg.ID, err)
		}
	}
}

func (s *DrawFetcherService) fetchGame(ctx context.Context, gameType string) error {
	records, err := s.provider.FetchDraws(ctx, gameType, fetchBatchSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([]models.HistoricalDraw, 0, len(records))
	for _, record := range records {
		row, err := models.NewHistoricalDraw(record.GameType, record.Numbers, record.SpecialBall, record.DrawDate)
		if err != nil {
			s.logger.Warnf("Skipping draw for %s: %v", gameType, err)
			continue
		}
		rows = append(rows, *row)
	}

	if err := models.UpsertDraws(s.db, rows); err != nil {
		return fmt.Errorf("failed to store draws: %w", err)
	}

	if err := s.cache.Delete(ctx, DrawHistoryCacheKey(gameType)); err != nil {
		s.logger.Warnf("Failed to invalidate draw cache for %s: %v", gameType, err)
	}

	s.logger.WithFields(logrus.Fields{
		"game_type": gameType,
		"fetched":   len(rows),
	}).Info("Draw history updated")
	return nil
}

func (s *DrawFetcherService) cleanupOldDraws() {
	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := models.DeleteDrawsBefore(s.db, cutoff)
	if err != nil {
		s.logger.Errorf("Failed to clean up old draws: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Infof("Removed %d draws older than %s", deleted, cutoff.Format("2006-01-02"))
	}
}
