package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/dmaier/beerlog-backend/internal/app/service"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

// ScoreScheduler recomputes beer averages from their reviews on a cron
// schedule. Patch-time score updates are an approximation, so the stored
// averages can drift; this job squares them up.
type ScoreScheduler struct {
	cron          *cron.Cron
	reviewService service.ReviewService
	spec          string
}

func NewScoreScheduler(reviewService service.ReviewService, spec string) *ScoreScheduler {
	return &ScoreScheduler{
		cron:          cron.New(),
		reviewService: reviewService,
		spec:          spec,
	}
}

func (s *ScoreScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled score reconciliation", nil)

		updated, err := s.reviewService.ReconcileScores()
		if err != nil {
			logger.Error("Failed to reconcile beer scores from scheduler", err)
			return
		}

		logger.Info("Score reconciliation finished", map[string]interface{}{
			"beers_updated": updated,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for score reconciliation", err)
		return err
	}

	s.cron.Start()
	logger.Info("Score scheduler started successfully", map[string]interface{}{
		"cron": s.spec,
	})

	return nil
}

func (s *ScoreScheduler) Stop() {
	logger.Info("Stopping score scheduler...", nil)
	s.cron.Stop()
	logger.Info("Score scheduler stopped", nil)
}
