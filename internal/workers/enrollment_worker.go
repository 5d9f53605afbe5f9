package workers

import (
	"context"
	"time"

	"daycare_backend/internal/logger"
	"daycare_backend/internal/repositories"

	"gorm.io/gorm"
)

// EnrollmentWorker expires enrollments whose paid period has ended.
type EnrollmentWorker struct {
	db       *gorm.DB
	planRepo repositories.PlanRepository
	interval time.Duration
}

func NewEnrollmentWorker(db *gorm.DB, planRepo repositories.PlanRepository) *EnrollmentWorker {
	return &EnrollmentWorker{
		db:       db,
		planRepo: planRepo,
		interval: 6 * time.Hour,
	}
}

func (w *EnrollmentWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *EnrollmentWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("enrollment worker stopped")
			return
		case <-ticker.C:
			expired, err := w.planRepo.ExpireEnded(w.db)
			logger.WorkerLog("enrollment", "expire_ended", err)
			if err == nil && expired > 0 {
				logger.Info("enrollments expired", "count", expired)
			}
		}
	}
}
