package workers

import (
	"context"
	"time"

	"daycare_backend/internal/logger"
	"daycare_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenWorker purges refresh tokens past their expiry.
type TokenWorker struct {
	db        *gorm.DB
	tokenRepo repositories.RefreshTokenRepository
	interval  time.Duration
}

func NewTokenWorker(db *gorm.DB, tokenRepo repositories.RefreshTokenRepository) *TokenWorker {
	return &TokenWorker{
		db:        db,
		tokenRepo: tokenRepo,
		interval:  12 * time.Hour,
	}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *TokenWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token worker stopped")
			return
		case <-ticker.C:
			purged, err := w.tokenRepo.DeleteExpired(w.db)
			logger.WorkerLog("token", "delete_expired", err)
			if err == nil && purged > 0 {
				logger.Info("refresh tokens purged", "count", purged)
			}
		}
	}
}
