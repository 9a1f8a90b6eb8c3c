package healthcheck

import (
	"context"

	"github.com/mileusna/crontab"
	"gorm.io/gorm"

	"campuskit.io/school-api-gateway/app/infrastructure/cache"
	"campuskit.io/school-api-gateway/app/utils/logger"
)

type HealthcheckCrontabService struct {
	db           *gorm.DB
	cacheService cache.CacheService
}

func NewService(db *gorm.DB, cacheService cache.CacheService) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		db:           db,
		cacheService: cacheService,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.Check(ctx)
	// Check every 2 minutes instead of every minute
	ctab.AddJob("*/2 * * * *", func() {
		hs.Check(ctx)
	})
}

func (hs *HealthcheckCrontabService) Check(ctx context.Context) {
	if hs.db != nil {
		if sqlDB, err := hs.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			logger.GetLogger().Warn("healthcheck: database unreachable")
		}
	}
	if hs.cacheService != nil {
		if err := hs.cacheService.HealthCheck(ctx); err != nil {
			logger.GetLogger().Warnf("healthcheck: cache unreachable: %v", err)
		}
	}
}
