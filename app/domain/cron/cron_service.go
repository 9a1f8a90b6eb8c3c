package cron

import (
	"context"

	"github.com/mileusna/crontab"

	"campuskit.io/school-api-gateway/app/domain/attendance"
	"campuskit.io/school-api-gateway/app/utils/logger"
	"campuskit.io/school-api-gateway/config/environment_variables"
)

// CronService owns the periodic work the caches never schedule for
// themselves: sweeping expired entries and reloading configuration.
type CronService struct {
	attendanceCache *attendance.AttendanceCache
}

func NewService(attendanceCache *attendance.AttendanceCache) *CronService {
	return &CronService{
		attendanceCache: attendanceCache,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	ctab.AddJob("*/5 * * * *", func() {
		cs.sweepCaches(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (cs *CronService) sweepCaches(ctx context.Context) {
	if cs == nil || cs.attendanceCache == nil {
		return
	}
	if cleaned := cs.attendanceCache.CleanupExpired(); cleaned > 0 {
		logger.GetLogger().Infof("cron service: removed %d expired cache entries", cleaned)
	}
}
