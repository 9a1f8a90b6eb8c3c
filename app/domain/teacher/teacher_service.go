package teacher

import (
	"context"
	"fmt"
	"time"

	"campuskit.io/school-api-gateway/app/domain/query"
	"campuskit.io/school-api-gateway/app/infrastructure/cache"
	"campuskit.io/school-api-gateway/app/utils/idgen"
	"campuskit.io/school-api-gateway/app/utils/logger"
)

const rosterSnapshotTTL = 10 * time.Minute

// TeacherService provides business logic for managing teachers and
// building roster snapshots for the realtime layer.
type TeacherService struct {
	repo        TeacherRepository
	sharedCache cache.CacheService
}

// NewTeacherService is the constructor for TeacherService.
func NewTeacherService(repo TeacherRepository, sharedCache cache.CacheService) *TeacherService {
	return &TeacherService{
		repo:        repo,
		sharedCache: sharedCache,
	}
}

func (s *TeacherService) createPublicID() (string, error) {
	return idgen.GenerateSecureID("tchr", 16)
}

// CreateTeacherWithPublicID creates a new teacher and assigns it a
// unique public ID before saving it to the repository.
func (s *TeacherService) CreateTeacherWithPublicID(ctx context.Context, t *Teacher) (*Teacher, error) {
	publicID, err := s.createPublicID()
	if err != nil {
		return nil, err
	}
	t.PublicID = publicID
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateRosterSnapshot(ctx, t.TenantID)
	return t, nil
}

// UpdateTeacher updates an existing teacher.
func (s *TeacherService) UpdateTeacher(ctx context.Context, t *Teacher) (*Teacher, error) {
	if t.ID == 0 {
		return nil, fmt.Errorf("cannot update teacher with an ID of 0")
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update teacher: %w", err)
	}
	s.invalidateRosterSnapshot(ctx, t.TenantID)
	return t, nil
}

// FindTeacherByPublicID returns a single teacher or nil when absent.
func (s *TeacherService) FindTeacherByPublicID(ctx context.Context, tenantID, publicID string) (*Teacher, error) {
	teachers, err := s.repo.FindByFilter(ctx, TeachersFilter{
		PublicID: &publicID,
		TenantID: &tenantID,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(teachers) == 0 {
		return nil, nil
	}
	return teachers[0], nil
}

// FindTeachers retrieves teachers by filter and pagination.
func (s *TeacherService) FindTeachers(ctx context.Context, filter TeachersFilter, pagination *query.Pagination) ([]*Teacher, error) {
	return s.repo.FindByFilter(ctx, filter, pagination)
}

// CountTeachers counts the teachers matching a given filter.
func (s *TeacherService) CountTeachers(ctx context.Context, filter TeachersFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// Roster returns the active teachers of a tenant, served from the
// shared cache when possible. A distributed lock keeps concurrent
// instances from rebuilding the same snapshot at once.
func (s *TeacherService) Roster(ctx context.Context, tenantID string) ([]*Teacher, error) {
	key := fmt.Sprintf(cache.TeacherRosterKeyPattern, tenantID)

	var cached []*Teacher
	if err := s.sharedCache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	mutex := s.sharedCache.NewMutex(fmt.Sprintf(cache.RosterLockKeyPattern, tenantID))
	if mutex != nil {
		if err := mutex.LockContext(ctx); err == nil {
			defer func() {
				if _, err := mutex.UnlockContext(ctx); err != nil {
					logger.GetLogger().Warnf("teacher roster: failed to release lock: %v", err)
				}
			}()
			// Another instance may have filled the key while we waited.
			if err := s.sharedCache.Get(ctx, key, &cached); err == nil {
				return cached, nil
			}
		}
	}

	active := true
	teachers, err := s.repo.FindByFilter(ctx, TeachersFilter{
		TenantID: &tenantID,
		IsActive: &active,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load teacher roster: %w", err)
	}

	if err := s.sharedCache.Set(ctx, key, teachers, rosterSnapshotTTL); err != nil {
		logger.GetLogger().Warnf("teacher roster: failed to cache snapshot: %v", err)
	}
	return teachers, nil
}

// RosterCache builds the lookup used to enrich realtime events.
func (s *TeacherService) RosterCache(ctx context.Context, tenantID string) (*RosterCache, error) {
	teachers, err := s.Roster(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return NewRosterCache(teachers), nil
}

func (s *TeacherService) invalidateRosterSnapshot(ctx context.Context, tenantID string) {
	key := fmt.Sprintf(cache.TeacherRosterKeyPattern, tenantID)
	if err := s.sharedCache.Unlink(ctx, key); err != nil {
		logger.GetLogger().Warnf("teacher roster: failed to invalidate snapshot: %v", err)
	}
}
