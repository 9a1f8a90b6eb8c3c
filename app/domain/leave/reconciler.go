package leave

import (
	"time"

	"campuskit.io/school-api-gateway/app/domain/realtime"
	"campuskit.io/school-api-gateway/app/domain/teacher"
	"campuskit.io/school-api-gateway/app/utils/logger"
)

// Reconcile merges one change event into an in-memory, latest-first
// list of leave applications without re-querying storage. Records are
// matched by PublicID; the list never holds two entries with the same
// one. Any panic while processing is recovered and the previous list
// is returned unchanged, so a malformed event can never corrupt the
// consumer's state.
func Reconcile(prev []LeaveApplication, event Event, roster *teacher.RosterCache) (result []LeaveApplication) {
	if prev == nil {
		prev = []LeaveApplication{}
	}
	result = prev

	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().Errorf("leave reconciler: recovered from %v, keeping previous state", r)
			result = prev
		}
	}()

	switch event.EventType {
	case realtime.EventInsert:
		if event.New == nil {
			logger.GetLogger().Warn("leave reconciler: INSERT without new row")
			return prev
		}
		return prepend(prev, enrich(*event.New, roster))

	case realtime.EventUpdate:
		if event.New == nil {
			logger.GetLogger().Warn("leave reconciler: UPDATE without new row")
			return prev
		}
		idx := indexOf(prev, event.New.PublicID)
		if idx < 0 {
			// The consumer may not have seen this row yet, e.g. after
			// a reconnect. Treat as insert.
			return prepend(prev, enrich(*event.New, roster))
		}
		next := make([]LeaveApplication, len(prev))
		copy(next, prev)
		next[idx] = mergeUpdate(prev[idx], *event.New, roster)
		return next

	case realtime.EventDelete:
		if event.Old == nil {
			logger.GetLogger().Warn("leave reconciler: DELETE without old row")
			return prev
		}
		next := make([]LeaveApplication, 0, len(prev))
		for _, app := range prev {
			if app.PublicID != event.Old.PublicID {
				next = append(next, app)
			}
		}
		return next

	default:
		logger.GetLogger().Warnf("leave reconciler: unknown event type %q", event.EventType)
		return prev
	}
}

// enrich fills the derived and denormalized fields of a fresh row.
func enrich(app LeaveApplication, roster *teacher.RosterCache) LeaveApplication {
	if app.TotalDays == 0 {
		app.TotalDays = InclusiveDays(app.StartDate, app.EndDate)
	}
	app.Teacher = roster.Lookup(app.TeacherID)
	if app.ReplacementTeacherID != "" {
		app.ReplacementTeacher = roster.Lookup(app.ReplacementTeacherID)
	} else {
		app.ReplacementTeacher = nil
	}
	return app
}

// mergeUpdate overlays the incoming row on the held one, recomputing a
// denormalized teacher field only when its id actually changed.
func mergeUpdate(existing, incoming LeaveApplication, roster *teacher.RosterCache) LeaveApplication {
	merged := incoming
	merged.ID = existing.ID
	if merged.TotalDays == 0 {
		merged.TotalDays = InclusiveDays(merged.StartDate, merged.EndDate)
	}

	if incoming.TeacherID == existing.TeacherID {
		merged.Teacher = existing.Teacher
	} else {
		merged.Teacher = roster.Lookup(incoming.TeacherID)
	}

	switch {
	case incoming.ReplacementTeacherID == "":
		merged.ReplacementTeacher = nil
	case incoming.ReplacementTeacherID == existing.ReplacementTeacherID:
		merged.ReplacementTeacher = existing.ReplacementTeacher
	default:
		merged.ReplacementTeacher = roster.Lookup(incoming.ReplacementTeacherID)
	}
	return merged
}

// InclusiveDays counts the calendar days covered by [start, end].
// Returns 0 when either bound is missing or the range is inverted.
func InclusiveDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func indexOf(apps []LeaveApplication, publicID string) int {
	for i := range apps {
		if apps[i].PublicID == publicID {
			return i
		}
	}
	return -1
}

func prepend(apps []LeaveApplication, app LeaveApplication) []LeaveApplication {
	next := make([]LeaveApplication, 0, len(apps)+1)
	next = append(next, app)
	return append(next, apps...)
}
