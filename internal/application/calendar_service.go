package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/scheduler"
)

// CalendarRepository exposes the day listing the calendar projection needs.
type CalendarRepository interface {
	// ListSessionsForDay returns sessions whose start falls within
	// [dayStart, dayEnd), optionally filtered to one location.
	ListSessionsForDay(ctx context.Context, dayStart, dayEnd time.Time, locationScope string) ([]SessionView, error)
}

// CalendarService produces the read-only day view of sessions.
type CalendarService struct {
	sessions CalendarRepository
	logger   *slog.Logger
}

// NewCalendarService constructs a calendar service.
func NewCalendarService(sessions CalendarRepository) *CalendarService {
	return NewCalendarServiceWithLogger(sessions, nil)
}

// NewCalendarServiceWithLogger constructs a calendar service with a specified logger.
func NewCalendarServiceWithLogger(sessions CalendarRepository, logger *slog.Logger) *CalendarService {
	return &CalendarService{sessions: sessions, logger: defaultLogger(logger)}
}

// ListDay returns the sessions starting on the given day, scoped to the
// principal's location for non-owners. Ordering is deterministic: start
// ascending, then status display priority, then id.
func (s *CalendarService) ListDay(ctx context.Context, principal Principal, day time.Time) ([]SessionView, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("calendar repository not configured")
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	views, err := s.sessions.ListSessionsForDay(ctx, dayStart, dayEnd, access.LocationScope(principal.Actor()))
	if err != nil {
		return nil, mapRepoError(err)
	}

	ordered := make([]SessionView, len(views))
	copy(ordered, views)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartAt.Equal(ordered[j].StartAt) {
			return ordered[i].StartAt.Before(ordered[j].StartAt)
		}
		ri := scheduler.StatusRank(string(ordered[i].Status))
		rj := scheduler.StatusRank(string(ordered[j].Status))
		if ri != rj {
			return ri < rj
		}
		return ordered[i].ID < ordered[j].ID
	})

	return ordered, nil
}
