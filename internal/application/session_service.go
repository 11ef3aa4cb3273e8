package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/arena-booking/internal/access"
	"github.com/example/arena-booking/internal/audit"
)

// auditEntitySession tags audit entries produced by session mutations.
const auditEntitySession = "session"

// SessionRepository captures the persistence interactions needed by the
// session lifecycle. Writes run the overlap check, the record mutation, and
// the audit append inside one storage transaction.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (SessionView, error)
	// GetSession resolves a session by id. A non-empty locationScope
	// restricts the lookup to that location; a scoped miss is reported as
	// not found.
	GetSession(ctx context.Context, id, locationScope string) (SessionView, error)
	UpdateSession(ctx context.Context, session Session, opts SessionWriteOptions) (SessionView, error)
	// DeleteSession writes the audit entry, then hard-deletes the record,
	// in that order within one transaction.
	DeleteSession(ctx context.Context, id string, entry audit.Entry) error
}

// SessionWriteOptions controls what a session write enforces alongside the
// record mutation.
type SessionWriteOptions struct {
	// CheckOverlap re-runs the booking conflict check against the stored
	// sessions, excluding the session being written.
	CheckOverlap bool
	// Audit, when set, is appended in the same transaction as the write.
	Audit *audit.Entry
}

// ResourceCatalog exposes resource lookup operations.
type ResourceCatalog interface {
	GetResource(ctx context.Context, id string) (Resource, error)
}

// GameCatalog exposes game lookup operations.
type GameCatalog interface {
	GetGame(ctx context.Context, id string) (Game, error)
}

// SessionService owns the booking lifecycle: creation, sparse updates,
// cancellation, completion, and owner-gated deletion.
type SessionService struct {
	sessions    SessionRepository
	resources   ResourceCatalog
	games       GameCatalog
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService wires dependencies for session operations.
func NewSessionService(sessions SessionRepository, resources ResourceCatalog, games GameCatalog, idGenerator func() string, now func() time.Time) *SessionService {
	return NewSessionServiceWithLogger(sessions, resources, games, idGenerator, now, nil)
}

// NewSessionServiceWithLogger constructs a session service with a specified logger.
func NewSessionServiceWithLogger(sessions SessionRepository, resources ResourceCatalog, games GameCatalog, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		sessions:    sessions,
		resources:   resources,
		games:       games,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// CreateSession validates access, the game's availability, and the booking
// interval before persisting a new session. Creation writes no audit entry;
// only later mutations are recorded.
func (s *SessionService) CreateSession(ctx context.Context, params CreateSessionParams) (view SessionView, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	principal := params.Principal
	input := params.Input

	logger := s.loggerWith(ctx, "CreateSession",
		"principal_id", principal.UserID,
		"resource_id", input.ResourceID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", view.ID).InfoContext(ctx, "session created")
	}()

	vErr := &ValidationError{}
	validateSessionInput(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var resource Resource
	resource, err = s.resources.GetResource(ctx, input.ResourceID)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if !access.CanAccessLocation(principal.Actor(), resource.LocationID) {
		err = ErrForbidden
		return
	}

	if err = s.ensureActiveGame(ctx, input.GameID); err != nil {
		return
	}

	status := input.Status
	if status == "" {
		status = StatusPlanned
	}

	now := s.now()
	session := Session{
		ID:           s.idGenerator(),
		LocationID:   resource.LocationID,
		ResourceID:   resource.ID,
		GameID:       input.GameID,
		StartAt:      input.StartAt,
		EndAt:        computeEndAt(input.StartAt, input.DurationMin),
		DurationMin:  input.DurationMin,
		Status:       status,
		Players:      input.Players,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		Comment:      input.Comment,
		CreatedBy:    principal.UserID,
		UpdatedBy:    principal.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	view, err = s.sessions.CreateSession(ctx, session)
	err = mapRepoError(err)
	return
}

// GetSession resolves a session visible to the principal. For non-owners a
// session in a foreign location is reported as not found.
func (s *SessionService) GetSession(ctx context.Context, principal Principal, sessionID string) (SessionView, error) {
	if s == nil || s.sessions == nil {
		return SessionView{}, fmt.Errorf("session repository not configured")
	}
	view, err := s.sessions.GetSession(ctx, sessionID, access.LocationScope(principal.Actor()))
	return view, mapRepoError(err)
}

// UpdateSession applies a sparse patch: only provided, changed fields are
// diffed and applied. The booking conflict check re-runs only when the
// resource, start, or duration was supplied. A non-empty diff produces one
// audit entry in the same transaction as the write.
func (s *SessionService) UpdateSession(ctx context.Context, params UpdateSessionParams) (view SessionView, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	principal := params.Principal
	patch := params.Patch

	logger := s.loggerWith(ctx, "UpdateSession",
		"principal_id", principal.UserID,
		"session_id", params.SessionID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session updated")
	}()

	var current SessionView
	current, err = s.sessions.GetSession(ctx, params.SessionID, access.LocationScope(principal.Actor()))
	if err != nil {
		err = mapRepoError(err)
		return
	}

	vErr := &ValidationError{}
	validateSessionPatch(patch, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	effectiveResourceID := current.ResourceID
	if patch.ResourceID != nil {
		effectiveResourceID = *patch.ResourceID
	}

	var resource Resource
	resource, err = s.resources.GetResource(ctx, effectiveResourceID)
	if err != nil {
		err = mapRepoError(err)
		return
	}
	if !access.CanAccessLocation(principal.Actor(), resource.LocationID) {
		err = ErrForbidden
		return
	}

	if patch.GameID != nil {
		if err = s.ensureActiveGame(ctx, *patch.GameID); err != nil {
			return
		}
	}

	newStart := current.StartAt
	if patch.StartAt != nil {
		newStart = *patch.StartAt
	}
	newDuration := current.DurationMin
	if patch.DurationMin != nil {
		newDuration = *patch.DurationMin
	}

	diff := audit.NewDiff()
	updated := current.Session

	if patch.ResourceID != nil {
		diff.String("resource_id", current.ResourceID, *patch.ResourceID)
		updated.ResourceID = *patch.ResourceID
	}
	// Location follows the resource; the move itself is captured by the
	// resource_id diff entry.
	updated.LocationID = resource.LocationID

	if patch.GameID != nil {
		diff.String("game_id", current.GameID, *patch.GameID)
		updated.GameID = *patch.GameID
	}
	if patch.StartAt != nil {
		diff.Time("start_at", current.StartAt, *patch.StartAt)
		updated.StartAt = *patch.StartAt
	}
	if patch.DurationMin != nil {
		diff.Int("duration_min", current.DurationMin, *patch.DurationMin)
		updated.DurationMin = *patch.DurationMin
	}
	if patch.Status != nil {
		diff.String("status", string(current.Status), string(*patch.Status))
		updated.Status = *patch.Status
	}
	if patch.Players != nil {
		diff.OptionalInt("players", current.Players, patch.Players)
		updated.Players = patch.Players
	}
	if patch.ContactName != nil {
		diff.OptionalString("contact_name", current.ContactName, patch.ContactName)
		updated.ContactName = patch.ContactName
	}
	if patch.ContactPhone != nil {
		diff.OptionalString("contact_phone", current.ContactPhone, patch.ContactPhone)
		updated.ContactPhone = patch.ContactPhone
	}
	if patch.Comment != nil {
		diff.OptionalString("comment", current.Comment, patch.Comment)
		updated.Comment = patch.Comment
	}

	updated.EndAt = computeEndAt(newStart, newDuration)
	updated.UpdatedBy = principal.UserID
	updated.UpdatedAt = s.now()

	opts := SessionWriteOptions{
		CheckOverlap: patch.ResourceID != nil || patch.StartAt != nil || patch.DurationMin != nil,
	}
	if !diff.Empty() {
		entry := audit.NewEntry(principal.UserID, auditEntitySession, current.ID, "update", diff.Changes())
		opts.Audit = &entry
	}

	view, err = s.sessions.UpdateSession(ctx, updated, opts)
	err = mapRepoError(err)
	return
}

// CancelSession moves a session to canceled with the supplied reason. A
// repeated cancel is accepted and logged again; each call appends its own
// audit entry and re-stamps canceled_at.
func (s *SessionService) CancelSession(ctx context.Context, principal Principal, sessionID, reason string) (view SessionView, err error) {
	if s == nil || s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CancelSession",
		"principal_id", principal.UserID,
		"session_id", sessionID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to cancel session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session canceled")
	}()

	reason = strings.TrimSpace(reason)
	if err = validateReason(reason); err != nil {
		return
	}

	var current SessionView
	current, err = s.sessions.GetSession(ctx, sessionID, access.LocationScope(principal.Actor()))
	if err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	updated := current.Session
	updated.Status = StatusCanceled
	updated.CanceledReason = &reason
	updated.CanceledAt = &now
	updated.UpdatedBy = principal.UserID
	updated.UpdatedAt = now

	entry := audit.NewEntry(principal.UserID, auditEntitySession, current.ID, "cancel", audit.Changes{"reason": reason})
	view, err = s.sessions.UpdateSession(ctx, updated, SessionWriteOptions{Audit: &entry})
	err = mapRepoError(err)
	return
}

// CompleteSession marks a session completed and stamps completed_at.
func (s *SessionService) CompleteSession(ctx context.Context, principal Principal, sessionID string) (view SessionView, err error) {
	if s == nil || s.sessions == nil {
		err = fmt.Errorf("session repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CompleteSession",
		"principal_id", principal.UserID,
		"session_id", sessionID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to complete session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session completed")
	}()

	var current SessionView
	current, err = s.sessions.GetSession(ctx, sessionID, access.LocationScope(principal.Actor()))
	if err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	updated := current.Session
	updated.Status = StatusCompleted
	updated.CompletedAt = &now
	updated.UpdatedBy = principal.UserID
	updated.UpdatedAt = now

	entry := audit.NewEntry(principal.UserID, auditEntitySession, current.ID, "complete", nil)
	view, err = s.sessions.UpdateSession(ctx, updated, SessionWriteOptions{Audit: &entry})
	err = mapRepoError(err)
	return
}

// DeleteSession hard-deletes a session. Only owners may delete; the audit
// entry is written before the record is removed so the trail keeps a
// reference to the deleted id.
func (s *SessionService) DeleteSession(ctx context.Context, principal Principal, sessionID, reason string) (err error) {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteSession",
		"principal_id", principal.UserID,
		"session_id", sessionID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session deleted")
	}()

	if err = access.RequireOwner(principal.Actor()); err != nil {
		err = ErrForbidden
		return
	}

	reason = strings.TrimSpace(reason)
	if err = validateReason(reason); err != nil {
		return
	}

	var current SessionView
	current, err = s.sessions.GetSession(ctx, sessionID, access.LocationScope(principal.Actor()))
	if err != nil {
		err = mapRepoError(err)
		return
	}

	entry := audit.NewEntry(principal.UserID, auditEntitySession, current.ID, "delete", audit.Changes{"reason": reason})
	err = mapRepoError(s.sessions.DeleteSession(ctx, current.ID, entry))
	return
}

func (s *SessionService) ensureActiveGame(ctx context.Context, gameID string) error {
	if s.games == nil {
		return nil
	}
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return mapRepoError(err)
	}
	if !game.IsActive {
		return ErrNotFound
	}
	return nil
}

// computeEndAt derives the session end from its start and duration.
func computeEndAt(startAt time.Time, durationMin int) time.Time {
	return startAt.Add(time.Duration(durationMin) * time.Minute)
}

func validateSessionInput(input SessionInput, vErr *ValidationError) {
	if strings.TrimSpace(input.ResourceID) == "" {
		vErr.add("resource_id", "resource is required")
	}
	if strings.TrimSpace(input.GameID) == "" {
		vErr.add("game_id", "game is required")
	}
	if input.StartAt.IsZero() {
		vErr.add("start_at", "start is required")
	}
	if input.DurationMin <= 0 {
		vErr.add("duration_min", "duration must be positive")
	}
	if input.Players != nil && *input.Players < 1 {
		vErr.add("players", "players must be at least 1")
	}
	if input.Status != "" && !input.Status.Valid() {
		vErr.add("status", "unknown status")
	}
}

func validateSessionPatch(patch SessionPatch, vErr *ValidationError) {
	if patch.ResourceID != nil && strings.TrimSpace(*patch.ResourceID) == "" {
		vErr.add("resource_id", "resource is required")
	}
	if patch.GameID != nil && strings.TrimSpace(*patch.GameID) == "" {
		vErr.add("game_id", "game is required")
	}
	if patch.StartAt != nil && patch.StartAt.IsZero() {
		vErr.add("start_at", "start is required")
	}
	if patch.DurationMin != nil && *patch.DurationMin <= 0 {
		vErr.add("duration_min", "duration must be positive")
	}
	if patch.Players != nil && *patch.Players < 1 {
		vErr.add("players", "players must be at least 1")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		vErr.add("status", "unknown status")
	}
}

func validateReason(reason string) error {
	if len([]rune(reason)) < 2 {
		vErr := &ValidationError{}
		vErr.add("reason", "reason must be at least 2 characters")
		return vErr
	}
	return nil
}
