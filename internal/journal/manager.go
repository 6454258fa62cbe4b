package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Manager coordinates the cache and the repository.
type Manager struct {
	cache      CacheStore
	repository Repository
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewManager wires a journal. notifier may be nil.
func NewManager(cache CacheStore, repository Repository, notifier Notifier, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cache:      cache,
		repository: repository,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Record stores a as a new pending assessment and notifies subscribers.
func (m *Manager) Record(ctx context.Context, a *Assessment) (*Assessment, error) {
	if a.ChildID == "" {
		return nil, ErrChildIDRequired
	}

	entry := *a
	entry.ID = uuid.New().String()
	entry.Status = StatusPending
	entry.CreatedAt = m.now().UTC()
	entry.DecidedAt = nil

	if err := m.cache.Set(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to cache assessment: %w", err)
	}

	m.logger.Info("assessment recorded",
		zap.String("assessment_id", entry.ID),
		zap.String("child_id", entry.ChildID),
		zap.String("type", entry.Kind),
		zap.Float64("z_score", entry.ZScore))

	if m.notifier != nil {
		m.notifier.NotifyAssessment(&entry)
	}
	return &entry, nil
}

// Get looks in the cache first, then in the repository.
func (m *Manager) Get(ctx context.Context, id string) (*Assessment, error) {
	a, err := m.cache.Get(ctx, id)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrAssessmentNotFound) {
		m.logger.Warn("cache lookup failed", zap.String("assessment_id", id), zap.Error(err))
	}
	return m.repository.Get(ctx, id)
}

// Decide saves a pending assessment to the repository or discards it. The
// cache entry is claimed with Take, so two concurrent decisions on the same
// id cannot both succeed.
func (m *Manager) Decide(ctx context.Context, id string, save bool, notes string) (*Assessment, error) {
	pending, err := m.cache.Take(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			if _, rerr := m.repository.Get(ctx, id); rerr == nil {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyDecided, id)
			}
		}
		return nil, err
	}

	a := *pending
	now := m.now().UTC()
	a.DecidedAt = &now
	if notes != "" {
		a.Notes = notes
	}

	if !save {
		a.Status = StatusCancelled
		m.logger.Info("assessment cancelled", zap.String("assessment_id", id))
		return &a, nil
	}

	a.Status = StatusSaved
	if err := m.repository.Save(ctx, &a); err != nil {
		if rerr := m.cache.Set(ctx, pending); rerr != nil {
			m.logger.Error("failed to restore pending assessment",
				zap.String("assessment_id", id), zap.Error(rerr))
		}
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	m.logger.Info("assessment saved", zap.String("assessment_id", id))
	return &a, nil
}

// History lists the saved assessments of a child, newest first.
func (m *Manager) History(ctx context.Context, childID string, limit, offset int) ([]*Assessment, error) {
	if childID == "" {
		return nil, ErrChildIDRequired
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return m.repository.ListByChild(ctx, childID, limit, offset)
}

// Check pings both backends and reports "ok" or the error per backend.
func (m *Manager) Check(ctx context.Context) map[string]string {
	checks := make(map[string]string, 2)
	checks["journal_cache"] = status(m.cache.Ping(ctx))
	checks["journal_repository"] = status(m.repository.Ping(ctx))
	return checks
}

func status(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
