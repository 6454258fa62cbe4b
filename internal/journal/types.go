// Package journal keeps a per-child record of computed assessments. New
// assessments wait in a cache with a TTL until the caller decides to save
// them to the repository or discard them.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/Krimson/growth-monitory/pkg/models"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAlreadyDecided     = errors.New("assessment already decided")
	ErrChildIDRequired    = errors.New("child_id is required")
)

// Status of a journal entry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSaved     Status = "saved"
	StatusCancelled Status = "cancelled"
)

// Assessment is one journal entry.
type Assessment struct {
	ID             string                `json:"id"`
	ChildID        string                `json:"child_id"`
	Kind           string                `json:"measurement_type"`
	Inputs         models.Inputs         `json:"inputs"`
	ZScore         float64               `json:"z_score"`
	Classification models.Classification `json:"classification"`
	Status         Status                `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	DecidedAt      *time.Time            `json:"decided_at,omitempty"`
}

// CacheStore holds pending assessments.
type CacheStore interface {
	Set(ctx context.Context, a *Assessment) error
	Get(ctx context.Context, id string) (*Assessment, error)
	// Take removes and returns the entry in one step. Of several concurrent
	// callers at most one gets the assessment.
	Take(ctx context.Context, id string) (*Assessment, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Repository holds saved assessments.
type Repository interface {
	Save(ctx context.Context, a *Assessment) error
	Get(ctx context.Context, id string) (*Assessment, error)
	ListByChild(ctx context.Context, childID string, limit, offset int) ([]*Assessment, error)
	Ping(ctx context.Context) error
}

// Notifier is told about every new assessment.
type Notifier interface {
	NotifyAssessment(a *Assessment)
}

// Notifiers fans one assessment out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) NotifyAssessment(a *Assessment) {
	for _, n := range ns {
		n.NotifyAssessment(a)
	}
}
