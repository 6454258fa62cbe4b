package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/pkg/models"
)

func (s *GrowthService) GetAssessment(ctx context.Context, id string) (*journal.Assessment, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.Get(ctx, id)
}

// HandleDecision saves or discards a pending assessment.
func (s *GrowthService) HandleDecision(ctx context.Context, id string, decision models.DecisionRequest) (*models.DecisionResponse, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	s.logger.Info("processing decision", zap.String("assessment_id", id), zap.Bool("save", decision.Save))

	a, err := s.journal.Decide(ctx, id, decision.Save, decision.Notes)
	if err != nil {
		return nil, err
	}

	if !decision.Save {
		return &models.DecisionResponse{
			Status:  string(journal.StatusCancelled),
			Message: "Assessment was not saved and has been deleted",
			Data:    a,
		}, nil
	}
	return &models.DecisionResponse{
		Status:  string(journal.StatusSaved),
		Message: "Assessment successfully saved",
		Data:    a,
	}, nil
}

func (s *GrowthService) History(ctx context.Context, childID string, limit, offset int) ([]*journal.Assessment, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.History(ctx, childID, limit, offset)
}
