package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/pkg/models"
)

const dateLayout = "2006-01-02"

var (
	ErrAgeRequired       = errors.New("age is required")
	ErrInvalidDate       = errors.New("invalid date")
	ErrJournalDisabled   = errors.New("assessment journal is not configured")
	ErrWeightAgeRequired = fmt.Errorf("%w: weight and age are required", growth.ErrInputMissing)
)

// GrowthService is the application layer shared by the HTTP, gRPC and CLI
// front ends.
type GrowthService struct {
	engine  *growth.Engine
	kpsp    *kpsp.Evaluator
	journal *journal.Manager
	logger  *zap.Logger
	now     func() time.Time
}

// NewGrowthService wires the service. tracker may be nil, in which case
// child_id is ignored and the journal operations return ErrJournalDisabled.
func NewGrowthService(engine *growth.Engine, evaluator *kpsp.Evaluator, tracker *journal.Manager, logger *zap.Logger) *GrowthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrowthService{
		engine:  engine,
		kpsp:    evaluator,
		journal: tracker,
		logger:  logger,
		now:     time.Now,
	}
}

// CalculateZScore validates the request, scores it and, when child_id is
// set, records the result in the journal.
func (s *GrowthService) CalculateZScore(ctx context.Context, req models.CalculateRequest) (*models.CalculateResponse, error) {
	weight := req.Weight.Ptr()
	height := req.Height.Ptr()
	head := req.HeadCircumference.Ptr()
	age := req.AgeMonths.Ptr()

	if age == nil && req.BirthDate != "" {
		derived, err := s.ageFromDates(req.BirthDate, req.MeasurementDate)
		if err != nil {
			return nil, err
		}
		age = &derived
	}

	if weight == nil || age == nil {
		return nil, ErrWeightAgeRequired
	}

	gender := strings.ToUpper(strings.TrimSpace(req.Gender))
	if gender == "" {
		gender = "M"
	}
	sex, err := growth.ParseSex(gender)
	if err != nil {
		return nil, err
	}

	typ := req.Type
	if strings.TrimSpace(typ) == "" {
		typ = string(growth.WeightForAge)
	}
	kind, err := growth.ParseIndexKind(typ)
	if err != nil {
		return nil, err
	}

	m := growth.Measurement{
		WeightKg:            weight,
		HeightCm:            height,
		HeadCircumferenceCm: head,
		AgeMonths:           age,
		Sex:                 sex,
	}
	assessment, err := s.engine.Assess(m, kind)
	if err != nil {
		return nil, err
	}

	resp := &models.CalculateResponse{
		ZScore:          round2(assessment.Index.Value),
		Classification:  toWire(assessment.Classification),
		MeasurementType: string(kind),
		Inputs: models.Inputs{
			Weight:            weight,
			Height:            height,
			HeadCircumference: head,
			AgeMonths:         age,
			AgeLabel:          growth.FormatAge(*age),
			Gender:            sex.Code(),
		},
	}

	if req.ChildID != "" && s.journal != nil {
		entry, err := s.journal.Record(ctx, &journal.Assessment{
			ChildID:        req.ChildID,
			Kind:           resp.MeasurementType,
			Inputs:         resp.Inputs,
			ZScore:         resp.ZScore,
			Classification: resp.Classification,
		})
		if err != nil {
			s.logger.Warn("failed to record assessment", zap.String("child_id", req.ChildID), zap.Error(err))
		} else {
			resp.AssessmentID = entry.ID
		}
	}

	s.logger.Debug("z-score calculated",
		zap.String("type", resp.MeasurementType),
		zap.String("gender", resp.Inputs.Gender),
		zap.Float64("z_score", resp.ZScore),
		zap.String("category", resp.Classification.Category))
	return resp, nil
}

func (s *GrowthService) ageFromDates(birth, measured string) (float64, error) {
	b, err := time.Parse(dateLayout, birth)
	if err != nil {
		return 0, fmt.Errorf("%w: birth_date %q: want YYYY-MM-DD", ErrInvalidDate, birth)
	}
	at := s.now()
	if measured != "" {
		at, err = time.Parse(dateLayout, measured)
		if err != nil {
			return 0, fmt.Errorf("%w: measurement_date %q: want YYYY-MM-DD", ErrInvalidDate, measured)
		}
	}
	if at.Before(b) {
		return 0, fmt.Errorf("%w: measurement_date before birth_date", ErrInvalidDate)
	}
	return round2(growth.AgeInMonths(b, at)), nil
}

// EvaluateKPSP scores a KPSP questionnaire.
func (s *GrowthService) EvaluateKPSP(ctx context.Context, req models.KPSPRequest) (*models.KPSPResponse, error) {
	age := req.AgeMonths.Ptr()
	if age == nil {
		return nil, ErrAgeRequired
	}

	res, err := s.kpsp.Evaluate(*age, req.Answers)
	if err != nil {
		return nil, err
	}

	return &models.KPSPResponse{
		AgeGroup:       res.AgeGroup,
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		Result:         res.Result,
		Color:          res.Color,
		Recommendation: res.Recommendation,
		Questions:      res.Questions,
		Answers:        res.Answers,
	}, nil
}

// KPSPQuestions returns the whole question bank ordered by age band.
func (s *GrowthService) KPSPQuestions() models.QuestionBankResponse {
	bands := s.kpsp.Bands()
	out := models.QuestionBankResponse{Bands: make([]models.QuestionBand, 0, len(bands))}
	for _, b := range bands {
		out.Bands = append(out.Bands, models.QuestionBand{AgeMonths: b, Questions: s.kpsp.Questions(b)})
	}
	return out
}

func toWire(c growth.Classification) models.Classification {
	return models.Classification{Status: c.Status, Color: c.Color, Category: string(c.Category)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
