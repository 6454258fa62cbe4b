package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/internal/reftable"
	"github.com/Krimson/growth-monitory/pkg/models"
)

func newTestService(t *testing.T, withJournal bool) *GrowthService {
	t.Helper()
	tables, err := reftable.LoadEmbedded()
	require.NoError(t, err)

	var tracker *journal.Manager
	if withJournal {
		tracker = journal.NewManager(journal.NewMemoryStore(time.Hour), journal.NewMemoryRepository(), nil, zap.NewNop())
	}
	return NewGrowthService(
		growth.NewEngine(growth.NewStandards(tables)),
		kpsp.NewEvaluator(kpsp.DefaultBank()),
		tracker,
		zap.NewNop(),
	)
}

func TestCalculateZScore(t *testing.T) {
	svc := newTestService(t, false)

	resp, err := svc.CalculateZScore(context.Background(), models.CalculateRequest{
		Weight:    models.Float(9.5),
		AgeMonths: models.Float(12),
		Gender:    "m",
	})
	require.NoError(t, err)
	assert.Equal(t, -0.14, resp.ZScore)
	assert.Equal(t, "normal", resp.Classification.Category)
	assert.Equal(t, "Gizi Baik", resp.Classification.Status)
	assert.Equal(t, "wfa", resp.MeasurementType)
	assert.Equal(t, "M", resp.Inputs.Gender)
	assert.Equal(t, "1 tahun", resp.Inputs.AgeLabel)
	assert.Nil(t, resp.Inputs.Height)
	assert.Empty(t, resp.AssessmentID)
}

func TestCalculateZScore_Errors(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CalculateRequest
		want error
	}{
		{"missing weight", models.CalculateRequest{AgeMonths: models.Float(12)}, growth.ErrInputMissing},
		{"missing age", models.CalculateRequest{Weight: models.Float(9.5)}, growth.ErrInputMissing},
		{"bad gender", models.CalculateRequest{Weight: models.Float(9.5), AgeMonths: models.Float(12), Gender: "X"}, growth.ErrInvalidSex},
		{"bad type", models.CalculateRequest{Weight: models.Float(9.5), AgeMonths: models.Float(12), Type: "acfa"}, growth.ErrUnsupportedIndexKind},
		{"hfa without height", models.CalculateRequest{Weight: models.Float(9.5), AgeMonths: models.Float(12), Type: "hfa"}, growth.ErrInputMissing},
		{"heavy", models.CalculateRequest{Weight: models.Float(45), AgeMonths: models.Float(12)}, growth.ErrInputOutOfBounds},
		{"too old", models.CalculateRequest{Weight: models.Float(20), AgeMonths: models.Float(72)}, growth.ErrIndexNotComputable},
		{"bad birth date", models.CalculateRequest{Weight: models.Float(9.5), BirthDate: "15/01/2024"}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CalculateZScore(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCalculateZScore_AgeFromDates(t *testing.T) {
	svc := newTestService(t, false)

	resp, err := svc.CalculateZScore(context.Background(), models.CalculateRequest{
		Weight:          models.Float(9.5),
		BirthDate:       "2024-01-01",
		MeasurementDate: "2024-12-31",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Inputs.AgeMonths)
	assert.InDelta(t, 365/30.4375, *resp.Inputs.AgeMonths, 0.01)
	assert.Equal(t, "11 bulan", resp.Inputs.AgeLabel)
}

func TestCalculateZScore_RecordsJournal(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()

	resp, err := svc.CalculateZScore(ctx, models.CalculateRequest{
		Weight:    models.Float(9.5),
		AgeMonths: models.Float(12),
		ChildID:   "child-7",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AssessmentID)

	a, err := svc.GetAssessment(ctx, resp.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, journal.StatusPending, a.Status)
	assert.Equal(t, resp.ZScore, a.ZScore)

	dec, err := svc.HandleDecision(ctx, resp.AssessmentID, models.DecisionRequest{Save: true})
	require.NoError(t, err)
	assert.Equal(t, "saved", dec.Status)

	history, err := svc.History(ctx, "child-7", 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, resp.AssessmentID, history[0].ID)
}

func TestJournalDisabled(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.GetAssessment(ctx, "x")
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = svc.HandleDecision(ctx, "x", models.DecisionRequest{})
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = svc.History(ctx, "c", 0, 0)
	assert.ErrorIs(t, err, ErrJournalDisabled)
}

func TestEvaluateKPSP(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	resp, err := svc.EvaluateKPSP(ctx, models.KPSPRequest{
		AgeMonths: models.Float(12),
		Answers:   []bool{true, true, true, true, true},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.AgeGroup)
	assert.Equal(t, 5, resp.Score)
	assert.Equal(t, "Perkembangan Sesuai Usia", resp.Result)
	assert.Len(t, resp.Questions, 5)

	resp, err = svc.EvaluateKPSP(ctx, models.KPSPRequest{
		AgeMonths: models.Float(12),
		Answers:   []bool{true, true, false, false, false},
	})
	require.NoError(t, err)
	assert.Equal(t, "Perkembangan Terlambat", resp.Result)
	assert.Equal(t, "#f44336", resp.Color)

	_, err = svc.EvaluateKPSP(ctx, models.KPSPRequest{Answers: []bool{true}})
	assert.ErrorIs(t, err, ErrAgeRequired)
	_, err = svc.EvaluateKPSP(ctx, models.KPSPRequest{AgeMonths: models.Float(1), Answers: []bool{true}})
	assert.ErrorIs(t, err, kpsp.ErrAgeBandNotFound)
	_, err = svc.EvaluateKPSP(ctx, models.KPSPRequest{AgeMonths: models.Float(12), Answers: []bool{true}})
	assert.ErrorIs(t, err, kpsp.ErrAnswerCountMismatch)
}

func TestInfoAndHealth(t *testing.T) {
	svc := newTestService(t, true)

	info := svc.Info()
	assert.Equal(t, []string{"WAZ", "HAZ", "WHZ", "BAZ", "HCZ"}, info.SupportedIndices)
	assert.Equal(t, "0-60 months", info.AgeRange)
	assert.Equal(t, "No. 2 Tahun 2020", info.Standards.Permenkes)
	assert.Equal(t, "Habib Arsy - FKIK Universitas Jambi", info.Author)
	assert.Equal(t, "+6285888858160", info.Contact)
	assert.Equal(t, "https://flask-peduligizi.onrender.com", info.BaseURL)

	qs := svc.KPSPQuestions()
	require.Len(t, qs.Bands, 8)
	assert.Equal(t, 3, qs.Bands[0].AgeMonths)
	assert.Equal(t, 24, qs.Bands[7].AgeMonths)

	health := svc.Health(context.Background())
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Checks["journal_cache"])
	assert.Equal(t, Version, health.Version)

	data := svc.GrowthData()
	assert.Len(t, data.Labels, 6)
	assert.Equal(t, []float64{-0.5, -0.3, 0.1, 0.4, 0.7, 0.9}, data.ZScores)
}
