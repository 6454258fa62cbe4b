package service

import (
	"context"
	"time"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/pkg/models"
)

const (
	AppName        = "PeduliGiziBalita - Monitor Pertumbuhan Anak Profesional"
	AppDescription = "Aplikasi berbasis WHO Child Growth Standards untuk pemantauan antropometri anak 0-60 bulan"
	AppAuthor      = "Habib Arsy - FKIK Universitas Jambi"
	ContactWA      = "6285888858160"
	BaseURL        = "https://flask-peduligizi.onrender.com"
)

// Version is overridden at link time with -ldflags "-X ...service.Version=".
var Version = "3.3.0"

var features = []string{
	"WHO z-score calculation",
	"Permenkes 2020 classification",
	"KPSP screening",
	"Assessment journal with live updates",
	"gRPC API",
	"Growth charts data",
}

func (s *GrowthService) Info() models.InfoResponse {
	indices := make([]string, 0, len(growth.IndexKinds))
	for _, k := range growth.IndexKinds {
		indices = append(indices, k.Score())
	}
	return models.InfoResponse{
		AppName:     AppName,
		Version:     Version,
		Description: AppDescription,
		Author:      AppAuthor,
		Contact:     "+" + ContactWA,
		BaseURL:     BaseURL,
		Standards: models.Standards{
			WHO:       "Child Growth Standards 2006",
			Permenkes: "No. 2 Tahun 2020",
		},
		SupportedIndices: indices,
		AgeRange:         "0-60 months",
		Features:         append([]string(nil), features...),
	}
}

// GrowthData is the fixed demo series used by the chart widget.
func (s *GrowthService) GrowthData() models.GrowthData {
	return models.GrowthData{
		Labels:  []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		Weight:  []float64{3.2, 3.8, 4.5, 5.1, 5.8, 6.4},
		Height:  []float64{50, 52, 55, 58, 61, 64},
		ZScores: []float64{-0.5, -0.3, 0.1, 0.4, 0.7, 0.9},
	}
}

// Health reports "ok" when every dependency answers, "degraded" otherwise.
func (s *GrowthService) Health(ctx context.Context) models.HealthResponse {
	checks := map[string]string{"reference_tables": "ok"}
	if s.engine == nil || s.engine.Standards().Tables == nil {
		checks["reference_tables"] = "missing"
	}
	if s.journal != nil {
		for k, v := range s.journal.Check(ctx) {
			checks[k] = v
		}
	}

	status := "ok"
	for _, v := range checks {
		if v != "ok" {
			status = "degraded"
			break
		}
	}
	return models.HealthResponse{
		Status:    status,
		Version:   Version,
		Checks:    checks,
		Timestamp: s.now().UTC().Truncate(time.Second),
	}
}
