package models

import (
	"time"
)

// CalculateRequest is the body of POST /api/calculate-zscore.
type CalculateRequest struct {
	Weight            FlexFloat `json:"weight" swaggertype:"number" example:"9.5"`
	Height            FlexFloat `json:"height" swaggertype:"number" example:"75"`
	HeadCircumference FlexFloat `json:"head_circumference" swaggertype:"number" example:"46"`
	AgeMonths         FlexFloat `json:"age_months" swaggertype:"number" example:"12"`
	Gender            string    `json:"gender,omitempty" example:"M"`
	Type              string    `json:"type,omitempty" example:"wfa"`
	ChildID           string    `json:"child_id,omitempty"`
	BirthDate         string    `json:"birth_date,omitempty" example:"2024-01-15"`
	MeasurementDate   string    `json:"measurement_date,omitempty" example:"2025-01-15"`
}

// Classification mirrors growth.Classification on the wire.
type Classification struct {
	Status   string `json:"status"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// Inputs echoes the normalised request values.
type Inputs struct {
	Weight            *float64 `json:"weight"`
	Height            *float64 `json:"height"`
	HeadCircumference *float64 `json:"head_circumference"`
	AgeMonths         *float64 `json:"age_months"`
	AgeLabel          string   `json:"age_label,omitempty"`
	Gender            string   `json:"gender"`
}

type CalculateResponse struct {
	ZScore          float64        `json:"z_score"`
	Classification  Classification `json:"classification"`
	MeasurementType string         `json:"measurement_type"`
	Inputs          Inputs         `json:"inputs"`
	AssessmentID    string         `json:"assessment_id,omitempty"`
}

// KPSPRequest is the body of POST /api/kpsp-evaluate.
type KPSPRequest struct {
	AgeMonths FlexFloat `json:"age_months" swaggertype:"number" example:"12"`
	Answers   []bool    `json:"answers"`
}

type KPSPResponse struct {
	AgeGroup       int      `json:"age_group"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Result         string   `json:"result"`
	Color          string   `json:"color"`
	Recommendation string   `json:"recommendation"`
	Questions      []string `json:"questions"`
	Answers        []bool   `json:"answers"`
}

// QuestionBand is one age band of the KPSP questionnaire.
type QuestionBand struct {
	AgeMonths int      `json:"age_months"`
	Questions []string `json:"questions"`
}

type QuestionBankResponse struct {
	Bands []QuestionBand `json:"bands"`
}

// GrowthData is the demo series served by GET /api/growth-data.
type GrowthData struct {
	Labels  []string  `json:"labels"`
	Weight  []float64 `json:"weight"`
	Height  []float64 `json:"height"`
	ZScores []float64 `json:"z_scores"`
}

type Standards struct {
	WHO       string `json:"who"`
	Permenkes string `json:"permenkes"`
}

type InfoResponse struct {
	AppName          string    `json:"app_name"`
	Version          string    `json:"version"`
	Description      string    `json:"description"`
	Author           string    `json:"author"`
	Contact          string    `json:"contact"`
	BaseURL          string    `json:"base_url"`
	Standards        Standards `json:"standards"`
	SupportedIndices []string  `json:"supported_indices"`
	AgeRange         string    `json:"age_range"`
	Features         []string  `json:"features"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// DecisionRequest keeps or discards a pending assessment.
type DecisionRequest struct {
	Save  bool   `json:"save"`
	Notes string `json:"notes,omitempty"`
}

type DecisionResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
