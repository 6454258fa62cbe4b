package kpsp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrAgeBandNotFound     = errors.New("no KPSP questions available for this age")
	ErrAnswerCountMismatch = errors.New("number of answers doesn't match questions")
)

// Outcome is one of the three screening verdicts.
type Outcome struct {
	Result         string `json:"result"`
	Color          string `json:"color"`
	Recommendation string `json:"recommendation"`
}

var (
	OutcomeAppropriate = Outcome{
		Result:         "Perkembangan Sesuai Usia",
		Color:          "#4caf50",
		Recommendation: "Pertumbuhan dan perkembangan anak sesuai usia. Terus lakukan stimulasi.",
	}
	OutcomeDoubtful = Outcome{
		Result:         "Perkembangan Terduga Terlambat",
		Color:          "#ff9800",
		Recommendation: "Perlu stimulasi intensif dan pemantauan lebih lanjut.",
	}
	OutcomeDelayed = Outcome{
		Result:         "Perkembangan Terlambat",
		Color:          "#f44336",
		Recommendation: "Segera konsultasikan dengan dokter anak untuk evaluasi lebih lanjut.",
	}
)

// Result is a scored questionnaire.
type Result struct {
	AgeGroup       int      `json:"age_group"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Questions      []string `json:"questions"`
	Answers        []bool   `json:"answers"`
	Outcome
}

// Evaluator scores answers against a question bank. Read-only after
// construction.
type Evaluator struct {
	bank  Bank
	bands []int
}

func NewEvaluator(bank Bank) *Evaluator {
	bands := make([]int, 0, len(bank))
	for age := range bank {
		bands = append(bands, age)
	}
	sort.Ints(bands)
	return &Evaluator{bank: bank, bands: bands}
}

// Bands returns the band lower bounds in ascending order.
func (e *Evaluator) Bands() []int {
	return append([]int(nil), e.bands...)
}

// Questions returns the questions of band, or nil when band is not defined.
func (e *Evaluator) Questions(band int) []string {
	qs, ok := e.bank[band]
	if !ok {
		return nil
	}
	return append([]string(nil), qs...)
}

// Band picks the largest band threshold not above ageMonths.
func (e *Evaluator) Band(ageMonths float64) (int, error) {
	if math.IsNaN(ageMonths) {
		return 0, fmt.Errorf("%w: age %v", ErrAgeBandNotFound, ageMonths)
	}
	band, found := 0, false
	for _, b := range e.bands {
		if ageMonths >= float64(b) {
			band, found = b, true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: age %g months", ErrAgeBandNotFound, ageMonths)
	}
	return band, nil
}

// Evaluate counts the yes answers and grades them: at least 80% is
// appropriate, at least 60% is doubtful, anything less is delayed.
func (e *Evaluator) Evaluate(ageMonths float64, answers []bool) (Result, error) {
	band, err := e.Band(ageMonths)
	if err != nil {
		return Result{}, err
	}
	questions := e.bank[band]
	if len(answers) != len(questions) {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrAnswerCountMismatch, len(answers), len(questions))
	}

	score := 0
	for _, yes := range answers {
		if yes {
			score++
		}
	}

	return Result{
		AgeGroup:       band,
		Score:          score,
		TotalQuestions: len(questions),
		Questions:      append([]string(nil), questions...),
		Answers:        append([]bool(nil), answers...),
		Outcome:        grade(score, len(questions)),
	}, nil
}

func grade(score, n int) Outcome {
	s := float64(score)
	switch {
	case s >= float64(n)*0.8:
		return OutcomeAppropriate
	case s >= float64(n)*0.6:
		return OutcomeDoubtful
	default:
		return OutcomeDelayed
	}
}
