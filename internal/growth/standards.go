package growth

import (
	"fmt"

	"github.com/Krimson/growth-monitory/internal/reftable"
)

// ReferenceTable is the lookup capability the engine needs from the growth
// standard tables.
type ReferenceTable interface {
	Lookup(index, sex string, x float64) (reftable.LMS, error)
}

// Bound is an inclusive physiological range.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate reports whether value is present and inside b.
func Validate(value *float64, b Bound) bool {
	if value == nil {
		return false
	}
	return *value >= b.Min && *value <= b.Max
}

// Bounds is the table of plausible measurement ranges.
type Bounds struct {
	Weight            Bound `json:"wfa"`
	Height            Bound `json:"hfa"`
	HeadCircumference Bound `json:"hcfa"`
	WFLWeight         Bound `json:"wfl_w"`
	WFLLength         Bound `json:"wfl_l"`
}

// DefaultBounds follow the WHO anthropometric plausibility limits.
func DefaultBounds() Bounds {
	return Bounds{
		Weight:            Bound{Min: 1.0, Max: 30.0},
		Height:            Bound{Min: 45.0, Max: 125.0},
		HeadCircumference: Bound{Min: 30.0, Max: 55.0},
		WFLWeight:         Bound{Min: 1.0, Max: 30.0},
		WFLLength:         Bound{Min: 45.0, Max: 110.0},
	}
}

// Thresholds are the z-score cut-offs between categories.
type Thresholds struct {
	Severe    float64 `json:"severe"`
	Under     float64 `json:"under"`
	NormalMax float64 `json:"normal_max"`
	RiskMax   float64 `json:"risk_max"`
	OverMax   float64 `json:"over_max"`
}

// DefaultThresholds are the Permenkes No. 2/2020 cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Severe: -3, Under: -2, NormalMax: 1, RiskMax: 2, OverMax: 3}
}

// Standards is the process-wide configuration of the engine. Build it once at
// startup and pass it by value; nothing mutates it afterwards.
type Standards struct {
	Tables     ReferenceTable
	Bounds     Bounds
	Thresholds Thresholds
}

// NewStandards returns Standards with the default bounds and thresholds.
func NewStandards(tables ReferenceTable) Standards {
	return Standards{
		Tables:     tables,
		Bounds:     DefaultBounds(),
		Thresholds: DefaultThresholds(),
	}
}

type check struct {
	field string
	value *float64
	bound Bound
}

func (s Standards) checks(m Measurement, kind IndexKind) ([]check, error) {
	switch kind {
	case WeightForAge:
		return []check{{"weight", m.WeightKg, s.Bounds.Weight}}, nil
	case HeightForAge:
		return []check{{"height", m.HeightCm, s.Bounds.Height}}, nil
	case WeightForHeight:
		return []check{
			{"weight", m.WeightKg, s.Bounds.WFLWeight},
			{"height", m.HeightCm, s.Bounds.WFLLength},
		}, nil
	case BMIForAge:
		return []check{
			{"weight", m.WeightKg, s.Bounds.Weight},
			{"height", m.HeightCm, s.Bounds.Height},
		}, nil
	case HeadCircumferenceForAge:
		return []check{{"head_circumference", m.HeadCircumferenceCm, s.Bounds.HeadCircumference}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedIndexKind, kind)
}

// ValidateMeasurement checks every field kind depends on against its bound.
// Age is not bounded here; it is limited by the reference table domain.
func (s Standards) ValidateMeasurement(m Measurement, kind IndexKind) error {
	checks, err := s.checks(m, kind)
	if err != nil {
		return err
	}
	for _, c := range checks {
		if c.value == nil {
			return fmt.Errorf("%w: %s is required for %s", ErrInputMissing, c.field, kind.Name())
		}
		if !Validate(c.value, c.bound) {
			return fmt.Errorf("%w: %s %g not in [%g, %g]", ErrInputOutOfBounds, c.field, *c.value, c.bound.Min, c.bound.Max)
		}
	}
	if kind != WeightForHeight && m.AgeMonths == nil {
		return fmt.Errorf("%w: age_months is required for %s", ErrInputMissing, kind.Name())
	}
	return nil
}
