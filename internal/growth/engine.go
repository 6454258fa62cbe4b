package growth

import (
	"fmt"
	"math"
)

// Engine computes and classifies growth indices against Standards.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	std Standards
}

func NewEngine(std Standards) *Engine {
	return &Engine{std: std}
}

// Standards returns the configuration the engine was built with.
func (e *Engine) Standards() Standards {
	return e.std
}

// ComputeIndex looks up the LMS parameters for the measurement and returns
// its z-score. The measurement must already have passed ValidateMeasurement.
func (e *Engine) ComputeIndex(m Measurement, kind IndexKind) (GrowthIndex, error) {
	x, y, err := independentAndMeasured(m, kind)
	if err != nil {
		return GrowthIndex{}, err
	}

	if m.Sex != Male && m.Sex != Female {
		return GrowthIndex{}, fmt.Errorf("%w: %v", ErrIndexNotComputable, fmt.Errorf("%w: %q", ErrInvalidSex, m.Sex))
	}

	lms, err := e.std.Tables.Lookup(string(kind), string(m.Sex), x)
	if err != nil {
		return GrowthIndex{}, fmt.Errorf("%w: %v", ErrIndexNotComputable, err)
	}

	z := lms.ZScore(y)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return GrowthIndex{}, fmt.Errorf("%w: %s for %g", ErrIndexNotComputable, kind.Name(), y)
	}
	return GrowthIndex{Value: z, Kind: kind}, nil
}

// independentAndMeasured picks the table axis (age or length) and the value
// being scored for kind.
func independentAndMeasured(m Measurement, kind IndexKind) (float64, float64, error) {
	need := func(v *float64, field string) (float64, error) {
		if v == nil {
			return 0, fmt.Errorf("%w: %s is required for %s", ErrInputMissing, field, kind.Name())
		}
		return *v, nil
	}

	switch kind {
	case WeightForAge, HeightForAge, BMIForAge, HeadCircumferenceForAge:
		age, err := need(m.AgeMonths, "age_months")
		if err != nil {
			return 0, 0, err
		}
		var y float64
		switch kind {
		case WeightForAge:
			y, err = need(m.WeightKg, "weight")
		case HeightForAge:
			y, err = need(m.HeightCm, "height")
		case HeadCircumferenceForAge:
			y, err = need(m.HeadCircumferenceCm, "head_circumference")
		case BMIForAge:
			y, err = bmi(m)
		}
		return age, y, err

	case WeightForHeight:
		length, err := need(m.HeightCm, "height")
		if err != nil {
			return 0, 0, err
		}
		weight, err := need(m.WeightKg, "weight")
		return length, weight, err
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedIndexKind, kind)
}

// BMI returns weight / height² in kg/m².
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}

func bmi(m Measurement) (float64, error) {
	if m.WeightKg == nil || m.HeightCm == nil {
		return 0, fmt.Errorf("%w: weight and height are required for %s", ErrInputMissing, BMIForAge.Name())
	}
	if *m.HeightCm <= 0 {
		return 0, fmt.Errorf("%w: height must be positive", ErrInputOutOfBounds)
	}
	return BMI(*m.WeightKg, *m.HeightCm), nil
}

// Classify maps a z-score onto the nutritional status buckets.
func (e *Engine) Classify(z *float64) Classification {
	return e.std.Thresholds.Classify(z)
}

// Assess runs validation, index computation and classification in order.
func (e *Engine) Assess(m Measurement, kind IndexKind) (Assessment, error) {
	if err := e.std.ValidateMeasurement(m, kind); err != nil {
		return Assessment{}, err
	}
	idx, err := e.ComputeIndex(m, kind)
	if err != nil {
		return Assessment{}, err
	}
	return Assessment{Index: idx, Classification: e.Classify(&idx.Value)}, nil
}
