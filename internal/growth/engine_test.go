package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krimson/growth-monitory/internal/reftable"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	set, err := reftable.LoadEmbedded()
	require.NoError(t, err)
	return NewEngine(NewStandards(set))
}

func TestValidate(t *testing.T) {
	b := Bound{Min: 1.0, Max: 30.0}

	assert.False(t, Validate(nil, b))
	assert.True(t, Validate(Float(1.0), b))
	assert.True(t, Validate(Float(30.0), b))
	assert.True(t, Validate(Float(15), b))
	assert.False(t, Validate(Float(0.99), b))
	assert.False(t, Validate(Float(30.01), b))
}

func TestValidateMeasurement(t *testing.T) {
	std := NewStandards(nil)

	tests := []struct {
		name string
		m    Measurement
		kind IndexKind
		want error
	}{
		{"wfa ok", Measurement{WeightKg: Float(9.5), AgeMonths: Float(12), Sex: Male}, WeightForAge, nil},
		{"wfa missing weight", Measurement{AgeMonths: Float(12), Sex: Male}, WeightForAge, ErrInputMissing},
		{"wfa missing age", Measurement{WeightKg: Float(9.5), Sex: Male}, WeightForAge, ErrInputMissing},
		{"wfa heavy", Measurement{WeightKg: Float(31), AgeMonths: Float(12), Sex: Male}, WeightForAge, ErrInputOutOfBounds},
		{"hfa short", Measurement{HeightCm: Float(44.9), AgeMonths: Float(1), Sex: Female}, HeightForAge, ErrInputOutOfBounds},
		{"hcfa ok", Measurement{HeadCircumferenceCm: Float(46), AgeMonths: Float(12), Sex: Male}, HeadCircumferenceForAge, nil},
		{"wfh no age needed", Measurement{WeightKg: Float(9), HeightCm: Float(75), Sex: Male}, WeightForHeight, nil},
		{"wfh long", Measurement{WeightKg: Float(9), HeightCm: Float(111), Sex: Male}, WeightForHeight, ErrInputOutOfBounds},
		{"bfa missing height", Measurement{WeightKg: Float(9), AgeMonths: Float(12), Sex: Male}, BMIForAge, ErrInputMissing},
		{"unknown kind", Measurement{WeightKg: Float(9), AgeMonths: Float(12)}, IndexKind("xyz"), ErrUnsupportedIndexKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := std.ValidateMeasurement(tt.m, tt.kind)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		z    float64
		want Category
	}{
		{-3.5, SevereUnderweight},
		{-3, Underweight},
		{-2.0001, Underweight},
		{-2, Normal},
		{0, Normal},
		{1, Normal},
		{1.0001, RiskOverweight},
		{2, RiskOverweight},
		{2.5, Overweight},
		{3, Overweight},
		{3.0001, Obese},
	}
	for _, tt := range tests {
		z := tt.z
		assert.Equal(t, tt.want, Classify(&z).Category, "z=%v", tt.z)
	}
}

func TestClassify_Nil(t *testing.T) {
	got := Classify(nil)
	assert.Equal(t, Classification{Status: "Tidak dapat dinilai", Color: "#9e9e9e", Category: Unknown}, got)
}

func TestClassify_Labels(t *testing.T) {
	assert.Equal(t, "Gizi Buruk", Classify(Float(-4)).Status)
	assert.Equal(t, "#f57c00", Classify(Float(-2.5)).Color)
	assert.Equal(t, "Gizi Baik", Classify(Float(0)).Status)
	assert.Equal(t, "#fbc02d", Classify(Float(1.5)).Color)
	assert.Equal(t, "Obesitas", Classify(Float(4)).Status)
}

func TestEngine_AssessWeightForAge(t *testing.T) {
	e := newTestEngine(t)
	m := Measurement{WeightKg: Float(9.5), AgeMonths: Float(12), Sex: Male}

	got, err := e.Assess(m, WeightForAge)
	require.NoError(t, err)
	assert.InDelta(t, -0.14, got.Index.Value, 0.01)
	assert.Equal(t, WeightForAge, got.Index.Kind)
	assert.Equal(t, Normal, got.Classification.Category)
}

func TestEngine_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	m := Measurement{WeightKg: Float(7.3), AgeMonths: Float(8.4), Sex: Female}

	first, err := e.ComputeIndex(m, WeightForAge)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.ComputeIndex(m, WeightForAge)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_MedianScoresZero(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		kind IndexKind
		m    Measurement
	}{
		{HeightForAge, Measurement{HeightCm: Float(75.7488), AgeMonths: Float(12), Sex: Male}},
		{HeadCircumferenceForAge, Measurement{HeadCircumferenceCm: Float(44.8965), AgeMonths: Float(12), Sex: Female}},
		{WeightForHeight, Measurement{WeightKg: Float(9.6550), HeightCm: Float(75), Sex: Male}},
		{BMIForAge, Measurement{WeightKg: Float(16.7981 * 0.75 * 0.75), HeightCm: Float(75), AgeMonths: Float(12), Sex: Male}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := e.Assess(tt.m, tt.kind)
			require.NoError(t, err)
			assert.InDelta(t, 0, got.Index.Value, 1e-6)
			assert.Equal(t, Normal, got.Classification.Category)
		})
	}
}

func TestEngine_OutsideDomain(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.ComputeIndex(Measurement{WeightKg: Float(20), AgeMonths: Float(72), Sex: Male}, WeightForAge)
	assert.ErrorIs(t, err, ErrIndexNotComputable)

	_, err = e.ComputeIndex(Measurement{WeightKg: Float(9), AgeMonths: Float(12)}, WeightForAge)
	assert.ErrorIs(t, err, ErrIndexNotComputable)
}

func TestEngine_Unsupported(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Assess(Measurement{WeightKg: Float(9), AgeMonths: Float(12), Sex: Male}, IndexKind("acfa"))
	assert.ErrorIs(t, err, ErrUnsupportedIndexKind)
}

func TestParseIndexKind(t *testing.T) {
	for in, want := range map[string]IndexKind{
		"wfa": WeightForAge, "WAZ": WeightForAge, "lhfa": HeightForAge,
		"wfl": WeightForHeight, "bmi-for-age": BMIForAge, "hcz": HeadCircumferenceForAge,
	} {
		got, err := ParseIndexKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseIndexKind("acfa")
	assert.ErrorIs(t, err, ErrUnsupportedIndexKind)
}

func TestParseSex(t *testing.T) {
	s, err := ParseSex("f")
	require.NoError(t, err)
	assert.Equal(t, Female, s)
	assert.Equal(t, "F", s.Code())

	_, err = ParseSex("X")
	assert.ErrorIs(t, err, ErrInvalidSex)
}

func TestAgeHelpers(t *testing.T) {
	birth := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	measured := birth.AddDate(0, 0, 365)
	assert.InDelta(t, 365/30.4375, AgeInMonths(birth, measured), 1e-9)

	assert.Equal(t, "7 bulan", FormatAge(7.6))
	assert.Equal(t, "2 tahun", FormatAge(24))
	assert.Equal(t, "1 tahun 3 bulan", FormatAge(15.2))
}
