package growth

import (
	"fmt"
	"strings"

	"github.com/Krimson/growth-monitory/internal/reftable"
)

// Sex of the child, as keyed in the reference tables.
type Sex string

const (
	Male   Sex = reftable.SexMale
	Female Sex = reftable.SexFemale
)

// ParseSex accepts the wire codes "M" and "F" in either case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return Male, nil
	case "F":
		return Female, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSex, s)
}

// Code returns the single-letter wire code.
func (s Sex) Code() string {
	if s == Female {
		return "F"
	}
	return "M"
}

// IndexKind identifies an anthropometric index.
type IndexKind string

const (
	WeightForAge            IndexKind = "wfa"
	HeightForAge            IndexKind = "hfa"
	WeightForHeight         IndexKind = "wfh"
	BMIForAge               IndexKind = "bfa"
	HeadCircumferenceForAge IndexKind = "hcfa"
)

// IndexKinds lists every supported index in display order.
var IndexKinds = []IndexKind{WeightForAge, HeightForAge, WeightForHeight, BMIForAge, HeadCircumferenceForAge}

var indexAliases = map[string]IndexKind{
	"wfa":                        WeightForAge,
	"waz":                        WeightForAge,
	"weight-for-age":             WeightForAge,
	"hfa":                        HeightForAge,
	"lhfa":                       HeightForAge,
	"haz":                        HeightForAge,
	"height-for-age":             HeightForAge,
	"wfh":                        WeightForHeight,
	"wfl":                        WeightForHeight,
	"whz":                        WeightForHeight,
	"weight-for-height":          WeightForHeight,
	"weight-for-length":          WeightForHeight,
	"bfa":                        BMIForAge,
	"baz":                        BMIForAge,
	"bmi-for-age":                BMIForAge,
	"hcfa":                       HeadCircumferenceForAge,
	"hcz":                        HeadCircumferenceForAge,
	"head-circumference-for-age": HeadCircumferenceForAge,
}

// ParseIndexKind resolves a measurement type code or long name.
func ParseIndexKind(s string) (IndexKind, error) {
	if k, ok := indexAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedIndexKind, s)
}

// Name is the long, human readable name of the index.
func (k IndexKind) Name() string {
	switch k {
	case WeightForAge:
		return "weight-for-age"
	case HeightForAge:
		return "height-for-age"
	case WeightForHeight:
		return "weight-for-height"
	case BMIForAge:
		return "bmi-for-age"
	case HeadCircumferenceForAge:
		return "head-circumference-for-age"
	}
	return string(k)
}

// Score is the WHO abbreviation of the z-score (WAZ, HAZ, ...).
func (k IndexKind) Score() string {
	switch k {
	case WeightForAge:
		return "WAZ"
	case HeightForAge:
		return "HAZ"
	case WeightForHeight:
		return "WHZ"
	case BMIForAge:
		return "BAZ"
	case HeadCircumferenceForAge:
		return "HCZ"
	}
	return ""
}

// Measurement is the raw input of one assessment. Absent fields are nil.
type Measurement struct {
	WeightKg            *float64
	HeightCm            *float64
	HeadCircumferenceCm *float64
	AgeMonths           *float64
	Sex                 Sex
}

// GrowthIndex is a computed standard deviation score.
type GrowthIndex struct {
	Value float64   `json:"value"`
	Kind  IndexKind `json:"index_kind"`
}

// Category is the nutritional status bucket.
type Category string

const (
	SevereUnderweight Category = "severe_underweight"
	Underweight       Category = "underweight"
	Normal            Category = "normal"
	RiskOverweight    Category = "risk_overweight"
	Overweight        Category = "overweight"
	Obese             Category = "obese"
	Unknown           Category = "unknown"
)

// Classification is the display form of a category.
type Classification struct {
	Status   string   `json:"status"`
	Color    string   `json:"color"`
	Category Category `json:"category"`
}

// Assessment is a computed index together with its classification.
type Assessment struct {
	Index          GrowthIndex
	Classification Classification
}

// Float returns a pointer to v. Handy for building measurements.
func Float(v float64) *float64 {
	return &v
}
