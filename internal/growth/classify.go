package growth

var (
	classUnknown           = Classification{Status: "Tidak dapat dinilai", Color: "#9e9e9e", Category: Unknown}
	classSevereUnderweight = Classification{Status: "Gizi Buruk", Color: "#d32f2f", Category: SevereUnderweight}
	classUnderweight       = Classification{Status: "Gizi Kurang", Color: "#f57c00", Category: Underweight}
	classNormal            = Classification{Status: "Gizi Baik", Color: "#388e3c", Category: Normal}
	classRiskOverweight    = Classification{Status: "Berisiko Gizi Lebih", Color: "#fbc02d", Category: RiskOverweight}
	classOverweight        = Classification{Status: "Gizi Lebih", Color: "#f57c00", Category: Overweight}
	classObese             = Classification{Status: "Obesitas", Color: "#d32f2f", Category: Obese}
)

// Classify buckets z. Ties go to the lower bucket except at Under, where
// z == Under is already normal.
func (t Thresholds) Classify(z *float64) Classification {
	if z == nil {
		return classUnknown
	}
	switch v := *z; {
	case v < t.Severe:
		return classSevereUnderweight
	case v < t.Under:
		return classUnderweight
	case v <= t.NormalMax:
		return classNormal
	case v <= t.RiskMax:
		return classRiskOverweight
	case v <= t.OverMax:
		return classOverweight
	default:
		return classObese
	}
}

// Classify buckets z using the default thresholds.
func Classify(z *float64) Classification {
	return DefaultThresholds().Classify(z)
}
