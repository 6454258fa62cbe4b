package growth

import (
	"fmt"
	"time"
)

// daysPerMonth is the mean Gregorian month length used by WHO Anthro.
const daysPerMonth = 30.4375

// AgeInMonths returns the age at measured in fractional months.
func AgeInMonths(birth, measured time.Time) float64 {
	days := measured.Sub(birth).Hours() / 24
	return days / daysPerMonth
}

// FormatAge renders months as "N tahun M bulan".
func FormatAge(months float64) string {
	years := int(months) / 12
	rest := int(months) % 12

	switch {
	case years == 0:
		return fmt.Sprintf("%d bulan", rest)
	case rest == 0:
		return fmt.Sprintf("%d tahun", years)
	default:
		return fmt.Sprintf("%d tahun %d bulan", years, rest)
	}
}
