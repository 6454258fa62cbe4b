// Package reftable holds the WHO growth-standard reference tables and the
// LMS lookup used to turn a raw measurement into a z-score.
//
// A Set is built once at startup and never mutated afterwards, so it can be
// shared by any number of request goroutines without locking.
package reftable

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownTable = errors.New("unknown reference table")
	ErrSexNotFound  = errors.New("sex not present in reference table")
	ErrOutOfRange   = errors.New("value outside reference table domain")
)

// Sex keys used in the table files.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// LMS is the Box-Cox power (L), median (M) and coefficient of variation (S)
// describing the reference distribution at one point.
type LMS struct {
	L float64 `json:"l"`
	M float64 `json:"m"`
	S float64 `json:"s"`
}

// ZScore converts a raw measurement into a standard deviation score.
func (p LMS) ZScore(y float64) float64 {
	if p.L == 0 {
		return math.Log(y/p.M) / p.S
	}
	return (math.Pow(y/p.M, p.L) - 1) / (p.L * p.S)
}

// Row is one tabulated point; X is age in months or length in cm.
type Row struct {
	X float64
	LMS
}

// Table is the reference data for one index.
type Table struct {
	Index    string
	Variable string
	Unit     string
	rows     map[string][]Row
}

// Rows returns a copy of the rows tabulated for sex.
func (t *Table) Rows(sex string) []Row {
	rows := t.rows[sex]
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}

// Domain returns the first and last X tabulated for sex.
func (t *Table) Domain(sex string) (float64, float64, bool) {
	rows, ok := t.rows[sex]
	if !ok || len(rows) == 0 {
		return 0, 0, false
	}
	return rows[0].X, rows[len(rows)-1].X, true
}

// Lookup interpolates L, M and S linearly between the two rows bracketing x.
func (t *Table) Lookup(sex string, x float64) (LMS, error) {
	rows, ok := t.rows[sex]
	if !ok || len(rows) == 0 {
		return LMS{}, fmt.Errorf("%w: %s/%s", ErrSexNotFound, t.Index, sex)
	}
	if math.IsNaN(x) || x < rows[0].X || x > rows[len(rows)-1].X {
		return LMS{}, fmt.Errorf("%w: %s %s=%g not in [%g, %g]",
			ErrOutOfRange, t.Index, t.Variable, x, rows[0].X, rows[len(rows)-1].X)
	}

	// first row with X >= x
	i := sort.Search(len(rows), func(i int) bool { return rows[i].X >= x })
	if rows[i].X == x {
		return rows[i].LMS, nil
	}

	lo, hi := rows[i-1], rows[i]
	f := (x - lo.X) / (hi.X - lo.X)
	return LMS{
		L: lerp(lo.L, hi.L, f),
		M: lerp(lo.M, hi.M, f),
		S: lerp(lo.S, hi.S, f),
	}, nil
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

func newTable(index, variable, unit string) *Table {
	return &Table{
		Index:    index,
		Variable: variable,
		Unit:     unit,
		rows:     make(map[string][]Row),
	}
}

func (t *Table) setRows(sex string, rows []Row) error {
	if len(rows) < 2 {
		return fmt.Errorf("%s/%s: need at least 2 rows, got %d", t.Index, sex, len(rows))
	}
	for i, r := range rows {
		if r.M <= 0 || r.S <= 0 {
			return fmt.Errorf("%s/%s row %d: M and S must be positive", t.Index, sex, i)
		}
		if i > 0 && r.X <= rows[i-1].X {
			return fmt.Errorf("%s/%s row %d: X must be strictly increasing", t.Index, sex, i)
		}
	}
	t.rows[sex] = rows
	return nil
}

// Set is the collection of tables keyed by index code (wfa, hfa, ...).
type Set struct {
	tables map[string]*Table
}

// Table returns the table registered under index.
func (s *Set) Table(index string) (*Table, bool) {
	t, ok := s.tables[index]
	return t, ok
}

// Indices lists the loaded index codes in sorted order.
func (s *Set) Indices() []string {
	out := make([]string, 0, len(s.tables))
	for k := range s.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the interpolated LMS parameters for index, sex and x.
func (s *Set) Lookup(index, sex string, x float64) (LMS, error) {
	t, ok := s.tables[index]
	if !ok {
		return LMS{}, fmt.Errorf("%w: %s", ErrUnknownTable, index)
	}
	return t.Lookup(sex, x)
}
