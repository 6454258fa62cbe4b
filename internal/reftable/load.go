package reftable

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

type tableFile struct {
	Index    string      `yaml:"index"`
	Variable string      `yaml:"variable"`
	Unit     string      `yaml:"unit"`
	Male     [][]float64 `yaml:"male"`
	Female   [][]float64 `yaml:"female"`
}

// LoadEmbedded loads the tables shipped with the binary.
func LoadEmbedded() (*Set, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads every *.yaml table in dir.
func LoadDir(dir string) (*Set, error) {
	return Load(os.DirFS(dir))
}

// Load reads every *.yaml file at the root of fsys into a Set.
func Load(fsys fs.FS) (*Set, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list reference tables: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no reference tables found")
	}

	set := &Set{tables: make(map[string]*Table, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		t, err := parseTable(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path.Base(name), err)
		}
		if _, dup := set.tables[t.Index]; dup {
			return nil, fmt.Errorf("duplicate reference table %q in %s", t.Index, name)
		}
		set.tables[t.Index] = t
	}
	return set, nil
}

func parseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Index == "" {
		return nil, fmt.Errorf("missing index")
	}

	t := newTable(f.Index, f.Variable, f.Unit)
	for sex, raw := range map[string][][]float64{SexMale: f.Male, SexFemale: f.Female} {
		rows, err := toRows(raw)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", f.Index, sex, err)
		}
		if err := t.setRows(sex, rows); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func toRows(raw [][]float64) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for i, r := range raw {
		if len(r) != 4 {
			return nil, fmt.Errorf("row %d: want [x, L, M, S], got %d values", i, len(r))
		}
		rows = append(rows, Row{X: r[0], LMS: LMS{L: r[1], M: r[2], S: r[3]}})
	}
	return rows, nil
}
