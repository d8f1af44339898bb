package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// PollingTable is the exportable form of the polling fixture.
type PollingTable struct {
	Years  []int                `json:"years" yaml:"years"`
	Values map[string][]float64 `json:"values" yaml:"values"`
}

// Bundle groups every dataset for export.
type Bundle struct {
	Polling   *PollingTable    `json:"polling,omitempty" yaml:"polling,omitempty"`
	Income    []IncomeRow      `json:"income,omitempty" yaml:"income,omitempty"`
	Districts []District       `json:"districts,omitempty" yaml:"districts,omitempty"`
	Live      []LiveStep       `json:"live,omitempty" yaml:"live,omitempty"`
	Reports   []DistrictReport `json:"reports,omitempty" yaml:"reports,omitempty"`
}

var datasetNames = map[string]func(*Bundle){
	"polling": func(b *Bundle) {
		values := make(map[string][]float64, len(PollingParties))
		for _, p := range PollingParties {
			values[p] = PollingValues(p)
		}
		b.Polling = &PollingTable{Years: append([]int(nil), PollingYears...), Values: values}
	},
	"income":    func(b *Bundle) { b.Income = IncomeVotes() },
	"districts": func(b *Bundle) { b.Districts = Districts() },
	"live":      func(b *Bundle) { b.Live = LiveSeries() },
	"reports":   func(b *Bundle) { b.Reports = DistrictReports() },
}

// DatasetNames lists the names accepted by Build, sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(datasetNames))
	for name := range datasetNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build assembles a bundle with the named datasets, or all of them when
// names is empty.
func Build(names ...string) (Bundle, error) {
	if len(names) == 0 {
		names = DatasetNames()
	}
	var b Bundle
	for _, name := range names {
		fill, ok := datasetNames[name]
		if !ok {
			return Bundle{}, fmt.Errorf("unknown dataset %q", name)
		}
		fill(&b)
	}
	return b, nil
}

// Write encodes the bundle as json or yaml.
func (b Bundle) Write(w io.Writer, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
