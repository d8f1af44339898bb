package fixtures

import "math"

// Income range covered by the dataset.
const (
	MinIncome = 0
	MaxIncome = 300000
)

// IncomeRow is one point of the income vs vote share curve. Shares are in
// percent and always sum to 100.
type IncomeRow struct {
	Income  float64 `json:"income" yaml:"income"`
	Jenny   float64 `json:"jenny" yaml:"jenny"`
	Matthew float64 `json:"matthew" yaml:"matthew"`
}

type breakpoint struct{ x, y float64 }

// Jenny is strong below 50k, Matthew wins 50k-150k and Jenny comes back above.
var shareBreakpoints = []breakpoint{
	{0, 0.70},
	{40000, 0.67},
	{50000, 0.48},
	{100000, 0.46},
	{150000, 0.40},
	{250000, 0.60},
	{300000, 0.65},
}

func trueShareJenny(income float64) float64 {
	first, last := shareBreakpoints[0], shareBreakpoints[len(shareBreakpoints)-1]
	if income <= first.x {
		return first.y
	}
	if income >= last.x {
		return last.y
	}
	for i := 0; i < len(shareBreakpoints)-1; i++ {
		p0, p1 := shareBreakpoints[i], shareBreakpoints[i+1]
		if income >= p0.x && income <= p1.x {
			t := (income - p0.x) / (p1.x - p0.x)
			return p0.y + t*(p1.y-p0.y)
		}
	}
	return 0.5
}

func incomeRow(income float64) IncomeRow {
	share := trueShareJenny(income) + 0.03*math.Sin(income/5000)
	share = math.Min(0.98, math.Max(0.02, share))
	return IncomeRow{
		Income:  income,
		Jenny:   share * 100,
		Matthew: (1 - share) * 100,
	}
}

// IncomeVotes builds the income dataset. Sampling is denser in the 50k-150k
// band; the band edges appear twice, exactly like the published chart data.
func IncomeVotes() []IncomeRow {
	rows := make([]IncomeRow, 0, 653)
	for inc := 0; inc <= 50000; inc += 500 {
		rows = append(rows, incomeRow(float64(inc)))
	}
	for inc := 50000; inc <= 150000; inc += 250 {
		rows = append(rows, incomeRow(float64(inc)))
	}
	for inc := 150000; inc <= 300000; inc += 1000 {
		rows = append(rows, incomeRow(float64(inc)))
	}
	return rows
}
