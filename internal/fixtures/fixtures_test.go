package fixtures

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeded_RangeAndDeterminism(t *testing.T) {
	for i := 1; i <= 200; i++ {
		seed := float64(i) * 13.7
		v := Seeded(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("Seeded(%v) = %v, want [0,1)", seed, v)
		}
		if again := Seeded(seed); again != v {
			t.Fatalf("Seeded(%v) not stable: %v then %v", seed, v, again)
		}
	}
}

func TestSeeded_MatchesFormula(t *testing.T) {
	x := math.Sin(13.7) * 10000
	want := x - math.Floor(x)
	assert.Equal(t, want, Seeded(13.7))
}

func TestIncomeVotes_Shape(t *testing.T) {
	rows := IncomeVotes()
	require.Len(t, rows, 653)
	assert.Equal(t, 0.0, rows[0].Income)
	assert.InDelta(t, 70.0, rows[0].Jenny, 1e-9)
	assert.Equal(t, float64(MaxIncome), rows[len(rows)-1].Income)
	for _, r := range rows {
		assert.InDelta(t, 100.0, r.Jenny+r.Matthew, 1e-9)
		assert.GreaterOrEqual(t, r.Jenny, 2.0)
		assert.LessOrEqual(t, r.Jenny, 98.0)
	}
}

func TestIncomeVotes_MiddleBandFavorsMatthew(t *testing.T) {
	var sumJ, sumM float64
	for _, r := range IncomeVotes() {
		if r.Income > 100000 && r.Income < 150000 {
			sumJ += r.Jenny
			sumM += r.Matthew
		}
	}
	assert.Greater(t, sumM, sumJ)
}

func TestDistricts_Grid(t *testing.T) {
	ds := Districts()
	require.Len(t, ds, GridRows*GridCols)
	for i, d := range ds {
		assert.Equal(t, i+1, d.ID)
		assert.Equal(t, i/GridCols, d.Row)
		assert.Equal(t, i%GridCols, d.Col)
		assert.Equal(t, regionsByRow[d.Row], d.Region)
		if d.Margin >= 0 {
			assert.Equal(t, WinnerA, d.Winner)
		} else {
			assert.Equal(t, WinnerB, d.Winner)
		}
		assert.Greater(t, d.Voters, 0.0)
	}
	assert.Equal(t, ds, Districts(), "grid must be reproducible")
}

func TestLiveSeries_Endpoints(t *testing.T) {
	s := LiveSeries()
	require.Len(t, s, LiveSeconds+1)
	assert.Equal(t, 20.0, s[0].Pct)
	assert.Equal(t, 100.0, s[LiveSeconds].Pct)
	assert.Equal(t, PartyGreen, s[0].Leader())
	assert.Equal(t, PartyPurple, s[LiveSeconds].Leader())
}

func TestDistrictReports_Thresholds(t *testing.T) {
	reports := DistrictReports()
	districts := Districts()
	require.Len(t, reports, len(districts))
	for i, r := range reports {
		assert.GreaterOrEqual(t, r.ReportAt, 15.0)
		assert.Less(t, r.ReportAt, 90.0)
		want := PartyGreen
		if districts[i].Winner == WinnerA {
			want = PartyPurple
		}
		assert.Equal(t, want, r.TrueWinner)
	}
}

func TestPollingValues_ReturnsCopy(t *testing.T) {
	v := PollingValues(PollPartyTea)
	require.Len(t, v, len(PollingYears))
	v[0] = -1
	assert.Equal(t, 47.0, PollingValues(PollPartyTea)[0])
	assert.Nil(t, PollingValues("nobody"))
}

func TestBuild_UnknownDataset(t *testing.T) {
	_, err := Build("weather")
	assert.Error(t, err)
}

func TestBundle_WriteFormats(t *testing.T) {
	b, err := Build("polling", "live")
	require.NoError(t, err)
	assert.Nil(t, b.Income)

	var js bytes.Buffer
	require.NoError(t, b.Write(&js, "json"))
	var decoded Bundle
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, PollingYears, decoded.Polling.Years)

	var y bytes.Buffer
	require.NoError(t, b.Write(&y, "yaml"))
	assert.True(t, strings.Contains(y.String(), "years:"))

	assert.Error(t, b.Write(&y, "toml"))
}
