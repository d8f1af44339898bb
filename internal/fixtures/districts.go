package fixtures

import (
	"math"
	"strconv"
)

// Grid dimensions of the district map.
const (
	GridRows = 4
	GridCols = 8
)

// Winner codes used by the district grid.
const (
	WinnerA = "A"
	WinnerB = "B"
)

// District is one cell of the synthetic district map.
type District struct {
	ID     int     `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Row    int     `json:"row" yaml:"row"`
	Col    int     `json:"col" yaml:"col"`
	NormX  float64 `json:"normX" yaml:"normX"`
	NormY  float64 `json:"normY" yaml:"normY"`
	Margin float64 `json:"margin" yaml:"margin"`
	Winner string  `json:"winner" yaml:"winner"`
	Voters float64 `json:"voters" yaml:"voters"`
	Region string  `json:"region" yaml:"region"`
}

var regionsByRow = []string{"North", "East", "South", "West"}

// Regions returns the region names in row order.
func Regions() []string {
	return append([]string(nil), regionsByRow...)
}

// Districts builds the 32-district grid. IDs start at 1 in row-major order.
func Districts() []District {
	out := make([]District, 0, GridRows*GridCols)
	id := 1
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridCols; c++ {
			normX := (float64(c) + 0.5) / GridCols
			normY := (float64(r) + 0.5) / GridRows
			r1 := Seeded(float64(id) * 13.7)
			r2 := Seeded(float64(id) * 29.1)

			// Mostly around zero, about +/-25 points, with a slight west-east tilt.
			margin := (r1-0.5)*50 + (normX-0.5)*10
			winner := WinnerB
			if margin >= 0 {
				winner = WinnerA
			}

			// 8k-36k voters, denser toward the middle of the map.
			dist := math.Hypot(normX-0.5, normY-0.5)
			voters := (8000 + r2*28000) * (1.2 - dist*0.5)

			out = append(out, District{
				ID:     id,
				Name:   "District " + strconv.Itoa(id),
				Row:    r,
				Col:    c,
				NormX:  normX,
				NormY:  normY,
				Margin: margin,
				Winner: winner,
				Voters: voters,
				Region: regionsByRow[r],
			})
			id++
		}
	}
	return out
}
