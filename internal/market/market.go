// Package market generates the OMIE/OMIP market-radar series shown next
// to a proposal: recent spot history plus a forward curve with confidence
// bounds. It is a contextual data source only; pricing never reads it.
package market

import (
	"math"
	"math/rand"
	"time"
)

// Point is one day of market data, either spot history or forecast.
type Point struct {
	Date            string  `json:"date"`
	Price           float64 `json:"price,omitempty"`
	Forecast        float64 `json:"forecast,omitempty"`
	ConfidenceUpper float64 `json:"confidence_upper,omitempty"`
	ConfidenceLower float64 `json:"confidence_lower,omitempty"`
	Volume          int     `json:"volume"`
	Type            string  `json:"type"`
}

// Series types.
const (
	TypeHistory  = "HISTORY"
	TypeForecast = "FORECAST"
)

// Trend classifications.
const (
	TrendUp      = "ALTA"
	TrendDown    = "BAIXA"
	TrendNeutral = "NEUTRA"
)

const (
	historyDays = 30
	futureDays  = 30

	// Reference spot price the history climbs towards, €/MWh.
	targetSpotPrice = 58.21
	startSpotPrice  = 48.50
)

// Generate produces the full radar series around a reference date: 30 days
// of spot history ending exactly at the target spot price, then 30 days of
// forward curve with widening confidence bounds. The caller controls the
// randomness source, so a seeded source yields a reproducible series.
func Generate(ref time.Time, r *rand.Rand) []Point {
	points := make([]Point, 0, historyDays+futureDays+1)

	climbPerDay := (targetSpotPrice - startSpotPrice) / historyDays
	spot := startSpotPrice

	for i := historyDays; i >= 0; i-- {
		d := ref.AddDate(0, 0, -i)

		volatility := (r.Float64() - 0.5) * 6.0
		spot += climbPerDay + volatility*0.3

		price := spot
		if i == 0 {
			price = targetSpotPrice
		} else if i < 2 {
			// Smooth the approach to the reference value.
			price += (targetSpotPrice - price) * 0.5
		}

		points = append(points, Point{
			Date:   d.Format("02/01"),
			Price:  round2(price),
			Volume: r.Intn(150000) + 100000,
			Type:   TypeHistory,
		})
	}

	future := targetSpotPrice
	for i := 1; i <= futureDays; i++ {
		d := ref.AddDate(0, 0, i)

		future += -0.05 + (r.Float64()-0.5)*0.8
		uncertainty := float64(i) * 0.20

		points = append(points, Point{
			Date:            d.Format("02/01"),
			Forecast:        round2(future),
			ConfidenceUpper: round2(future + uncertainty),
			ConfidenceLower: round2(future - uncertainty),
			Type:            TypeForecast,
		})
	}

	return points
}

// AnalyzeTrend classifies the recent spot direction: the average of the
// last three history points against the price a week ago, with a ±2 €/MWh
// dead band.
func AnalyzeTrend(points []Point) string {
	history := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Type == TypeHistory {
			history = append(history, p)
		}
	}
	if len(history) < 7 {
		return TrendNeutral
	}

	n := len(history)
	avgLast3 := (history[n-1].Price + history[n-2].Price + history[n-3].Price) / 3
	weekAgo := history[n-7].Price

	switch {
	case avgLast3 > weekAgo+2:
		return TrendUp
	case avgLast3 < weekAgo-2:
		return TrendDown
	default:
		return TrendNeutral
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
