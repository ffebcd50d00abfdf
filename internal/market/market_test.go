package market

import (
	"math/rand"
	"testing"
	"time"
)

func TestGenerate_SeriesShape(t *testing.T) {
	ref := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	points := Generate(ref, rand.New(rand.NewSource(1)))

	if len(points) != 61 {
		t.Fatalf("got %d points, want 61", len(points))
	}

	var history, forecast int
	for _, p := range points {
		switch p.Type {
		case TypeHistory:
			history++
			if p.Forecast != 0 || p.ConfidenceUpper != 0 {
				t.Fatalf("history point carries forecast fields: %+v", p)
			}
		case TypeForecast:
			forecast++
			if p.Price != 0 || p.Volume != 0 {
				t.Fatalf("forecast point carries spot fields: %+v", p)
			}
			if p.ConfidenceLower > p.Forecast || p.ConfidenceUpper < p.Forecast {
				t.Fatalf("confidence band does not bracket forecast: %+v", p)
			}
		default:
			t.Fatalf("unknown point type %q", p.Type)
		}
	}
	if history != 31 || forecast != 30 {
		t.Fatalf("got %d history / %d forecast, want 31 / 30", history, forecast)
	}

	last := points[30]
	if last.Type != TypeHistory || last.Price != 58.21 {
		t.Fatalf("last history point = %+v, want spot anchored at 58.21", last)
	}
	if last.Date != ref.Format("02/01") {
		t.Fatalf("last history date = %q, want %q", last.Date, ref.Format("02/01"))
	}
}

func TestGenerate_SeededSourceIsReproducible(t *testing.T) {
	ref := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	a := Generate(ref, rand.New(rand.NewSource(42)))
	b := Generate(ref, rand.New(rand.NewSource(42)))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAnalyzeTrend(t *testing.T) {
	series := func(prices ...float64) []Point {
		pts := make([]Point, 0, len(prices))
		for _, p := range prices {
			pts = append(pts, Point{Price: p, Type: TypeHistory})
		}
		return pts
	}

	cases := []struct {
		name   string
		points []Point
		want   string
	}{
		{"rising", series(50, 50, 50, 50, 55, 56, 57), TrendUp},
		{"falling", series(50, 50, 50, 50, 45, 44, 43), TrendDown},
		{"flat inside dead band", series(50, 50, 50, 50, 51, 51, 51), TrendNeutral},
		{"too short", series(50, 51, 52), TrendNeutral},
		{"forecast points ignored", append(series(50, 50, 50, 50, 55, 56, 57), Point{Forecast: 10, Type: TypeForecast}), TrendUp},
	}

	for _, c := range cases {
		if got := AnalyzeTrend(c.points); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
