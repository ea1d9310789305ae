package ranking

import (
	"math"

	"github.com/XavierGabriel92/velt-booking/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

// CalculateScores stamps a best-value score onto each option. Lower is
// better.
func CalculateScores(flights []models.FlightOption) []models.FlightOption {
	if len(flights) == 0 {
		return flights
	}

	maxPrice := 0.0
	maxDuration := 0.0
	for _, f := range flights {
		if f.Fare.Final > maxPrice {
			maxPrice = f.Fare.Final
		}
		if d := float64(f.DurationMinutes); d > maxDuration {
			maxDuration = d
		}
	}

	result := make([]models.FlightOption, len(flights))
	for i, f := range flights {
		result[i] = f
		result[i].BestValueScore = bestValue(f, maxPrice, maxDuration)
	}
	return result
}

func bestValue(f models.FlightOption, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (f.Fare.Final / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(f.DurationMinutes) / maxDuration) * 100
	}

	stopsScore := float64(f.Stops) * 15
	score := priceScore*PriceWeight + durationScore*DurationWeight + stopsScore*StopsWeight

	return math.Round(score*100) / 100
}
