package filter

import (
	"sort"
	"strings"

	"github.com/XavierGabriel92/velt-booking/internal/models"
	"github.com/XavierGabriel92/velt-booking/internal/ranking"
)

// Options narrows and orders a flight list for display. All fields are
// optional; the zero value returns the input sorted by price ascending.
type Options struct {
	MaxStops  *int
	MaxPrice  *float64
	Airlines  []string
	SortBy    string
	SortOrder string
}

func Apply(flights []models.FlightOption, opts Options) []models.FlightOption {
	filtered := make([]models.FlightOption, 0, len(flights))
	for _, f := range flights {
		if matches(f, opts) {
			filtered = append(filtered, f)
		}
	}

	if strings.EqualFold(opts.SortBy, "best_value") {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, opts.SortBy, opts.SortOrder)
}

func matches(f models.FlightOption, opts Options) bool {
	if opts.MaxStops != nil && f.Stops > *opts.MaxStops {
		return false
	}
	if opts.MaxPrice != nil && f.Fare.Final > *opts.MaxPrice {
		return false
	}
	if len(opts.Airlines) > 0 {
		found := false
		for _, airline := range opts.Airlines {
			if strings.EqualFold(f.Airline.Code, airline) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func applySort(flights []models.FlightOption, sortBy, sortOrder string) []models.FlightOption {
	if len(flights) == 0 {
		return flights
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.Slice(flights, func(i, j int) bool {
			if ascending {
				return flights[i].DurationMinutes < flights[j].DurationMinutes
			}
			return flights[i].DurationMinutes > flights[j].DurationMinutes
		})

	case "departure":
		sort.Slice(flights, func(i, j int) bool {
			if ascending {
				return flights[i].Departure.Before(flights[j].Departure)
			}
			return flights[i].Departure.After(flights[j].Departure)
		})

	case "best_value":
		sort.Slice(flights, func(i, j int) bool {
			if ascending {
				return flights[i].BestValueScore < flights[j].BestValueScore
			}
			return flights[i].BestValueScore > flights[j].BestValueScore
		})

	case "stops":
		sort.Slice(flights, func(i, j int) bool {
			if ascending {
				return flights[i].Stops < flights[j].Stops
			}
			return flights[i].Stops > flights[j].Stops
		})

	default:
		// price, and the fallback for anything unrecognized
		sort.Slice(flights, func(i, j int) bool {
			if ascending {
				return flights[i].Fare.Final < flights[j].Fare.Final
			}
			return flights[i].Fare.Final > flights[j].Fare.Final
		})
	}

	return flights
}
