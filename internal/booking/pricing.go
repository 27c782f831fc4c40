package booking

import (
	"math"
	"time"

	"github.com/srishti-farm/farmstay-api/internal/models"
)

// Nightly rates per accommodation type, in rupees.
var NightlyRates = map[models.AccommodationType]int{
	models.AccommodationStandard: 2500,
	models.AccommodationDeluxe:   3500,
}

// Nights counts the whole days between check-in and check-out, rounding up.
// Callers guarantee checkOut is after checkIn, so the result is at least 1.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// TotalAmount computes nights x nightly rate for the accommodation type.
func TotalAmount(checkIn, checkOut time.Time, accommodationType models.AccommodationType) int {
	return Nights(checkIn, checkOut) * NightlyRates[accommodationType]
}
