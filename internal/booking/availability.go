package booking

import (
	"time"

	"github.com/srishti-farm/farmstay-api/internal/models"
	"gorm.io/gorm"
)

// CountOverlapping counts stored bookings of the given accommodation type
// whose date range overlaps [checkIn, checkOut]. Boundaries are inclusive: a
// stored check-in or check-out falling exactly on either requested date
// counts as an overlap. Only pending and confirmed bookings block; cancelled
// and completed ones never do.
func CountOverlapping(db *gorm.DB, checkIn, checkOut time.Time, accommodationType models.AccommodationType) (int64, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("accommodation_type = ?", accommodationType).
		Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Where(
			"(check_in BETWEEN ? AND ?) OR (check_out BETWEEN ? AND ?) OR (check_in <= ? AND check_out >= ?)",
			checkIn, checkOut,
			checkIn, checkOut,
			checkIn, checkOut,
		).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AvailabilityChecker answers whether a date range is bookable for an
// accommodation type. Each type has a single bookable unit, so one
// overlapping booking is enough to make a range unavailable.
type AvailabilityChecker struct {
	db *gorm.DB
}

func NewAvailabilityChecker(db *gorm.DB) *AvailabilityChecker {
	return &AvailabilityChecker{db: db}
}

func (c *AvailabilityChecker) Check(checkIn, checkOut time.Time, accommodationType models.AccommodationType) (bool, error) {
	count, err := CountOverlapping(c.db, checkIn, checkOut, accommodationType)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
