package booking

import (
	"testing"

	"github.com/srishti-farm/farmstay-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.Booking{})
	return db
}

func storeBooking(t *testing.T, db *gorm.DB, checkIn, checkOut string, accommodationType models.AccommodationType, status models.BookingStatus) {
	t.Helper()
	b := models.Booking{
		Name:              "Guest",
		Email:             "guest@example.com",
		Phone:             "9876543210",
		CheckIn:           date(t, checkIn),
		CheckOut:          date(t, checkOut),
		Guests:            2,
		AccommodationType: accommodationType,
		Status:            status,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("failed to store booking: %v", err)
	}
}

func TestCheck_OverlappingRangesBlock(t *testing.T) {
	db := setupDB(t)
	storeBooking(t, db, "2027-01-10", "2027-01-13", models.AccommodationStandard, models.BookingPending)

	checker := NewAvailabilityChecker(db)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     bool
	}{
		{"partial overlap at end", "2027-01-12", "2027-01-15", false},
		{"partial overlap at start", "2027-01-08", "2027-01-11", false},
		{"stored check-in on requested check-out", "2027-01-08", "2027-01-10", false},
		{"stored check-out on requested check-in", "2027-01-13", "2027-01-15", false},
		{"request inside stored range", "2027-01-11", "2027-01-12", false},
		{"request contains stored range", "2027-01-05", "2027-01-20", false},
		{"identical range", "2027-01-10", "2027-01-13", false},
		{"before stored range", "2027-01-01", "2027-01-05", true},
		{"after stored range", "2027-01-20", "2027-01-25", true},
	}

	for _, tt := range tests {
		available, err := checker.Check(date(t, tt.checkIn), date(t, tt.checkOut), models.AccommodationStandard)
		if err != nil {
			t.Fatalf("%s: Check returned error: %v", tt.name, err)
		}
		if available != tt.want {
			t.Errorf("%s: Check(%s, %s) = %v, want %v", tt.name, tt.checkIn, tt.checkOut, available, tt.want)
		}
	}
}

func TestCheck_ConfirmedBookingsBlock(t *testing.T) {
	db := setupDB(t)
	storeBooking(t, db, "2027-02-01", "2027-02-05", models.AccommodationDeluxe, models.BookingConfirmed)

	checker := NewAvailabilityChecker(db)
	available, err := checker.Check(date(t, "2027-02-03"), date(t, "2027-02-07"), models.AccommodationDeluxe)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if available {
		t.Error("expected confirmed booking to block availability")
	}
}

func TestCheck_CancelledAndCompletedNeverBlock(t *testing.T) {
	db := setupDB(t)
	storeBooking(t, db, "2027-01-10", "2027-01-13", models.AccommodationStandard, models.BookingCancelled)
	storeBooking(t, db, "2027-01-10", "2027-01-13", models.AccommodationStandard, models.BookingCompleted)

	checker := NewAvailabilityChecker(db)
	available, err := checker.Check(date(t, "2027-01-10"), date(t, "2027-01-13"), models.AccommodationStandard)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !available {
		t.Error("expected cancelled/completed bookings not to block availability")
	}
}

func TestCheck_AccommodationTypesAreIndependent(t *testing.T) {
	db := setupDB(t)
	storeBooking(t, db, "2027-01-10", "2027-01-13", models.AccommodationStandard, models.BookingPending)

	checker := NewAvailabilityChecker(db)
	available, err := checker.Check(date(t, "2027-01-10"), date(t, "2027-01-13"), models.AccommodationDeluxe)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !available {
		t.Error("expected a standard booking not to block the deluxe unit")
	}
}
