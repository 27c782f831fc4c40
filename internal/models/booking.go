package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when a status update is not allowed by
// the entity's transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

type AccommodationType string

const (
	AccommodationStandard AccommodationType = "standard"
	AccommodationDeluxe   AccommodationType = "deluxe"
)

func ParseAccommodationType(s string) (AccommodationType, error) {
	switch AccommodationType(s) {
	case AccommodationStandard, AccommodationDeluxe:
		return AccommodationType(s), nil
	default:
		return "", fmt.Errorf("unknown accommodation type: %s", s)
	}
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// cancelled and completed are terminal.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed: {BookingCompleted: true},
	BookingCancelled: {},
	BookingCompleted: {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	allowed, ok := bookingTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

type Booking struct {
	gorm.Model
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	CheckIn           time.Time         `json:"check_in"`
	CheckOut          time.Time         `json:"check_out"`
	Guests            int               `json:"guests"`
	AccommodationType AccommodationType `json:"accommodation_type" gorm:"index"`
	TotalAmount       int               `json:"total_amount"`
	Message           string            `json:"message"`
	SpecialRequests   string            `json:"special_requests"`
	Status            BookingStatus     `json:"status" gorm:"index;default:pending"`
}

// UpdateStatus applies the booking transition table. Re-applying the current
// status is a no-op.
func (b *Booking) UpdateStatus(next BookingStatus) error {
	if b.Status == next {
		return nil
	}
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	return nil
}
