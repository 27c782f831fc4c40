package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/srishti-farm/farmstay-api/internal/auth"
	"github.com/srishti-farm/farmstay-api/internal/booking"
	"github.com/srishti-farm/farmstay-api/internal/models"
	"github.com/srishti-farm/farmstay-api/internal/notifier"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var errRangeTaken = errors.New("accommodation is not available for selected dates")

type BookingHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewBookingHandler(db *gorm.DB, notifier notifier.Notifier, authHandler *auth.AuthHandler) *BookingHandler {
	return &BookingHandler{db: db, notifier: notifier, authHandler: authHandler}
}

// parseDateRange validates the check-in/check-out pair shared by the
// availability and creation endpoints.
func parseDateRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("Invalid check-in date, expected YYYY-MM-DD")
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("Invalid check-out date, expected YYYY-MM-DD")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("Check-out date must be after check-in date")
	}
	return in, out, nil
}

type CheckAvailabilityRequest struct {
	Body struct {
		CheckIn           string `json:"checkIn" doc:"Check-in date (YYYY-MM-DD)"`
		CheckOut          string `json:"checkOut" doc:"Check-out date (YYYY-MM-DD)"`
		AccommodationType string `json:"accommodationType" enum:"standard,deluxe" doc:"Accommodation type"`
	}
}

type CheckAvailabilityResponse struct {
	Body struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
}

func (h *BookingHandler) HandleCheckAvailability(ctx context.Context, input *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	in, out, err := parseDateRange(input.Body.CheckIn, input.Body.CheckOut)
	if err != nil {
		return nil, err
	}

	accommodationType, err := models.ParseAccommodationType(input.Body.AccommodationType)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	checker := booking.NewAvailabilityChecker(h.db)
	available, err := checker.Check(in, out, accommodationType)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to check availability")
	}

	res := &CheckAvailabilityResponse{}
	res.Body.Available = available
	if available {
		res.Body.Message = "Accommodation is available"
	} else {
		res.Body.Message = "Accommodation is not available for selected dates"
	}
	return res, nil
}

type CreateBookingRequest struct {
	Body struct {
		Name              string `json:"name" minLength:"2" maxLength:"100" doc:"Guest name"`
		Email             string `json:"email" format:"email" doc:"Guest email"`
		Phone             string `json:"phone" minLength:"10" maxLength:"15" doc:"Guest phone"`
		CheckIn           string `json:"checkIn" doc:"Check-in date (YYYY-MM-DD)"`
		CheckOut          string `json:"checkOut" doc:"Check-out date (YYYY-MM-DD)"`
		Guests            int    `json:"guests" minimum:"1" maximum:"20" doc:"Number of guests"`
		AccommodationType string `json:"accommodationType" enum:"standard,deluxe" doc:"Accommodation type"`
		Message           string `json:"message,omitempty" maxLength:"500" required:"false" doc:"Optional message"`
		SpecialRequests   string `json:"specialRequests,omitempty" maxLength:"500" required:"false" doc:"Optional special requests"`
	}
}

type BookingSummary struct {
	ID                uint                     `json:"id"`
	Name              string                   `json:"name"`
	CheckIn           string                   `json:"checkIn"`
	CheckOut          string                   `json:"checkOut"`
	Guests            int                      `json:"guests"`
	AccommodationType models.AccommodationType `json:"accommodationType"`
	TotalAmount       int                      `json:"totalAmount"`
	Status            models.BookingStatus     `json:"status"`
}

type CreateBookingResponse struct {
	Body struct {
		Message string         `json:"message"`
		Booking BookingSummary `json:"booking"`
	}
}

func (h *BookingHandler) HandleCreateBooking(ctx context.Context, input *CreateBookingRequest) (*CreateBookingResponse, error) {
	in, out, err := parseDateRange(input.Body.CheckIn, input.Body.CheckOut)
	if err != nil {
		return nil, err
	}

	accommodationType, err := models.ParseAccommodationType(input.Body.AccommodationType)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if in.Before(today) {
		return nil, huma.Error400BadRequest("Check-in date must not be in the past")
	}

	b := models.Booking{
		Name:              input.Body.Name,
		Email:             input.Body.Email,
		Phone:             input.Body.Phone,
		CheckIn:           in,
		CheckOut:          out,
		Guests:            input.Body.Guests,
		AccommodationType: accommodationType,
		TotalAmount:       booking.TotalAmount(in, out, accommodationType),
		Message:           input.Body.Message,
		SpecialRequests:   input.Body.SpecialRequests,
		Status:            models.BookingPending,
	}

	// Re-check availability inside the creation transaction so two
	// submissions for the same range cannot both land.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		count, err := booking.CountOverlapping(tx, in, out, accommodationType)
		if err != nil {
			return err
		}
		if count > 0 {
			return errRangeTaken
		}
		return tx.Create(&b).Error
	})
	if err != nil {
		if errors.Is(err, errRangeTaken) {
			return nil, huma.Error409Conflict("Accommodation is not available for selected dates")
		}
		return nil, huma.Error500InternalServerError("Failed to create booking")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBooking(b); err != nil {
			log.Printf("Failed to send booking notification: %v", err)
		}
	}

	res := &CreateBookingResponse{}
	res.Body.Message = "Booking request submitted successfully"
	res.Body.Booking = BookingSummary{
		ID:                b.ID,
		Name:              b.Name,
		CheckIn:           b.CheckIn.Format(dateLayout),
		CheckOut:          b.CheckOut.Format(dateLayout),
		Guests:            b.Guests,
		AccommodationType: b.AccommodationType,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status,
	}
	return res, nil
}

type BookingResponse struct {
	ID                uint                     `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Phone             string                   `json:"phone"`
	CheckIn           string                   `json:"checkIn"`
	CheckOut          string                   `json:"checkOut"`
	Guests            int                      `json:"guests"`
	AccommodationType models.AccommodationType `json:"accommodationType"`
	TotalAmount       int                      `json:"totalAmount"`
	Message           string                   `json:"message,omitempty"`
	SpecialRequests   string                   `json:"specialRequests,omitempty"`
	Status            models.BookingStatus     `json:"status"`
	CreatedAt         time.Time                `json:"createdAt"`
}

func toBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		Name:              b.Name,
		Email:             b.Email,
		Phone:             b.Phone,
		CheckIn:           b.CheckIn.Format(dateLayout),
		CheckOut:          b.CheckOut.Format(dateLayout),
		Guests:            b.Guests,
		AccommodationType: b.AccommodationType,
		TotalAmount:       b.TotalAmount,
		Message:           b.Message,
		SpecialRequests:   b.SpecialRequests,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
}

type Pagination struct {
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

func paginate(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Total: total, Pages: pages, CurrentPage: page, Limit: limit}
}

type ListBookingsRequest struct {
	auth.AuthInput
	Page              int    `query:"page" default:"1" minimum:"1" doc:"Page number"`
	Limit             int    `query:"limit" default:"10" minimum:"1" maximum:"100" doc:"Page size"`
	Status            string `query:"status" required:"false" doc:"Filter by status"`
	AccommodationType string `query:"accommodationType" required:"false" doc:"Filter by accommodation type"`
	StartDate         string `query:"startDate" required:"false" doc:"Check-in range start (YYYY-MM-DD)"`
	EndDate           string `query:"endDate" required:"false" doc:"Check-in range end (YYYY-MM-DD)"`
}

type ListBookingsResponse struct {
	Body struct {
		Bookings   []BookingResponse `json:"bookings"`
		Pagination Pagination        `json:"pagination"`
	}
}

func (h *BookingHandler) HandleListBookings(ctx context.Context, input *ListBookingsRequest) (*ListBookingsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	query := h.db.Model(&models.Booking{})

	if input.Status != "" && input.Status != "all" {
		status, err := models.ParseBookingStatus(input.Status)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		query = query.Where("status = ?", status)
	}

	if input.AccommodationType != "" && input.AccommodationType != "all" {
		accommodationType, err := models.ParseAccommodationType(input.AccommodationType)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		query = query.Where("accommodation_type = ?", accommodationType)
	}

	if input.StartDate != "" && input.EndDate != "" {
		start, err := time.Parse(dateLayout, input.StartDate)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid start date, expected YYYY-MM-DD")
		}
		end, err := time.Parse(dateLayout, input.EndDate)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid end date, expected YYYY-MM-DD")
		}
		query = query.Where("check_in BETWEEN ? AND ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to fetch bookings")
	}

	var bookings []models.Booking
	offset := (input.Page - 1) * input.Limit
	if err := query.Order("created_at DESC").Limit(input.Limit).Offset(offset).Find(&bookings).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to fetch bookings")
	}

	res := &ListBookingsResponse{}
	res.Body.Bookings = make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res.Body.Bookings = append(res.Body.Bookings, toBookingResponse(b))
	}
	res.Body.Pagination = paginate(total, input.Page, input.Limit)
	return res, nil
}

type GetBookingRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type GetBookingResponse struct {
	Body struct {
		Booking BookingResponse `json:"booking"`
	}
}

func (h *BookingHandler) HandleGetBooking(ctx context.Context, input *GetBookingRequest) (*GetBookingResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	var b models.Booking
	if err := h.db.First(&b, input.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error404NotFound("Booking not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch booking")
	}

	res := &GetBookingResponse{}
	res.Body.Booking = toBookingResponse(b)
	return res, nil
}

type UpdateBookingStatusRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status string `json:"status" enum:"pending,confirmed,cancelled,completed" doc:"New booking status"`
	}
}

type UpdateBookingStatusResponse struct {
	Body struct {
		Message string          `json:"message"`
		Booking BookingResponse `json:"booking"`
	}
}

func (h *BookingHandler) HandleUpdateBookingStatus(ctx context.Context, input *UpdateBookingStatusRequest) (*UpdateBookingStatusResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := models.ParseBookingStatus(input.Body.Status)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var b models.Booking
	if err := h.db.First(&b, input.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error404NotFound("Booking not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch booking")
	}

	if err := b.UpdateStatus(status); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.db.Save(&b).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update booking status")
	}

	res := &UpdateBookingStatusResponse{}
	res.Body.Message = "Booking status updated successfully"
	res.Body.Booking = toBookingResponse(b)
	return res, nil
}
