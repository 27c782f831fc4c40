package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/srishti-farm/farmstay-api/internal/auth"
)

func RegisterRoutes(r *chi.Mux, authHandler *auth.AuthHandler, bookingHandler *BookingHandler, contactHandler *ContactHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Farm Stay API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	adminOnly := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"bearerAuth": {}}}
	}
	created := func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	}

	// Auth
	huma.Post(api, "/api/auth/login", authHandler.HandleLogin)

	// Bookings
	huma.Post(api, "/api/bookings/check-availability", bookingHandler.HandleCheckAvailability)
	huma.Post(api, "/api/bookings", bookingHandler.HandleCreateBooking, created)
	huma.Get(api, "/api/bookings", bookingHandler.HandleListBookings, adminOnly)
	huma.Get(api, "/api/bookings/{id}", bookingHandler.HandleGetBooking, adminOnly)
	huma.Patch(api, "/api/bookings/{id}/status", bookingHandler.HandleUpdateBookingStatus, adminOnly)

	// Contact
	huma.Post(api, "/api/contact", contactHandler.HandleSubmitContact, created)
	huma.Post(api, "/api/contact/newsletter", contactHandler.HandleNewsletterSignup, created)
	huma.Get(api, "/api/contact", contactHandler.HandleListContacts, adminOnly)
	huma.Get(api, "/api/contact/stats/overview", contactHandler.HandleContactStats, adminOnly)
	huma.Get(api, "/api/contact/{id}", contactHandler.HandleGetContact, adminOnly)
	huma.Patch(api, "/api/contact/{id}/status", contactHandler.HandleUpdateContactStatus, adminOnly)
	huma.Delete(api, "/api/contact/{id}", contactHandler.HandleDeleteContact, adminOnly)
}
