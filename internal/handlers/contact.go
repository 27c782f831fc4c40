package handlers

import (
	"context"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/srishti-farm/farmstay-api/internal/auth"
	"github.com/srishti-farm/farmstay-api/internal/models"
	"github.com/srishti-farm/farmstay-api/internal/notifier"
	"gorm.io/gorm"
)

type ContactHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewContactHandler(db *gorm.DB, notifier notifier.Notifier, authHandler *auth.AuthHandler) *ContactHandler {
	return &ContactHandler{db: db, notifier: notifier, authHandler: authHandler}
}

type SubmitContactRequest struct {
	Body struct {
		Name    string `json:"name" minLength:"2" maxLength:"100" doc:"Sender name"`
		Email   string `json:"email" format:"email" doc:"Sender email"`
		Message string `json:"message" minLength:"10" maxLength:"1000" doc:"Message body"`
		Phone   string `json:"phone,omitempty" maxLength:"15" required:"false" doc:"Optional phone"`
		Subject string `json:"subject,omitempty" maxLength:"200" required:"false" doc:"Optional subject"`
	}
}

type SubmitContactResponse struct {
	Body struct {
		Message string `json:"message"`
		Contact struct {
			ID     uint                 `json:"id"`
			Name   string               `json:"name"`
			Email  string               `json:"email"`
			Type   models.ContactType   `json:"type"`
			Status models.ContactStatus `json:"status"`
		} `json:"contact"`
	}
}

func (h *ContactHandler) HandleSubmitContact(ctx context.Context, input *SubmitContactRequest) (*SubmitContactResponse, error) {
	contact := models.Contact{
		Name:    input.Body.Name,
		Email:   input.Body.Email,
		Message: input.Body.Message,
		Phone:   input.Body.Phone,
		Subject: input.Body.Subject,
		Type:    models.ContactTypeContact,
		Status:  models.ContactUnread,
	}

	if err := h.db.Create(&contact).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to submit contact form")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyContact(contact); err != nil {
			log.Printf("Failed to send contact notification: %v", err)
		}
	}

	res := &SubmitContactResponse{}
	res.Body.Message = "Contact form submitted successfully"
	res.Body.Contact.ID = contact.ID
	res.Body.Contact.Name = contact.Name
	res.Body.Contact.Email = contact.Email
	res.Body.Contact.Type = contact.Type
	res.Body.Contact.Status = contact.Status
	return res, nil
}

type NewsletterRequest struct {
	Body struct {
		Email string `json:"email" format:"email" doc:"Subscriber email"`
		Name  string `json:"name,omitempty" minLength:"2" maxLength:"100" required:"false" doc:"Optional subscriber name"`
	}
}

type NewsletterResponse struct {
	Body struct {
		Message      string `json:"message"`
		Subscription struct {
			ID    uint               `json:"id"`
			Email string             `json:"email"`
			Type  models.ContactType `json:"type"`
		} `json:"subscription"`
	}
}

func (h *ContactHandler) HandleNewsletterSignup(ctx context.Context, input *NewsletterRequest) (*NewsletterResponse, error) {
	// One newsletter entry per email, compared case-insensitively.
	var existing models.Contact
	err := h.db.Where("type = ? AND LOWER(email) = LOWER(?)", models.ContactTypeNewsletter, input.Body.Email).
		First(&existing).Error
	if err == nil {
		return nil, huma.Error400BadRequest(models.ErrAlreadySubscribed.Error())
	}
	if err != gorm.ErrRecordNotFound {
		return nil, huma.Error500InternalServerError("Failed to subscribe to newsletter")
	}

	name := input.Body.Name
	if name == "" {
		name = "Newsletter Subscriber"
	}

	contact := models.Contact{
		Name:    name,
		Email:   input.Body.Email,
		Message: "Newsletter subscription",
		Type:    models.ContactTypeNewsletter,
		Status:  models.ContactUnread,
	}

	if err := h.db.Create(&contact).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to subscribe to newsletter")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyContact(contact); err != nil {
			log.Printf("Failed to send newsletter notification: %v", err)
		}
	}

	res := &NewsletterResponse{}
	res.Body.Message = "Successfully subscribed to newsletter"
	res.Body.Subscription.ID = contact.ID
	res.Body.Subscription.Email = contact.Email
	res.Body.Subscription.Type = contact.Type
	return res, nil
}

type ContactResponse struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Message   string               `json:"message"`
	Type      models.ContactType   `json:"type"`
	Status    models.ContactStatus `json:"status"`
	Phone     string               `json:"phone,omitempty"`
	Subject   string               `json:"subject,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

func toContactResponse(c models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Type:      c.Type,
		Status:    c.Status,
		Phone:     c.Phone,
		Subject:   c.Subject,
		CreatedAt: c.CreatedAt,
	}
}

type ListContactsRequest struct {
	auth.AuthInput
	Page   int    `query:"page" default:"1" minimum:"1" doc:"Page number"`
	Limit  int    `query:"limit" default:"10" minimum:"1" maximum:"100" doc:"Page size"`
	Status string `query:"status" required:"false" doc:"Filter by status"`
	Type   string `query:"type" required:"false" doc:"Filter by type"`
	Search string `query:"search" required:"false" doc:"Search name, email and message"`
}

type ListContactsResponse struct {
	Body struct {
		Contacts   []ContactResponse `json:"contacts"`
		Pagination Pagination        `json:"pagination"`
	}
}

func (h *ContactHandler) HandleListContacts(ctx context.Context, input *ListContactsRequest) (*ListContactsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	query := h.db.Model(&models.Contact{})

	if input.Status != "" && input.Status != "all" {
		status, err := models.ParseContactStatus(input.Status)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		query = query.Where("status = ?", status)
	}

	if input.Type != "" && input.Type != "all" {
		contactType, err := models.ParseContactType(input.Type)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		query = query.Where("type = ?", contactType)
	}

	if input.Search != "" {
		pattern := "%" + input.Search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR message LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to fetch contacts")
	}

	var contacts []models.Contact
	offset := (input.Page - 1) * input.Limit
	if err := query.Order("created_at DESC").Limit(input.Limit).Offset(offset).Find(&contacts).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to fetch contacts")
	}

	res := &ListContactsResponse{}
	res.Body.Contacts = make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		res.Body.Contacts = append(res.Body.Contacts, toContactResponse(c))
	}
	res.Body.Pagination = paginate(total, input.Page, input.Limit)
	return res, nil
}

type GetContactRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type GetContactResponse struct {
	Body struct {
		Contact ContactResponse `json:"contact"`
	}
}

func (h *ContactHandler) HandleGetContact(ctx context.Context, input *GetContactRequest) (*GetContactResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	var c models.Contact
	if err := h.db.First(&c, input.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error404NotFound("Contact not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch contact")
	}

	res := &GetContactResponse{}
	res.Body.Contact = toContactResponse(c)
	return res, nil
}

type UpdateContactStatusRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status string `json:"status" enum:"unread,read,replied" doc:"New contact status"`
	}
}

type UpdateContactStatusResponse struct {
	Body struct {
		Message string          `json:"message"`
		Contact ContactResponse `json:"contact"`
	}
}

func (h *ContactHandler) HandleUpdateContactStatus(ctx context.Context, input *UpdateContactStatusRequest) (*UpdateContactStatusResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	status, err := models.ParseContactStatus(input.Body.Status)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var c models.Contact
	if err := h.db.First(&c, input.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error404NotFound("Contact not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch contact")
	}

	if err := c.UpdateStatus(status); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.db.Save(&c).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update contact status")
	}

	res := &UpdateContactStatusResponse{}
	res.Body.Message = "Contact status updated successfully"
	res.Body.Contact = toContactResponse(c)
	return res, nil
}

type DeleteContactRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type DeleteContactResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *ContactHandler) HandleDeleteContact(ctx context.Context, input *DeleteContactRequest) (*DeleteContactResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	var c models.Contact
	if err := h.db.First(&c, input.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, huma.Error404NotFound("Contact not found")
		}
		return nil, huma.Error500InternalServerError("Failed to fetch contact")
	}

	if err := h.db.Delete(&c).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete contact")
	}

	res := &DeleteContactResponse{}
	res.Body.Message = "Contact deleted successfully"
	return res, nil
}

type ContactStatsRequest struct {
	auth.AuthInput
}

type ContactStatsResponse struct {
	Body struct {
		TotalContacts           int64 `json:"totalContacts"`
		UnreadContacts          int64 `json:"unreadContacts"`
		NewsletterSubscriptions int64 `json:"newsletterSubscriptions"`
		ContactForms            int64 `json:"contactForms"`
		RecentContacts          int64 `json:"recentContacts"`
	}
}

func (h *ContactHandler) HandleContactStats(ctx context.Context, input *ContactStatsRequest) (*ContactStatsResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Authorization); err != nil {
		return nil, err
	}

	res := &ContactStatsResponse{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&res.Body.TotalContacts, h.db.Model(&models.Contact{})},
		{&res.Body.UnreadContacts, h.db.Model(&models.Contact{}).Where("status = ?", models.ContactUnread)},
		{&res.Body.NewsletterSubscriptions, h.db.Model(&models.Contact{}).Where("type = ?", models.ContactTypeNewsletter)},
		{&res.Body.ContactForms, h.db.Model(&models.Contact{}).Where("type = ?", models.ContactTypeContact)},
		{&res.Body.RecentContacts, h.db.Model(&models.Contact{}).Where("created_at >= ?", time.Now().AddDate(0, 0, -7))},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, huma.Error500InternalServerError("Failed to fetch contact statistics")
		}
	}

	return res, nil
}
