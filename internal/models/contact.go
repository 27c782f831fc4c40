package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrAlreadySubscribed is returned when a newsletter signup uses an email
// that already has a newsletter entry.
var ErrAlreadySubscribed = errors.New("email already subscribed to newsletter")

type ContactType string

const (
	ContactTypeContact    ContactType = "contact"
	ContactTypeNewsletter ContactType = "newsletter"
)

func ParseContactType(s string) (ContactType, error) {
	switch ContactType(s) {
	case ContactTypeContact, ContactTypeNewsletter:
		return ContactType(s), nil
	default:
		return "", fmt.Errorf("unknown contact type: %s", s)
	}
}

type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactUnread, ContactRead, ContactReplied:
		return ContactStatus(s), nil
	default:
		return "", fmt.Errorf("unknown contact status: %s", s)
	}
}

// Forward only: unread -> read -> replied, with unread -> replied allowed.
var contactTransitions = map[ContactStatus]map[ContactStatus]bool{
	ContactUnread:  {ContactRead: true, ContactReplied: true},
	ContactRead:    {ContactReplied: true},
	ContactReplied: {},
}

func (s ContactStatus) CanTransitionTo(next ContactStatus) bool {
	allowed, ok := contactTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

// Contact covers both contact-form submissions and newsletter signups,
// distinguished by Type.
type Contact struct {
	gorm.Model
	Name    string        `json:"name"`
	Email   string        `json:"email" gorm:"index"`
	Message string        `json:"message"`
	Type    ContactType   `json:"type" gorm:"index;default:contact"`
	Status  ContactStatus `json:"status" gorm:"index;default:unread"`
	Phone   string        `json:"phone"`
	Subject string        `json:"subject"`
}

// UpdateStatus applies the contact transition table. Re-applying the current
// status is a no-op.
func (c *Contact) UpdateStatus(next ContactStatus) error {
	if c.Status == next {
		return nil
	}
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
	}
	c.Status = next
	return nil
}
