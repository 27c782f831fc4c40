package notifier

import (
	"fmt"

	"github.com/srishti-farm/farmstay-api/internal/config"
	"github.com/srishti-farm/farmstay-api/internal/models"
	gomail "gopkg.in/gomail.v2"
)

type Notifier interface {
	NotifyBooking(booking models.Booking) error
	NotifyContact(contact models.Contact) error
}

// MailNotifier sends admin notification emails over SMTP.
type MailNotifier struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewMailNotifier(cfg *config.Config) (*MailNotifier, error) {
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("email credentials not configured")
	}

	return &MailNotifier{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:       cfg.EmailFrom,
		adminEmail: cfg.AdminEmail,
	}, nil
}

func (n *MailNotifier) NotifyBooking(booking models.Booking) error {
	message := booking.Message
	if message == "" {
		message = "No message"
	}

	body := fmt.Sprintf(`<h2>New Booking Request</h2>
<p><strong>Guest:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Check-in:</strong> %s</p>
<p><strong>Check-out:</strong> %s</p>
<p><strong>Guests:</strong> %d</p>
<p><strong>Accommodation:</strong> %s</p>
<p><strong>Total:</strong> %d</p>
<p><strong>Message:</strong> %s</p>
<p><strong>Status:</strong> %s</p>
<p><strong>Submitted:</strong> %s</p>`,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.CheckIn.Format("2006-01-02"),
		booking.CheckOut.Format("2006-01-02"),
		booking.Guests,
		booking.AccommodationType,
		booking.TotalAmount,
		message,
		booking.Status,
		booking.CreatedAt.Format("2006-01-02 15:04:05"),
	)

	return n.send("New Booking Request - Srishti The Farm", body)
}

func (n *MailNotifier) NotifyContact(contact models.Contact) error {
	kind := "Contact Form"
	if contact.Type == models.ContactTypeNewsletter {
		kind = "Newsletter Subscription"
	}

	phoneStr := ""
	if contact.Phone != "" {
		phoneStr = fmt.Sprintf("\n<p><strong>Phone:</strong> %s</p>", contact.Phone)
	}
	subjectStr := ""
	if contact.Subject != "" {
		subjectStr = fmt.Sprintf("\n<p><strong>Subject:</strong> %s</p>", contact.Subject)
	}

	body := fmt.Sprintf(`<h2>New %s</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>%s%s
<p><strong>Message:</strong> %s</p>
<p><strong>Type:</strong> %s</p>
<p><strong>Submitted:</strong> %s</p>`,
		kind,
		contact.Name,
		contact.Email,
		phoneStr,
		subjectStr,
		contact.Message,
		contact.Type,
		contact.CreatedAt.Format("2006-01-02 15:04:05"),
	)

	return n.send(fmt.Sprintf("New %s - Srishti The Farm", kind), body)
}

func (n *MailNotifier) send(subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.adminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return n.dialer.DialAndSend(m)
}
