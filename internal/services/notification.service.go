package services

import (
	"context"
	"fmt"
	"strings"
	"villabook/config"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"github.com/wneessen/go-mail"
)

// NotificationService emails the configured managers when a new booking
// request arrives. Delivery is strictly best-effort: failures are logged and
// never surface to the booking flow.
type NotificationService struct {
	config config.Config
	log    logger.Logger
}

func NewNotificationService(config config.Config) *NotificationService {
	return &NotificationService{
		config: config,
		log:    logger.New("notificationService"),
	}
}

// Enabled reports whether SMTP is configured at all.
func (s *NotificationService) Enabled() bool {
	return s.config.SMTPHost != ""
}

// NotifyNewRequest sends the new-request summary to every address in
// notifyEmails (comma separated). Errors are swallowed after logging.
func (s *NotificationService) NotifyNewRequest(
	ctx context.Context,
	notifyEmails string,
	requestID int,
	request *BookingRequest,
) {
	log := s.log.TraceFromContext(ctx).Function("NotifyNewRequest")

	if !s.Enabled() {
		log.Debug("SMTP not configured, skipping notification")
		return
	}

	recipients := splitEmails(notifyEmails)
	if len(recipients) == 0 {
		log.Debug("No notification recipients configured")
		return
	}

	payload := request.Payload.Data()

	subject := fmt.Sprintf("New booking request #%d", requestID)
	lines := []string{
		"A new booking request has been received:",
		fmt.Sprintf("Check-in: %s", FormatDay(request.StartDate)),
		fmt.Sprintf("Check-out: %s", FormatDay(request.EndDate)),
		fmt.Sprintf("Nights: %d", request.Nights),
	}
	if request.PriceTotal != nil {
		lines = append(lines, fmt.Sprintf("Estimated total: %s", request.PriceTotal.StringFixed(2)))
	}
	lines = append(lines,
		fmt.Sprintf("Guest: %s %s", payload.Name, payload.Surname),
		fmt.Sprintf("Email: %s", payload.Email),
		fmt.Sprintf("Phone: %s", payload.Phone),
	)

	if err := s.send(ctx, recipients, subject, strings.Join(lines, "\n")); err != nil {
		log.Er("failed to send new-request notification", err, "requestID", requestID)
		return
	}

	log.Info("New-request notification sent", "requestID", requestID, "recipients", len(recipients))
}

func (s *NotificationService) send(
	ctx context.Context,
	to []string,
	subject, body string,
) error {
	opts := []mail.Option{mail.WithPort(s.config.SMTPPort)}
	if s.config.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.SMTPUser),
			mail.WithPassword(s.config.SMTPPassword),
		)
	}

	client, err := mail.NewClient(s.config.SMTPHost, opts...)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.config.SMTPFrom); err != nil {
		return err
	}
	if err := msg.To(to...); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return client.DialAndSendWithContext(ctx, msg)
}

func splitEmails(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.TrimSpace(part)
		if email != "" && strings.Contains(email, "@") {
			emails = append(emails, email)
		}
	}
	return emails
}
