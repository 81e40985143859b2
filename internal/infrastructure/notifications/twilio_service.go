package notifications

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// messageCreator is the part of the Twilio API client used for SMS
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	api        messageCreator
	fromNumber string
	logger     *slog.Logger
}

// NewTwilioService creates a Twilio SMS notifier. Without credentials
// messages are logged instead of sent.
func NewTwilioService(accountSID, authToken, fromNumber string, logger *slog.Logger) domain.NotificationService {
	svc := &TwilioServiceImpl{
		fromNumber: fromNumber,
		logger:     logger.With("component", "notifications"),
	}
	if accountSID != "" && authToken != "" && fromNumber != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		svc.api = client.Api
	}
	return svc
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if t.api == nil {
		t.logger.Info("sms not sent, twilio unconfigured", "to", to, "body", message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

// SendEmail implements domain.NotificationService
func (t *TwilioServiceImpl) SendEmail(to, subject, body string) error {
	t.logger.Info("email not sent, no email transport", "to", to, "subject", subject)
	return nil
}
