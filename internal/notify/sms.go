package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type smsAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender texts the clinic's on-call phone through Twilio.
type SMSSender struct {
	api  smsAPI
	from string
	to   string
}

func NewSMSSender(accountSID, authToken, from, to string) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSSender{api: client.Api, from: from, to: to}
}

func (s *SMSSender) send(body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// The twilio client takes no context; cancellation is left to its HTTP
// client timeout.

func (s *SMSSender) NotifyNewBooking(_ context.Context, b *models.Booking) error {
	return s.send(bookingSMS("New booking", b))
}

func (s *SMSSender) NotifyBookingStatus(_ context.Context, b *models.Booking) error {
	return s.send(bookingSMS("Booking updated", b))
}

// Deletions are made by staff in the admin panel, so nobody needs a text.
func (s *SMSSender) NotifyBookingDeleted(context.Context, *models.Booking) error {
	return nil
}

func (s *SMSSender) NotifyContactMessage(_ context.Context, m *models.ContactMessage) error {
	return s.send(messageSMS(m))
}
