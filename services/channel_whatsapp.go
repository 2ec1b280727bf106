package services

import (
	"context"
	"os"

	"debtflow-backend/models"
	"debtflow-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

func NewWhatsAppSender() *WhatsAppSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &WhatsAppSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

func (s *WhatsAppSender) Channel() models.Channel {
	return models.ChannelWhatsApp
}

func (s *WhatsAppSender) Send(ctx context.Context, d Dispatch) (string, error) {
	// WhatsApp requires provider pre-approval; refuse before any call.
	if d.Template == nil || d.Template.ApprovalStatus != models.TemplateApproved {
		return "", ErrTemplateNotApproved
	}
	if !utils.ValidatePhone(d.To) {
		return "", &ChannelError{Channel: models.ChannelWhatsApp, Reason: "invalid_address"}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + d.To)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(d.Body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", &ChannelError{Channel: models.ChannelWhatsApp, Reason: "provider_rejected", Err: err}
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}
