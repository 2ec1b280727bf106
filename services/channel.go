package services

import (
	"context"

	"debtflow-backend/models"
)

// Dispatch is one rendered message bound for one customer.
type Dispatch struct {
	To       string
	Subject  string
	Body     string
	Template *models.MessageTemplate
}

// ChannelSender is the capability interface every notification transport
// implements. Send returns the provider message id on acceptance; later
// delivery progress arrives asynchronously via the status webhook.
type ChannelSender interface {
	Channel() models.Channel
	Send(ctx context.Context, d Dispatch) (providerMessageID string, err error)
}
