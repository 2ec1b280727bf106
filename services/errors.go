package services

import (
	"errors"
	"fmt"

	"debtflow-backend/models"
)

var (
	// ErrInvalidToken means a response token resolved to no reminder;
	// nothing is mutated.
	ErrInvalidToken = errors.New("invalid response token")

	// ErrQuotaExceeded marks a dispatch refused before any provider call.
	ErrQuotaExceeded = errors.New("channel quota exceeded")

	// ErrTemplateNotApproved fails a WhatsApp dispatch fast when the
	// template has not passed provider pre-approval.
	ErrTemplateNotApproved = errors.New("template not approved for channel")

	// ErrLockContention means a reminder cycle was already in flight for
	// the account; the new cycle is skipped, not queued.
	ErrLockContention = errors.New("reminder cycle already running")

	// ErrAlreadyVerified rejects a second verification decision on the
	// same response.
	ErrAlreadyVerified = errors.New("response already verified or rejected")
)

// ChannelError wraps a provider-side failure with a machine-readable
// reason recorded on the failed reminder row.
type ChannelError struct {
	Channel models.Channel
	Reason  string
	Err     error
}

func (e *ChannelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s channel error (%s): %v", e.Channel, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s channel error (%s)", e.Channel, e.Reason)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
