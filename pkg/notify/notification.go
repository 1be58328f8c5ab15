package notify

import (
	"time"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// EventType categorizes the booking event a notification reports.
type EventType string

// Requester-facing event types.
const (
	EventBookingRequestSent EventType = "BOOKING_REQUEST_SENT"
	EventBookingAccepted    EventType = "BOOKING_ACCEPTED"
	EventBookingRejected    EventType = "BOOKING_REJECTED"
	EventProviderOnWay      EventType = "PROVIDER_ON_WAY"
	EventServiceStarted     EventType = "SERVICE_STARTED"
	EventServiceCompleted   EventType = "SERVICE_COMPLETED"
	EventPaymentConfirmed   EventType = "PAYMENT_CONFIRMED"
	EventRatingReminder     EventType = "RATING_REMINDER"
)

// Provider-facing event types.
const (
	EventNewBookingRequest EventType = "NEW_BOOKING_REQUEST"
	EventBookingCancelled  EventType = "BOOKING_CANCELLED"
	EventJobAccepted       EventType = "JOB_ACCEPTED"
	EventJobCompleted      EventType = "JOB_COMPLETED"
	EventEarningsCredited  EventType = "EARNINGS_CREDITED"
)

// Notification is a stored message addressed to one receiver.
//
// ID and CreatedAt may be left zero when handing a notification to the
// Dispatcher, which fills them in before persisting.
type Notification struct {
	ID           string       `json:"id"`
	ReceiverID   string       `json:"receiver_id"`
	ReceiverRole account.Role `json:"receiver_role"`
	Type         EventType    `json:"type"`
	Title        string       `json:"title"`
	Message      string       `json:"message"`
	Read         bool         `json:"read"`
	ReadAt       *time.Time   `json:"read_at,omitempty"`
	HighPriority bool         `json:"high_priority"`
	BookingID    string       `json:"booking_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Validate checks the fields a notification must carry before it can be
// persisted.
func (n Notification) Validate() error {
	if n.ReceiverID == "" {
		return ErrEmptyReceiverID
	}
	if !n.ReceiverRole.Valid() {
		return ErrInvalidReceiverRole
	}
	return nil
}
