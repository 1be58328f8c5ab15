package notify

import (
	"fmt"

	"github.com/quickhelper/bookingkit/pkg/account"
)

// Event constructors build the notifications emitted by booking lifecycle
// transitions. They only assemble the value; persistence and delivery happen
// through Dispatcher.Send.

// NewBookingRequest notifies a provider about an incoming booking request.
func NewBookingRequest(providerID, bookingID, category string) Notification {
	return Notification{
		ReceiverID:   providerID,
		ReceiverRole: account.RoleProvider,
		Type:         EventNewBookingRequest,
		Title:        "New Booking Request",
		Message:      fmt.Sprintf("You have received a new %s service request", category),
		HighPriority: true,
		BookingID:    bookingID,
	}
}

// BookingRequestSent confirms to a requester that their request went out.
func BookingRequestSent(requesterID, bookingID, providerName string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventBookingRequestSent,
		Title:        "Booking Request Sent",
		Message:      fmt.Sprintf("Your booking request has been sent to %s", providerName),
		BookingID:    bookingID,
	}
}

// BookingAccepted notifies a requester that the provider accepted.
func BookingAccepted(requesterID, bookingID, providerName string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventBookingAccepted,
		Title:        "Booking Accepted",
		Message:      fmt.Sprintf("%s has accepted your booking request", providerName),
		BookingID:    bookingID,
	}
}

// JobAccepted echoes an acceptance back to the provider who made it.
func JobAccepted(providerID, bookingID, requesterName string) Notification {
	return Notification{
		ReceiverID:   providerID,
		ReceiverRole: account.RoleProvider,
		Type:         EventJobAccepted,
		Title:        "Job Accepted",
		Message:      fmt.Sprintf("You have accepted the booking request from %s", requesterName),
		BookingID:    bookingID,
	}
}

// BookingRejected notifies a requester that the provider declined.
func BookingRejected(requesterID, bookingID, providerName string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventBookingRejected,
		Title:        "Booking Rejected",
		Message:      fmt.Sprintf("%s has rejected your booking request", providerName),
		HighPriority: true,
		BookingID:    bookingID,
	}
}

// BookingCancelled notifies a provider that the requester cancelled.
func BookingCancelled(providerID, bookingID, requesterName string) Notification {
	return Notification{
		ReceiverID:   providerID,
		ReceiverRole: account.RoleProvider,
		Type:         EventBookingCancelled,
		Title:        "Booking Cancelled",
		Message:      fmt.Sprintf("%s has cancelled the booking", requesterName),
		HighPriority: true,
		BookingID:    bookingID,
	}
}

// ProviderOnWay tells a requester their provider is en route.
func ProviderOnWay(requesterID, bookingID, providerName string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventProviderOnWay,
		Title:        "Provider On The Way",
		Message:      fmt.Sprintf("%s is on the way to your location", providerName),
		BookingID:    bookingID,
	}
}

// ServiceStarted tells a requester the work has begun.
func ServiceStarted(requesterID, bookingID, providerName string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventServiceStarted,
		Title:        "Service Started",
		Message:      fmt.Sprintf("%s has started the service", providerName),
		BookingID:    bookingID,
	}
}

// ServiceCompleted tells a requester the work is done and asks for a rating.
func ServiceCompleted(requesterID, bookingID string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventServiceCompleted,
		Title:        "Service Completed",
		Message:      "Your service has been completed. Please rate your experience.",
		BookingID:    bookingID,
	}
}

// JobCompleted echoes a completion back to the provider who performed it.
func JobCompleted(providerID, bookingID, requesterName string) Notification {
	return Notification{
		ReceiverID:   providerID,
		ReceiverRole: account.RoleProvider,
		Type:         EventJobCompleted,
		Title:        "Job Completed",
		Message:      fmt.Sprintf("You have completed the service for %s", requesterName),
		BookingID:    bookingID,
	}
}

// EarningsCredited tells a provider their payout for a completed job.
func EarningsCredited(providerID, bookingID string, amount float64) Notification {
	return Notification{
		ReceiverID:   providerID,
		ReceiverRole: account.RoleProvider,
		Type:         EventEarningsCredited,
		Title:        "Earnings Credited",
		Message:      fmt.Sprintf("₹%.2f has been credited to your account", amount),
		BookingID:    bookingID,
	}
}

// PaymentConfirmed tells a requester their payment went through.
func PaymentConfirmed(requesterID, bookingID string, amount float64) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventPaymentConfirmed,
		Title:        "Payment Confirmed",
		Message:      fmt.Sprintf("Payment of ₹%.2f has been confirmed", amount),
		BookingID:    bookingID,
	}
}

// RatingReminder nudges a requester to review a past service.
func RatingReminder(requesterID, bookingID string) Notification {
	return Notification{
		ReceiverID:   requesterID,
		ReceiverRole: account.RoleRequester,
		Type:         EventRatingReminder,
		Title:        "Rate Your Experience",
		Message:      "Please rate and review your recent service",
		BookingID:    bookingID,
	}
}
