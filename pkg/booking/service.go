package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quickhelper/bookingkit/pkg/account"
	"github.com/quickhelper/bookingkit/pkg/logger"
	"github.com/quickhelper/bookingkit/pkg/notify"
)

// Notifier dispatches a notification to its receiver. Satisfied by
// *notify.Dispatcher.
type Notifier interface {
	Send(ctx context.Context, n notify.Notification) (*notify.Notification, error)
}

// Placeholder until pricing is wired to real quotes.
const defaultServiceAmount = 100.0

// Service drives booking lifecycle transitions and their notification
// fan-out. All state changes go through Storage compare-and-swap updates, so
// concurrent transitions on one booking serialize: one wins, the others fail
// with an InvalidTransitionError naming the fresh status.
type Service struct {
	storage       Storage
	resolver      account.Resolver
	notifier      Notifier
	logger        *slog.Logger
	now           func() time.Time
	serviceAmount float64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for transition and notification diagnostics.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithServiceAmount sets the amount used for payment and earnings
// notifications.
func WithServiceAmount(amount float64) ServiceOption {
	return func(s *Service) {
		if amount > 0 {
			s.serviceAmount = amount
		}
	}
}

// NewService creates a booking service.
func NewService(storage Storage, resolver account.Resolver, notifier Notifier, opts ...ServiceOption) *Service {
	s := &Service{
		storage:       storage,
		resolver:      resolver,
		notifier:      notifier,
		logger:        slog.New(slog.DiscardHandler),
		now:           time.Now,
		serviceAmount: defaultServiceAmount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a booking in REQUESTED state and notifies both parties: the
// provider gets a high-priority request, the requester a confirmation.
func (s *Service) Create(ctx context.Context, requesterID, providerID string, category Category, note string) (*Booking, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	requester, err := s.resolver.Resolve(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("resolve requester %s: %w", requesterID, err)
	}
	if requester.Role != account.RoleRequester {
		return nil, fmt.Errorf("%w: only requesters can create bookings", ErrInvalidRole)
	}

	provider, err := s.resolver.Resolve(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("resolve provider %s: %w", providerID, err)
	}
	if provider.Role != account.RoleProvider {
		return nil, fmt.Errorf("%w: selected account is not a provider", ErrInvalidRole)
	}

	b := Booking{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ProviderID:  providerID,
		Category:    category,
		Status:      StatusRequested,
		Note:        note,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.storage.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "booking requested",
		logger.BookingID(b.ID),
		logger.Status(b.Status),
	)

	s.send(ctx, notify.NewBookingRequest(providerID, b.ID, string(category)))
	s.send(ctx, notify.BookingRequestSent(requesterID, b.ID, provider.DisplayName))

	return &b, nil
}

// Get returns a booking by id.
func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.storage.Get(ctx, id)
}

// Accept moves a REQUESTED booking to ACCEPTED, stamps the acceptance time,
// and notifies both parties.
func (s *Service) Accept(ctx context.Context, id string) (*Booking, error) {
	b, err := s.transition(ctx, id, "accept", StatusAccepted, func(b *Booking) {
		t := s.now().UTC()
		b.AcceptedAt = &t
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.BookingAccepted(b.RequesterID, b.ID, s.displayName(ctx, b.ProviderID)))
	s.send(ctx, notify.JobAccepted(b.ProviderID, b.ID, s.displayName(ctx, b.RequesterID)))

	return b, nil
}

// Reject moves a REQUESTED booking to REJECTED and notifies the requester.
func (s *Service) Reject(ctx context.Context, id string) (*Booking, error) {
	b, err := s.transition(ctx, id, "reject", StatusRejected, nil)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.BookingRejected(b.RequesterID, b.ID, s.displayName(ctx, b.ProviderID)))

	return b, nil
}

// Cancel moves a REQUESTED or ACCEPTED booking to CANCELLED. Only a
// requester-initiated cancellation notifies the provider; providers backing
// out are not announced to themselves.
func (s *Service) Cancel(ctx context.Context, id string, initiator account.Role) (*Booking, error) {
	if !initiator.Valid() {
		return nil, fmt.Errorf("%w: unknown initiator role %q", ErrInvalidRole, initiator)
	}

	b, err := s.transition(ctx, id, "cancel", StatusCancelled, nil)
	if err != nil {
		return nil, err
	}

	if initiator == account.RoleRequester {
		s.send(ctx, notify.BookingCancelled(b.ProviderID, b.ID, s.displayName(ctx, b.RequesterID)))
	}

	return b, nil
}

// Complete moves an ACCEPTED booking to COMPLETED, stamps the completion
// time, and notifies both parties, crediting the provider's earnings.
func (s *Service) Complete(ctx context.Context, id string) (*Booking, error) {
	b, err := s.transition(ctx, id, "complete", StatusCompleted, func(b *Booking) {
		t := s.now().UTC()
		b.CompletedAt = &t
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.ServiceCompleted(b.RequesterID, b.ID))
	s.send(ctx, notify.JobCompleted(b.ProviderID, b.ID, s.displayName(ctx, b.RequesterID)))
	s.send(ctx, notify.EarningsCredited(b.ProviderID, b.ID, s.serviceAmount))

	return b, nil
}

// ProviderOnWay tells the requester their provider is en route. The booking
// must be ACCEPTED; the status itself does not change.
func (s *Service) ProviderOnWay(ctx context.Context, id string) (*Booking, error) {
	b, err := s.requireStatus(ctx, id, "flag the provider en route for", StatusAccepted)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.ProviderOnWay(b.RequesterID, b.ID, s.displayName(ctx, b.ProviderID)))

	return b, nil
}

// StartService tells the requester work has begun. The booking must be
// ACCEPTED; the status itself does not change.
func (s *Service) StartService(ctx context.Context, id string) (*Booking, error) {
	b, err := s.requireStatus(ctx, id, "start service on", StatusAccepted)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.ServiceStarted(b.RequesterID, b.ID, s.displayName(ctx, b.ProviderID)))

	return b, nil
}

// ConfirmPayment tells the requester their payment went through. The booking
// must be COMPLETED; the status itself does not change.
func (s *Service) ConfirmPayment(ctx context.Context, id string) (*Booking, error) {
	b, err := s.requireStatus(ctx, id, "confirm payment for", StatusCompleted)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.PaymentConfirmed(b.RequesterID, b.ID, s.serviceAmount))

	return b, nil
}

// RemindRating nudges the requester to rate a COMPLETED booking.
func (s *Service) RemindRating(ctx context.Context, id string) (*Booking, error) {
	b, err := s.requireStatus(ctx, id, "send a rating reminder for", StatusCompleted)
	if err != nil {
		return nil, err
	}

	s.send(ctx, notify.RatingReminder(b.RequesterID, b.ID))

	return b, nil
}

// ListByRequester returns a requester's bookings, newest first.
func (s *Service) ListByRequester(ctx context.Context, requesterID string) ([]Booking, error) {
	if _, err := s.resolver.Resolve(ctx, requesterID); err != nil {
		return nil, fmt.Errorf("resolve requester %s: %w", requesterID, err)
	}
	return s.storage.ListByRequester(ctx, requesterID)
}

// ListByProvider returns a provider's bookings, newest first.
func (s *Service) ListByProvider(ctx context.Context, providerID string) ([]Booking, error) {
	if _, err := s.resolver.Resolve(ctx, providerID); err != nil {
		return nil, fmt.Errorf("resolve provider %s: %w", providerID, err)
	}
	return s.storage.ListByProvider(ctx, providerID)
}

// transition applies a state change through a compare-and-swap update. On a
// CAS conflict it re-reads the booking so the error names the status the
// concurrent winner left behind.
func (s *Service) transition(ctx context.Context, id, op string, to Status, mutate func(*Booking)) (*Booking, error) {
	b, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, to) {
		return nil, &InvalidTransitionError{Op: op, Current: b.Status}
	}

	expected := b.Status
	b.Status = to
	if mutate != nil {
		mutate(b)
	}

	if err := s.storage.Update(ctx, *b, expected); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			if fresh, getErr := s.storage.Get(ctx, id); getErr == nil {
				return nil, &InvalidTransitionError{Op: op, Current: fresh.Status}
			}
			return nil, err
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "booking status changed",
		logger.BookingID(b.ID),
		logger.Status(b.Status),
	)

	return b, nil
}

// requireStatus guards the non-mutating signal operations.
func (s *Service) requireStatus(ctx context.Context, id, op string, want Status) (*Booking, error) {
	b, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != want {
		return nil, &InvalidTransitionError{Op: op, Current: b.Status}
	}
	return b, nil
}

// send dispatches a notification without letting a failure reach the caller:
// by this point the state change is already durable.
func (s *Service) send(ctx context.Context, n notify.Notification) {
	if _, err := s.notifier.Send(ctx, n); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "booking notification failed",
			logger.BookingID(n.BookingID),
			logger.ReceiverID(n.ReceiverID),
			logger.Role(n.ReceiverRole),
			logger.EventType(string(n.Type)),
			logger.Error(err),
		)
	}
}

// displayName resolves an account's display name for message rendering.
// Resolution failures fall back to the raw id: the transition is already
// committed, so a missing name must not fail the operation.
func (s *Service) displayName(ctx context.Context, id string) string {
	acc, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "display name lookup failed",
			logger.Error(err),
		)
		return id
	}
	return acc.DisplayName
}
