package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhelper/bookingkit/pkg/account"
	"github.com/quickhelper/bookingkit/pkg/booking"
	"github.com/quickhelper/bookingkit/pkg/notify"
)

type fixture struct {
	svc           *booking.Service
	bookings      *booking.MemoryStorage
	notifications *notify.MemoryStorage
	dispatcher    *notify.Dispatcher
	resolver      *account.MemoryResolver
}

func newFixture(t *testing.T, opts ...booking.ServiceOption) *fixture {
	t.Helper()

	resolver := account.NewMemoryResolver()
	resolver.Add(account.Account{ID: "req-1", Role: account.RoleRequester, DisplayName: "Alice"})
	resolver.Add(account.Account{ID: "req-2", Role: account.RoleRequester, DisplayName: "Bob"})
	resolver.Add(account.Account{ID: "prov-1", Role: account.RoleProvider, DisplayName: "Pat"})

	notifications := notify.NewMemoryStorage()
	dispatcher := notify.NewDispatcher(notifications, notify.NoopDeliverer{}, resolver)
	t.Cleanup(func() { _ = dispatcher.Close() })

	bookings := booking.NewMemoryStorage()
	return &fixture{
		svc:           booking.NewService(bookings, resolver, dispatcher, opts...),
		bookings:      bookings,
		notifications: notifications,
		dispatcher:    dispatcher,
		resolver:      resolver,
	}
}

func (f *fixture) inbox(t *testing.T, receiverID string, role account.Role) []notify.Notification {
	t.Helper()
	list, err := f.notifications.List(context.Background(), receiverID, role, notify.ListOptions{})
	require.NoError(t, err)
	return list
}

func (f *fixture) requested(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), "req-1", "prov-1", booking.CategoryCleaner, "keys under the mat")
	require.NoError(t, err)
	return b
}

func (f *fixture) accepted(t *testing.T) *booking.Booking {
	t.Helper()
	b := f.requested(t)
	accepted, err := f.svc.Accept(context.Background(), b.ID)
	require.NoError(t, err)
	return accepted
}

func (f *fixture) completed(t *testing.T) *booking.Booking {
	t.Helper()
	b := f.accepted(t)
	completed, err := f.svc.Complete(context.Background(), b.ID)
	require.NoError(t, err)
	return completed
}

func findByType(list []notify.Notification, eventType notify.EventType) *notify.Notification {
	for _, n := range list {
		if n.Type == eventType {
			return &n
		}
	}
	return nil
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("opens a REQUESTED booking and notifies both parties", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b, err := f.svc.Create(context.Background(), "req-1", "prov-1", booking.CategoryPlumber, "leaking sink")
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, booking.StatusRequested, b.Status)
		assert.Equal(t, "leaking sink", b.Note)
		assert.False(t, b.CreatedAt.IsZero())
		assert.Nil(t, b.AcceptedAt)
		assert.Nil(t, b.CompletedAt)

		request := findByType(f.inbox(t, "prov-1", account.RoleProvider), notify.EventNewBookingRequest)
		require.NotNil(t, request)
		assert.Equal(t, "You have received a new PLUMBER service request", request.Message)
		assert.True(t, request.HighPriority)
		assert.Equal(t, b.ID, request.BookingID)

		confirmation := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventBookingRequestSent)
		require.NotNil(t, confirmation)
		assert.Equal(t, "Your booking request has been sent to Pat", confirmation.Message)
		assert.False(t, confirmation.HighPriority)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), "req-1", "prov-1", "GARDENER", "")
		assert.ErrorIs(t, err, booking.ErrInvalidCategory)
	})

	t.Run("rejects a provider creating a booking", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), "prov-1", "prov-1", booking.CategoryCleaner, "")
		assert.ErrorIs(t, err, booking.ErrInvalidRole)
	})

	t.Run("rejects a requester as the target provider", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), "req-1", "req-2", booking.CategoryCleaner, "")
		assert.ErrorIs(t, err, booking.ErrInvalidRole)
	})

	t.Run("rejects unknown parties", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Create(context.Background(), "ghost", "prov-1", booking.CategoryCleaner, "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)

		_, err = f.svc.Create(context.Background(), "req-1", "ghost", booking.CategoryCleaner, "")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestServiceAccept(t *testing.T) {
	t.Parallel()

	t.Run("moves REQUESTED to ACCEPTED and notifies both sides", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		accepted, err := f.svc.Accept(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, accepted.Status)
		require.NotNil(t, accepted.AcceptedAt)

		toRequester := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventBookingAccepted)
		require.NotNil(t, toRequester)
		assert.Equal(t, "Pat has accepted your booking request", toRequester.Message)

		toProvider := findByType(f.inbox(t, "prov-1", account.RoleProvider), notify.EventJobAccepted)
		require.NotNil(t, toProvider)
		assert.Equal(t, "You have accepted the booking request from Alice", toProvider.Message)
	})

	t.Run("cannot accept twice", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		_, err := f.svc.Accept(context.Background(), b.ID)
		require.True(t, booking.IsInvalidTransition(err))
		assert.EqualError(t, err, "cannot accept a ACCEPTED booking")
	})

	t.Run("unknown booking", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Accept(context.Background(), "missing")
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}

func TestServiceReject(t *testing.T) {
	t.Parallel()

	t.Run("moves REQUESTED to REJECTED with a high-priority notice", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		rejected, err := f.svc.Reject(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected, rejected.Status)
		assert.Nil(t, rejected.AcceptedAt)

		n := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventBookingRejected)
		require.NotNil(t, n)
		assert.Equal(t, "Pat has rejected your booking request", n.Message)
		assert.True(t, n.HighPriority)
	})

	t.Run("cannot reject an accepted booking", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		_, err := f.svc.Reject(context.Background(), b.ID)
		require.True(t, booking.IsInvalidTransition(err))
		assert.EqualError(t, err, "cannot reject a ACCEPTED booking")
	})
}

func TestServiceCancel(t *testing.T) {
	t.Parallel()

	t.Run("requester-initiated cancel notifies the provider", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		cancelled, err := f.svc.Cancel(context.Background(), b.ID, account.RoleRequester)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status)

		n := findByType(f.inbox(t, "prov-1", account.RoleProvider), notify.EventBookingCancelled)
		require.NotNil(t, n)
		assert.Equal(t, "Alice has cancelled the booking", n.Message)
		assert.True(t, n.HighPriority)
	})

	t.Run("provider-initiated cancel stays silent", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		_, err := f.svc.Cancel(context.Background(), b.ID, account.RoleProvider)
		require.NoError(t, err)

		assert.Nil(t, findByType(f.inbox(t, "prov-1", account.RoleProvider), notify.EventBookingCancelled))
	})

	t.Run("terminal bookings cannot be cancelled", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.completed(t)

		_, err := f.svc.Cancel(context.Background(), b.ID, account.RoleRequester)
		require.True(t, booking.IsInvalidTransition(err))
		assert.EqualError(t, err, "cannot cancel a COMPLETED booking")

		rejected := f.requested(t)
		_, err = f.svc.Reject(context.Background(), rejected.ID)
		require.NoError(t, err)
		_, err = f.svc.Cancel(context.Background(), rejected.ID, account.RoleRequester)
		assert.EqualError(t, err, "cannot cancel a REJECTED booking")

		cancelled := f.requested(t)
		_, err = f.svc.Cancel(context.Background(), cancelled.ID, account.RoleRequester)
		require.NoError(t, err)
		_, err = f.svc.Cancel(context.Background(), cancelled.ID, account.RoleRequester)
		assert.EqualError(t, err, "cannot cancel a CANCELLED booking")
	})

	t.Run("unknown initiator role", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		_, err := f.svc.Cancel(context.Background(), b.ID, "ADMIN")
		assert.ErrorIs(t, err, booking.ErrInvalidRole)
	})
}

func TestServiceComplete(t *testing.T) {
	t.Parallel()

	t.Run("moves ACCEPTED to COMPLETED and fans out three notices", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		completed, err := f.svc.Complete(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status)
		require.NotNil(t, completed.CompletedAt)

		done := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventServiceCompleted)
		require.NotNil(t, done)
		assert.Equal(t, "Your service has been completed. Please rate your experience.", done.Message)

		providerInbox := f.inbox(t, "prov-1", account.RoleProvider)
		job := findByType(providerInbox, notify.EventJobCompleted)
		require.NotNil(t, job)
		assert.Equal(t, "You have completed the service for Alice", job.Message)

		earnings := findByType(providerInbox, notify.EventEarningsCredited)
		require.NotNil(t, earnings)
		assert.Equal(t, "₹100.00 has been credited to your account", earnings.Message)
	})

	t.Run("cannot complete a REQUESTED booking", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		_, err := f.svc.Complete(context.Background(), b.ID)
		require.True(t, booking.IsInvalidTransition(err))
		assert.EqualError(t, err, "cannot complete a REQUESTED booking")
	})

	t.Run("custom amount flows into money notices", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, booking.WithServiceAmount(249.5))
		b := f.accepted(t)

		_, err := f.svc.Complete(context.Background(), b.ID)
		require.NoError(t, err)

		earnings := findByType(f.inbox(t, "prov-1", account.RoleProvider), notify.EventEarningsCredited)
		require.NotNil(t, earnings)
		assert.Equal(t, "₹249.50 has been credited to your account", earnings.Message)
	})
}

func TestServiceSignals(t *testing.T) {
	t.Parallel()

	t.Run("provider on way requires ACCEPTED and keeps the status", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		got, err := f.svc.ProviderOnWay(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, got.Status)

		n := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventProviderOnWay)
		require.NotNil(t, n)
		assert.Equal(t, "Pat is on the way to your location", n.Message)

		stored, err := f.svc.Get(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, stored.Status)
	})

	t.Run("start service requires ACCEPTED", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.accepted(t)

		_, err := f.svc.StartService(context.Background(), b.ID)
		require.NoError(t, err)

		n := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventServiceStarted)
		require.NotNil(t, n)
		assert.Equal(t, "Pat has started the service", n.Message)
	})

	t.Run("signals outside ACCEPTED fail with the current status", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.requested(t)

		_, err := f.svc.ProviderOnWay(context.Background(), b.ID)
		assert.EqualError(t, err, "cannot flag the provider en route for a REQUESTED booking")

		_, err = f.svc.StartService(context.Background(), b.ID)
		assert.EqualError(t, err, "cannot start service on a REQUESTED booking")
	})

	t.Run("confirm payment requires COMPLETED", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.completed(t)

		_, err := f.svc.ConfirmPayment(context.Background(), b.ID)
		require.NoError(t, err)

		n := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventPaymentConfirmed)
		require.NotNil(t, n)
		assert.Equal(t, "Payment of ₹100.00 has been confirmed", n.Message)

		pending := f.accepted(t)
		_, err = f.svc.ConfirmPayment(context.Background(), pending.ID)
		assert.EqualError(t, err, "cannot confirm payment for a ACCEPTED booking")
	})

	t.Run("rating reminder requires COMPLETED", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		b := f.completed(t)

		_, err := f.svc.RemindRating(context.Background(), b.ID)
		require.NoError(t, err)

		n := findByType(f.inbox(t, "req-1", account.RoleRequester), notify.EventRatingReminder)
		require.NotNil(t, n)
		assert.Equal(t, "Please rate and review your recent service", n.Message)
	})
}

func TestServiceLists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	first := f.requested(t)
	second, err := f.svc.Create(ctx, "req-2", "prov-1", booking.CategoryLaundry, "")
	require.NoError(t, err)

	byRequester, err := f.svc.ListByRequester(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, byRequester, 1)
	assert.Equal(t, first.ID, byRequester[0].ID)

	byProvider, err := f.svc.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, byProvider, 2)
	ids := []string{byProvider[0].ID, byProvider[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	_, err = f.svc.ListByRequester(ctx, "ghost")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

type failingNotifier struct{}

func (failingNotifier) Send(ctx context.Context, n notify.Notification) (*notify.Notification, error) {
	return nil, errors.New("notification store down")
}

func TestServiceNotificationFailureDoesNotBlockTransition(t *testing.T) {
	t.Parallel()

	resolver := account.NewMemoryResolver()
	resolver.Add(account.Account{ID: "req-1", Role: account.RoleRequester, DisplayName: "Alice"})
	resolver.Add(account.Account{ID: "prov-1", Role: account.RoleProvider, DisplayName: "Pat"})

	svc := booking.NewService(booking.NewMemoryStorage(), resolver, failingNotifier{})

	b, err := svc.Create(context.Background(), "req-1", "prov-1", booking.CategoryOther, "")
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusAccepted, accepted.Status)
}

func TestServiceConcurrentTransitions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	b := f.requested(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.svc.Accept(context.Background(), b.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.svc.Cancel(context.Background(), b.ID, account.RoleProvider)
	}()
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, booking.IsInvalidTransition(err), "loser must see an invalid transition, got %v", err)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two concurrent transitions must lose")

	stored, err := f.svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Contains(t, []booking.Status{booking.StatusAccepted, booking.StatusCancelled}, stored.Status)
}

func TestServiceClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	f := newFixture(t, booking.WithClock(func() time.Time { return fixed }))

	b := f.requested(t)
	assert.Equal(t, fixed, b.CreatedAt)

	accepted, err := f.svc.Accept(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted.AcceptedAt)
	assert.Equal(t, fixed, *accepted.AcceptedAt)

	completed, err := f.svc.Complete(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, fixed, *completed.CompletedAt)
}
