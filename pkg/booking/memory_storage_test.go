package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhelper/bookingkit/pkg/booking"
)

func seedBooking(id, requesterID, providerID string, createdAt time.Time) booking.Booking {
	return booking.Booking{
		ID:          id,
		RequesterID: requesterID,
		ProviderID:  providerID,
		Category:    booking.CategoryCleaner,
		Status:      booking.StatusRequested,
		CreatedAt:   createdAt,
	}
}

func TestMemoryStorageCreateGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := booking.NewMemoryStorage()

	b := seedBooking("b-1", "req-1", "prov-1", time.Now())
	require.NoError(t, storage.Create(ctx, b))

	got, err := storage.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, b, *got)

	_, err = storage.Get(ctx, "missing")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestMemoryStorageUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("matching expected status writes", func(t *testing.T) {
		t.Parallel()

		storage := booking.NewMemoryStorage()
		b := seedBooking("b-1", "req-1", "prov-1", time.Now())
		require.NoError(t, storage.Create(ctx, b))

		b.Status = booking.StatusAccepted
		require.NoError(t, storage.Update(ctx, b, booking.StatusRequested))

		got, err := storage.Get(ctx, "b-1")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, got.Status)
	})

	t.Run("stale expected status conflicts", func(t *testing.T) {
		t.Parallel()

		storage := booking.NewMemoryStorage()
		b := seedBooking("b-1", "req-1", "prov-1", time.Now())
		require.NoError(t, storage.Create(ctx, b))

		accepted := b
		accepted.Status = booking.StatusAccepted
		require.NoError(t, storage.Update(ctx, accepted, booking.StatusRequested))

		// Second writer still believes the booking is REQUESTED.
		cancelled := b
		cancelled.Status = booking.StatusCancelled
		err := storage.Update(ctx, cancelled, booking.StatusRequested)
		assert.ErrorIs(t, err, booking.ErrStatusConflict)

		got, err := storage.Get(ctx, "b-1")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, got.Status, "losing write must not land")
	})

	t.Run("missing booking", func(t *testing.T) {
		t.Parallel()

		storage := booking.NewMemoryStorage()
		err := storage.Update(ctx, seedBooking("ghost", "r", "p", time.Now()), booking.StatusRequested)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}

func TestMemoryStorageLists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := booking.NewMemoryStorage()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, storage.Create(ctx, seedBooking("b-1", "req-1", "prov-1", base)))
	require.NoError(t, storage.Create(ctx, seedBooking("b-2", "req-1", "prov-2", base.Add(time.Minute))))
	require.NoError(t, storage.Create(ctx, seedBooking("b-3", "req-2", "prov-1", base.Add(2*time.Minute))))

	byRequester, err := storage.ListByRequester(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, byRequester, 2)
	assert.Equal(t, "b-2", byRequester[0].ID, "newest first")
	assert.Equal(t, "b-1", byRequester[1].ID)

	byProvider, err := storage.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, byProvider, 2)
	assert.Equal(t, "b-3", byProvider[0].ID)

	empty, err := storage.ListByRequester(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
