package booking_test

import (
	"testing"

	"courierhub/internal/core/domain/model/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	t.Run("happy path runs requested to confirmed", func(t *testing.T) {
		status := booking.Requested

		status, err := status.Authenticate()
		require.NoError(t, err)
		assert.Equal(t, booking.Authenticating, status)

		status, err = status.Book()
		require.NoError(t, err)
		assert.Equal(t, booking.BookingInProgress, status)

		status, err = status.Confirm()
		require.NoError(t, err)
		assert.Equal(t, booking.Confirmed, status)
	})

	t.Run("degrade is allowed while authenticating", func(t *testing.T) {
		status, err := booking.Authenticating.Degrade()

		require.NoError(t, err)
		assert.Equal(t, booking.Degraded, status)
	})

	t.Run("degrade is allowed while booking", func(t *testing.T) {
		status, err := booking.BookingInProgress.Degrade()

		require.NoError(t, err)
		assert.Equal(t, booking.Degraded, status)
	})

	t.Run("degrade is rejected from requested", func(t *testing.T) {
		_, err := booking.Requested.Degrade()

		require.Error(t, err)
	})

	t.Run("confirm requires booking in progress", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.Requested, booking.Authenticating, booking.Confirmed, booking.Degraded, booking.Failed,
		} {
			_, err := status.Confirm()
			require.Error(t, err, "status %s", status)
		}
	})

	t.Run("fail works from any non-final state", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.Requested, booking.Authenticating, booking.BookingInProgress,
		} {
			got, err := status.Fail()
			require.NoError(t, err, "status %s", status)
			assert.Equal(t, booking.Failed, got)
		}
	})

	t.Run("final states permit no transitions", func(t *testing.T) {
		for _, status := range []booking.Status{booking.Confirmed, booking.Degraded, booking.Failed} {
			assert.True(t, status.IsFinal(), "status %s", status)

			_, err := status.Authenticate()
			require.Error(t, err)

			_, err = status.Book()
			require.Error(t, err)

			_, err = status.Degrade()
			require.Error(t, err)

			_, err = status.Fail()
			require.Error(t, err)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate known statuses", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.Requested, booking.Authenticating, booking.BookingInProgress,
			booking.Confirmed, booking.Degraded, booking.Failed,
		} {
			require.NoError(t, status.Validate())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		require.Error(t, booking.UnknownStatus.Validate())
		require.Error(t, booking.Status(42).Validate())
	})
}
