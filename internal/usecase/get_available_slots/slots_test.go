package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

// 2025-06-10 - вторник
var (
	testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	// "сейчас" достаточно рано, чтобы не задевать буфер в 24 часа
	testNow = time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
)

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("full working day with default config", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig() // 09:00-17:00, шаг 30

		slots, err := generateTimeSlots(cfg, testDate, testNow)
		require.NoError(t, err)

		require.Len(t, slots, 16)
		assert.Equal(t, types.TimeString("09:00"), slots[0])
		assert.Equal(t, types.TimeString("09:30"), slots[1])
		assert.Equal(t, types.TimeString("16:30"), slots[15])
	})

	t.Run("partial tail slot is dropped", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig()
		cfg.SlotDurationMinutes = 45 // 09:00-17:00 вмещает 10 слотов по 45 минут, хвост 30 минут

		slots, err := generateTimeSlots(cfg, testDate, testNow)
		require.NoError(t, err)

		require.Len(t, slots, 10)
		assert.Equal(t, types.TimeString("15:45"), slots[9])
		// 16:30 + 45 вышло бы за 17:00
	})

	t.Run("unavailable weekday gives no slots", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig() // понедельник - пятница

		saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
		slots, err := generateTimeSlots(cfg, saturday, testNow)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("past date gives no slots", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig()

		yesterday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		slots, err := generateTimeSlots(cfg, yesterday, testNow)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("booking buffer blocks near dates", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig()
		cfg.BookingBufferHours = 24

		// За 12 часов до начала дня - буфер нарушен
		now := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
		slots, err := generateTimeSlots(cfg, testDate, now)
		require.NoError(t, err)
		assert.Empty(t, slots)

		// Буфер сравнивается с началом дня, не со временем слота
		now = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
		slots, err = generateTimeSlots(cfg, testDate, now)
		require.NoError(t, err)
		assert.NotEmpty(t, slots)
	})

	t.Run("zero buffer allows same day", func(t *testing.T) {
		cfg := domain.DefaultScheduleConfig()
		cfg.BookingBufferHours = 0

		now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		slots, err := generateTimeSlots(cfg, testDate, now)
		require.NoError(t, err)
		assert.Len(t, slots, 16)
	})
}

func TestFilterBookedSlots(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}

	booking := func(startTime string, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			BookingDate: testDate,
			StartTime:   types.TimeString(startTime),
			Status:      status,
		}
	}

	t.Run("active bookings block their slots", func(t *testing.T) {
		bookings := []*domain.Booking{
			booking("09:30", domain.StatusPendingApproval),
			booking("10:00", domain.StatusApproved),
		}

		available := filterBookedSlots(candidates, bookings)
		assert.Equal(t, []types.TimeString{"09:00", "10:30"}, available)
	})

	t.Run("inactive bookings do not block", func(t *testing.T) {
		bookings := []*domain.Booking{
			booking("09:30", domain.StatusRejected),
			booking("10:00", domain.StatusCancelled),
		}

		available := filterBookedSlots(candidates, bookings)
		assert.Equal(t, candidates, available)
	})

	t.Run("no bookings leaves all candidates", func(t *testing.T) {
		available := filterBookedSlots(candidates, nil)
		assert.Equal(t, candidates, available)
	})

	t.Run("does not mutate candidates", func(t *testing.T) {
		bookings := []*domain.Booking{booking("09:00", domain.StatusApproved)}

		_ = filterBookedSlots(candidates, bookings)
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30"}, candidates)
	})
}
