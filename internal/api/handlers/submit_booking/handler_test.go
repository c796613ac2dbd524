package submit_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/api/handlers"
	submitBooking "github.com/theterminalguy/wp-booking-service/internal/usecase/submit_booking"
	"github.com/theterminalguy/wp-booking-service/pkg/types"
)

type fakeUseCase struct {
	resp    *submitBooking.Response
	err     error
	lastReq *submitBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBody() string {
	return `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+1 555 0100",
		"bookingDate": "2025-06-10",
		"startTime": "10:00",
		"message": "please call ahead"
	}`
}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("creates booking", func(t *testing.T) {
		publicID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		uc := &fakeUseCase{resp: &submitBooking.Response{
			BookingID: publicID,
			Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("10:00"),
			Status:    "pending_approval",
			CreatedAt: time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC),
		}}

		rec := doRequest(t, uc, validBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		// HTTP слой распарсил дату и время в доменные типы
		require.NotNil(t, uc.lastReq)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), uc.lastReq.Date)
		assert.Equal(t, types.TimeString("10:00"), uc.lastReq.StartTime)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, publicID.String(), resp.BookingID)
		assert.Equal(t, "2025-06-10", resp.BookingDate)
		assert.Equal(t, "pending_approval", resp.Status)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{}, `{"name": "Jane", "unexpected": true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		body := strings.Replace(validBody(), "2025-06-10", "10.06.2025", 1)
		rec := doRequest(t, &fakeUseCase{}, body)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "date")
	})

	t.Run("malformed time", func(t *testing.T) {
		body := strings.Replace(validBody(), "10:00", "10am", 1)
		rec := doRequest(t, &fakeUseCase{}, body)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "time")
	})

	t.Run("use case errors map to statuses", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			code int
		}{
			{"slot taken", submitBooking.ErrSlotNotAvailable, http.StatusConflict},
			{"invalid slot", submitBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
			{"invalid input", submitBooking.ErrInvalidInput, http.StatusBadRequest},
			{"internal", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody())
				assert.Equal(t, tt.code, rec.Code)
			})
		}
	})
}
