package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theterminalguy/wp-booking-service/internal/domain"
	"github.com/theterminalguy/wp-booking-service/pkg/ptr"
)

type fakeExecutor struct {
	queryErr error
}

func (f *fakeExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, f.queryErr
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, f.queryErr
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestListWithFilter_SerializationFailurePassesThrough(t *testing.T) {
	// Конфликт сериализации (40001) на SELECT FOR UPDATE должен дойти до
	// менеджера транзакций с нетронутой цепочкой, иначе повторы не сработают
	repo := NewRepository(&fakeExecutor{queryErr: &pq.Error{Code: "40001"}})

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.ListWithFilter(context.Background(), domain.BookingsFilter{Date: ptr.Ptr(date)})
	require.Error(t, err)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestListWithFilter_OtherErrorsWrapped(t *testing.T) {
	repo := NewRepository(&fakeExecutor{queryErr: errors.New("connection refused")})

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.ListWithFilter(context.Background(), domain.BookingsFilter{Date: ptr.Ptr(date)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestIsSerializationFailure(t *testing.T) {
	serializationErr := &pq.Error{Code: "40001"}

	assert.True(t, isSerializationFailure(serializationErr))
	assert.True(t, isSerializationFailure(errors.Join(errors.New("ctx"), serializationErr)))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("boom")))
	assert.False(t, isSerializationFailure(nil))
}
