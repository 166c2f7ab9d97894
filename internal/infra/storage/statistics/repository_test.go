package statistics

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

func TestRepository_ListFacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	created := time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE v.manager_id = $1 ORDER BY rv.created_at DESC, rv.id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "status", "created_at", "res_id", "name", "category", "slot_date", "start_time", "end_time", "price", "full_name",
		}).AddRow(
			int64(4), "paid", created, int64(7), "Quadra 1", "tennis", date, "15:00:00", "17:00:00", []byte("100.00"), "Maria Silva",
		))

	facts, err := repo.ListFacts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, domain.ReservationPaid, facts[0].Status)
	assert.Equal(t, types.MustTimeString("15:00"), facts[0].StartTime)
	assert.Equal(t, types.MustMoney("100"), facts[0].Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListFacts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).ListFacts(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecQuery)
}
