package schedulecache

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/ptr"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/types"
)

func sampleRecords() []domain.BookingRecord {
	return []domain.BookingRecord{
		{
			MasterID:  "M1",
			Date:      time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			StartTime: ptr.Ptr(types.MustTimeString("09:30")),
			EndTime:   ptr.Ptr(types.MustTimeString("11:45")),
			Kind:      domain.KindOnline,
		},
		{
			MasterID: "M1",
			Date:     time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
			Kind:     domain.KindOffline,
		},
		{
			// запись без даты сохраняется как есть
			MasterID:  "M1",
			StartTime: ptr.Ptr(types.MustTimeString("07:00")),
			Kind:      domain.KindWorkshop,
		},
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	fixed := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return fixed }

	_, err := cache.Get(ctx, "M1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	records := sampleRecords()
	require.NoError(t, cache.Put(ctx, "M1", records))

	entry, err := cache.Get(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, records, entry.Records)
	assert.Equal(t, fixed, entry.UpdatedAt)

	// Изменение входного среза не влияет на кэш
	*records[0].StartTime = types.MustTimeString("15:00")
	entry, err = cache.Get(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, "09:30", entry.Records[0].StartTime.String())

	// Ключи независимы, запись перезаписывается целиком
	require.NoError(t, cache.Put(ctx, "M2", nil))
	require.NoError(t, cache.Put(ctx, "M1", sampleRecords()[:1]))
	entry, err = cache.Get(ctx, "M1")
	require.NoError(t, err)
	assert.Len(t, entry.Records, 1)
	entry, err = cache.Get(ctx, "M2")
	require.NoError(t, err)
	assert.Empty(t, entry.Records)
}

func TestEncodeDecodeEntry(t *testing.T) {
	updatedAt := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	data, err := encodeEntry(Entry{Records: sampleRecords(), UpdatedAt: updatedAt})
	require.NoError(t, err)

	entry, err := decodeEntry(data)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), entry.Records)
	assert.True(t, updatedAt.Equal(entry.UpdatedAt))

	_, err = decodeEntry([]byte(`{"records":[{"date":"20-03-2025","kind":"Online"}]}`))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	payload, err := encodeEntry(Entry{Records: sampleRecords()[:1]})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM schedule_cache WHERE cache_key = \$1`).
		WithArgs("M1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	entry, err := repo.Get(context.Background(), "M1")
	require.NoError(t, err)
	require.Len(t, entry.Records, 1)
	assert.Equal(t, domain.KindOnline, entry.Records[0].Kind)

	mock.ExpectQuery(`SELECT payload FROM schedule_cache`).
		WithArgs("M2").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err = repo.Get(context.Background(), "M2")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Put(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	fixed := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mock.ExpectExec(`INSERT INTO schedule_cache \(cache_key,payload,updated_at\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(cache_key\) DO UPDATE`).
		WithArgs("M1", sqlmock.AnyArg(), fixed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "M1", sampleRecords()))

	mock.ExpectExec(`INSERT INTO schedule_cache`).
		WillReturnError(assert.AnError)

	err = repo.Put(context.Background(), "M1", sampleRecords())
	assert.ErrorIs(t, err, ErrExecQuery)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	fixed := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mock.ExpectExec(`DELETE FROM schedule_cache WHERE updated_at < \$1`).
		WithArgs(fixed.Add(-48 * time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteOlderThan(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	ctx := context.Background()
	cache := NewRedisCache(client, time.Hour)

	_, err := cache.Get(ctx, "M1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Put(ctx, "M1", sampleRecords()))
	assert.True(t, srv.Exists("schedule:master:M1"))
	assert.Equal(t, time.Hour, srv.TTL("schedule:master:M1"))

	entry, err := cache.Get(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), entry.Records)

	srv.FastForward(2 * time.Hour)
	_, err = cache.Get(ctx, "M1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
