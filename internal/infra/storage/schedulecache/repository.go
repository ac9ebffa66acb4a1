package schedulecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "schedule_cache"

// Repository кэш расписаний в PostgreSQL (таблица schedule_cache, payload в JSONB)
type Repository struct {
	db  DBExecutor
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория кэша расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Get получает последний сохранённый результат по ключу
func (r *Repository) Get(ctx context.Context, key string) (*Entry, error) {
	query, args, err := psqlbuilder.Select("payload").
		From(tableName).
		Where(squirrel.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: Get - scan payload: %v", ErrScanRow, err)
	}

	return decodeEntry(payload)
}

// Put перезаписывает результат по ключу (upsert)
func (r *Repository) Put(ctx context.Context, key string, records []domain.BookingRecord) error {
	updatedAt := r.now()
	payload, err := encodeEntry(Entry{Records: records, UpdatedAt: updatedAt})
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("cache_key", "payload", "updated_at").
		Values(key, payload, updatedAt).
		Suffix("ON CONFLICT (cache_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Put - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteOlderThan удаляет записи, не обновлявшиеся дольше maxAge
func (r *Repository) DeleteOlderThan(ctx context.Context, maxAge time.Duration) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Lt{"updated_at": r.now().Add(-maxAge)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
