package schedulecache

import "errors"

var (
	// ErrCacheMiss возвращается, когда для ключа нет записи в кэше
	ErrCacheMiss = errors.New("schedulecache: cache miss")

	// ErrEncode возвращается при ошибке сериализации записей
	ErrEncode = errors.New("schedulecache: failed to encode entry")

	// ErrDecode возвращается при ошибке десериализации записей
	ErrDecode = errors.New("schedulecache: failed to decode entry")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedulecache.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedulecache.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedulecache.repository: failed to scan row")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("schedulecache.redis: command failed")
)
