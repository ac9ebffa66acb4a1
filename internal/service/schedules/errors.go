package schedules

import "errors"

var (
	// ErrNotApplicable стратегия не применима к запросу, переходим к следующей без повторов
	ErrNotApplicable = errors.New("schedules: strategy not applicable")

	// ErrAllMastersFailed ни по одному мастеру не удалось получить расписание
	ErrAllMastersFailed = errors.New("schedules: all per-master fetches failed")

	// ErrCanceled запрос отменён вызывающей стороной, результат нужно отбросить
	ErrCanceled = errors.New("schedules: fetch canceled")
)
