package scheduleservice

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден в бэкенде
	ErrMasterNotFound = errors.New("scheduleservice client: master not found")

	// ErrEndpointUnavailable возвращается, когда бэкенд не поддерживает endpoint (404/405/501)
	ErrEndpointUnavailable = errors.New("scheduleservice client: endpoint unavailable")

	// ErrTransient временная ошибка (сеть, timeout, 5xx, 429) - имеет смысл повторить запрос
	ErrTransient = errors.New("scheduleservice client: transient error")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("scheduleservice client: invalid response")
)
