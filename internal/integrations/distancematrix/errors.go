package distancematrix

import "errors"

var (
	// ErrNoAPIKey возвращается, когда ключ API не настроен
	ErrNoAPIKey = errors.New("distancematrix client: api key is not configured")

	// ErrUnavailable возвращается, когда сервис недоступен (сеть, таймаут, лимит запросов)
	ErrUnavailable = errors.New("distancematrix client: service unavailable")

	// ErrDenied возвращается, когда сервис вернул статус, отличный от OK
	ErrDenied = errors.New("distancematrix client: request denied")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("distancematrix client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("distancematrix client: internal error")
)
