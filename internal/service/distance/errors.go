package distance

import "errors"

var (
	// ErrDistanceUnavailable возвращается, когда расстояние не удалось вычислить
	// (внешний сервис недоступен, отказал в запросе или не настроен)
	ErrDistanceUnavailable = errors.New("distance unavailable")

	// ErrUnknownMode возвращается при неизвестном режиме расчета расстояния
	ErrUnknownMode = errors.New("unknown distance calculation mode")
)
