package get_recommendations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_recommendations: invalid input data")

	// ErrUnknownDistanceMode возвращается при неизвестном режиме расчета расстояния
	ErrUnknownDistanceMode = errors.New("get_recommendations: unknown distance calculation mode")

	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("get_recommendations: car not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_recommendations: internal error")
)
