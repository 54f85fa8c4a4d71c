package car

import "errors"

var (
	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("car.repository: car not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("car.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("car.repository: failed to scan row")
)
