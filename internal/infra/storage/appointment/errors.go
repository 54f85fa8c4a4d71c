package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда вставка нарушила ограничение непересечения
	// или параллельная транзакция успела записать пересекающийся интервал
	ErrOverlap = errors.New("appointment.repository: overlapping appointment")

	// ErrReferenceNotFound возвращается, когда машина или мастерская не существует
	ErrReferenceNotFound = errors.New("appointment.repository: referenced car or workshop not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
