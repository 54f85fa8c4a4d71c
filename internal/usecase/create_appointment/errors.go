package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrPastTime возвращается, когда время начала уже прошло
	ErrPastTime = errors.New("create_appointment: start time is in the past")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующей записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrCarNotFound возвращается, когда машина не найдена
	ErrCarNotFound = errors.New("create_appointment: car not found")

	// ErrWorkshopNotFound возвращается, когда мастерская не найдена
	ErrWorkshopNotFound = errors.New("create_appointment: workshop not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// ValidationError ошибка валидации конкретного поля запроса
// errors.Is(err, ErrInvalidInput) для неё истинно
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
