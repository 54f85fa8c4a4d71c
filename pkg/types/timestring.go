package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayoutSeconds = "15:04:05"
	timeLayoutMinutes = "15:04"
)

// ErrInvalidTimeString возвращается при неверном формате времени суток
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток без даты в формате "HH:MM:SS"
// Хранится в postgres как TIME
type TimeString string

// NewTimeString берет время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayoutSeconds))
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := parse(s)
	if err != nil {
		return "", err
	}
	return TimeString(t.Format(timeLayoutSeconds)), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func parse(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayoutSeconds, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(timeLayoutMinutes, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := parse(string(t))
	return err
}

// Offset смещение от полуночи
func (t TimeString) Offset() time.Duration {
	parsed, err := parse(string(t))
	if err != nil {
		return 0
	}
	return time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Offset() < other.Offset()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Offset() > other.Offset()
}

// On возвращает момент с датой day и этим временем суток (в локации day)
func (t TimeString) On(day time.Time) time.Time {
	y, m, d := day.Date()
	parsed, _ := parse(string(t))
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), parsed.Second(), 0, day.Location())
}

// Scan реализует sql.Scanner для колонки TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// postgres может вернуть дробные секунды: "09:00:00.000000"
	if len(s) > len(timeLayoutSeconds) {
		s = s[:len(timeLayoutSeconds)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
