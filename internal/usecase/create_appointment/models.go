package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	CarID      int64     // ID машины
	WorkshopID int64     // ID мастерской
	StartTime  time.Time // Начало интервала (включительно)
	EndTime    time.Time // Конец интервала (не включительно)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	CarID      int64
	WorkshopID int64
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}
