package distancematrix

// Статусы ответа Distance Matrix API
const (
	StatusOK = "OK"
)

// Response ответ Distance Matrix API
type Response struct {
	Status               string   `json:"status"`
	ErrorMessage         string   `json:"error_message,omitempty"`
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []Row    `json:"rows"`
}

// Row строка матрицы (одна точка отправления)
type Row struct {
	Elements []Element `json:"elements"`
}

// Element пара отправление/назначение
type Element struct {
	Status   string `json:"status"`
	Distance *Value `json:"distance,omitempty"`
	Duration *Value `json:"duration,omitempty"`
}

// Value значение с текстовым представлением
type Value struct {
	Value float64 `json:"value"` // метры для distance, секунды для duration
	Text  string  `json:"text"`
}
