package distancematrix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DefaultBaseURL адрес Google Distance Matrix API
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для Distance Matrix API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента
// requestsPerSecond <= 0 отключает ограничение частоты запросов
func NewClient(baseURL, apiKey string, timeout time.Duration, requestsPerSecond float64, burst int, log Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// HasAPIKey сообщает, настроен ли ключ API
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// GetDistance возвращает расстояние по дорогам в метрах
func (c *Client) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	if !c.HasAPIKey() {
		return 0, ErrNoAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("origins", origin.String())
	query.Set("destinations", destination.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("DistanceMatrix: request failed origin=%s destination=%s: %v", origin, destination, err)
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if payload.Status != StatusOK {
		reason := payload.ErrorMessage
		if reason == "" {
			reason = payload.Status
		}
		c.log.Warn("DistanceMatrix: status=%s message=%s", payload.Status, payload.ErrorMessage)
		return 0, fmt.Errorf("%w: %s", ErrDenied, reason)
	}

	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty rows", ErrInvalidResponse)
	}

	element := payload.Rows[0].Elements[0]
	if element.Status != StatusOK {
		return 0, fmt.Errorf("%w: element status %s", ErrDenied, element.Status)
	}
	if element.Distance == nil {
		return 0, fmt.Errorf("%w: missing distance", ErrInvalidResponse)
	}

	return element.Distance.Value, nil
}
