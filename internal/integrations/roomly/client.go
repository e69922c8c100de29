package roomly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/RMS-BookingGateway/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с Roomly API — внешней платформой бронирования.
// Платформа владеет всеми сущностями; клиент только читает снапшоты
// и отправляет мутации.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Roomly API
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListScheduleBlocks получает блоки расписания и конверт дат ресурса.
// 404 трактуется как "расписания нет" и возвращает пустой ответ —
// отсутствие расписания не ошибка, а рабочий случай для секвенсора.
func (c *Client) ListScheduleBlocks(ctx context.Context, resourceID int64) (*ScheduleResponse, error) {
	url := fmt.Sprintf("%s/api/resources/%d/schedule-blocks", c.baseURL, resourceID)

	var out ScheduleResponse
	err := c.doJSON(ctx, http.MethodGet, url, nil, &out)
	if err != nil {
		if IsKind(err, KindNotFound) {
			return &ScheduleResponse{}, nil
		}
		return nil, err
	}

	return &out, nil
}

// CreateScheduleBlock создает блок расписания для ресурса.
// Ошибка с категорией KindScheduleCollision означает, что покрытие
// уже существует — вызывающая сторона трактует это как успех.
func (c *Client) CreateScheduleBlock(ctx context.Context, resourceID int64, req CreateScheduleBlockRequest) (*ScheduleBlock, error) {
	url := fmt.Sprintf("%s/api/resources/%d/schedule-blocks", c.baseURL, resourceID)

	var out ScheduleBlock
	if err := c.doJSON(ctx, http.MethodPost, url, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateRecurringSchedule создает недельный блок для конкретного дня недели
func (c *Client) CreateRecurringSchedule(ctx context.Context, resourceID int64, req CreateRecurringScheduleRequest) (*RecurringSchedule, error) {
	url := fmt.Sprintf("%s/api/resources/%d/recurring-schedules", c.baseURL, resourceID)

	var out RecurringSchedule
	if err := c.doJSON(ctx, http.MethodPost, url, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AssociateOffering привязывает услугу к ресурсу. Любой 2xx считается успехом.
func (c *Client) AssociateOffering(ctx context.Context, offeringID, resourceID int64) error {
	url := fmt.Sprintf("%s/api/services/%d/resources/%d", c.baseURL, offeringID, resourceID)
	return c.doJSON(ctx, http.MethodPost, url, nil, nil)
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	url := fmt.Sprintf("%s/api/bookings", c.baseURL)

	var out Booking
	if err := c.doJSON(ctx, http.MethodPost, url, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CancelBooking отменяет бронирование
func (c *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	url := fmt.Sprintf("%s/api/bookings/%d/cancel", c.baseURL, bookingID)
	return c.doJSON(ctx, http.MethodPatch, url, nil, nil)
}

// ListBookings получает бронирования ресурса на дату
func (c *Client) ListBookings(ctx context.Context, resourceID int64, date time.Time) ([]Booking, error) {
	url := fmt.Sprintf("%s/api/resources/%d/bookings?date=%s",
		c.baseURL, resourceID, date.Format(domain.DateFormat))

	var out struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}

	return out.Bookings, nil
}

// GetResource получает ресурс по ID
func (c *Client) GetResource(ctx context.Context, resourceID int64) (*Resource, error) {
	url := fmt.Sprintf("%s/api/resources/%d", c.baseURL, resourceID)

	var out Resource
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetOffering получает услугу по ID
func (c *Client) GetOffering(ctx context.Context, offeringID int64) (*Offering, error) {
	url := fmt.Sprintf("%s/api/services/%d", c.baseURL, offeringID)

	var out Offering
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetLocation получает локацию по ID (в том числе имя таймзоны IANA)
func (c *Client) GetLocation(ctx context.Context, locationID int64) (*Location, error) {
	url := fmt.Sprintf("%s/api/locations/%d", c.baseURL, locationID)

	var out Location
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// doJSON выполняет запрос с JSON-телом и разбирает JSON-ответ.
// Не-2xx ответы классифицируются в *APIError через classify.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// apiError читает тело ошибки и классифицирует его.
// Если тело не разбирается как ErrorResponse, сырой текст уходит в Message.
func (c *Client) apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var errResp ErrorResponse
	message := string(raw)
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	apiErr := classify(resp.StatusCode, message)
	c.log.Warn("Roomly API error: kind=%s status=%d message=%q", apiErr.Kind, apiErr.StatusCode, apiErr.Message)
	return apiErr
}
