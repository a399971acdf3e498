package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент календарного сервиса
// Сервис хранит OAuth-токены провайдера и проксирует freebusy/insert/delete,
// этот клиент о провайдере и его токенах ничего не знает
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календарного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FreeBusy возвращает занятые интервалы календаря за окно [from, to)
// Список считается полным и корректным - клиент не кэширует и не ретраит
func (c *Client) FreeBusy(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	body, err := json.Marshal(freeBusyRequest{
		CalendarID: calendarID,
		TimeMin:    from.UTC(),
		TimeMax:    to.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	resp, err := c.post(ctx, "/v1/freebusy", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var fb freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&fb); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	busy := make([]domain.BusyInterval, 0, len(fb.Busy))
	for _, b := range fb.Busy {
		busy = append(busy, domain.BusyInterval{Start: b.Start, End: b.End})
	}

	return busy, nil
}

// IsFree проверяет, что окно [from, to) свободно в календаре
func (c *Client) IsFree(ctx context.Context, calendarID string, from, to time.Time) (bool, error) {
	busy, err := c.FreeBusy(ctx, calendarID, from, to)
	if err != nil {
		return false, err
	}
	return len(busy) == 0, nil
}

// CreateEvent создает событие в календаре и возвращает его ID
// Конфликт вставки (слот заняли параллельно) возвращается как ErrSlotConflict
func (c *Client) CreateEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	body, err := json.Marshal(createEventRequest{CalendarID: calendarID, Event: event})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	resp, err := c.post(ctx, "/v1/events", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		return "", ErrSlotConflict
	default:
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var created createEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: empty event id", ErrInvalidResponse)
	}

	return created.ID, nil
}

// DeleteEvent удаляет событие из календаря
// 404 и 410 считаются успехом - событие уже удалено на стороне календаря
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := fmt.Sprintf("%s/v1/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		c.log.Warn("DeleteEvent: event %s already gone from calendar %s", eventID, calendarID)
		return nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	return resp, nil
}
