package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент SMS-шлюза для доставки OTP кодов
type Client struct {
	baseURL    string
	httpClient *http.Client
	devMode    bool
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS-шлюза
// В dev-режиме коды пишутся в лог вместо реальной отправки
func NewClient(baseURL string, timeout time.Duration, devMode bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		devMode: devMode,
		log:     log,
	}
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendCode отправляет OTP код на номер телефона
func (c *Client) SendCode(ctx context.Context, phone, code string) error {
	if c.devMode {
		c.log.Info("[DEV MODE] OTP for %s: %s", phone, code)
		return nil
	}

	body, err := json.Marshal(sendRequest{
		Phone:   phone,
		Message: fmt.Sprintf("Код подтверждения: %s", code),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: gateway rejected phone %s", ErrDeliveryFailed, phone)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}
