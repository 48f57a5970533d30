package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (мастер-данные аттракционов и комбо)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetAttraction получает аттракцион по ID
func (c *Client) GetAttraction(ctx context.Context, attractionID int64) (*Attraction, error) {
	url := fmt.Sprintf("%s/internal/attractions/%d", c.baseURL, attractionID)

	var attraction Attraction
	if err := c.getJSON(ctx, url, &attraction, ErrAttractionNotFound); err != nil {
		return nil, err
	}
	return &attraction, nil
}

// GetCombo получает комбо-набор по ID
func (c *Client) GetCombo(ctx context.Context, comboID int64) (*Combo, error) {
	url := fmt.Sprintf("%s/internal/combos/%d", c.baseURL, comboID)

	var combo Combo
	if err := c.getJSON(ctx, url, &combo, ErrComboNotFound); err != nil {
		return nil, err
	}
	return &combo, nil
}

// GetEntity получает бронируемую сущность указанного типа.
// Ошибки "не найдено" обоих типов сводятся к ErrEntityNotFound.
func (c *Client) GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*Entity, error) {
	switch entityType {
	case domain.EntityTypeAttraction:
		attraction, err := c.GetAttraction(ctx, entityID)
		if err != nil {
			if errors.Is(err, ErrAttractionNotFound) {
				return nil, ErrEntityNotFound
			}
			return nil, err
		}
		return entityFromAttraction(attraction), nil

	case domain.EntityTypeCombo:
		combo, err := c.GetCombo(ctx, entityID)
		if err != nil {
			if errors.Is(err, ErrComboNotFound) {
				return nil, ErrEntityNotFound
			}
			return nil, err
		}
		return entityFromCombo(combo), nil

	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrInternal, entityType)
	}
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
