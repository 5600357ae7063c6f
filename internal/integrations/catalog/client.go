package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент для работы с каталогом пород
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetWoodType получает породу по коду
func (c *Client) GetWoodType(ctx context.Context, code string) (*WoodType, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: catalog base url is not configured", ErrInternal)
	}

	endpoint := fmt.Sprintf("%s/internal/wood-types/%s", c.baseURL, url.PathEscape(strings.ToLower(code)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrWoodTypeNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var woodType WoodType
	if err := json.NewDecoder(resp.Body).Decode(&woodType); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &woodType, nil
}

// GetWoodTypeLabelWithGracefulDegradation возвращает название породы.
// Неизвестная порода даёт пустое название без ошибки; при недоступности
// каталога возвращается ErrServiceDegraded, и заявка сохраняется без названия.
func (c *Client) GetWoodTypeLabelWithGracefulDegradation(ctx context.Context, code string) (string, error) {
	woodType, err := c.GetWoodType(ctx, code)
	if err != nil {
		if errors.Is(err, ErrWoodTypeNotFound) {
			c.log.Info("Wood type %q is not in the catalog", code)
			return "", nil
		}

		c.log.Error("Catalog unavailable, applying graceful degradation for wood type %q: %v", code, err)
		return "", fmt.Errorf("%w: wood_type=%s, error=%v", ErrServiceDegraded, code, err)
	}

	return woodType.Label, nil
}
