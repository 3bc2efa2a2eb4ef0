package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"shelflyfe/internal/models"
	"shelflyfe/internal/monitoring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client handles requests to the remote ingredient store. Every call is a
// single round trip; there is no retry, queuing, or caching at this layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Ping checks whether the store is reachable.
func (c *Client) Ping(ctx context.Context) bool {
	err := c.call(ctx, http.MethodGet, "/get-all-ingredients", nil, nil)
	return err == nil
}

// ListIngredients fetches the full ingredient collection.
func (c *Client) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ws []wireIngredient
	if err := c.call(ctx, http.MethodGet, "/get-all-ingredients", nil, &ws); err != nil {
		return nil, err
	}
	return fromWireList(ws), nil
}

// ExpiringIngredients fetches ingredients expiring within the store's
// warning window.
func (c *Client) ExpiringIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ws []wireIngredient
	if err := c.call(ctx, http.MethodGet, "/get-expiring-ingredients", nil, &ws); err != nil {
		return nil, err
	}
	return fromWireList(ws), nil
}

// LowStockIngredients fetches ingredients below their warning threshold.
func (c *Client) LowStockIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ws []wireIngredient
	if err := c.call(ctx, http.MethodGet, "/get-low-stock-ingredients", nil, &ws); err != nil {
		return nil, err
	}
	return fromWireList(ws), nil
}

// AddIngredient creates a new ingredient in the store.
func (c *Client) AddIngredient(ctx context.Context, ing models.Ingredient) error {
	return c.call(ctx, http.MethodPost, "/add-ingredient", toPayload(ing), nil)
}

// UpdateIngredient replaces the stored record, keyed by SKU.
func (c *Client) UpdateIngredient(ctx context.Context, ing models.Ingredient) error {
	return c.call(ctx, http.MethodPut, "/update-ingredient", toPayload(ing), nil)
}

// DeleteIngredient removes the record with the given SKU.
func (c *Client) DeleteIngredient(ctx context.Context, sku string) error {
	path := "/delete-ingredient?sku=" + url.QueryEscape(sku)
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

// Resupply submits staged supplier/ingredient pairs as one batch. The store
// commits all or none; callers keep their staged list on failure.
func (c *Client) Resupply(ctx context.Context, items []models.ResupplyItem) error {
	return c.call(ctx, http.MethodPost, "/resupply-ingredient-add", toResupplyPayload(items), nil)
}

// ListMenuItems fetches all menu items.
func (c *Client) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.call(ctx, http.MethodGet, "/get-all-menu-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SubmitOrders sends a batch of entered orders keyed by menu item id.
func (c *Client) SubmitOrders(ctx context.Context, orders map[string]models.OrderCount) error {
	return c.call(ctx, http.MethodPost, "/submit-orders", orders, nil)
}

// call performs one request. A non-2xx status becomes an *Error carrying
// the server's detail message when one is present; transport failures are
// wrapped and returned as-is. out, when non-nil, receives the decoded body.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	endpoint := path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		endpoint = path[:i]
	}
	requestID := uuid.NewString()
	log := zap.S().With("endpoint", endpoint, "request_id", requestID)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		monitoring.ObserveStoreRequest(endpoint, monitoring.OutcomeTransport, elapsed)
		log.Debugw("store request failed", "error", err)
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		monitoring.ObserveStoreRequest(endpoint, monitoring.OutcomeHTTPError, elapsed)
		apiErr := &Error{Endpoint: endpoint, Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if raw, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(raw, &detail) == nil {
				apiErr.Detail = detail.Detail
			}
		}
		log.Debugw("store request rejected", "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	monitoring.ObserveStoreRequest(endpoint, monitoring.OutcomeOK, elapsed)
	log.Debugw("store request ok", "status", resp.StatusCode, "elapsed", elapsed)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", endpoint)
	}
	return nil
}
