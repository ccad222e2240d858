package erp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/altenburg/minierp/internal/config"
	"github.com/altenburg/minierp/internal/domain/models"
)

// Client exposes the remote product store operations used by the sync
// engine. Every call supplies the auth header for the current session, so
// the client itself stays credential-free.
type Client interface {
	List(ctx context.Context, authHeader string) ([]models.Product, error)
	Search(ctx context.Context, authHeader, name string) ([]models.Product, error)
	Create(ctx context.Context, authHeader string, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, authHeader string, id int64, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, authHeader string, id int64) error
	Invoice(ctx context.Context, authHeader string) ([]byte, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a product store client from the provided configuration.
func NewClient(cfg config.APIConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base + "/api/products").
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	restyClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &APIClient{httpClient: restyClient}
}

// validationPayload mirrors the remote store's create rejection body.
type validationPayload struct {
	Errors map[string]string `json:"errors"`
}

// List fetches the full unfiltered inventory.
func (c *APIClient) List(ctx context.Context, authHeader string) ([]models.Product, error) {
	var products []models.Product

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		SetResult(&products).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}
	return products, nil
}

// Search fetches the inventory scoped by a case-insensitive name substring.
func (c *APIClient) Search(ctx context.Context, authHeader, name string) ([]models.Product, error) {
	var products []models.Product

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		SetQueryParam("name", name).
		SetResult(&products).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}
	return products, nil
}

// Create submits a new product and returns the stored record with its
// server-assigned id.
func (c *APIClient) Create(ctx context.Context, authHeader string, input models.ProductInput) (*models.Product, error) {
	created := new(models.Product)
	rejection := new(validationPayload)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		SetBody(input).
		SetResult(created).
		SetError(rejection).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrAuthDenied
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		if len(rejection.Errors) > 0 {
			return nil, &ValidationError{Fields: rejection.Errors}
		}
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	return created, nil
}

// Update submits a full replacement for the product with the given id.
func (c *APIClient) Update(ctx context.Context, authHeader string, id int64, input models.ProductInput) (*models.Product, error) {
	updated := new(models.Product)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		SetBody(input).
		SetResult(updated).
		Put(fmt.Sprintf("/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product with the given id.
func (c *APIClient) Delete(ctx context.Context, authHeader string, id int64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		Delete(fmt.Sprintf("/%d", id))
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	return classifyStatus(resp)
}

// Invoice fetches the generated delivery-note document for the current
// inventory snapshot.
func (c *APIClient) Invoice(ctx context.Context, authHeader string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", authHeader).
		Get("/invoice")
	if err != nil {
		return nil, fmt.Errorf("fetch invoice: %w", err)
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func classifyStatus(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrAuthDenied
	case resp.StatusCode() >= http.StatusBadRequest:
		return &StatusError{Code: resp.StatusCode()}
	}
	return nil
}
