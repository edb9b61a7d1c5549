// Package apiclient is a typed client for the catalog REST API. Every
// payload is decoded into an explicit schema and validated before use.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPayload is returned when a 2xx body does not match its schema.
	ErrInvalidPayload = errors.New("invalid payload")
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// StatusError is a non-2xx answer other than 404.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api responded %d", e.StatusCode)
	}
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

// Ref is the embedded {id, name} form of a category or publisher.
type Ref struct {
	ID   uint   `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type Game struct {
	ID          uint     `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Publisher   *Ref     `json:"publisher" validate:"omitnil"`
	Category    *Ref     `json:"category" validate:"omitnil"`
	StarRating  *float64 `json:"starRating" validate:"omitnil,gte=0,lte=5"`
}

type Category struct {
	ID          uint    `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	GameCount   int64   `json:"game_count" validate:"gte=0"`
}

type Publisher struct {
	ID          uint    `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	GameCount   int64   `json:"game_count" validate:"gte=0"`
}

// GameFilter selects games; zero ids are not sent.
type GameFilter struct {
	CategoryID  uint
	PublisherID uint
}

func (f GameFilter) query() string {
	v := url.Values{}
	if f.CategoryID != 0 {
		v.Set("category", strconv.FormatUint(uint64(f.CategoryID), 10))
	}
	if f.PublisherID != 0 {
		v.Set("publisher", strconv.FormatUint(uint64(f.PublisherID), 10))
	}
	return v.Encode()
}

// Client talks to the catalog API at a fixed base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

// New returns a client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *Client) ListGames(ctx context.Context, f GameFilter) ([]Game, error) {
	path := "/api/games"
	if q := f.query(); q != "" {
		path += "?" + q
	}
	var games []Game
	if err := c.get(ctx, path, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []Game{}
	}
	return games, nil
}

func (c *Client) GetGame(ctx context.Context, id uint) (Game, error) {
	var game Game
	if err := c.get(ctx, "/api/games/"+strconv.FormatUint(uint64(id), 10), &game); err != nil {
		return Game{}, err
	}
	return game, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListPublishers(ctx context.Context) ([]Publisher, error) {
	var publishers []Publisher
	if err := c.get(ctx, "/api/publishers", &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := c.check(target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// check validates a decoded struct or every element of a decoded slice.
func (c *Client) check(target any) error {
	switch v := target.(type) {
	case *[]Game:
		return c.validate.Var(*v, "dive")
	case *[]Category:
		return c.validate.Var(*v, "dive")
	case *[]Publisher:
		return c.validate.Var(*v, "dive")
	default:
		return c.validate.Struct(target)
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
