package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"route_viz/pkg/route"
)

// ErrNoRoute is returned when no route exists between the stops.
var ErrNoRoute = errors.New("no route found")

// ErrUpstream is returned when the routing service fails or answers with
// something that is not a route.
var ErrUpstream = errors.New("routing service error")

// ErrInvalidRequest is returned for requests rejected before reaching the
// routing service.
var ErrInvalidRequest = errors.New("invalid route request")

// Transport modes understood by the routing service.
const (
	TransportCar  = "car"
	TransportBike = "bike"
	TransportWalk = "walk"
)

// Optimization targets understood by the routing service.
const (
	OptimizeTime     = "time"
	OptimizeDistance = "distance"
)

// Request asks for a route through two or more stops.
type Request struct {
	Stops        []route.LatLng `json:"stops"`
	Transport    string         `json:"transport"`
	Routing      string         `json:"routing"`
	AvoidUnpaved bool           `json:"avoid_unpaved"`
}

// Validate checks the request shape. Coordinates are checked by the caller.
func (r Request) Validate() error {
	if len(r.Stops) < 2 {
		return fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidRequest, len(r.Stops))
	}
	switch r.Transport {
	case TransportCar, TransportBike, TransportWalk:
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidRequest, r.Transport)
	}
	switch r.Routing {
	case OptimizeTime, OptimizeDistance:
	default:
		return fmt.Errorf("%w: unknown routing %q", ErrInvalidRequest, r.Routing)
	}
	return nil
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, req Request) (*route.Graph, error)
}

// Client implements Router against the routing service's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the routing service at baseURL.
// A nil httpClient uses a client with a 15 s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Route requests the shortest path through req.Stops.
func (c *Client) Route(ctx context.Context, req Request) (*route.Graph, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shortest-path", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	g, err := route.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return g, nil
}

// statusError maps a non-200 answer to ErrNoRoute or ErrUpstream. The routing
// service reports unreachable stops with a plain-text message and a 4xx or
// 500 status.
func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	text := strings.ToLower(string(msg))

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity ||
		strings.Contains(text, "no path") || strings.Contains(text, "no route") {
		return ErrNoRoute
	}
	return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
}
