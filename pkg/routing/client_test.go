package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"route_viz/pkg/route"
)

var validRequest = Request{
	Stops:     []route.LatLng{{Lat: 48.5, Lon: 9.0}, {Lat: 48.52, Lon: 9.05}},
	Transport: TransportBike,
	Routing:   OptimizeDistance,
}

const routeBody = `{"nodes":[{"id":1,"coordinates":{"lat":48.5,"lon":9.0},"meta":{"elevation":300}},
{"id":2,"coordinates":{"lat":48.52,"lon":9.05},"meta":{"elevation":310}}],
"edges":[{"source_index":0,"target_index":1,"distance":4200,"meta":{"grade":1,"highway":"Cycleway","surface":"Asphalt"}}],
"time":756,"distance":4200,"intersections":0,"curvature":{"radii":[],"score":0}}`

func TestClientRoute_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/shortest-path" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(routeBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil)
	g, err := c.Route(context.Background(), validRequest)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	if len(got.Stops) != 2 || got.Transport != TransportBike || got.Routing != OptimizeDistance {
		t.Errorf("request = %+v", got)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("graph = %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if g.Edges[0].Highway != "Cycleway" {
		t.Errorf("highway = %q", g.Edges[0].Highway)
	}
}

func TestClientRoute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, "", ErrNoRoute},
		{"no path message", http.StatusInternalServerError, "No path found", ErrNoRoute},
		{"server error", http.StatusInternalServerError, "boom", ErrUpstream},
		{"bad gateway", http.StatusBadGateway, "", ErrUpstream},
		{"garbage body", http.StatusOK, "not json", ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Route(context.Background(), validRequest)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientRoute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, nil).Route(ctx, validRequest)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		ok   bool
	}{
		{"valid", validRequest, true},
		{"one stop", Request{Stops: validRequest.Stops[:1], Transport: TransportCar, Routing: OptimizeTime}, false},
		{"bad transport", Request{Stops: validRequest.Stops, Transport: "plane", Routing: OptimizeTime}, false},
		{"bad routing", Request{Stops: validRequest.Stops, Transport: TransportWalk, Routing: "scenic"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestClientRoute_InvalidRequestSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Route(context.Background(), Request{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
	if called {
		t.Error("routing service should not be called")
	}
}
