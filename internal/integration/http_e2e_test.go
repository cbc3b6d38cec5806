//go:build integration || !unit

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	server "tally/internal/adapters/http_server"
	"tally/internal/app"
	"tally/internal/booking"
	"tally/internal/storage/jsonfile"
)

func newTestServer(t *testing.T, rps, burst int) *httptest.Server {
	t.Helper()

	store, err := jsonfile.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	q := app.NewQueryService(store, nil, time.Minute)
	cmd := app.NewCommandService(store, nil)

	srv := server.New(rps, burst)
	srv.MountHandlers(&server.Handlers{Q: q, Cmd: cmd})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return res
}

func TestHTTP_HotelLifecycle(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	// create
	res := doJSON(t, http.MethodPost, ts.URL+"/v1/hotels",
		booking.Hotel{ID: 1, Name: "HotelTest", Location: "CDMX", Rooms: 2})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	res.Body.Close()

	// read with ETag
	res = doJSON(t, http.MethodGet, ts.URL+"/v1/hotels/1", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	var h booking.Hotel
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if h.Name != "HotelTest" || h.Rooms != 2 {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// conditional read short-circuits
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/hotels/1", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional get: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}

	// patch only the name
	res = doJSON(t, http.MethodPatch, ts.URL+"/v1/hotels/1", map[string]any{"name": "UpdatedHotel"})
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("patch status %d", res.StatusCode)
	}
	res.Body.Close()

	res = doJSON(t, http.MethodGet, ts.URL+"/v1/hotels/1", nil)
	_ = json.NewDecoder(res.Body).Decode(&h)
	res.Body.Close()
	if h.Name != "UpdatedHotel" || h.Location != "CDMX" {
		t.Fatalf("patch semantics: %+v", h)
	}

	// delete, then 404
	res = doJSON(t, http.MethodDelete, ts.URL+"/v1/hotels/1", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	res = doJSON(t, http.MethodGet, ts.URL+"/v1/hotels/1", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestHTTP_ReservationCapacity(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	res := doJSON(t, http.MethodPost, ts.URL+"/v1/hotels",
		booking.Hotel{ID: 1, Name: "Small", Rooms: 1})
	res.Body.Close()
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/customers",
		booking.Customer{ID: 1, Name: "Juan", Email: "juan@test.com"})
	res.Body.Close()

	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reservations",
		booking.Reservation{ID: 1, CustomerID: 1, HotelID: 1})
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("first reservation: %d", res.StatusCode)
	}

	// capacity exactly exhausted
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reservations",
		booking.Reservation{ID: 2, CustomerID: 1, HotelID: 1})
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", res.StatusCode)
	}

	// cancel frees the room
	res = doJSON(t, http.MethodDelete, ts.URL+"/v1/reservations/1", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel: %d", res.StatusCode)
	}
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reservations",
		booking.Reservation{ID: 3, CustomerID: 1, HotelID: 1})
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("reservation after cancel: %d", res.StatusCode)
	}

	// unknown hotel
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reservations",
		booking.Reservation{ID: 4, CustomerID: 1, HotelID: 999})
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestHTTP_RateLimit(t *testing.T) {
	ts := newTestServer(t, 1, 2)

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		res, err := http.Get(fmt.Sprintf("%s/healthz", ts.URL))
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		res.Body.Close()
		statuses = append(statuses, res.StatusCode)
	}
	limited := 0
	for _, s := range statuses {
		if s == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited == 0 {
		t.Fatalf("expected at least one 429, got %v", statuses)
	}
}
