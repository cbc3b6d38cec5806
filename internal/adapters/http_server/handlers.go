package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tally/internal/app"
	"tally/internal/booking"
)

type Handlers struct {
	Q   *app.QueryService
	Cmd *app.CommandService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Post("/", h.createHotel)
		r.Get("/", h.listHotels)
		r.Get("/{id}", h.getHotel)
		r.Patch("/{id}", h.patchHotel)
		r.Delete("/{id}", h.deleteHotel)
	})
	s.mux.Route("/v1/customers", func(r chi.Router) {
		r.Post("/", h.createCustomer)
		r.Get("/", h.listCustomers)
		r.Get("/{id}", h.getCustomer)
		r.Patch("/{id}", h.patchCustomer)
		r.Delete("/{id}", h.deleteCustomer)
	})
	s.mux.Route("/v1/reservations", func(r chi.Router) {
		r.Post("/", h.createReservation)
		r.Get("/", h.listReservations)
		r.Delete("/{id}", h.cancelReservation)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "record not found")
	case errors.Is(err, booking.ErrNoRooms):
		writeProblem(w, http.StatusConflict, "No Rooms Available", "hotel capacity exhausted")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// writeConditional answers a single-resource GET with an ETag and honors
// If-None-Match.
func writeConditional(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- hotels ----

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var hot booking.Hotel
	if !decodeBody(w, r, &hot) {
		return
	}
	if err := h.Cmd.CreateHotel(r.Context(), hot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hot)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if hotels == nil {
		hotels = []booking.Hotel{}
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hot, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeConditional(w, r, hot)
}

func (h *Handlers) patchHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var p booking.HotelPatch
	if !decodeBody(w, r, &p) {
		return
	}
	if err := h.Cmd.ModifyHotel(r.Context(), id, p); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Cmd.DeleteHotel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- customers ----

func (h *Handlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c booking.Customer
	if !decodeBody(w, r, &c) {
		return
	}
	if err := h.Cmd.CreateCustomer(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Q.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []booking.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	c, err := h.Q.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeConditional(w, r, c)
}

func (h *Handlers) patchCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var p booking.CustomerPatch
	if !decodeBody(w, r, &p) {
		return
	}
	if err := h.Cmd.ModifyCustomer(r.Context(), id, p); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Cmd.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reservations ----

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var res booking.Reservation
	if !decodeBody(w, r, &res) {
		return
	}
	if err := h.Cmd.CreateReservation(r.Context(), res); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Q.ListReservations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rs == nil {
		rs = []booking.Reservation{}
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Cmd.CancelReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
