package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"hotel_content/internal/adapters/auth"
	"hotel_content/internal/app"
	"hotel_content/internal/domain"
)

type Handlers struct {
	Push    *app.PushService
	Raw     *app.RawService
	Details *app.DetailsService
	Access  *app.AccessService
	JWT     *auth.JWTValidator
	RBAC    *auth.Enforcer
	Audit   domain.AuditLogger
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1.0/hotel", func(r chi.Router) {
		r.Use(h.authenticate)
		r.With(h.requireRoute).Post("/pushhotel", h.pushHotel)
		r.With(h.requireRoute).Post("/supplier", h.supplierRaw)
		r.With(h.requireRoute).Post("/details", h.hotelDetails)
	})
}

// ---- request bodies ----

var errHotelIDShape = errors.New("hotel_id must be a string or a list of strings")

// hotelIDs accepts either a single string or a list of strings.
type hotelIDs []string

func (h *hotelIDs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*h = nil
		return nil
	}
	if b[0] == '[' {
		var many []string
		if err := json.Unmarshal(b, &many); err != nil {
			return errHotelIDShape
		}
		*h = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return errHotelIDShape
	}
	*h = hotelIDs{one}
	return nil
}

type pushRequest struct {
	SupplierCode string   `json:"supplier_code" validate:"required"`
	HotelID      hotelIDs `json:"hotel_id"`
}

type lookupRequest struct {
	SupplierCode string `json:"supplier_code" validate:"required"`
	HotelID      string `json:"hotel_id" validate:"required,hotelid"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("hotelid", func(fl validator.FieldLevel) bool {
			return app.ValidHotelID(strings.TrimSpace(fl.Field().String()))
		})
	})
	return validate
}

// decode reads and validates a JSON body into v.
func decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return &domain.ParseError{Source: "request body", Err: err}
	}
	err := getValidator().Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		switch {
		case fe.Field() == "HotelID" && fe.Tag() == "required":
			return domain.ErrMissingHotelID
		case fe.Field() == "HotelID":
			return domain.ErrInvalidHotelID
		case fe.Field() == "SupplierCode":
			return fmt.Errorf("%w: supplier_code is required", domain.ErrUnknownSupplier)
		}
	}
	return &domain.ParseError{Source: "request body", Err: verrs}
}

// ---- responses ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsClientError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeProblem(w, status, http.StatusText(status), detail)
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

func (h *Handlers) audit(r *http.Request, u domain.User, typ string, lvl domain.SecurityLevel, ok bool, details map[string]any) {
	if h.Audit == nil {
		return
	}
	h.Audit.LogActivity(r.Context(), domain.Activity{
		Type:          typ,
		UserID:        u.ID,
		Details:       details,
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
		Path:          r.URL.Path,
		SecurityLevel: lvl,
		Success:       ok,
	})
}

// ---- endpoints ----

func (h *Handlers) pushHotel(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	var req pushRequest
	err := decode(r, &req)
	if err == nil && len(req.HotelID) == 0 {
		err = domain.ErrMissingHotelID
	}
	if err != nil {
		h.audit(r, u, domain.ActivityPushHotel, domain.SecurityLow, false, map[string]any{"supplier_code": req.SupplierCode, "error": err.Error()})
		writeError(w, err)
		return
	}

	report, err := h.Push.Push(r.Context(), req.SupplierCode, req.HotelID)
	if err != nil {
		h.audit(r, u, domain.ActivityPushHotel, domain.SecurityLow, false, map[string]any{"supplier_code": req.SupplierCode, "error": err.Error()})
		writeError(w, err)
		return
	}
	saved := 0
	for _, res := range report.Results {
		if res.Status == domain.PushSaved {
			saved++
		}
	}
	h.audit(r, u, domain.ActivityPushHotel, domain.SecurityLow, true, map[string]any{
		"supplier_code": req.SupplierCode,
		"hotel_ids":     []string(req.HotelID),
		"saved":         saved,
	})
	render.Status(r, http.StatusOK)
	render.JSON(w, r, report)
}

func (h *Handlers) supplierRaw(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	var req lookupRequest
	if err := decode(r, &req); err != nil {
		h.audit(r, u, domain.ActivityRawRead, domain.SecurityLow, false, map[string]any{"supplier_code": req.SupplierCode, "error": err.Error()})
		writeError(w, err)
		return
	}
	details := map[string]any{"supplier_code": req.SupplierCode, "hotel_id": req.HotelID}

	raw, err := h.Raw.Raw(r.Context(), req.SupplierCode, strings.TrimSpace(req.HotelID))
	if err != nil {
		details["error"] = err.Error()
		h.audit(r, u, domain.ActivityRawRead, domain.SecurityLow, false, details)
		writeError(w, err)
		return
	}
	h.audit(r, u, domain.ActivityRawRead, domain.SecurityLow, true, details)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, raw)
}

func (h *Handlers) hotelDetails(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	var req lookupRequest
	if err := decode(r, &req); err != nil {
		h.audit(r, u, domain.ActivityDetailsRead, domain.SecurityMedium, false, map[string]any{"supplier_code": req.SupplierCode, "error": err.Error()})
		writeError(w, err)
		return
	}
	id := strings.TrimSpace(req.HotelID)
	details := map[string]any{"supplier_code": req.SupplierCode, "hotel_id": id}

	caller := app.Caller{User: u, IP: clientIP(r), UserAgent: r.UserAgent(), Path: r.URL.Path}
	if err := h.Access.AuthorizeDetails(r.Context(), caller, req.SupplierCode, id); err != nil {
		// denials were audited by the access service
		writeError(w, err)
		return
	}

	hotel, err := h.Details.Details(r.Context(), req.SupplierCode, id)
	if err != nil {
		details["error"] = err.Error()
		h.audit(r, u, domain.ActivityDetailsRead, domain.SecurityMedium, false, details)
		writeError(w, err)
		return
	}
	h.audit(r, u, domain.ActivityDetailsRead, domain.SecurityMedium, true, details)

	etag, body := calcETagAndBody(hotel)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write details body")
	}
}
