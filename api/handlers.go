/*
handlers.go - HTTP handlers for the vacation tracker API

PURPOSE:
  Exposes the vacation domain via REST. Handles HTTP request/response,
  JSON serialization, and delegates every decision to the domain service.

ENDPOINTS:
  Auth:
    POST   /api/login                   Issue a JWT

  Users:
    POST   /api/users                   Create account (admin)
    GET    /api/users/{id}              Account details
    GET    /api/users/{id}/balance      Remaining allowance (?year=YYYY)
    GET    /api/users/{id}/vacations    All vacations of a user
    POST   /api/users/{id}/vacations    Validated vacation creation

  Vacations:
    GET    /api/vacations/{id}          Request details
    POST   /api/vacations/{id}/confirm  Confirm (admin)
    POST   /api/vacations/{id}/deny     Deny with reason (admin)

ERROR HANDLING:
  Domain errors map onto HTTP status codes in one place (writeDomainError):
  - 400: Invalid input, malformed dates
  - 404: Unknown user or vacation
  - 409: Exhausted/overdrawn allowance, duplicate username/mail
  - 500: Everything else

AUTHORIZATION:
  All endpoints except login require a bearer token. Account creation
  and confirm/deny require the admin flag; a non-admin may only read and
  create vacations for their own account.

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Token verification middleware
  - server.go: Router setup
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/vacation-tracker/auth"
	"github.com/warp/vacation-tracker/vacation"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *vacation.Service
	Tokens  *auth.TokenManager
}

// NewHandler creates a handler backed by the domain service.
func NewHandler(svc *vacation.Service, tokens *auth.TokenManager) *Handler {
	return &Handler{Service: svc, Tokens: tokens}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login verifies credentials and issues a signed token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Service.GetUserByUsername(r.Context(), req.Username)
	if err != nil || !auth.Verify(user.PassHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.Tokens.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: toUserDTO(user)})
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// CreateUser creates a new account. Admin only (enforced by middleware).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Username == "" || req.Mail == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, mail, and password are required", nil)
		return
	}

	in := vacation.NewUser{
		Username:       req.Username,
		Mail:           req.Mail,
		Password:       req.Password,
		IsAdmin:        req.IsAdmin,
		VacationAmount: req.VacationAmount,
		CountryCode:    req.CountryCode,
	}
	if req.JoinDate != "" {
		joinDate, err := vacation.ParseDate(req.JoinDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid join_date", err)
			return
		}
		in.JoinDate = joinDate
	}

	user, err := h.Service.CreateUser(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(user))
}

// GetUser returns a single account.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if !callerMayAccess(r, userID) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// GetBalance returns the remaining allowance for a year. The year query
// parameter defaults to the current year.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if !callerMayAccess(r, userID) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}
	if year == 0 {
		year = vacation.Today().Year()
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	remaining, err := h.Service.RemainingVacation(r.Context(), userID, year)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		UserID:    userID,
		Year:      year,
		Allowance: user.VacationAmount,
		Remaining: remaining.String(),
	})
}

// ListVacations returns all vacations of a user.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if !callerMayAccess(r, userID) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}

	vacations, err := h.Service.ListVacations(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTOs(vacations))
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// CreateVacation runs the validated creation protocol. The response holds
// every persisted segment; a cross-year range yields two.
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if !callerMayAccess(r, userID) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}

	var req CreateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := vacation.ParseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start", err)
		return
	}
	var end vacation.Date
	if req.End != "" {
		if end, err = vacation.ParseDate(req.End); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end", err)
			return
		}
	}

	created, err := h.Service.CreateVacation(r.Context(), userID, start, end)
	if err != nil {
		// Segments persisted before the failure remain valid; the
		// conflict response tells the caller what survived.
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toVacationDTOs(created))
}

// GetVacation returns a single vacation request.
func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	vacationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	v, err := h.Service.GetVacation(r.Context(), vacationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !callerMayAccess(r, v.UserID) {
		writeError(w, http.StatusForbidden, "Forbidden", nil)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(v))
}

// ConfirmVacation confirms a request. Admin only.
func (h *Handler) ConfirmVacation(w http.ResponseWriter, r *http.Request) {
	vacationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	v, err := h.Service.Confirm(r.Context(), vacationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(v))
}

// DenyVacation denies a request with an optional reason. Admin only.
func (h *Handler) DenyVacation(w http.ResponseWriter, r *http.Request) {
	vacationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req DenyVacationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	v, err := h.Service.Deny(r.Context(), vacationID, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(v))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID", err)
		return 0, false
	}
	return id, true
}

// callerMayAccess allows admins everywhere and everyone on their own data.
func callerMayAccess(r *http.Request, userID int64) bool {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		return false
	}
	return ident.IsAdmin || ident.UserID == userID
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case vacation.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, vacation.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
	case vacation.IsClientError(err):
		writeError(w, http.StatusConflict, "Request rejected", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
