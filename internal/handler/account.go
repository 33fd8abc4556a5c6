package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/service"
)

// AccountHandler handles signup and signin requests.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// HandleSignup processes a JSON registration request.
// POST /api/user/signup
// Request:  {"name":"...","email":"...","password":"..."}
// Response: the created user
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.accounts.CreateUser(r.Context(), service.NewUser{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "User with this email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Missing required fields")
		default:
			slog.Error("create user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleSignin checks credentials.
// POST /api/user/signin
// Request:  {"email":"...","password":"..."}
// Response: the stored user
func (h *AccountHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.accounts.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnauthorized):
			// Same answer for both so the endpoint cannot be used to probe for accounts.
			writeError(w, http.StatusBadRequest, "Invalid email or password.")
		default:
			slog.Error("authenticate user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}
