package handler

import (
	"net/http"

	"github.com/msomdec/fitme-accounts/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, accounts *service.AccountService, profiles *service.ProfileService, maxUploadBytes int64) {
	accountHandler := NewAccountHandler(accounts)
	profileHandler := NewProfileHandler(profiles, maxUploadBytes)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/user/signup", accountHandler.HandleSignup)
	mux.HandleFunc("POST /api/user/signin", accountHandler.HandleSignin)

	mux.HandleFunc("POST /api/user/profile/update", profileHandler.HandleUpdate)
	mux.HandleFunc("GET /api/user/profile/photo/{filename}", profileHandler.HandlePhoto)
}
