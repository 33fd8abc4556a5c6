package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/service"
)

// requiredProfileFields must be present on every profile update.
var requiredProfileFields = []string{"email", "name", "goal", "age", "weight", "height", "fitnessLevel", "weeklyGoal"}

// ProfileHandler handles profile updates and photo retrieval.
type ProfileHandler struct {
	profiles       *service.ProfileService
	maxUploadBytes int64
}

// NewProfileHandler creates a new ProfileHandler. Request bodies larger than
// maxUploadBytes are rejected.
func NewProfileHandler(profiles *service.ProfileService, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, maxUploadBytes: maxUploadBytes}
}

// HandleUpdate processes a multipart (or urlencoded) profile update with an
// optional "photo" file part.
// POST /api/user/profile/update
// Response: the updated user
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	for _, field := range requiredProfileFields {
		if !r.Form.Has(field) {
			writeError(w, http.StatusBadRequest, "Missing required field: "+field)
			return
		}
	}

	upd := service.ProfileUpdate{
		Email:        r.FormValue("email"),
		Name:         r.FormValue("name"),
		Goal:         r.FormValue("goal"),
		FitnessLevel: r.FormValue("fitnessLevel"),
	}

	numbers := []struct {
		field string
		dst   *int
	}{
		{"age", &upd.Age},
		{"weight", &upd.Weight},
		{"height", &upd.Height},
		{"weeklyGoal", &upd.WeeklyGoal},
	}
	for _, num := range numbers {
		n, err := strconv.Atoi(r.FormValue(num.field))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid number for field: "+num.field)
			return
		}
		*num.dst = n
	}

	if r.MultipartForm != nil {
		photo, err := readPhoto(r)
		if err != nil {
			slog.Error("read upload", "error", err)
			writeError(w, http.StatusBadRequest, "Could not read photo")
			return
		}
		upd.Photo = photo
	}

	user, err := h.profiles.UpdateProfile(r.Context(), upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusBadRequest, "User not found")
		case errors.Is(err, domain.ErrStorage):
			slog.Error("store profile photo", "error", err)
			writeError(w, http.StatusBadRequest, "Could not store photo")
		default:
			slog.Error("update profile", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// readPhoto returns the optional "photo" part, or nil when none was sent.
func readPhoto(r *http.Request) (*service.PhotoUpload, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &service.PhotoUpload{Filename: header.Filename, Data: data}, nil
}

// HandlePhoto serves stored photo bytes.
// GET /api/user/profile/photo/{filename}
func (h *ProfileHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	data, err := h.profiles.GetProfilePhoto(r.Context(), r.PathValue("filename"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve profile photo", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Bytes are served as stored; no type is inferred from the upload.
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
