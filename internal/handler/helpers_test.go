package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/fitme-accounts/internal/handler"
	"github.com/msomdec/fitme-accounts/internal/repository/sqlite"
	"github.com/msomdec/fitme-accounts/internal/service"
	"github.com/msomdec/fitme-accounts/internal/storage/localfs"
)

const testMaxUploadBytes = 1 << 20

var testOrigins = []string{"http://localhost:5173", "http://localhost:5174"}

func newTestServices(t *testing.T) (*service.AccountService, *service.ProfileService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	files := localfs.New(filepath.Join(t.TempDir(), "uploads"))

	// Use cost 4 for fast tests.
	return service.NewAccountService(db.Users(), service.NewBcryptHasher(4)),
		service.NewProfileService(db.Users(), files)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	accounts, profiles := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, accounts, profiles, testMaxUploadBytes)
	return handler.Wrap(mux, testOrigins)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newTestHandler(t))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

type photoPart struct {
	filename string
	data     []byte
}

func postMultipart(t *testing.T, url string, fields map[string]string, photo *photoPart) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, fields, photo)
	resp, err := http.Post(url, contentType, body)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func multipartBody(t *testing.T, fields map[string]string, photo *photoPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", photo.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(photo.data); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeUser(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["message"]
}

func profileFields(email string) map[string]string {
	return map[string]string{
		"email":        email,
		"name":         "Alice",
		"goal":         "lose weight",
		"age":          "30",
		"weight":       "65",
		"height":       "170",
		"fitnessLevel": "beginner",
		"weeklyGoal":   "3",
	}
}
