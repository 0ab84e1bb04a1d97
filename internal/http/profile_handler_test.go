package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/domain"
)

func seedProfile(t *testing.T, ts *testServer) domain.Profile {
	t.Helper()
	bio := "Original bio"
	profile := domain.Profile{
		ID:        "p1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Bio:       &bio,
	}
	if err := ts.profiles.Create(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func TestProfileGetHandler(t *testing.T) {
	ts := newTestServer(t)
	seedProfile(t, ts)

	rec := doJSON(ts, http.MethodGet, "/api/profile/p1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["firstName"] != "Ada" || resp["lastName"] != "Lovelace" || resp["bio"] != "Original bio" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	rec = doJSON(ts, http.MethodGet, "/api/profile/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProfileUpdateHandler_Partial(t *testing.T) {
	ts := newTestServer(t)
	seedProfile(t, ts)

	rec := doJSON(ts, http.MethodPut, "/api/profile/p1", "", map[string]any{"firstName": "Grace"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Profile updated successfully." {
		t.Fatalf("unexpected message: %q", resp["message"])
	}

	stored, _ := ts.profiles.GetByID(context.Background(), "p1")
	if stored.FirstName != "Grace" || stored.LastName != "Lovelace" {
		t.Fatalf("partial update broke untouched fields: %+v", stored)
	}
	if stored.Bio == nil || *stored.Bio != "Original bio" {
		t.Fatalf("expected bio untouched")
	}
}

func TestProfileDeleteHandler(t *testing.T) {
	ts := newTestServer(t)
	seedProfile(t, ts)

	rec := doJSON(ts, http.MethodDelete, "/api/profile/p1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Profile deleted." {
		t.Fatalf("unexpected message: %q", resp["message"])
	}

	rec = doJSON(ts, http.MethodDelete, "/api/profile/p1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestProfileUploadPictureHandler(t *testing.T) {
	ts := newTestServer(t)
	seedProfile(t, ts)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("picture", "avatar.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/profile/p1/picture", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["profilePicture"] != "stored-avatar.png" {
		t.Fatalf("unexpected stored name: %q", resp["profilePicture"])
	}

	stored, _ := ts.profiles.GetByID(context.Background(), "p1")
	if stored.ProfilePicture == nil || *stored.ProfilePicture != "stored-avatar.png" {
		t.Fatalf("expected filename recorded on profile")
	}
}

func TestProfileUploadPictureHandler_MissingFile(t *testing.T) {
	ts := newTestServer(t)
	seedProfile(t, ts)

	rec := doJSON(ts, http.MethodPost, "/api/profile/p1/picture", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without multipart file, got %d", rec.Code)
	}
}
