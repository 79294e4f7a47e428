// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/subodhkangale07/JobPortal/internal/auth"
	"github.com/subodhkangale07/JobPortal/internal/model"
)

// MakeJSONRequest is a helper function for making JSON requests in tests
func MakeJSONRequest(body gin.H, authToken string, r *gin.Engine, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(method, endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// MakeMultipartRequest is a helper for endpoints that bind multipart forms.
// Pass an empty fileField to send a form with no file part.
func MakeMultipartRequest(
	fields map[string]string,
	fileField, fileName string,
	fileContent []byte,
	authToken string,
	r *gin.Engine,
	endpoint string,
	method string,
) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := w.CreateFormFile(fileField, fileName)
		_, _ = io.Copy(fw, bytes.NewReader(fileContent))
	}
	_ = w.Close()

	req, _ := http.NewRequest(method, endpoint, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// GetAccessToken mints a signed token for the given seeded user.
func GetAccessToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.GenerateStandardToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	return token
}
