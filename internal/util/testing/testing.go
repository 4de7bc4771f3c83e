package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type APIResponse struct {
	Code int
	Body []byte
}

func MakeAPIRequest(router *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func makeRequest(
	t *testing.T,
	router *gin.Engine,
	method, path, authHeader string,
	body any,
	expectedStatus int,
) *APIResponse {
	t.Helper()

	w := MakeAPIRequest(router, method, path, authHeader, body)
	assert.Equal(t, expectedStatus, w.Code, "unexpected status for %s %s: %s", method, path, w.Body.String())

	return &APIResponse{Code: w.Code, Body: w.Body.Bytes()}
}

func MakeGetRequest(t *testing.T, router *gin.Engine, path, authHeader string, expectedStatus int) *APIResponse {
	t.Helper()
	return makeRequest(t, router, http.MethodGet, path, authHeader, nil, expectedStatus)
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *APIResponse {
	t.Helper()
	return makeRequest(t, router, http.MethodPost, path, authHeader, body, expectedStatus)
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *APIResponse {
	t.Helper()
	return makeRequest(t, router, http.MethodPut, path, authHeader, body, expectedStatus)
}

func MakePatchRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *APIResponse {
	t.Helper()
	return makeRequest(t, router, http.MethodPatch, path, authHeader, body, expectedStatus)
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
) *APIResponse {
	t.Helper()
	return makeRequest(t, router, http.MethodDelete, path, authHeader, body, expectedStatus)
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	expectedStatus int,
	out any,
) {
	t.Helper()

	response := MakeGetRequest(t, router, path, authHeader, expectedStatus)
	if err := json.Unmarshal(response.Body, out); err != nil {
		t.Fatalf("failed to unmarshal response from GET %s: %v", path, err)
	}
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()

	response := MakePostRequest(t, router, path, authHeader, body, expectedStatus)
	if err := json.Unmarshal(response.Body, out); err != nil {
		t.Fatalf("failed to unmarshal response from POST %s: %v", path, err)
	}
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path, authHeader string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()

	response := MakePutRequest(t, router, path, authHeader, body, expectedStatus)
	if err := json.Unmarshal(response.Body, out); err != nil {
		t.Fatalf("failed to unmarshal response from PUT %s: %v", path, err)
	}
}
