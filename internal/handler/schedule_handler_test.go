package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/classedgee/scheduler-api/pkg/response"
)

func postContext(t *testing.T, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func getContext(t *testing.T, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	handler := NewScheduleHandler(nil, nil)
	c, w := postContext(t, "/schedule/generate", `{"departmentId":`)

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, w))
}

func TestFeasibilityRejectsMalformedBody(t *testing.T) {
	handler := NewScheduleHandler(nil, nil)
	c, w := postContext(t, "/schedule/feasibility", `not json`)

	handler.Feasibility(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLatestRequiresSection(t *testing.T) {
	handler := NewScheduleHandler(nil, nil)
	c, w := getContext(t, "/schedule/latest")

	handler.Latest(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, w))
}
