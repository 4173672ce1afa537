package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestHttpResponseWriter struct {
	HeaderMap  http.Header
	Body       []byte
	StatusCode int
}

func (w *TestHttpResponseWriter) Header() http.Header {
	return w.HeaderMap
}

func (w *TestHttpResponseWriter) Write(bytes []byte) (int, error) {
	w.Body = bytes
	return len(bytes), nil
}

func (w *TestHttpResponseWriter) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
}

func newTestWriter() *TestHttpResponseWriter {
	return &TestHttpResponseWriter{
		HeaderMap: make(http.Header),
	}
}

func TestWriteResponseBytes(t *testing.T) {
	w := newTestWriter()

	testJson := `{"key":"val"}`
	WriteResponseBytes(w, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteResponseBytesOK(t *testing.T) {
	w := newTestWriter()

	testJson := `{"key":"val"}`
	WriteResponseBytesOK(w, ContentType.JSON, []byte(testJson))

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteTextResponseOK(t *testing.T) {
	w := newTestWriter()

	testText := `test text`
	WriteTextResponseOK(w, testText)

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.Text, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testText, string(w.Body))
}

func TestWriteJSON(t *testing.T) {
	w := newTestWriter()

	WriteJSON(w, map[string]float64{"score": 85.5}, http.StatusOK)

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.JSONEq(t, `{"score": 85.5}`, string(w.Body))
}

func TestWriteJSON_Unmarshallable(t *testing.T) {
	w := newTestWriter()

	WriteJSON(w, map[string]any{"ch": make(chan int)}, http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, w.StatusCode)
	assert.JSONEq(t, `{"detail": "failed to marshal response"}`, string(w.Body))
}

func TestWriteJSONError(t *testing.T) {
	w := newTestWriter()

	WriteJSONError(w, "no training history provided", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.StatusCode)
	assert.JSONEq(t, `{"detail": "no training history provided"}`, string(w.Body))
}
