package gymstats

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/2beens/strengthplan/internal/middleware"
	"github.com/2beens/strengthplan/pkg"

	log "github.com/sirupsen/logrus"
)

const maxRequestBodyBytes = 1 << 20

// DecodeJSONRequest checks the content type and decodes the request body into dst.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != pkg.ContentType.JSON {
		return ErrInvalidContentType
	}

	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return &ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %s", err)}
	}

	return nil
}

// Required dereferences a required request field.
func Required[T any](field string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, NewMissingFieldError(field)
	}
	return *v, nil
}

// InRange fails with a ValidationError when v is outside [min, max].
func InRange(field string, v, min, max float64) error {
	if v < min || v > max {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("must be between %g and %g", min, max),
		}
	}
	return nil
}

// StatusCode maps an error to the HTTP status returned to the client.
func StatusCode(err error) int {
	var validationErr *ValidationError
	var computationErr *ComputationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &computationErr), errors.Is(err, ErrInvalidContentType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError logs err and writes it as a {"detail": ...} JSON response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	entry := log.WithFields(log.Fields{
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"status":     status,
	})

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		entry.Errorf("request failed: %s", err)
		detail = "internal server error"
	} else {
		entry.Debugf("request rejected: %s", err)
	}

	pkg.WriteJSONError(w, detail, status)
}

// HandleOptions answers bare OPTIONS requests (the CORS middleware handles preflights).
func HandleOptions(w http.ResponseWriter, r *http.Request, allow string) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	w.Header().Add("Allow", allow)
	w.WriteHeader(http.StatusOK)
	return true
}
