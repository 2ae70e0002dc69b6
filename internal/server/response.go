package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/logger"
)

// maxJSONBody bounds JSON and urlencoded request bodies; uploads have their own limit.
const maxJSONBody = 1 << 20

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Named("server").Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code. Server errors are logged and their
// details are not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if status == http.StatusInternalServerError {
			errorResponse(w, status, "internal server error")
			return
		}
	}
	errorResponse(w, status, err.Error())
}

// validatable is implemented by the request types in internal/types.
type validatable interface {
	Validate() error
}

// decodeRequest fills dst from a JSON body, or from form fields when the
// request is urlencoded or multipart, then validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable, fromForm func(url.Values)) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			return formError(err)
		}
		fromForm(r.PostForm)
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseMultipartForm(maxJSONBody); err != nil {
			return formError(err)
		}
		fromForm(r.PostForm)
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return err
			}
			return &ErrValidation{Message: "invalid request body"}
		}
	}

	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return &ErrValidation{Message: "invalid form body"}
}

// validationError reports the first failed field of a validator error.
func validationError(err error) error {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return &ErrValidation{Field: fields[0].Field(), Message: fields[0].Tag()}
	}
	return &ErrValidation{Message: "invalid request"}
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// listFilters reads limit, offset and user_id query parameters.
func listFilters(r *http.Request) (db.ListFilters, error) {
	var f db.ListFilters
	q := r.URL.Query()

	var err error
	if f.Limit, err = intParam(q, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = intParam(q, "offset"); err != nil {
		return f, err
	}
	if v := q.Get("user_id"); v != "" {
		if f.UserID, err = uuid.Parse(v); err != nil {
			return f, &ErrValidation{Field: "user_id", Message: "must be a UUID"}
		}
	}
	return f, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: name, Message: fmt.Sprintf("must be a non-negative integer, got %q", v)}
	}
	return n, nil
}
