package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"inkpost/app/auth"
	"inkpost/app/models"
	"inkpost/app/repositories"
)

// maxBodyBytes caps the size of a submitted post or comment.
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// responder holds the response helpers shared by the controllers.
type responder struct {
	strictAuth bool
}

func (rs responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[RESPONSE] failed to encode response: %v", err)
	}
}

func (rs responder) sendError(w http.ResponseWriter, message string, status int) {
	rs.sendJSON(w, status, map[string]string{"error": message})
}

// handleServiceError maps a service error onto a response. Validation
// errors are handled by the callers since their shape differs per route.
func (rs responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		status := http.StatusOK
		if rs.strictAuth {
			status = http.StatusUnauthorized
		}
		rs.sendJSON(w, status, auth.LoginRequired)
	case errors.Is(err, repositories.ErrNotFound):
		rs.sendError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, errBadRequest):
		rs.sendError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
		rs.sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// readValues returns the submitted fields of a JSON or form-encoded body.
// Non-string JSON values are converted to their textual form.
func readValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r.Header.Get("Content-Type")) {
		var raw map[string]interface{}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
		}
		values := make(map[string]string, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case nil:
				values[key] = ""
			case string:
				values[key] = v
			case map[string]interface{}, []interface{}:
				encoded, _ := json.Marshal(v)
				values[key] = string(encoded)
			default:
				values[key] = fmt.Sprint(v)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: failed to parse form: %v", errBadRequest, err)
	}
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values, nil
}

// isJSON reports whether a Content-Type header names a JSON body.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// nonNilPosts and friends keep empty collections encoding as [] rather than null.
func nonNilPosts(posts []*models.Post) []*models.Post {
	if posts == nil {
		return []*models.Post{}
	}
	return posts
}

func nonNilComments(comments []*models.Comment) []*models.Comment {
	if comments == nil {
		return []*models.Comment{}
	}
	return comments
}

func nonNilFields(fields []models.FieldError) []models.FieldError {
	if fields == nil {
		return []models.FieldError{}
	}
	return fields
}
