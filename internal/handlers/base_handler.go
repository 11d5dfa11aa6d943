package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/skillup/backend/internal/view"
	"go.uber.org/zap"
)

// PageRenderer is the interface that wraps HTML page rendering.
type PageRenderer interface {
	// Method Render executes the named page template with data into w.
	//
	// If the page is unknown or the template fails, the error will be returned and nothing is written.
	Render(w io.Writer, name string, data view.PageData) error
}

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, errorResponse{Success: false, Error: message})
}

// RenderPage renders an HTML page, falling back to a plain 500 when the template itself fails
func (h *BaseHandler) RenderPage(w http.ResponseWriter, renderer PageRenderer, status int, page string, data view.PageData) {
	var buf strings.Builder
	if err := renderer.Render(&buf, page, data); err != nil {
		h.Logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

// RenderHomeError renders the home page with an error banner
func (h *BaseHandler) RenderHomeError(w http.ResponseWriter, renderer PageRenderer, status int, message string) {
	h.RenderPage(w, renderer, status, view.PageIndex, view.PageData{
		Title: "Skill Up - Interviews Optimized",
		Error: message,
	})
}

// errorResponse is the body of failed JSON API calls
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

var errInvalidBody = errors.New("invalid request body")

// decodeRequest fills the string fields of dst from a JSON object or a url-encoded form.
// Fields are matched by their json tag; JSON numbers and booleans are accepted as their text.
func decodeRequest(r *http.Request, dst any) error {
	values, err := requestValues(r)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a struct pointer, got %T", dst)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.String {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if value, ok := values[name]; ok {
			v.Field(i).SetString(value)
		}
	}

	return nil
}

func requestValues(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()

		var raw map[string]any
		if err := decoder.Decode(&raw); err != nil {
			return nil, errInvalidBody
		}

		values := make(map[string]string, len(raw))
		for key, value := range raw {
			switch typed := value.(type) {
			case string:
				values[key] = typed
			case json.Number:
				values[key] = typed.String()
			case bool:
				values[key] = strconv.FormatBool(typed)
			case nil:
				values[key] = ""
			default:
				return nil, errInvalidBody
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errInvalidBody
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}
	return values, nil
}
