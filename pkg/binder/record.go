package binder

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const (
	// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
	DefaultMaxMemory = 10 << 20

	// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
	DefaultMaxJSONSize = 1 << 20
)

type options struct {
	maxMemory   int64
	maxJSONSize int64
}

// Option configures Record.
type Option func(*options)

// WithMaxMemory sets the memory limit for multipart parsing.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxJSONSize sets the body size limit for JSON requests.
func WithMaxJSONSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxJSONSize = n
		}
	}
}

// Record collects request input into a flat map ready for validation.
//
// Sources are merged in this order, later ones overwriting earlier keys:
// query string, request body, chi URL parameters.
//
// Form fields with a single value map to string, repeated fields to []string.
// Uploaded files map to *multipart.FileHeader, or []*multipart.FileHeader when
// several share a name. A JSON object body is decoded as is.
// Requests without a body or Content-Type only contribute query and URL parameters.
func Record(r *http.Request, opts ...Option) (map[string]any, error) {
	if r == nil {
		return nil, ErrNilRequest
	}

	o := options{maxMemory: DefaultMaxMemory, maxJSONSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	out := make(map[string]any)

	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	mergeValues(out, query)

	if err := recordBody(r, o, out); err != nil {
		return nil, err
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "" || key == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			out[key] = rctx.URLParams.Values[i]
		}
	}

	return out, nil
}

func recordBody(r *http.Request, o options, out map[string]any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" || r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: malformed content type %q", ErrUnsupportedMediaType, contentType)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		mergeValues(out, r.PostForm)

	case "multipart/form-data":
		if !validBoundary(params["boundary"]) {
			return fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
		}

		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		if r.MultipartForm != nil {
			mergeValues(out, r.MultipartForm.Value)
			mergeFiles(out, r.MultipartForm.File)
		}

	case "application/json":
		return recordJSON(r, o, out)

	default:
		return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}

	return nil
}

func recordJSON(r *http.Request, o options, out map[string]any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, o.maxJSONSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > o.maxJSONSize {
		return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, o.maxJSONSize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	for k, v := range data {
		out[k] = v
	}
	return nil
}

func mergeValues(out map[string]any, values map[string][]string) {
	for key, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			out[key] = vals[0]
		default:
			out[key] = append([]string(nil), vals...)
		}
	}
}

func mergeFiles(out map[string]any, files map[string][]*multipart.FileHeader) {
	for key, headers := range files {
		for _, fh := range headers {
			fh.Filename = sanitizeFilename(fh.Filename)
		}
		switch len(headers) {
		case 0:
		case 1:
			out[key] = headers[0]
		default:
			out[key] = append([]*multipart.FileHeader(nil), headers...)
		}
	}
}

// validBoundary follows RFC 2046: 1 to 70 characters from a restricted set,
// not ending with a space.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename removes any path components and dangerous characters from a filename
// to prevent path traversal attacks and other security issues.
func sanitizeFilename(filename string) string {
	// Normalize Windows separators so filepath.Base strips them too
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
