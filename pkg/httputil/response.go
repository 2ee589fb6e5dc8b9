package httputil

import (
	"net/http"

	"github.com/matzehuels/conceptmap/pkg/errors"
	cmio "github.com/matzehuels/conceptmap/pkg/io"
	"github.com/matzehuels/conceptmap/pkg/observability"
)

// Content types written by the server.
const (
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeDOT  = "text/vnd.graphviz; charset=utf-8"
	ContentTypeSVG  = "image/svg+xml"
	ContentTypePNG  = "image/png"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

// WriteJSON encodes v with the same indentation as the output files.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = cmio.EncodeJSON(w, v)
}

// WriteBytes writes a pre-encoded body with status 200.
func WriteBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteError reports err to the HTTP hooks and writes it as a JSON body.
// The status follows the error code; errors without a code are 500s.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	WriteJSON(w, errors.HTTPStatus(err), errorBody{
		Code:  errors.GetCode(err),
		Error: errors.UserMessage(err),
	})
}
