package ldthttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cayleygraph/ldt/provider"
)

// ServeTemplateCall writes the template call resolved for the request, or 404
// when no template matches it.
func ServeTemplateCall(w http.ResponseWriter, r *http.Request) {
	call, ok := provider.FromContext(r.Context())
	if !ok {
		jsonResponse(w, http.StatusNotFound, fmt.Errorf("no template matches %s", r.URL.Path))
		return
	}
	w.Header().Set(hdrContentType, contentTypeJSON)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(call)
}

func templateCallError(w http.ResponseWriter, r *http.Request, err error) {
	jsonResponse(w, http.StatusInternalServerError, err)
}
