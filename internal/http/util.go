package httpx

import (
	"fmt"
	"net/http"
	"strconv"
)

// parseIntQueryStrict returns the integer value of a query param or a default
// when absent. A present but non-integer value is a client error.
func parseIntQueryStrict(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, r, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_error",
			Err:     fmt.Errorf("%s must be an integer", key),
		})
		return 0, false
	}
	return v, true
}
