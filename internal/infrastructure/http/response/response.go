package response

import (
	"encoding/json"
	"net/http"

	"github.com/mrops-br/products-api/internal/domain"
)

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response. The body is the error text alone; the
// status code tells the client what kind of failure it was.
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, err.Error())
}

// Result renders a service result: the payload on success, otherwise the
// error message with the status carried by the result.
func Result[T any](w http.ResponseWriter, result domain.Result[T]) {
	if result.IsSuccessful {
		JSON(w, http.StatusOK, result.Payload)
		return
	}
	JSON(w, result.StatusCode.HTTPStatus(), result.ErrorMessage)
}
