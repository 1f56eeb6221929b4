package response

import (
	"encoding/json"
	"net/http"

	"inventory-rest-api/pkg/apierror"
)

// JSON sends a JSON response with the given status code. Payloads are written
// as-is: collection endpoints return bare arrays, record endpoints return the
// record object.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a 200 OK response.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with the created resource.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Message sends a 200 OK response with a {"message": ...} body.
func Message(w http.ResponseWriter, message string) {
	OK(w, map[string]string{"message": message})
}

// Error sends an error response. Typed *apierror.Error values keep their
// status code and body; anything else becomes a generic 500.
func Error(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierror.Error)
	if !ok {
		apiErr = apierror.InternalError("an unexpected error occurred")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	w.Write(apiErr.ToJSON())
}
