package api

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the response envelope. The enumeration is fixed;
// clients branch on these, not on the error text.
const (
	codeUserNotFound  = 1001
	codeBadParameter  = 1002
	codeInternalError = 1003
)

// Response is the uniform envelope returned by every API operation,
// success or failure.
type Response struct {
	Status       int      `json:"status"`
	Message      string   `json:"message,omitempty"`
	ErrorCode    int      `json:"errorCode,omitempty"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	Data         any      `json:"data,omitempty"`
	ErrorData    []string `json:"errorData,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondSuccess writes the success envelope with a localized message.
func respondSuccess(w http.ResponseWriter, r *http.Request, msgKey string, data any) {
	respondJSON(w, http.StatusOK, Response{
		Status:  http.StatusOK,
		Message: localize(r, msgKey),
		Data:    data,
	})
}

// respondFailure writes the error envelope with a localized message and the
// fixed error code for the failure category.
func respondFailure(w http.ResponseWriter, r *http.Request, status, code int, msgKey string, errorData []string) {
	respondJSON(w, status, Response{
		Status:       status,
		ErrorCode:    code,
		ErrorMessage: localize(r, msgKey),
		ErrorData:    errorData,
	})
}
