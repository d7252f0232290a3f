package mw

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

type failBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeFail answers with the "fail" envelope used by the book endpoints.
func writeFail(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(failBody{
		Status:  "fail",
		Message: message,
	})
}
