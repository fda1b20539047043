package transport

import (
	"encoding/json"
	"net/http"

	"contacts-directory/constant"
	"contacts-directory/utils/errors"
)

// BaseResponse is the envelope every endpoint returns.
type BaseResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(BaseResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	custom, ok := err.(errors.CustomError)
	if !ok {
		custom = errors.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(custom.ErrorHTTPCode())

	_ = json.NewEncoder(w).Encode(BaseResponse{
		Code:    custom.ErrorCode(),
		Message: custom.Error(),
	})
}
