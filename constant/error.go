package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrValidation
	ErrDuplicateEmail
	ErrInvalidCredentials
	ErrNotFound
	ErrUnauthorized
	ErrNotOwner
	ErrNotAdmin
	ErrNotPublic
	ErrProxyProtected
	ErrDisallowedField
	ErrInvalidAction
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrValidation:         "invalid request",
	ErrDuplicateEmail:     "email already registered",
	ErrInvalidCredentials: "invalid credentials",
	ErrNotFound:           "contact not found",
	ErrUnauthorized:       "unauthorize request",
	ErrNotOwner:           "not the owner of this contact",
	ErrNotAdmin:           "administrator permission required",
	ErrNotPublic:          "only public contacts can be hidden or shown",
	ErrProxyProtected:     "user contact cannot be modified",
	ErrDisallowedField:    "field cannot be updated",
	ErrInvalidAction:      "unknown contact action",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrValidation:         http.StatusBadRequest,
	ErrDuplicateEmail:     http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusBadRequest,
	ErrNotFound:           http.StatusNotFound,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrNotOwner:           http.StatusForbidden,
	ErrNotAdmin:           http.StatusForbidden,
	ErrNotPublic:          http.StatusBadRequest,
	ErrProxyProtected:     http.StatusBadRequest,
	ErrDisallowedField:    http.StatusBadRequest,
	ErrInvalidAction:      http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrValidation:         "0002",
	ErrDuplicateEmail:     "0003",
	ErrInvalidCredentials: "0004",
	ErrNotFound:           "0005",
	ErrUnauthorized:       "0006",
	ErrNotOwner:           "0007",
	ErrNotAdmin:           "0008",
	ErrNotPublic:          "0009",
	ErrProxyProtected:     "0010",
	ErrDisallowedField:    "0011",
	ErrInvalidAction:      "0012",
}
