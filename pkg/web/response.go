// Package web defines common components for a web application.
//
// Responses follow the JSend layout: every body carries a status of
// "success", "fail" (client caused) or "error" (server caused) and a data object.
package web

import (
	"github.com/go-playground/validator/v10"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response holds the common response type for all APIs.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// Message is the data of fail and error responses.
type Message struct {
	Message string `json:"message"`
}

// Success wraps data into a success response.
func Success(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

// Fail wraps a client caused err into a fail response.
func Fail(err error) Response {
	return FailMsg(err.Error())
}

// FailMsg wraps msg into a fail response.
func FailMsg(msg string) Response {
	return Response{Status: StatusFail, Data: Message{Message: msg}}
}

// Error wraps a server side err into an error response.
func Error(err error) Response {
	return Response{Status: StatusError, Data: Message{Message: err.Error()}}
}

// GetErrorMsg returns a human readable message for the first failed field.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "alphanum":
		return fe.Field() + " accepts only alphanumeric characters"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be less than " + fe.Param()
	}

	return fe.Field() + " is invalid"
}
