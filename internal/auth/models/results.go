package models

import "signalist/internal/auth/identity"

// Messages returned to callers when an operation fails. Provider details stay in logs.
const (
	ErrMsgSignUpFailed  = "Sign up failed"
	ErrMsgSignInFailed  = "Sign in failed"
	ErrMsgSignOutFailed = "Sign out failed"
)

// Result is the uniform outcome of every auth operation.
type Result struct {
	Success bool               `json:"success"`
	Data    *identity.Response `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func Succeeded(data *identity.Response) *Result {
	return &Result{Success: true, Data: data}
}

func Failed(msg string) *Result {
	return &Result{Success: false, Error: msg}
}
