package util

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("this email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSession     = errors.New("invalid session token")
	ErrResumeStorage      = errors.New("failed to store resume")
	ErrUploadTooLarge     = errors.New("uploaded file is too large")
)

// ValidationError 请求字段校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// StorageError 持久化层失败，保留底层错误
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RegistrationStatus 注册失败时返回的 HTTP 状态码
func RegistrationStatus(err error) int {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrEmailRegistered):
		return http.StatusConflict
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RegistrationMessage 注册失败时展示给用户的文本
func RegistrationMessage(err error) string {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrEmailRegistered):
		return "Registration Error: " + ErrEmailRegistered.Error()
	case errors.As(err, &validationErr):
		return "Registration Error: " + validationErr.Error()
	default:
		return "Registration Error: could not save your account, please try again later"
	}
}
