package controller

import (
	"errors"
	"fmt"
	"interview_prep_backend/internal/util"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// useFormFieldNames 让校验错误里的字段名使用表单字段名（full_name 而不是 FullName）
func useFormFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}

// toValidationError 把 gin 绑定错误转换为 util.ValidationError，只取第一个字段错误
func toValidationError(err error) *util.ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &util.ValidationError{Field: "request", Message: "is malformed"}
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "email":
		msg = "must be a valid email address"
	case "min":
		msg = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		msg = "is invalid"
	}
	return &util.ValidationError{Field: fe.Field(), Message: msg}
}
