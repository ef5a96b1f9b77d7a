package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParamError 参数校验失败，携带首个失败字段的说明
type ParamError struct {
	Field string
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", e.Field, e.Rule)
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &ParamError{Field: firstError.Field(), Rule: firstError.Tag()}
		}
		return err
	}
	return nil
}
