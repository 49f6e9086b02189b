package api

import (
	"blooddonation/internal/entity"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 为 gin 的绑定校验器注册状态枚举标签，并使用 json 字段名报告错误
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("donation_status", func(fl validator.FieldLevel) bool {
			_, ok := entity.ParseDonationStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("blog_status", func(fl validator.FieldLevel) bool {
			_, ok := entity.ParseBlogStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("user_status", func(fl validator.FieldLevel) bool {
			_, ok := entity.ParseUserStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, ok := entity.ParseRole(fl.Field().String())
			return ok
		})
	})
}

// ValidationDetails 把绑定/校验错误转换为 字段 -> 提示 的映射
func ValidationDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}
	return map[string]string{"payload": "invalid payload"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "donation_status":
		return "must be one of: pending, inprogress, done, cancelled"
	case "blog_status":
		return "must be one of: draft, published"
	case "user_status":
		return "must be one of: active, blocked"
	case "role":
		return "must be one of: donor, volunteer, admin"
	}
	return "is invalid"
}
