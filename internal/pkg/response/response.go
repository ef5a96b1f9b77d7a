package response

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/service"
	"context"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	GatewayTimeout      = 504
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(businessCode, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误，未识别的错误只记录日志，不向调用方暴露细节
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	var pe *util.ParamError
	if errors.As(err, &pe) {
		Fail(c, BadRequest, pe.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		log.WarnContext(c.Request.Context(), "request deadline exceeded", "path", c.FullPath(), "err", err)
		Fail(c, GatewayTimeout, "查询超时，请稍后重试")
		return
	}

	// 业务错误可能被 fmt.Errorf("%w") 包装，逐层查找
	for e := err; e != nil; e = errors.Unwrap(e) {
		if code, ok := service.ErrorMap[e]; ok {
			Fail(c, code, e.Error())
			return
		}
	}
	log.ErrorContext(c.Request.Context(), "Error", "path", c.FullPath(), "err", err)
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}
