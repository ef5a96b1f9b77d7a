package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrThemeInvalid         = errors.New("未知的主题")
	ErrRatingInvalid        = errors.New("评分必须在 1 到 5 之间")
	ErrReviewContentInvalid = errors.New("评论内容长度必须在 1 到 1000 之间")
	ErrMetricDaysInvalid    = errors.New("趋势天数只支持 7 或 30")
	ErrPlaceNotFound        = errors.New("景点不存在")
	ErrReviewNotFound       = errors.New("评论不存在")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrReviewDuplicate      = errors.New("已评价过该景点")
	ErrActionDuplicate      = errors.New("重复操作")
	ErrUserUsernameExist    = errors.New("用户名已存在")
	ErrPasswordIncorrect    = errors.New("用户名或密码错误")
	ErrReviewForbidden      = errors.New("只能修改自己的评论")
	UnauthorizedError       = errors.New("未登录或登录已过期")
	ForbiddenError          = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrThemeInvalid:         BadRequest,
	ErrRatingInvalid:        BadRequest,
	ErrReviewContentInvalid: BadRequest,
	ErrMetricDaysInvalid:    BadRequest,
	ErrPlaceNotFound:        NotFound,
	ErrReviewNotFound:       NotFound,
	ErrUserNotFound:         NotFound,
	ErrReviewDuplicate:      Conflict,
	ErrActionDuplicate:      Conflict,
	ErrUserUsernameExist:    Conflict,
	ErrPasswordIncorrect:    Unauthorized,
	ErrReviewForbidden:      Forbidden,
	UnauthorizedError:       Unauthorized,
	ForbiddenError:          Forbidden,
	UnExpectedError:         InternalServerError,
}

// isDuplicateKey 唯一键冲突，兼容未开启 TranslateError 的连接
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
