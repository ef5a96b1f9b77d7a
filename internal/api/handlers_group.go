package api

import (
	"Tripmate/internal/api/handler"
	"Tripmate/internal/api/middleware"
	"time"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PlaceHandler       *handler.PlaceHandler
	PlaceActionHandler *handler.PlaceActionHandler
	ReviewHandler      *handler.ReviewHandler
	ScoreHandler       *handler.ScoreHandler
	TaxonomyHandler    *handler.TaxonomyHandler
	UserHandler        *handler.UserHandler

	TokenChecker middleware.TokenChecker
	QueryTimeout time.Duration
}
