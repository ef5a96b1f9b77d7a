package api

import (
	"Tripmate/internal/api/middleware"
	"Tripmate/internal/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultQueryTimeout = 3 * time.Second

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	timeout := group.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	// TraceId & Logger & CORS & 超时
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics"))
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r, "/metrics")
	r.Use(middleware.TimeoutMiddleware(timeout))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(group.TokenChecker)
	authOpt := middleware.AuthOptionalMiddleware(group.TokenChecker)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		placeGroup := apiGroup.Group("/places")
		{
			placeGroup.GET("", group.PlaceHandler.FindPlaces)
			placeGroup.GET("/search", group.PlaceHandler.SearchPlaces)
			placeGroup.GET("/:content_id/reviews", group.PlaceHandler.GetPlaceReviews)
			placeGroup.GET("/:content_id/metrics/7d", group.PlaceHandler.GetTrend7Days)
			placeGroup.GET("/:content_id/metrics/30d", group.PlaceHandler.GetTrend30Days)

			authOptGroup := placeGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("/:content_id", group.PlaceHandler.GetPlaceDetail)
			}
		}

		placeActionGroup := apiGroup.Group("/place/action")
		{
			placeActionGroup.POST("/views/:content_id", group.PlaceActionHandler.IncrementView)

			authActionGroup := placeActionGroup.Group("")
			authActionGroup.Use(auth)
			{
				authActionGroup.POST("/likes/:place_id", group.PlaceActionHandler.ToggleLike)
			}
		}

		reviewGroup := apiGroup.Group("/reviews")
		reviewGroup.Use(auth)
		{
			reviewGroup.POST("", group.ReviewHandler.CreateReview)
			reviewGroup.PUT("/:review_id", group.ReviewHandler.UpdateReview)
			reviewGroup.DELETE("/:review_id", group.ReviewHandler.DeleteReview)
		}

		apiGroup.GET("/score/preview", group.ScoreHandler.PreviewScore)

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, middleware.CheckRoles("ADMIN"))
		{
			adminGroup.POST("/places/:place_id/score", group.ScoreHandler.RefreshScore)
		}

		apiGroup.GET("/themes", group.TaxonomyHandler.ListThemes)
		apiGroup.GET("/regions", group.TaxonomyHandler.ListRegions)
		apiGroup.GET("/regions/:name/wards", group.TaxonomyHandler.ListWards)
		apiGroup.GET("/categories", group.TaxonomyHandler.ListCategories)

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.GET("/likes", group.UserHandler.GetLikedPlaces)
				authGroup.GET("/reviews", group.UserHandler.GetMyReviews)
			}
		}
	}

	return r
}
