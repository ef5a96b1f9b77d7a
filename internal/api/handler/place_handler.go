package handler

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// 详情页附带的最新评论条数
const detailReviewSize = 5

type PlaceHandler struct {
	placeQuerySvc  service.PlaceQueryService
	reviewSvc      service.ReviewService
	placeMetricSvc service.PlaceMetricService
}

func NewPlaceHandler(
	placeQuerySvc service.PlaceQueryService,
	reviewSvc service.ReviewService,
	placeMetricSvc service.PlaceMetricService,
) *PlaceHandler {
	return &PlaceHandler{
		placeQuerySvc:  placeQuerySvc,
		reviewSvc:      reviewSvc,
		placeMetricSvc: placeMetricSvc,
	}
}

// FindPlaces 按主题、地区、区县、分类筛选景点
func (h *PlaceHandler) FindPlaces(c *gin.Context) {
	var req dto.PlaceQueryDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.placeQuerySvc.FindPlaces(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// SearchPlaces 关键词搜索
func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	var req dto.PlaceSearchDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.placeQuerySvc.SearchPlaces(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetPlaceDetail 景点详情与最新评论并行加载
func (h *PlaceHandler) GetPlaceDetail(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	detail := &dto.PlaceDetailDTO{}
	g, gCtx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		place, err := h.placeQuerySvc.GetPlaceDetail(gCtx, contentID, userID)
		if err != nil {
			return err
		}
		detail.Place = place
		return nil
	})
	g.Go(func() error {
		reviews, err := h.reviewSvc.ListByPlace(gCtx, contentID, 0, detailReviewSize)
		if err != nil {
			return err
		}
		detail.Reviews = reviews.Results
		return nil
	})

	if err := g.Wait(); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// GetPlaceReviews 景点评论分页
func (h *PlaceHandler) GetPlaceReviews(c *gin.Context) {
	contentID := c.Param("content_id")
	page, size := pageQuery(c)

	reviews, err := h.reviewSvc.ListByPlace(c.Request.Context(), contentID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviews)
}

// GetTrend7Days 景点 7 天趋势
func (h *PlaceHandler) GetTrend7Days(c *gin.Context) {
	h.trend(c, 7)
}

// GetTrend30Days 景点 30 天趋势
func (h *PlaceHandler) GetTrend30Days(c *gin.Context) {
	h.trend(c, 30)
}

func (h *PlaceHandler) trend(c *gin.Context, days int) {
	trend, err := h.placeMetricSvc.GetPlaceTrend(c.Request.Context(), c.Param("content_id"), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}

// pageQuery 读取 page（从 0 开始）/ size，负数交由 service 层拒绝
func pageQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "0"))
	if err != nil {
		size = 0
	}
	return page, size
}
