package handler

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PlaceActionHandler struct {
	statsSvc service.StatsService
}

func NewPlaceActionHandler(statsSvc service.StatsService) *PlaceActionHandler {
	return &PlaceActionHandler{
		statsSvc: statsSvc,
	}
}

// IncrementView 上报浏览，返回最新统计
func (h *PlaceActionHandler) IncrementView(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stats, err := h.statsSvc.IncrementView(c.Request.Context(), contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// ToggleLike 点赞/取消点赞景点
func (h *PlaceActionHandler) ToggleLike(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("place_id"), 10, 64)
	if err != nil || placeID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	result, err := h.statsSvc.ToggleLike(c.Request.Context(), userID, placeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStatusDTO{LikeStatus: int(result)})
}
