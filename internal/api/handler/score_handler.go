package handler

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreSvc service.ScoreService
}

func NewScoreHandler(scoreSvc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreSvc: scoreSvc,
	}
}

// PreviewScore 按给定统计值计算分数，不落库
func (h *ScoreHandler) PreviewScore(c *gin.Context) {
	var req dto.ScorePreviewDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	score, err := h.scoreSvc.PreviewScore(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, score)
}

// RefreshScore 管理员手动重算分数
func (h *ScoreHandler) RefreshScore(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("place_id"), 10, 64)
	if err != nil || placeID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stats, err := h.scoreSvc.UpdateScore(c.Request.Context(), placeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
