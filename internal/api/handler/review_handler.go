package handler

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewSvc service.ReviewService
}

func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewSvc: reviewSvc,
	}
}

// CreateReview 发布评论
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.reviewSvc.CreateReview(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// UpdateReview 修改自己的评论
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.ReviewUpdateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.reviewSvc.UpdateReview(c.Request.Context(), c.GetUint64("user_id"), reviewID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteReview 删除自己的评论
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseUint(c.Param("review_id"), 10, 64)
	if err != nil || reviewID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = h.reviewSvc.DeleteReview(c.Request.Context(), c.GetUint64("user_id"), reviewID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
