package handler

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/pkg/util"
	"Tripmate/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc       service.UserService
	placeQuerySvc service.PlaceQueryService
	reviewSvc     service.ReviewService
}

func NewUserHandler(userSvc service.UserService, placeQuerySvc service.PlaceQueryService, reviewSvc service.ReviewService) *UserHandler {
	return &UserHandler{
		userSvc:       userSvc,
		placeQuerySvc: placeQuerySvc,
		reviewSvc:     reviewSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBindJSON(&registerDTO)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBindJSON(&loginDTO)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// Logout 将当前 Token 加入黑名单
func (s *UserHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetLikedPlaces 我点赞的景点
func (s *UserHandler) GetLikedPlaces(c *gin.Context) {
	page, size := pageQuery(c)
	places, err := s.placeQuerySvc.GetLikedPlaces(c.Request.Context(), c.GetUint64("user_id"), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, places)
}

// GetMyReviews 我发布的评论
func (s *UserHandler) GetMyReviews(c *gin.Context) {
	page, size := pageQuery(c)
	reviews, err := s.reviewSvc.ListByUser(c.Request.Context(), c.GetUint64("user_id"), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviews)
}
