package handler

import (
	"Tripmate/internal/pkg/response"
	"Tripmate/internal/service"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	taxonomySvc service.TaxonomyService
}

func NewTaxonomyHandler(taxonomySvc service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomySvc: taxonomySvc,
	}
}

func (h *TaxonomyHandler) ListThemes(c *gin.Context) {
	themes, err := h.taxonomySvc.ListThemes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, themes)
}

func (h *TaxonomyHandler) ListRegions(c *gin.Context) {
	regions, err := h.taxonomySvc.ListRegions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, regions)
}

// ListWards 指定地区下的区县，未知地区返回空列表
func (h *TaxonomyHandler) ListWards(c *gin.Context) {
	wards, err := h.taxonomySvc.ListWards(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, wards)
}

func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomySvc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}
