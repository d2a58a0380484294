package handler

import (
	"net/http"

	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductTypeHandler struct{ svc service.ProductTypeService }

func NewProductTypeHandler(svc service.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{svc: svc}
}

func (h *ProductTypeHandler) Create(c *gin.Context) {
	var req dto.ProductTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
