package admin

import (
	"errors"
	"strconv"

	"github.com/milktea-next/internal/http/response"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ToppingRequest 配料创建/更新请求
type ToppingRequest struct {
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	IsActive  *bool   `json:"is_active"`
	SortOrder int     `json:"sort_order"`
}

// GetAdminToppings 获取配料列表 (Admin)
func (h *Handler) GetAdminToppings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	toppings, total, err := h.ToppingService.ListAdmin(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.topping_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, toppings, pagination)
}

// CreateTopping 创建配料
func (h *Handler) CreateTopping(c *gin.Context) {
	var req ToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	topping, err := h.ToppingService.Create(service.ToppingInput{
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrToppingInvalid) {
			respondError(c, response.CodeBadRequest, "error.topping_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.topping_create_failed", err)
		return
	}

	response.Success(c, topping)
}

// UpdateTopping 更新配料
func (h *Handler) UpdateTopping(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req ToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	topping, err := h.ToppingService.Update(uint(id), service.ToppingInput{
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrToppingNotFound):
			respondError(c, response.CodeNotFound, "error.topping_not_found", nil)
		case errors.Is(err, service.ErrToppingInvalid):
			respondError(c, response.CodeBadRequest, "error.topping_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.topping_update_failed", err)
		}
		return
	}

	response.Success(c, topping)
}

// DeleteTopping 删除配料（软删除）
func (h *Handler) DeleteTopping(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.ToppingService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrToppingNotFound) {
			respondError(c, response.CodeNotFound, "error.topping_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.topping_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
