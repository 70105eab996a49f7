package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/milktea-next/internal/http/response"
	"github.com/milktea-next/internal/repository"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VoucherRequest 优惠码创建/更新请求
type VoucherRequest struct {
	Code          string  `json:"code" binding:"required"`
	Title         string  `json:"title"`
	Type          string  `json:"type" binding:"required"`
	Value         float64 `json:"value" binding:"required"`
	MinOrderValue float64 `json:"min_order_value"`
	ForNewUser    bool    `json:"for_new_user"`
	StartHour     *int    `json:"start_hour"`
	EndHour       *int    `json:"end_hour"`
	IsActive      *bool   `json:"is_active"`
}

func (r VoucherRequest) toServiceInput() service.VoucherInput {
	return service.VoucherInput{
		Code:          r.Code,
		Title:         r.Title,
		Type:          r.Type,
		Value:         decimal.NewFromFloat(r.Value),
		MinOrderValue: decimal.NewFromFloat(r.MinOrderValue),
		ForNewUser:    r.ForNewUser,
		StartHour:     r.StartHour,
		EndHour:       r.EndHour,
		IsActive:      r.IsActive,
	}
}

func respondVoucherWriteError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrVoucherNotFound):
		respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
	case errors.Is(err, service.ErrVoucherCodeRequired):
		respondError(c, response.CodeBadRequest, "error.voucher_code_required", nil)
	case errors.Is(err, service.ErrVoucherCodeTaken):
		respondError(c, response.CodeBadRequest, "error.voucher_code_exists", nil)
	case errors.Is(err, service.ErrVoucherTypeInvalid):
		respondError(c, response.CodeBadRequest, "error.voucher_type_invalid", nil)
	case errors.Is(err, service.ErrVoucherValueInvalid):
		respondError(c, response.CodeBadRequest, "error.voucher_value_invalid", nil)
	case errors.Is(err, service.ErrVoucherHoursInvalid):
		respondError(c, response.CodeBadRequest, "error.voucher_hours_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// GetAdminVouchers 获取优惠码列表 (Admin)
func (h *Handler) GetAdminVouchers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var isActive *bool
	switch strings.ToLower(strings.TrimSpace(c.Query("is_active"))) {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	vouchers, total, err := h.VoucherAdminService.List(repository.VoucherListFilter{
		Code:     strings.TrimSpace(c.Query("code")),
		IsActive: isActive,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, vouchers, pagination)
}

// GetAdminVoucher 获取优惠码详情 (Admin)
func (h *Handler) GetAdminVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	voucher, err := h.VoucherAdminService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}

	response.Success(c, voucher)
}

// CreateVoucher 创建优惠码
func (h *Handler) CreateVoucher(c *gin.Context) {
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	voucher, err := h.VoucherAdminService.Create(req.toServiceInput())
	if err != nil {
		respondVoucherWriteError(c, err, "error.voucher_create_failed")
		return
	}

	response.Success(c, voucher)
}

// UpdateVoucher 更新优惠码
func (h *Handler) UpdateVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	voucher, err := h.VoucherAdminService.Update(uint(id), req.toServiceInput())
	if err != nil {
		respondVoucherWriteError(c, err, "error.voucher_update_failed")
		return
	}

	response.Success(c, voucher)
}

// DeleteVoucher 删除优惠码（软删除，不影响已下单的折扣快照）
func (h *Handler) DeleteVoucher(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.VoucherAdminService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.voucher_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
