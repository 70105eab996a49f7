package admin

import (
	"errors"
	"strconv"

	"github.com/milktea-next/internal/http/response"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerUpsertRequest Banner 创建/更新请求
type BannerUpsertRequest struct {
	Name      string `json:"name" binding:"required"`
	Position  string `json:"position"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image" binding:"required"`
	LinkType  string `json:"link_type"`
	LinkValue string `json:"link_value"`
	IsActive  *bool  `json:"is_active"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	SortOrder int    `json:"sort_order"`
}

func (r BannerUpsertRequest) toServiceInput() (service.BannerInput, error) {
	startAt, err := parseTimeNullable(r.StartAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	endAt, err := parseTimeNullable(r.EndAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	return service.BannerInput{
		Name:      r.Name,
		Position:  r.Position,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Image:     r.Image,
		LinkType:  r.LinkType,
		LinkValue: r.LinkValue,
		IsActive:  r.IsActive,
		StartAt:   startAt,
		EndAt:     endAt,
		SortOrder: r.SortOrder,
	}, nil
}

// GetAdminBanners 获取后台 Banner 列表
func (h *Handler) GetAdminBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	position := c.Query("position")
	search := c.Query("search")

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}

	banners, total, err := h.BannerService.ListAdmin(position, search, isActive, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.banner_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, banners, pagination)
}

// GetAdminBanner 获取后台 Banner 详情
func (h *Handler) GetAdminBanner(c *gin.Context) {
	id := c.Param("id")
	banner, err := h.BannerService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			respondError(c, response.CodeNotFound, "error.banner_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.banner_fetch_failed", err)
		return
	}
	response.Success(c, banner)
}

// CreateBanner 创建 Banner
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	banner, err := h.BannerService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerInvalid):
			respondError(c, response.CodeBadRequest, "error.banner_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.banner_create_failed", err)
		}
		return
	}

	response.Success(c, banner)
}

// UpdateBanner 更新 Banner
func (h *Handler) UpdateBanner(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req BannerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	banner, err := h.BannerService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerInvalid):
			respondError(c, response.CodeBadRequest, "error.banner_invalid", nil)
		case errors.Is(err, service.ErrBannerNotFound):
			respondError(c, response.CodeNotFound, "error.banner_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.banner_update_failed", err)
		}
		return
	}

	response.Success(c, banner)
}

// DeleteBanner 删除 Banner
func (h *Handler) DeleteBanner(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.BannerService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			respondError(c, response.CodeNotFound, "error.banner_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.banner_delete_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"deleted": true,
	})
}
