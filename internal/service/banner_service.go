package service

import (
	"strings"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"
)

// BannerService Banner 业务服务
type BannerService struct {
	repo repository.BannerRepository
}

// NewBannerService 创建 Banner 服务
func NewBannerService(repo repository.BannerRepository) *BannerService {
	return &BannerService{repo: repo}
}

// BannerInput 创建/更新 Banner 输入
type BannerInput struct {
	Name      string
	Position  string
	Title     string
	Subtitle  string
	Image     string
	LinkType  string
	LinkValue string
	IsActive  *bool
	StartAt   *time.Time
	EndAt     *time.Time
	SortOrder int
}

// ListAdmin 获取后台 Banner 列表
func (s *BannerService) ListAdmin(position, search string, isActive *bool, page, pageSize int) ([]models.Banner, int64, error) {
	filter := repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
		Position: strings.TrimSpace(position),
		Search:   strings.TrimSpace(search),
		IsActive: isActive,
		OrderBy:  "sort_order DESC, created_at DESC",
	}
	return s.repo.List(filter)
}

// ListPublic 获取公开 Banner 列表
func (s *BannerService) ListPublic(position string, limit int) ([]models.Banner, error) {
	normalized := normalizeBannerPosition(position)
	return s.repo.ListValidByPosition(normalized, limit, time.Now())
}

// GetByID 根据 ID 获取 Banner
func (s *BannerService) GetByID(id string) (*models.Banner, error) {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	return banner, nil
}

// Create 创建 Banner
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	banner, err := buildBannerEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新 Banner
func (s *BannerService) Update(id string, input BannerInput) (*models.Banner, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBannerNotFound
	}

	banner, err := buildBannerEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除 Banner
func (s *BannerService) Delete(id string) error {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if banner == nil {
		return ErrBannerNotFound
	}
	return s.repo.Delete(id)
}

func buildBannerEntity(input BannerInput, existing *models.Banner) (*models.Banner, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBannerInvalid
	}
	image := strings.TrimSpace(input.Image)
	if image == "" {
		return nil, ErrBannerInvalid
	}

	position := normalizeBannerPosition(input.Position)
	linkType := normalizeBannerLinkType(input.LinkType)
	if linkType == "" {
		return nil, ErrBannerInvalid
	}

	startAt := input.StartAt
	endAt := input.EndAt
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return nil, ErrBannerInvalid
	}

	linkValue := strings.TrimSpace(input.LinkValue)
	if linkType == constants.BannerLinkTypeNone {
		linkValue = ""
	}
	if linkType != constants.BannerLinkTypeNone && linkValue == "" {
		return nil, ErrBannerInvalid
	}

	if existing == nil {
		entity := &models.Banner{
			Name:      name,
			Position:  position,
			Title:     strings.TrimSpace(input.Title),
			Subtitle:  strings.TrimSpace(input.Subtitle),
			Image:     image,
			LinkType:  linkType,
			LinkValue: linkValue,
			StartAt:   startAt,
			EndAt:     endAt,
			SortOrder: input.SortOrder,
		}
		if input.IsActive != nil {
			entity.IsActive = *input.IsActive
		} else {
			entity.IsActive = true
		}
		return entity, nil
	}

	existing.Name = name
	existing.Position = position
	existing.Title = strings.TrimSpace(input.Title)
	existing.Subtitle = strings.TrimSpace(input.Subtitle)
	existing.Image = image
	existing.LinkType = linkType
	existing.LinkValue = linkValue
	existing.StartAt = startAt
	existing.EndAt = endAt
	existing.SortOrder = input.SortOrder
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	return existing, nil
}

func normalizeBannerPosition(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return constants.BannerPositionHomeHero
	}
	if value == constants.BannerPositionHomeHero {
		return value
	}
	return constants.BannerPositionHomeHero
}

func normalizeBannerLinkType(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", constants.BannerLinkTypeNone:
		return constants.BannerLinkTypeNone
	case constants.BannerLinkTypeInternal:
		return constants.BannerLinkTypeInternal
	case constants.BannerLinkTypeExternal:
		return constants.BannerLinkTypeExternal
	default:
		return ""
	}
}
