package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pesafolio/internal/errors"
	"pesafolio/internal/models"
	"pesafolio/internal/pagination"
)

// platformService handles connected-platform business logic.
type platformService struct {
	db *gorm.DB
}

// NewPlatformService creates a new PlatformServicer.
func NewPlatformService(db *gorm.DB) PlatformServicer {
	return &platformService{db: db}
}

// ConnectPlatform links an external investment platform to the user.
func (s *platformService) ConnectPlatform(userID, name string, platformType models.PlatformType, apiKey string) (*models.ConnectedPlatform, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "platform name is required")
	}

	platform := &models.ConnectedPlatform{
		UserID:           userID,
		PlatformName:     name,
		PlatformType:     platformType,
		APIKey:           apiKey,
		ConnectionStatus: "pending",
	}

	if err := s.db.Create(platform).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return platform, nil
}

// GetUserPlatforms retrieves a paginated list of the user's connected platforms.
func (s *platformService) GetUserPlatforms(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ConnectedPlatform], error) {
	page.Defaults()

	base := s.db.Model(&models.ConnectedPlatform{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var platforms []models.ConnectedPlatform
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&platforms).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(platforms, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPlatformByID retrieves a platform, scoped to the owning user.
func (s *platformService) GetPlatformByID(userID, platformID string) (*models.ConnectedPlatform, error) {
	var platform models.ConnectedPlatform
	if err := s.db.Where("id = ? AND user_id = ?", platformID, userID).First(&platform).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlatformNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &platform, nil
}
