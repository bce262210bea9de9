package repository

import (
	"context"
	"errors"
	"time"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/internal/domain/entity"
	"findmymechanic-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormServiceCatalogRepository implements the ServiceCatalogRepository
// interface against the relational reference database
type GormServiceCatalogRepository struct {
	db *gorm.DB
}

// NewGormServiceCatalogRepository creates a new GORM service catalog repository
func NewGormServiceCatalogRepository(db *gorm.DB) repository.ServiceCatalogRepository {
	return &GormServiceCatalogRepository{
		db: db,
	}
}

// ServiceTypes GORM model for database mapping
type ServiceTypes struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"column:code;unique"`
	Name      string `gorm:"column:name;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (ServiceTypes) TableName() string {
	return "m_service_types"
}

// GetByCode finds a service type by code, case-insensitively
func (r *GormServiceCatalogRepository) GetByCode(ctx context.Context, code string) (*entity.ServiceType, error) {
	var st ServiceTypes
	result := r.db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code).First(&st)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("service type %s", code)
		}
		return nil, apperrors.Storage("get service type", result.Error)
	}

	return toServiceType(&st), nil
}

// List returns all service types ordered by code
func (r *GormServiceCatalogRepository) List(ctx context.Context) ([]*entity.ServiceType, error) {
	var rows []ServiceTypes
	result := r.db.WithContext(ctx).Order("code").Find(&rows)
	if result.Error != nil {
		return nil, apperrors.Storage("list service types", result.Error)
	}

	out := make([]*entity.ServiceType, len(rows))
	for i := range rows {
		out[i] = toServiceType(&rows[i])
	}
	return out, nil
}

func toServiceType(st *ServiceTypes) *entity.ServiceType {
	return &entity.ServiceType{
		ID:        st.ID,
		Code:      st.Code,
		Name:      st.Name,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
	}
}
