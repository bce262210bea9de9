package repository

import (
	"context"

	"findmymechanic-service/internal/domain/entity"
)

// ServiceCatalogRepository reads the service-type reference data.
// The catalog is maintained out of band; the service never writes to it.
type ServiceCatalogRepository interface {
	// GetByCode finds a service type by its code, case-insensitively.
	GetByCode(ctx context.Context, code string) (*entity.ServiceType, error)

	// List returns all known service types ordered by code.
	List(ctx context.Context) ([]*entity.ServiceType, error)
}
