// Package orgs exposes the narrow organization/employee lookups the
// reconciliation engine consumes. Org and employee CRUD live elsewhere.
package orgs

import (
	"context"
	"errors"

	"ferro-backend/internal/models"
	"ferro-backend/internal/overhead"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrgNotFound = errors.New("Organization not found")

type Service struct {
	DB *gorm.DB
}

// OrganizationDefaults implements overhead.DefaultsSource. The lookup runs on
// the caller's handle so a cascade transaction sees its own snapshot.
func (s *Service) OrganizationDefaults(tx *gorm.DB, orgID uuid.UUID) (overhead.Params, error) {
	var org models.Organization
	if err := tx.Where("org_id = ?", orgID).First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return overhead.Params{}, ErrOrgNotFound
		}
		return overhead.Params{}, err
	}
	return overhead.Params{
		GrossRevenuePreviousYear:  org.GrossRevenuePreviousYear,
		OperatingCostPreviousYear: org.OperatingCostPreviousYear,
		InflationRate:             org.InflationRate,
	}, nil
}

// EmployeeExists reports whether id resolves to a non-deleted employee.
func (s *Service) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Employee{}).Where("employee_id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
