package store

import (
	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

type reportStore struct {
	db *gorm.DB
}

func (s *reportStore) CreateReport(productID, reportedByID uint) (*models.ProductReport, error) {
	if err := s.db.First(&models.Product{}, productID).Error; err != nil {
		return nil, asNotFound(err, "product with ID %d", productID)
	}
	if err := s.db.First(&models.UserProfile{}, reportedByID).Error; err != nil {
		return nil, asNotFound(err, "user with ID %d", reportedByID)
	}

	report := models.ProductReport{
		ProductID:    productID,
		ReportedByID: reportedByID,
		Status:       models.ReportPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &report, nil
}

func (s *reportStore) ListPendingReports() ([]models.ProductReport, error) {
	var reports []models.ProductReport
	if err := s.db.Preload("Product").Preload("Product.Category").
		Where("status = ?", models.ReportPending).
		Find(&reports).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return reports, nil
}

func (s *reportStore) getPending(reportID uint) (*models.ProductReport, error) {
	var report models.ProductReport
	if err := s.db.First(&report, reportID).Error; err != nil {
		return nil, asNotFound(err, "report with ID %d", reportID)
	}
	if report.Status != models.ReportPending {
		return nil, apperr.Conflict("report %d is already resolved as %s", reportID, report.Status)
	}
	return &report, nil
}

// ResolveDelete takes the reported product off the marketplace and closes
// the report. Product takedown and report closure commit together.
func (s *reportStore) ResolveDelete(reportID uint) error {
	report, err := s.getPending(reportID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("product_id = ?", report.ProductID).
			Updates(map[string]interface{}{
				"status":         models.ProductRemoved,
				"approve_status": models.ApproveRejected,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProductReport{}).
			Where("report_id = ? AND status = ?", reportID, models.ReportPending).
			Update("status", models.ReportDeleted).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *reportStore) ResolveKeep(reportID uint) error {
	report, err := s.getPending(reportID)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.ProductReport{}).
		Where("report_id = ? AND status = ?", report.ReportID, models.ReportPending).
		Update("status", models.ReportKept)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("report %d is already resolved", reportID)
	}
	return nil
}
