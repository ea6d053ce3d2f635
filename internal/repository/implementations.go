package repository

import (
	"errors"

	"github.com/valora-earth/backend/internal/models"
	"gorm.io/gorm"
)

// InquiryRepositoryImpl implements InquiryRepository
type InquiryRepositoryImpl struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) models.InquiryRepository {
	return &InquiryRepositoryImpl{db: db}
}

func (r *InquiryRepositoryImpl) Create(inquiry *models.PropertyInquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *InquiryRepositoryImpl) GetByID(id uint) (*models.PropertyInquiry, error) {
	var inquiry models.PropertyInquiry
	err := r.db.First(&inquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *InquiryRepositoryImpl) GetWithEstimate(id uint) (*models.PropertyInquiry, error) {
	var inquiry models.PropertyInquiry
	err := r.db.Preload("Estimate").First(&inquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *InquiryRepositoryImpl) GetRecent(limit int) ([]models.PropertyInquiry, error) {
	var inquiries []models.PropertyInquiry
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	return inquiries, err
}

// EstimateRepositoryImpl implements EstimateRepository
type EstimateRepositoryImpl struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) models.EstimateRepository {
	return &EstimateRepositoryImpl{db: db}
}

// Upsert inserts the estimate or replaces the existing one for the same inquiry.
func (r *EstimateRepositoryImpl) Upsert(estimate *models.PropertyEstimate) error {
	var existing models.PropertyEstimate
	err := r.db.Where("inquiry_id = ?", estimate.InquiryID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(estimate).Error
	}
	if err != nil {
		return err
	}

	estimate.ID = existing.ID
	estimate.CreatedAt = existing.CreatedAt
	return r.db.Save(estimate).Error
}

func (r *EstimateRepositoryImpl) GetByInquiryID(inquiryID uint) (*models.PropertyEstimate, error) {
	var estimate models.PropertyEstimate
	err := r.db.Where("inquiry_id = ?", inquiryID).First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (r *EstimateRepositoryImpl) CountByInquiryID(inquiryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PropertyEstimate{}).
		Where("inquiry_id = ?", inquiryID).
		Count(&count).Error
	return count, err
}

// AnalysisLogRepositoryImpl implements AnalysisLogRepository
type AnalysisLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalysisLogRepository(db *gorm.DB) models.AnalysisLogRepository {
	return &AnalysisLogRepositoryImpl{db: db}
}

func (r *AnalysisLogRepositoryImpl) Create(log *models.AIAnalysisLog) error {
	return r.db.Create(log).Error
}

func (r *AnalysisLogRepositoryImpl) GetByInquiryID(inquiryID uint) ([]models.AIAnalysisLog, error) {
	var logs []models.AIAnalysisLog
	err := r.db.Where("inquiry_id = ?", inquiryID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *AnalysisLogRepositoryImpl) CountByInquiryID(inquiryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.AIAnalysisLog{}).
		Where("inquiry_id = ?", inquiryID).
		Count(&count).Error
	return count, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Inquiry     models.InquiryRepository
	Estimate    models.EstimateRepository
	AnalysisLog models.AnalysisLogRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Inquiry:     NewInquiryRepository(db),
		Estimate:    NewEstimateRepository(db),
		AnalysisLog: NewAnalysisLogRepository(db),
	}
}
