package models

// GORM models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FloatSeries stores a numeric series as a JSON column.
type FloatSeries []float64

func (s FloatSeries) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *FloatSeries) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// SeriesMap stores category -> numeric series as a JSON column.
type SeriesMap map[string]FloatSeries

func (m SeriesMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *SeriesMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// StringList stores a list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// JSONMap stores an arbitrary JSON object column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, target interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", value)
	}
}

// Lot size units accepted on inquiry creation
const (
	UnitAcres    = "acres"
	UnitHectares = "hectares"
)

// PropertyInquiry represents a property owner's submitted land details.
// Created once at the end of the questionnaire flow, never mutated.
type PropertyInquiry struct {
	BaseModel
	Address             string  `json:"address" gorm:"size:500;not null"`
	LotSize             float64 `json:"lot_size" gorm:"type:decimal(10,2);not null"`
	LotSizeUnit         string  `json:"lot_size_unit" gorm:"size:10;default:'acres'"`
	CurrentProperty     string  `json:"current_property" gorm:"not null"`
	PropertyGoals       string  `json:"property_goals" gorm:"not null"`
	InvestmentCapacity  string  `json:"investment_capacity" gorm:"not null"`
	PreferencesConcerns string  `json:"preferences_concerns" gorm:"not null"`
	Region              string  `json:"region" gorm:"size:100;not null"`

	// Associations
	Estimate *PropertyEstimate `json:"estimate,omitempty" gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
	Logs     []AIAnalysisLog   `json:"logs,omitempty" gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
}

// PropertyEstimate is the AI-generated analysis for one inquiry (1:1, upserted).
type PropertyEstimate struct {
	BaseModel
	InquiryID          uint        `json:"inquiry_id" gorm:"uniqueIndex;not null"`
	ProjectName        string      `json:"project_name" gorm:"size:200;not null"`
	ProjectDescription string      `json:"project_description"`
	ConfidenceScore    float64     `json:"confidence_score"`
	FactorsConsidered  StringList  `json:"factors_considered" gorm:"type:text"`
	Recommendations    StringList  `json:"recommendations" gorm:"type:text"`
	Timeline           string      `json:"timeline" gorm:"size:200"`
	RiskAssessment     string      `json:"risk_assessment"`
	CashFlowProjection FloatSeries `json:"cash_flow_projection" gorm:"type:text"`
	RevenueBreakdown   SeriesMap   `json:"revenue_breakdown" gorm:"type:text"`
	CostBreakdown      SeriesMap   `json:"cost_breakdown" gorm:"type:text"`
	AIResponseRaw      JSONMap     `json:"ai_response_raw" gorm:"type:text"`
	ProcessingTime     float64     `json:"processing_time"`
}

// AIAnalysisLog is the append-only audit row for one provider invocation attempt.
type AIAnalysisLog struct {
	BaseModel
	InquiryID      uint    `json:"inquiry_id" gorm:"index;not null"`
	RequestData    JSONMap `json:"request_data" gorm:"type:text"`
	ResponseData   JSONMap `json:"response_data" gorm:"type:text"`
	ModelUsed      string  `json:"model_used" gorm:"size:100"`
	TokensUsed     int     `json:"tokens_used"`
	ProcessingTime float64 `json:"processing_time"`
	Success        bool    `json:"success"`
	ErrorMessage   string  `json:"error_message"`
}

// Database interfaces for repository pattern
type InquiryRepository interface {
	Create(inquiry *PropertyInquiry) error
	GetByID(id uint) (*PropertyInquiry, error)
	GetWithEstimate(id uint) (*PropertyInquiry, error)
	GetRecent(limit int) ([]PropertyInquiry, error)
}

type EstimateRepository interface {
	Upsert(estimate *PropertyEstimate) error
	GetByInquiryID(inquiryID uint) (*PropertyEstimate, error)
	CountByInquiryID(inquiryID uint) (int64, error)
}

type AnalysisLogRepository interface {
	Create(log *AIAnalysisLog) error
	GetByInquiryID(inquiryID uint) ([]AIAnalysisLog, error)
	CountByInquiryID(inquiryID uint) (int64, error)
}

// TableName methods for custom table names
func (PropertyInquiry) TableName() string  { return "property_inquiries" }
func (PropertyEstimate) TableName() string { return "property_estimates" }
func (AIAnalysisLog) TableName() string    { return "ai_analysis_logs" }

// Model validation methods
func (pi *PropertyInquiry) Validate() error {
	if pi.Address == "" {
		return fmt.Errorf("address is required")
	}
	if pi.LotSize <= 0 {
		return fmt.Errorf("lot size must be greater than 0")
	}
	if pi.LotSizeUnit != UnitAcres && pi.LotSizeUnit != UnitHectares {
		return fmt.Errorf("invalid lot size unit: %s", pi.LotSizeUnit)
	}
	if pi.CurrentProperty == "" || pi.PropertyGoals == "" ||
		pi.InvestmentCapacity == "" || pi.PreferencesConcerns == "" {
		return fmt.Errorf("all questionnaire answers are required")
	}
	if pi.Region == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}

func (pe *PropertyEstimate) Validate() error {
	if pe.InquiryID == 0 {
		return fmt.Errorf("inquiry ID is required")
	}
	if pe.ProjectName == "" {
		return fmt.Errorf("project name is required")
	}
	if pe.ConfidenceScore < 0.0 || pe.ConfidenceScore > 1.0 {
		return fmt.Errorf("confidence score must be between 0.0 and 1.0, got %v", pe.ConfidenceScore)
	}
	return nil
}

func (al *AIAnalysisLog) Validate() error {
	if al.InquiryID == 0 {
		return fmt.Errorf("inquiry ID is required")
	}
	if !al.Success && al.ErrorMessage == "" {
		return fmt.Errorf("failed log entries require an error message")
	}
	return nil
}

// GORM hooks
func (pi *PropertyInquiry) BeforeCreate(tx *gorm.DB) error {
	if pi.LotSizeUnit == "" {
		pi.LotSizeUnit = UnitAcres
	}
	return pi.Validate()
}

func (pe *PropertyEstimate) BeforeCreate(tx *gorm.DB) error {
	return pe.Validate()
}

func (pe *PropertyEstimate) BeforeUpdate(tx *gorm.DB) error {
	return pe.Validate()
}

func (al *AIAnalysisLog) BeforeCreate(tx *gorm.DB) error {
	return al.Validate()
}
