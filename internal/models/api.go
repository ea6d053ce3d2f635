package models

// InitialDataForm is the entry form payload (lot size, unit, region).
type InitialDataForm struct {
	LotSize     string `form:"lot_size"`
	LotSizeUnit string `form:"lot_size_unit"`
	Region      string `form:"region"`
}

// EstimatePayload is the estimate shape returned by the generate endpoint.
type EstimatePayload struct {
	ID                 uint        `json:"id"`
	ProjectName        string      `json:"project_name"`
	ProjectDescription string      `json:"project_description"`
	ConfidenceScore    float64     `json:"confidence_score"`
	FactorsConsidered  StringList  `json:"factors_considered"`
	Recommendations    StringList  `json:"recommendations"`
	Timeline           string      `json:"timeline"`
	RiskAssessment     string      `json:"risk_assessment"`
	CashFlowProjection FloatSeries `json:"cash_flow_projection"`
	RevenueBreakdown   SeriesMap   `json:"revenue_breakdown"`
	CostBreakdown      SeriesMap   `json:"cost_breakdown"`
}

// GenerateEstimateResponse is the JSON body of POST /api/generate-estimate/:id.
type GenerateEstimateResponse struct {
	Success  bool             `json:"success"`
	Estimate *EstimatePayload `json:"estimate,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func NewEstimatePayload(e *PropertyEstimate) *EstimatePayload {
	return &EstimatePayload{
		ID:                 e.ID,
		ProjectName:        e.ProjectName,
		ProjectDescription: e.ProjectDescription,
		ConfidenceScore:    e.ConfidenceScore,
		FactorsConsidered:  e.FactorsConsidered,
		Recommendations:    e.Recommendations,
		Timeline:           e.Timeline,
		RiskAssessment:     e.RiskAssessment,
		CashFlowProjection: e.CashFlowProjection,
		RevenueBreakdown:   e.RevenueBreakdown,
		CostBreakdown:      e.CostBreakdown,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
