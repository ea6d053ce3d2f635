package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// EstimateData is the validated shape of a provider analysis response.
type EstimateData struct {
	ProjectName        string               `json:"project_name"`
	ProjectDescription string               `json:"project_description"`
	ConfidenceScore    float64              `json:"confidence_score"`
	FactorsConsidered  []string             `json:"factors_considered"`
	Recommendations    []string             `json:"recommendations"`
	Timeline           string               `json:"timeline"`
	RiskAssessment     string               `json:"risk_assessment"`
	CashFlowProjection []float64            `json:"cash_flow_projection"`
	RevenueBreakdown   map[string][]float64 `json:"revenue_breakdown"`
	CostBreakdown      map[string][]float64 `json:"cost_breakdown"`
}

// ProjectionYears is the fixed length of every financial series.
const ProjectionYears = 10

var requiredKeys = []string{
	"project_name", "project_description", "confidence_score",
	"factors_considered", "recommendations", "timeline", "risk_assessment",
	"cash_flow_projection", "revenue_breakdown", "cost_breakdown",
}

var revenueKeys = []string{"agricultural_sales", "ecosystem_services", "subsidies_incentives"}
var costKeys = []string{"operational_costs", "infrastructure", "maintenance"}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseEstimateResponse extracts the JSON object from raw provider output and
// validates it against the required estimate shape.
func ParseEstimateResponse(content string) (*EstimateData, error) {
	candidate, found := extractJSON(content)
	if !found {
		return nil, &NoJSONFoundError{}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, &MalformedJSONError{Err: err}
	}

	if raw, ok := fields["cash_flow_projection"]; ok {
		if err := checkSeries("cash_flow_projection", raw); err != nil {
			return nil, err
		}
	}

	if raw, ok := fields["revenue_breakdown"]; ok {
		if err := checkBreakdown("revenue_breakdown", raw, revenueKeys); err != nil {
			return nil, err
		}
	}

	if raw, ok := fields["cost_breakdown"]; ok {
		if err := checkBreakdown("cost_breakdown", raw, costKeys); err != nil {
			return nil, err
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	var estimate EstimateData
	if err := json.Unmarshal([]byte(candidate), &estimate); err != nil {
		return nil, &MalformedJSONError{Err: err}
	}

	if estimate.ConfidenceScore < 0.0 || estimate.ConfidenceScore > 1.0 {
		return nil, &InvalidShapeError{
			Field:  "confidence_score",
			Reason: fmt.Sprintf("must be between 0.0 and 1.0, got %v", estimate.ConfidenceScore),
		}
	}

	return &estimate, nil
}

// extractJSON finds the JSON candidate in provider output. Precedence: a
// ```json fence, then a bare object after trimming, then a greedy brace match.
func extractJSON(content string) (string, bool) {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		start := idx + len("```json")
		rest := content[start:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), true
		}
		return strings.TrimSpace(rest), true
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, true
	}

	if match := jsonObjectPattern.FindString(content); match != "" {
		return match, true
	}

	return "", false
}

func checkSeries(field string, raw json.RawMessage) error {
	var series []float64
	if err := json.Unmarshal(raw, &series); err != nil {
		return &InvalidShapeError{
			Field:  field,
			Reason: fmt.Sprintf("must be a list of exactly %d numeric values", ProjectionYears),
		}
	}
	if len(series) != ProjectionYears {
		return &InvalidShapeError{
			Field:  field,
			Reason: fmt.Sprintf("must be a list of exactly %d numeric values, got %d", ProjectionYears, len(series)),
		}
	}
	return nil
}

func checkBreakdown(field string, raw json.RawMessage, keys []string) error {
	var breakdown map[string]json.RawMessage
	if err := json.Unmarshal(raw, &breakdown); err != nil {
		return &InvalidShapeError{Field: field, Reason: "must be an object keyed by category"}
	}

	for _, key := range keys {
		series, ok := breakdown[key]
		if !ok {
			return &InvalidShapeError{Field: field, Reason: fmt.Sprintf("missing %s", key)}
		}
		if err := checkSeries(fmt.Sprintf("%s.%s", field, key), series); err != nil {
			return err
		}
	}
	return nil
}
