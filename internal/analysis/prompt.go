package analysis

import (
	"fmt"

	"github.com/valora-earth/backend/internal/models"
)

// HectaresToAcres converts hectares to acres for display inside the prompt.
// Stored inquiry values are never converted.
const HectaresToAcres = 2.47105

// SystemPrompt frames the assistant for every analysis request.
const SystemPrompt = "You are an expert regenerative agriculture property analyst. " +
	"Provide detailed, accurate analysis in the requested JSON format. " +
	"IMPORTANT: Your response must be valid JSON only, no other text."

// BuildPrompt renders the analysis prompt from an inquiry. All eight inquiry
// attributes must be present; absent ones are reported in a MissingFieldError.
func BuildPrompt(inquiry *models.PropertyInquiry) (string, error) {
	missing := missingInquiryFields(inquiry)
	if len(missing) > 0 {
		return "", &MissingFieldError{Fields: missing}
	}

	lotSizeAcres := inquiry.LotSize
	if inquiry.LotSizeUnit == models.UnitHectares {
		lotSizeAcres = inquiry.LotSize * HectaresToAcres
	}

	prompt := fmt.Sprintf(`Analyze this agricultural property and provide a JSON response ONLY with no other text:

PROPERTY DETAILS:
- Address: %s
- Lot Size: %v %s (%.2f acres)
- Region: %s
- Current Property: %s
- Property Goals: %s
- Investment Capacity: %s
- Preferences/Concerns: %s

Return ONLY this JSON structure with realistic values based on the property details:
{
    "project_name": "Creative and descriptive project name for this property",
    "project_description": "Detailed 100 word description of the regenerative agriculture project",
    "confidence_score": 0.85,
    "factors_considered": ["Location", "Lot size", "Market trends", "Soil quality", "Climate"],
    "recommendations": ["Start with soil testing", "Implement agroforestry", "Consider rotational grazing"],
    "timeline": "X-X years for full implementation",
    "risk_assessment": "Moderate risk with proper planning and execution",
    "cash_flow_projection": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10],
    "revenue_breakdown": {
        "agricultural_sales": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10],
        "ecosystem_services": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10],
        "subsidies_incentives": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10]
    },
    "cost_breakdown": {
        "operational_costs": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10],
        "infrastructure": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10],
        "maintenance": [year1, year2, year3, year4, year5, year6, year7, year8, year9, year10]
    }
}

IMPORTANT FINANCIAL PROJECTION REQUIREMENTS:
- Provide 10 years of realistic financial projections
- All values should be in USD
- Consider regional market conditions for %s
- Factor in regenerative agriculture benefits like ecosystem services and carbon credits

Focus on regenerative agriculture, sustainability, and economic viability. Use realistic financial estimates for %s.`,
		inquiry.Address,
		inquiry.LotSize, inquiry.LotSizeUnit, lotSizeAcres,
		inquiry.Region,
		inquiry.CurrentProperty,
		inquiry.PropertyGoals,
		inquiry.InvestmentCapacity,
		inquiry.PreferencesConcerns,
		inquiry.Region,
		inquiry.Region)

	return prompt, nil
}

func missingInquiryFields(inquiry *models.PropertyInquiry) []string {
	var missing []string
	if inquiry.Address == "" {
		missing = append(missing, "address")
	}
	if inquiry.LotSize <= 0 {
		missing = append(missing, "lot_size")
	}
	if inquiry.LotSizeUnit == "" {
		missing = append(missing, "lot_size_unit")
	}
	if inquiry.Region == "" {
		missing = append(missing, "region")
	}
	if inquiry.CurrentProperty == "" {
		missing = append(missing, "current_property")
	}
	if inquiry.PropertyGoals == "" {
		missing = append(missing, "property_goals")
	}
	if inquiry.InvestmentCapacity == "" {
		missing = append(missing, "investment_capacity")
	}
	if inquiry.PreferencesConcerns == "" {
		missing = append(missing, "preferences_concerns")
	}
	return missing
}
