package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesJSON(n int) string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("%d", (i+1)*1000)
	}
	return "[" + strings.Join(values, ", ") + "]"
}

func validResponseJSON() string {
	ten := seriesJSON(10)
	return fmt.Sprintf(`{
		"project_name": "Olive Grove Revival",
		"project_description": "Restoring a neglected grove with regenerative practices.",
		"confidence_score": 0.85,
		"factors_considered": ["Location", "Soil quality"],
		"recommendations": ["Start with soil testing"],
		"timeline": "3-5 years for full implementation",
		"risk_assessment": "Moderate risk with proper planning",
		"cash_flow_projection": %s,
		"revenue_breakdown": {
			"agricultural_sales": %s,
			"ecosystem_services": %s,
			"subsidies_incentives": %s
		},
		"cost_breakdown": {
			"operational_costs": %s,
			"infrastructure": %s,
			"maintenance": %s
		}
	}`, ten, ten, ten, ten, ten, ten, ten)
}

func TestParseEstimateResponseBareJSON(t *testing.T) {
	estimate, err := ParseEstimateResponse(validResponseJSON())
	require.NoError(t, err)

	assert.Equal(t, "Olive Grove Revival", estimate.ProjectName)
	assert.Equal(t, 0.85, estimate.ConfidenceScore)
	assert.Len(t, estimate.CashFlowProjection, 10)
	assert.Equal(t, float64(1000), estimate.CashFlowProjection[0])
	assert.Len(t, estimate.RevenueBreakdown["ecosystem_services"], 10)
	assert.Len(t, estimate.CostBreakdown["maintenance"], 10)
}

func TestParseEstimateResponseFencedJSON(t *testing.T) {
	content := "Here is the analysis:\n```json\n" + validResponseJSON() + "\n```\nLet me know if you need more."

	estimate, err := ParseEstimateResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "Olive Grove Revival", estimate.ProjectName)
}

func TestParseEstimateResponseSurroundingText(t *testing.T) {
	content := "Sure! " + validResponseJSON() + " Hope this helps."

	estimate, err := ParseEstimateResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "Olive Grove Revival", estimate.ProjectName)
}

func TestParseEstimateResponseNoJSON(t *testing.T) {
	_, err := ParseEstimateResponse("I could not produce an analysis for this property.")

	var notFound *NoJSONFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no valid JSON found in provider response", err.Error())
}

func TestParseEstimateResponseMalformedJSON(t *testing.T) {
	_, err := ParseEstimateResponse(`{"project_name": "Broken", "confidence_score": }`)

	var malformed *MalformedJSONError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "failed to parse provider response as JSON")
}

func TestParseEstimateResponseShortCashFlow(t *testing.T) {
	content := strings.Replace(validResponseJSON(), `"cash_flow_projection": `+seriesJSON(10), `"cash_flow_projection": `+seriesJSON(9), 1)

	_, err := ParseEstimateResponse(content)

	var shapeErr *InvalidShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "cash_flow_projection", shapeErr.Field)
	assert.Contains(t, shapeErr.Reason, "got 9")
}

func TestParseEstimateResponseLongBreakdownSeries(t *testing.T) {
	content := strings.Replace(validResponseJSON(), `"operational_costs": `+seriesJSON(10), `"operational_costs": `+seriesJSON(11), 1)

	_, err := ParseEstimateResponse(content)

	var shapeErr *InvalidShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "cost_breakdown.operational_costs", shapeErr.Field)
	assert.Contains(t, shapeErr.Reason, "got 11")
}

func TestParseEstimateResponseMissingRevenueCategory(t *testing.T) {
	content := strings.Replace(validResponseJSON(), `"ecosystem_services": `+seriesJSON(10)+`,`, "", 1)

	_, err := ParseEstimateResponse(content)

	var shapeErr *InvalidShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "revenue_breakdown", shapeErr.Field)
	assert.Contains(t, shapeErr.Reason, "ecosystem_services")
}

func TestParseEstimateResponseNonNumericSeries(t *testing.T) {
	content := strings.Replace(validResponseJSON(), `"cash_flow_projection": `+seriesJSON(10),
		`"cash_flow_projection": ["a", "b", "c", "d", "e", "f", "g", "h", "i", "j"]`, 1)

	_, err := ParseEstimateResponse(content)

	var shapeErr *InvalidShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "cash_flow_projection", shapeErr.Field)
}

func TestParseEstimateResponseMissingTopLevelFields(t *testing.T) {
	_, err := ParseEstimateResponse(`{"project_name": "Sparse"}`)

	var missingErr *MissingFieldsError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, missingErr.Fields, "confidence_score")
	assert.Contains(t, missingErr.Fields, "cost_breakdown")
	assert.NotContains(t, missingErr.Fields, "project_name")
}

func TestParseEstimateResponseConfidenceBounds(t *testing.T) {
	for _, score := range []string{"0.0", "1.0"} {
		content := strings.Replace(validResponseJSON(), `"confidence_score": 0.85`, `"confidence_score": `+score, 1)
		_, err := ParseEstimateResponse(content)
		assert.NoError(t, err, "confidence_score %s should be accepted", score)
	}

	for _, score := range []string{"-0.1", "1.5"} {
		content := strings.Replace(validResponseJSON(), `"confidence_score": 0.85`, `"confidence_score": `+score, 1)
		_, err := ParseEstimateResponse(content)

		var shapeErr *InvalidShapeError
		require.ErrorAs(t, err, &shapeErr, "confidence_score %s should be rejected", score)
		assert.Equal(t, "confidence_score", shapeErr.Field)
	}
}

func TestExtractJSONFencePrecedence(t *testing.T) {
	content := "{\"decoy\": true}\n```json\n{\"real\": true}\n```"

	candidate, found := extractJSON(content)
	require.True(t, found)
	assert.Equal(t, `{"real": true}`, candidate)
}

func TestExtractJSONUnterminatedFence(t *testing.T) {
	candidate, found := extractJSON("```json\n{\"open\": true}")
	require.True(t, found)
	assert.Equal(t, `{"open": true}`, candidate)
}
