package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valora-earth/backend/internal/models"
)

func fullInquiry() *models.PropertyInquiry {
	return &models.PropertyInquiry{
		Address:             "Property in Tuscany",
		LotSize:             50,
		LotSizeUnit:         models.UnitAcres,
		CurrentProperty:     "Abandoned olive grove",
		PropertyGoals:       "Restore the grove and add agroforestry",
		InvestmentCapacity:  "Up to 200k USD over five years",
		PreferencesConcerns: "Water scarcity in summer",
		Region:              "Tuscany",
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(fullInquiry())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Address: Property in Tuscany")
	assert.Contains(t, prompt, "Lot Size: 50 acres (50.00 acres)")
	assert.Contains(t, prompt, "Region: Tuscany")
	assert.Contains(t, prompt, "Current Property: Abandoned olive grove")
	assert.Contains(t, prompt, "Property Goals: Restore the grove and add agroforestry")
	assert.Contains(t, prompt, "Investment Capacity: Up to 200k USD over five years")
	assert.Contains(t, prompt, "Preferences/Concerns: Water scarcity in summer")
	assert.Contains(t, prompt, `"cash_flow_projection"`)
	assert.Contains(t, prompt, "10 years of realistic financial projections")
}

func TestBuildPromptHectaresConversion(t *testing.T) {
	inquiry := fullInquiry()
	inquiry.LotSize = 25
	inquiry.LotSizeUnit = models.UnitHectares

	prompt, err := BuildPrompt(inquiry)
	require.NoError(t, err)

	// 25 * 2.47105 = 61.77625, rendered to two decimals
	assert.Contains(t, prompt, "Lot Size: 25 hectares (61.78 acres)")
}

func TestBuildPromptMissingFields(t *testing.T) {
	inquiry := fullInquiry()
	inquiry.Region = ""
	inquiry.PropertyGoals = ""

	_, err := BuildPrompt(inquiry)

	require.Error(t, err)
	var missingErr *MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"region", "property_goals"}, missingErr.Fields)
	assert.Equal(t, "missing required inquiry fields: region, property_goals", err.Error())
}

func TestBuildPromptZeroLotSize(t *testing.T) {
	inquiry := fullInquiry()
	inquiry.LotSize = 0

	_, err := BuildPrompt(inquiry)

	var missingErr *MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"lot_size"}, missingErr.Fields)
}
