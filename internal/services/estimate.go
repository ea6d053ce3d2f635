// backend/internal/services/estimate.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/analysis"
	"github.com/valora-earth/backend/internal/models"
	"github.com/valora-earth/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// EstimateService drives the generation pipeline for one inquiry and persists
// the outcome.
type EstimateService struct {
	analysisService *analysis.Service
	repoManager     *repository.RepositoryManager
	logger          *logrus.Logger
}

func NewEstimateService(
	analysisService *analysis.Service,
	repoManager *repository.RepositoryManager,
	logger *logrus.Logger,
) *EstimateService {
	return &EstimateService{
		analysisService: analysisService,
		repoManager:     repoManager,
		logger:          logger,
	}
}

// GenerateForInquiry loads the inquiry, runs the analysis pipeline, and
// persists the estimate plus an audit log row. The two successful writes run
// as independent tasks and both must complete; there is no cross-write
// transaction, so a partial outcome is possible when one write fails.
// Pipeline failures produce exactly one failed log row and no estimate write.
func (s *EstimateService) GenerateForInquiry(ctx context.Context, inquiryID uint) (*models.PropertyEstimate, error) {
	inquiry, err := s.repoManager.Inquiry.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}

	result, err := s.analysisService.GenerateEstimate(ctx, inquiry)
	if err != nil {
		s.logFailure(inquiry.ID, err)
		return nil, err
	}

	estimate := buildEstimate(inquiry.ID, result)
	analysisLog := buildSuccessLog(inquiry.ID, result)

	var g errgroup.Group
	g.Go(func() error {
		return s.repoManager.Estimate.Upsert(estimate)
	})
	g.Go(func() error {
		return s.repoManager.AnalysisLog.Create(analysisLog)
	})
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Failed to persist estimate")
		return nil, fmt.Errorf("database operation failed: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"inquiry_id":  inquiry.ID,
		"estimate_id": estimate.ID,
		"log_id":      analysisLog.ID,
	}).Info("Estimate persisted")

	return estimate, nil
}

// logFailure records one failed analysis attempt. A failure to write the log
// itself is only logged; the original pipeline error still propagates.
func (s *EstimateService) logFailure(inquiryID uint, cause error) {
	failureLog := &models.AIAnalysisLog{
		InquiryID:      inquiryID,
		RequestData:    models.JSONMap{},
		ResponseData:   models.JSONMap{},
		ModelUsed:      "unknown",
		TokensUsed:     0,
		ProcessingTime: 0,
		Success:        false,
		ErrorMessage:   cause.Error(),
	}

	if err := s.repoManager.AnalysisLog.Create(failureLog); err != nil {
		s.logger.WithError(err).WithField("inquiry_id", inquiryID).Error("Failed to record analysis failure")
	}
}

func buildEstimate(inquiryID uint, result *analysis.Result) *models.PropertyEstimate {
	return &models.PropertyEstimate{
		InquiryID:          inquiryID,
		ProjectName:        result.Estimate.ProjectName,
		ProjectDescription: result.Estimate.ProjectDescription,
		ConfidenceScore:    result.Estimate.ConfidenceScore,
		FactorsConsidered:  result.Estimate.FactorsConsidered,
		Recommendations:    result.Estimate.Recommendations,
		Timeline:           result.Estimate.Timeline,
		RiskAssessment:     result.Estimate.RiskAssessment,
		CashFlowProjection: result.Estimate.CashFlowProjection,
		RevenueBreakdown:   toSeriesMap(result.Estimate.RevenueBreakdown),
		CostBreakdown:      toSeriesMap(result.Estimate.CostBreakdown),
		AIResponseRaw:      toJSONMap(result.Response),
		ProcessingTime:     result.ProcessingTime,
	}
}

func buildSuccessLog(inquiryID uint, result *analysis.Result) *models.AIAnalysisLog {
	return &models.AIAnalysisLog{
		InquiryID:      inquiryID,
		RequestData:    toJSONMap(result.Request),
		ResponseData:   toJSONMap(result.Response),
		ModelUsed:      result.Response.Model,
		TokensUsed:     result.Response.Usage.TotalTokens,
		ProcessingTime: result.ProcessingTime,
		Success:        true,
	}
}

func toSeriesMap(breakdown map[string][]float64) models.SeriesMap {
	out := make(models.SeriesMap, len(breakdown))
	for key, series := range breakdown {
		out[key] = models.FloatSeries(series)
	}
	return out
}

// toJSONMap round-trips a value through JSON into a generic map for storage.
func toJSONMap(v interface{}) models.JSONMap {
	data, err := json.Marshal(v)
	if err != nil {
		return models.JSONMap{}
	}
	var out models.JSONMap
	if err := json.Unmarshal(data, &out); err != nil {
		return models.JSONMap{}
	}
	return out
}
