package analysis

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/models"
	"github.com/valora-earth/backend/internal/openai"
)

// Fixed chat-completion parameters for every analysis request.
const (
	temperature = 0.7
	maxTokens   = 2000
)

// Result carries everything a completed provider round-trip produced.
type Result struct {
	Estimate       *EstimateData
	Request        openai.ChatCompletionRequest
	Response       *openai.ChatCompletionResponse
	ProcessingTime float64
}

// Service runs the generation pipeline: prompt, provider call, validation.
type Service struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func NewService(client *openai.Client, model string, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		model:  model,
		logger: logger,
	}
}

// GenerateEstimate runs one analysis for the inquiry. The context bounds the
// provider call; there is no retry.
func (s *Service) GenerateEstimate(ctx context.Context, inquiry *models.PropertyInquiry) (*Result, error) {
	start := time.Now()

	s.logger.WithFields(logrus.Fields{
		"inquiry_id": inquiry.ID,
		"address":    inquiry.Address,
		"model":      s.model,
	}).Info("Starting property estimate generation")

	prompt, err := BuildPrompt(inquiry)
	if err != nil {
		return nil, err
	}

	request := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	response, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		s.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Provider call failed")
		return nil, err
	}

	estimate, err := ParseEstimateResponse(response.Content())
	if err != nil {
		s.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Provider response failed validation")
		return nil, err
	}

	processingTime := time.Since(start).Seconds()

	s.logger.WithFields(logrus.Fields{
		"inquiry_id":      inquiry.ID,
		"model":           response.Model,
		"tokens":          response.Usage.TotalTokens,
		"processing_time": processingTime,
	}).Info("Estimate generated successfully")

	return &Result{
		Estimate:       estimate,
		Request:        request,
		Response:       response,
		ProcessingTime: processingTime,
	}, nil
}

// GenerateEstimateSync is the blocking variant with the same contract; the
// provider timeout is the only bound.
func (s *Service) GenerateEstimateSync(inquiry *models.PropertyInquiry) (*Result, error) {
	return s.GenerateEstimate(context.Background(), inquiry)
}
