package insights

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"propinsight/server/internal/coerce"
	"propinsight/server/internal/llm"
	"propinsight/server/internal/metrics"
	"propinsight/server/internal/models"
	"propinsight/server/internal/prompts"
)

const ChatUnavailable = "I'm sorry, I encountered an error while processing your request. Please try again later."

const (
	taskChat           = "chat"
	taskTrend          = "market_trend"
	taskRecommendation = "recommendation"
	taskCompetitor     = "competitor"
)

// Service runs the four model-backed analyses. None of its methods fail:
// completion and parse errors are logged and replaced by fixed defaults.
type Service struct {
	completer llm.Completer
	logger    *logrus.Logger
}

func NewService(completer llm.Completer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{
		completer: completer,
		logger:    logger,
	}
}

func (s *Service) Chat(ctx context.Context, message string) string {
	reply, err := s.complete(ctx, taskChat, prompts.BuildChatPrompt(message))
	if err != nil {
		return ChatUnavailable
	}
	return reply
}

func (s *Service) AnalyzeTrend(ctx context.Context, points []models.MarketDataPoint) models.Analysis {
	raw, err := s.complete(ctx, taskTrend, prompts.BuildTrendPrompt(points))
	if err != nil {
		return coerce.TrendDefault()
	}
	return s.structured(taskTrend, raw, coerce.TrendDefault)
}

func (s *Service) Recommend(ctx context.Context, property models.Property) []string {
	raw, err := s.complete(ctx, taskRecommendation, prompts.BuildRecommendationPrompt(property))
	if err != nil {
		return coerce.RecommendationDefault()
	}
	return coerce.Lines(raw)
}

func (s *Service) AnalyzeCompetitors(ctx context.Context, competitors []models.Competitor, properties []models.Property) models.Analysis {
	raw, err := s.complete(ctx, taskCompetitor, prompts.BuildCompetitorPrompt(competitors, properties))
	if err != nil {
		return coerce.CompetitorDefault()
	}
	return s.structured(taskCompetitor, raw, coerce.CompetitorDefault)
}

func (s *Service) complete(ctx context.Context, task, prompt string) (string, error) {
	start := time.Now()
	reply, err := s.completer.Complete(ctx, prompt)
	metrics.CompletionDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionCalls.WithLabelValues(task, "error").Inc()
		s.logger.WithError(err).WithField("task", task).Error("Failed to get completion")
		return "", err
	}
	metrics.CompletionCalls.WithLabelValues(task, "ok").Inc()
	return reply, nil
}

func (s *Service) structured(task, raw string, fallback func() models.Analysis) models.Analysis {
	result := coerce.Structured(raw, fallback)
	metrics.CoercionResults.WithLabelValues(task, result.Stage.String()).Inc()
	if result.Stage == coerce.StageDefault {
		s.logger.WithFields(logrus.Fields{
			"task":        task,
			"reply_chars": len(raw),
		}).Warn("Model reply contained no JSON object, using default")
	}
	return result.Value
}
