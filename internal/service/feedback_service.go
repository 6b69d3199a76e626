package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/feedback"
	"alcyxob/training-planner/internal/logger"
	"alcyxob/training-planner/internal/planops"
	"alcyxob/training-planner/internal/repository"
)

var ErrEmptyMessage = errors.New("message is required")

// Intent recorded when the message could not be classified.
const IntentUnknown = "unknown"

const (
	fallbackReply      = "I'm sorry, I'm having trouble generating a response right now. Please try again."
	fallbackErrorReply = "I'm sorry, I encountered an error while processing your request. Please try again or contact support if the issue persists."
)

var defaultSuggestions = []string{
	"Try rephrasing your request",
	"Check your training plan",
	"Consider adjusting your training intensity",
}

// Classifier turns a chat message into a structured feedback request.
type Classifier interface {
	Classify(ctx context.Context, message string) (domain.FeedbackRequest, error)
}

// Responder writes the coaching reply and follow-up suggestions.
type Responder interface {
	Reply(ctx context.Context, req domain.FeedbackRequest, data feedback.Data, applied []domain.PlanOperation, warnings []string) (string, error)
	Suggest(ctx context.Context, req domain.FeedbackRequest, data feedback.Data) ([]string, error)
}

// FeedbackResult is what ProcessMessage hands back to the athlete.
type FeedbackResult struct {
	Content      string                  `json:"content"`
	Request      domain.FeedbackRequest  `json:"request"`
	Operations   domain.Operations       `json:"operations"`
	Passthrough  []domain.FeedbackAction `json:"passthrough,omitempty"`
	Data         feedback.Data           `json:"data"`
	Suggestions  []string                `json:"suggestions"`
	UpdatedWeeks []domain.TrainingWeek   `json:"updatedWeeks"`
	Explanations []planops.Explanation   `json:"explanations,omitempty"`
	Warnings     []string                `json:"warnings"`
	Version      int                     `json:"version"`
}

type FeedbackService interface {
	ProcessMessage(ctx context.Context, userID, planID, message string) (*FeedbackResult, error)
}

type feedbackService struct {
	plans      PlanService
	profiles   repository.ProfileRepository
	classifier Classifier // optional
	responder  Responder  // optional
	log        *logger.Logger
	now        func() time.Time
}

// NewFeedbackService creates a new instance of feedbackService. classifier and
// responder may be nil, in which case messages are answered without plan changes.
func NewFeedbackService(
	plans PlanService,
	profiles repository.ProfileRepository,
	classifier Classifier,
	responder Responder,
	log *logger.Logger,
) FeedbackService {
	return &feedbackService{
		plans:      plans,
		profiles:   profiles,
		classifier: classifier,
		responder:  responder,
		log:        log,
		now:        time.Now,
	}
}

// ProcessMessage classifies message, applies the plan changes it asks for and
// answers it.
func (s *feedbackService) ProcessMessage(ctx context.Context, userID, planID, message string) (*FeedbackResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	req := s.classify(ctx, message)

	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	today := domain.TruncateToDay(s.now())
	data := feedback.Gather(req, plan.Weeks, profile, today)
	tr := feedback.Translate(req, today)

	result := &FeedbackResult{
		Request:      req,
		Operations:   tr.Operations,
		Passthrough:  tr.Passthrough,
		Data:         data,
		UpdatedWeeks: []domain.TrainingWeek{},
		Warnings:     []string{},
		Version:      plan.Version,
	}

	if len(tr.Operations) > 0 {
		applied, err := s.plans.ApplyOperations(ctx, userID, ApplyRequest{
			PlanID:          planID,
			Mode:            ModeApply,
			ExpectedVersion: &plan.Version,
			Actor:           ActorFeedback,
			Operations:      tr.Operations,
		})
		if err != nil {
			s.log.Error("Failed to apply feedback operations", "userId", userID, "planId", planID, "error", err)
			return nil, err
		}
		result.UpdatedWeeks = applied.UpdatedWeeks
		result.Explanations = applied.Explanations
		result.Warnings = applied.Warnings
		result.Version = applied.ToVersion
	}

	result.Content = s.reply(ctx, req, data, tr.Operations, result.Warnings)
	result.Suggestions = s.suggest(ctx, req, data)

	s.log.Info("Feedback processed",
		"userId", userID, "intent", req.Intent,
		"operations", len(tr.Operations), "passthrough", len(tr.Passthrough),
		"updatedWeeks", len(result.UpdatedWeeks))
	return result, nil
}

func (s *feedbackService) classify(ctx context.Context, message string) domain.FeedbackRequest {
	unknown := domain.FeedbackRequest{Intent: IntentUnknown, OriginalMessage: message}
	if s.classifier == nil {
		return unknown
	}
	req, err := s.classifier.Classify(ctx, message)
	if err != nil {
		s.log.Warn("Feedback classification failed", "error", err)
		return unknown
	}
	if req.OriginalMessage == "" {
		req.OriginalMessage = message
	}
	return req
}

func (s *feedbackService) reply(ctx context.Context, req domain.FeedbackRequest, data feedback.Data, ops []domain.PlanOperation, warnings []string) string {
	if s.responder == nil {
		if req.Intent == IntentUnknown && s.classifier != nil {
			return fallbackErrorReply
		}
		return fallbackReply
	}
	text, err := s.responder.Reply(ctx, req, data, ops, warnings)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.log.Warn("Reply generation failed", "error", err)
		}
		return fallbackReply
	}
	return text
}

func (s *feedbackService) suggest(ctx context.Context, req domain.FeedbackRequest, data feedback.Data) []string {
	if s.responder == nil {
		return append([]string(nil), defaultSuggestions...)
	}
	out, err := s.responder.Suggest(ctx, req, data)
	if err != nil || len(out) == 0 {
		if err != nil {
			s.log.Warn("Suggestion generation failed", "error", err)
		}
		return append([]string(nil), defaultSuggestions...)
	}
	return out
}
