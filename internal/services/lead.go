package services

import (
	"context"
	"digiroots/internal/apperr"
	"digiroots/internal/logger"
	"digiroots/internal/models"
	"digiroots/internal/notify"
	"digiroots/internal/utils/helpers"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgLeadFailed   = "Unable to submit your request. Please try again later."
	DefaultLeadPage = 20
	MaxLeadPage     = 100
)

type LeadRepo interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, limit, offset int) ([]*models.Lead, int, error)
}

type LeadInput struct {
	Name              string `json:"name"`
	CompanyName       string `json:"companyName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ServiceInterested string `json:"serviceInterested"`
	Message           string `json:"message"`
}

type LeadService struct {
	repo       LeadRepo
	notifier   notify.Notifier
	adminEmail string
}

func NewLeadService(repo LeadRepo, notifier notify.Notifier, adminEmail string) *LeadService {
	return &LeadService{repo: repo, notifier: notifier, adminEmail: strings.TrimSpace(adminEmail)}
}

// Submit stores the lead, then notifies the admin and acknowledges the submitter
// in parallel. Both emails must go out for the submission to succeed.
func (s *LeadService) Submit(ctx context.Context, in LeadInput) (*models.Lead, error) {
	log := logger.WithCtx(ctx)

	lead := &models.Lead{
		Name:              strings.TrimSpace(in.Name),
		CompanyName:       strings.TrimSpace(in.CompanyName),
		Email:             strings.TrimSpace(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		ServiceInterested: strings.TrimSpace(in.ServiceInterested),
		Message:           strings.TrimSpace(in.Message),
	}

	if lead.Name == "" || lead.Email == "" {
		return nil, apperr.Validation("Name and email are required")
	}
	if !ValidEmail(lead.Email) {
		return nil, apperr.Validation("Please provide a valid email address")
	}
	if s.adminEmail == "" {
		return nil, apperr.Dependency("Server configuration error", errors.New("ADMIN_EMAIL not configured"))
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, apperr.Dependency(msgLeadFailed, err)
	}
	log.Info("Lead stored", zap.Int64("lead_id", lead.ID), zap.String("email", lead.Email))

	// errgroup.Group without a context: one failed send must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		return s.notifier.Send(ctx, notify.Message{
			To:      s.adminEmail,
			Subject: "New Lead from DigiRoots Website",
			Text:    helpers.BuildLeadAdminText(lead),
			HTML:    helpers.BuildLeadAdminHTML(lead),
		})
	})
	g.Go(func() error {
		return s.notifier.Send(ctx, notify.Message{
			To:      lead.Email,
			Subject: "We received your inquiry at DigiRoots",
			Text:    helpers.BuildLeadAckText(lead),
			HTML:    helpers.BuildLeadAckHTML(lead),
		})
	})
	if err := g.Wait(); err != nil {
		log.Error("Lead notification failed", zap.Int64("lead_id", lead.ID), zap.Error(err))
		return nil, apperr.Dependency(msgLeadFailed, err)
	}

	return lead, nil
}

func (s *LeadService) List(ctx context.Context, limit, offset int) ([]*models.Lead, int, error) {
	if limit <= 0 {
		limit = DefaultLeadPage
	}
	if limit > MaxLeadPage {
		limit = MaxLeadPage
	}
	if offset < 0 {
		offset = 0
	}
	leads, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperr.Dependency(msgServerError, err)
	}
	return leads, total, nil
}
