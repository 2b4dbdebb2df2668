package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/api/metrics"
	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

type escalationService struct {
	enquiries ports.EnquiryRepository
	log       zerolog.Logger
}

// NewEscalationService returns an EscalationService that moves escalated
// enquiries into the admin queue state.
func NewEscalationService(enquiries ports.EnquiryRepository, log zerolog.Logger) ports.EscalationService {
	return &escalationService{enquiries: enquiries, log: log}
}

// Process validates the transition and persists the escalation. Called
// from dispatcher workers, never from the request path.
func (s *escalationService) Process(ctx context.Context, in ports.EscalationInput) error {
	start := time.Now()

	e, err := s.enquiries.FindByID(ctx, in.EnquiryID, "")
	if err != nil {
		metrics.EscalationsErrorsTotal.WithLabelValues("enquiry_not_found").Inc()
		return fmt.Errorf("process escalation: %w", err)
	}

	if e.Status == domain.EnquiryEscalated {
		// Replay of an already-escalated enquiry is a no-op.
		s.log.Debug().Str("enquiry_id", in.EnquiryID).Msg("duplicate escalation skipped")
		return nil
	}
	if !e.Status.CanTransitionTo(domain.EnquiryEscalated) {
		metrics.EscalationsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process escalation: %w (from %s)", domain.ErrInvalidEnquiryTransition, e.Status)
	}

	if err := s.enquiries.UpdateStatus(ctx, in.EnquiryID, domain.EnquiryEscalated); err != nil {
		metrics.EscalationsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process escalation: %w", err)
	}

	metrics.EscalationsProcessedTotal.WithLabelValues(in.DealerID).Inc()
	metrics.EscalationDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("enquiry_id", in.EnquiryID).
		Str("dealer_id", in.DealerID).
		Str("reason", in.Reason).
		Msg("enquiry escalated to admin")
	return nil
}
