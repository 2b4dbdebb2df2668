package service

import (
	"context"
	"errors"
	"testing"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

func TestProcess_MovesEnquiryToEscalated(t *testing.T) {
	repo := newStubEnquiryRepo()
	repo.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryOpen}
	svc := NewEscalationService(repo, discardLogger)

	if err := svc.Process(context.Background(), ports.EscalationInput{EnquiryID: "e1", DealerID: "dealer_a"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if repo.enquiries["e1"].Status != domain.EnquiryEscalated {
		t.Errorf("status = %s, want escalated", repo.enquiries["e1"].Status)
	}
}

func TestProcess_DuplicateIsNoOp(t *testing.T) {
	repo := newStubEnquiryRepo()
	repo.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryEscalated}
	svc := NewEscalationService(repo, discardLogger)

	if err := svc.Process(context.Background(), ports.EscalationInput{EnquiryID: "e1", DealerID: "dealer_a"}); err != nil {
		t.Errorf("replayed escalation err = %v, want nil", err)
	}
}

func TestProcess_ClosedEnquiryRejected(t *testing.T) {
	repo := newStubEnquiryRepo()
	repo.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryClosed}
	svc := NewEscalationService(repo, discardLogger)

	err := svc.Process(context.Background(), ports.EscalationInput{EnquiryID: "e1", DealerID: "dealer_a"})
	if !errors.Is(err, domain.ErrInvalidEnquiryTransition) {
		t.Errorf("err = %v, want ErrInvalidEnquiryTransition", err)
	}
	if repo.enquiries["e1"].Status != domain.EnquiryClosed {
		t.Error("closed enquiry mutated")
	}
}

func TestProcess_UnknownEnquiry(t *testing.T) {
	svc := NewEscalationService(newStubEnquiryRepo(), discardLogger)

	err := svc.Process(context.Background(), ports.EscalationInput{EnquiryID: "missing"})
	if !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Errorf("err = %v, want ErrEnquiryNotFound", err)
	}
}
