package workflow

import (
	"fmt"
	"strings"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/models"
)

// Decision is a reviewer's verdict.
type Decision string

// Decision constants.
const (
	DecisionApprove        Decision = "approve"
	DecisionReject         Decision = "reject"
	DecisionRequestChanges Decision = "request_changes"
)

// ParseDecision normalizes a decision string.
func ParseDecision(raw string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DecisionApprove, DecisionReject, DecisionRequestChanges:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownDecision, raw)
}

// BuildScopeReview maps a decision onto the outgoing scope review request.
// Notes are optional for every decision, including request_changes.
func BuildScopeReview(d Decision, notes string) (models.ReviewScopeRequest, error) {
	notes = strings.TrimSpace(notes)
	switch d {
	case DecisionApprove:
		return models.ReviewScopeRequest{Approved: true, ReviewNotes: notes}, nil
	case DecisionReject:
		return models.ReviewScopeRequest{Approved: false, ReviewNotes: notes}, nil
	case DecisionRequestChanges:
		requestChanges := true
		return models.ReviewScopeRequest{Approved: false, RequestChanges: &requestChanges, ReviewNotes: notes}, nil
	}
	return models.ReviewScopeRequest{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownDecision, string(d))
}

// BuildDocumentReview maps a decision onto the outgoing document review request.
// Documents have no changes-requested state, so only approve and reject are accepted.
func BuildDocumentReview(documentID string, d Decision, notes string) (models.ReviewDocumentRequest, error) {
	notes = strings.TrimSpace(notes)
	switch d {
	case DecisionApprove:
		return models.ReviewDocumentRequest{DocumentID: documentID, Approved: true, Notes: notes}, nil
	case DecisionReject:
		return models.ReviewDocumentRequest{DocumentID: documentID, Approved: false, Notes: notes}, nil
	}
	return models.ReviewDocumentRequest{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownDecision, string(d))
}
