package workflow

import "github.com/justresults/hirepay-console/pkg/models"

type typeInfo struct {
	label    string
	category string
}

var documentTypeInfo = map[models.DocumentType]typeInfo{
	models.DocUmbrellaAgreement:     {label: "Umbrella Agreement", category: "Agreement"},
	models.DocTaxFormW9:             {label: "Tax Form W-9", category: "Tax Form"},
	models.DocTaxFormW8BEN:          {label: "Tax Form W-8BEN", category: "Tax Form"},
	models.DocPaymentAuthForm:       {label: "Payment Authorization Form", category: "Authorization"},
	models.DocTaskOrder:             {label: "Task Order", category: "Order"},
	models.DocAgreementModification: {label: "Agreement Modification", category: "Modification"},
	models.DocTaskOrderModification: {label: "Task Order Modification", category: "Modification"},
	models.DocInvoice:               {label: "Invoice", category: "Invoice"},
	models.DocDeliverablesProof:     {label: "Deliverables Proof", category: "Proof"},
}

var (
	signatureWorkflow = []models.DocumentStatus{
		models.DocumentDraft, models.DocumentSent, models.DocumentSigned, models.DocumentApproved, models.DocumentRejected,
	}
	formWorkflow = []models.DocumentStatus{
		models.DocumentDraft, models.DocumentSubmitted, models.DocumentApproved, models.DocumentRejected,
	}
	paymentWorkflow = []models.DocumentStatus{
		models.DocumentDraft, models.DocumentSubmitted, models.DocumentUnderReview, models.DocumentApproved,
		models.DocumentPaid, models.DocumentOverdue,
	}
	deliverableWorkflow = []models.DocumentStatus{
		models.DocumentDraft, models.DocumentSubmitted, models.DocumentUnderReview, models.DocumentApproved,
		models.DocumentCompleted,
	}
)

// TypeLabel returns the human-readable name of a document type, or the raw type when unknown.
func TypeLabel(t models.DocumentType) string {
	if info, ok := documentTypeInfo[t]; ok {
		return info.label
	}
	return string(t)
}

// TypeCategory returns the grouping shown next to a document, or "Document" when unknown.
func TypeCategory(t models.DocumentType) string {
	if info, ok := documentTypeInfo[t]; ok {
		return info.category
	}
	return "Document"
}

// IsFormSubmission reports whether the type is a form the recipient fills in and returns.
func IsFormSubmission(t models.DocumentType) bool {
	switch t {
	case models.DocTaxFormW9, models.DocTaxFormW8BEN, models.DocPaymentAuthForm:
		return true
	}
	return false
}

// RequiresSignatureWorkflow reports whether the type is signed rather than filled in.
func RequiresSignatureWorkflow(t models.DocumentType) bool {
	switch t {
	case models.DocUmbrellaAgreement, models.DocAgreementModification,
		models.DocTaskOrder, models.DocTaskOrderModification:
		return true
	}
	return false
}

// IsPaymentDocument reports whether the type follows the payment workflow.
func IsPaymentDocument(t models.DocumentType) bool {
	return t == models.DocInvoice
}

// IsDeliverableDocument reports whether the type follows the completion workflow.
func IsDeliverableDocument(t models.DocumentType) bool {
	return t == models.DocDeliverablesProof
}

// RequiresAttachment reports whether sending or signing this type needs a file.
// Form submissions carry the completed form; for signature types the file is optional.
func RequiresAttachment(t models.DocumentType) bool {
	return IsFormSubmission(t)
}

// WorkflowStatuses returns the ordered statuses a document of type t moves through.
// Unknown types use the signature workflow.
func WorkflowStatuses(t models.DocumentType) []models.DocumentStatus {
	var statuses []models.DocumentStatus
	switch {
	case IsFormSubmission(t):
		statuses = formWorkflow
	case IsPaymentDocument(t):
		statuses = paymentWorkflow
	case IsDeliverableDocument(t):
		statuses = deliverableWorkflow
	default:
		statuses = signatureWorkflow
	}
	return append([]models.DocumentStatus(nil), statuses...)
}
