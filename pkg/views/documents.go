package views

import (
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// DocumentRow is one document as rendered in a list or detail view.
type DocumentRow struct {
	DocumentID         string                  `json:"documentId"`
	DocumentType       models.DocumentType     `json:"documentType"`
	Title              string                  `json:"title"`
	Category           string                  `json:"category"`
	Status             models.DocumentStatus   `json:"status"`
	StatusLabel        string                  `json:"statusLabel"`
	Badge              workflow.Badge          `json:"badge"`
	Recipient          string                  `json:"recipient"`
	RecipientEmail     string                  `json:"recipientEmail"`
	SentBy             string                  `json:"sentBy"`
	SentAt             string                  `json:"sentAt"`
	SignedAt           string                  `json:"signedAt"`
	SignerName         string                  `json:"signerName"`
	ReviewedBy         string                  `json:"reviewedBy"`
	ReviewedAt         string                  `json:"reviewedAt"`
	Notes              string                  `json:"notes"`
	DocumentName       string                  `json:"documentName,omitempty"`
	GoogleDriveURL     string                  `json:"googleDriveUrl,omitempty"`
	RequiresAttachment bool                    `json:"requiresAttachment"`
	Actions            []workflow.ActionOption `json:"actions"`
}

// NewDocumentRow renders doc for identity.
func NewDocumentRow(doc models.Document, identity *auth.Identity) DocumentRow {
	viewer := identity.Viewer()
	docType := doc.Type()

	recipient := doc.FrontOfficeUserName
	if recipient == "" {
		recipient = doc.FrontOfficeUserEmail
	}

	row := DocumentRow{
		DocumentID:         doc.DocumentID,
		DocumentType:       docType,
		Title:              workflow.TypeLabel(docType),
		Category:           workflow.TypeCategory(docType),
		Status:             doc.Status,
		StatusLabel:        workflow.DocumentStatusLabel(doc.Status, docType, viewer),
		Badge:              workflow.DocumentBadge(doc.Status, docType, viewer),
		Recipient:          workflow.OrNotSpecified(recipient),
		RecipientEmail:     doc.FrontOfficeUserEmail,
		SentBy:             workflow.OrNotSpecified(doc.SentBy),
		SentAt:             workflow.OrNotSpecified(doc.SentAt),
		SignedAt:           workflow.OrNotSpecified(doc.SignedAt),
		SignerName:         workflow.OrNotSpecified(doc.SignerName),
		ReviewedBy:         workflow.OrNotSpecified(doc.ReviewedBy),
		ReviewedAt:         workflow.OrNotSpecified(doc.ReviewedAt),
		Notes:              workflow.OrNotSpecified(doc.Notes),
		DocumentName:       doc.DocumentName,
		GoogleDriveURL:     doc.GoogleDriveURL,
		RequiresAttachment: workflow.RequiresAttachment(docType),
		Actions:            workflow.DocumentActions(doc, viewer),
	}
	if row.Actions == nil {
		row.Actions = []workflow.ActionOption{}
	}
	return row
}

// DocumentRows renders every document for identity.
func DocumentRows(docs []models.Document, identity *auth.Identity) []DocumentRow {
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, NewDocumentRow(d, identity))
	}
	return rows
}

// DocumentTypeOption is a document type offered on the send form.
type DocumentTypeOption struct {
	Type               models.DocumentType     `json:"type"`
	Label              string                  `json:"label"`
	Category           string                  `json:"category"`
	RequiresAttachment bool                    `json:"requiresAttachment"`
	Statuses           []models.DocumentStatus `json:"statuses"`
}

// DocumentTypeOptions lists every document type with its workflow metadata.
func DocumentTypeOptions() []DocumentTypeOption {
	options := make([]DocumentTypeOption, 0, len(models.DocumentTypes))
	for _, t := range models.DocumentTypes {
		options = append(options, DocumentTypeOption{
			Type:               t,
			Label:              workflow.TypeLabel(t),
			Category:           workflow.TypeCategory(t),
			RequiresAttachment: workflow.RequiresAttachment(t),
			Statuses:           workflow.WorkflowStatuses(t),
		})
	}
	return options
}

// DocumentPage is the document page: the viewer's documents and, for back office,
// the review queue and the send form options.
type DocumentPage struct {
	Documents     []DocumentRow        `json:"documents"`
	PendingReview []DocumentRow        `json:"pendingReview"`
	Recipients    []UserOption         `json:"recipients,omitempty"`
	DocumentTypes []DocumentTypeOption `json:"documentTypes,omitempty"`
}

// NewDocumentPage renders the document lists for identity. users is ignored unless the
// viewer is back office.
func NewDocumentPage(mine, pending []models.Document, users []models.FrontOfficeUser, identity *auth.Identity) DocumentPage {
	page := DocumentPage{
		Documents:     DocumentRows(mine, identity),
		PendingReview: DocumentRows(pending, identity),
	}
	if identity.IsBackOffice() {
		page.Recipients = UserOptions(users)
		page.DocumentTypes = DocumentTypeOptions()
	}
	return page
}
