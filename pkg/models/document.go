package models

// DocumentStatus is the lifecycle status of a routed document.
type DocumentStatus string

// DocumentStatus constants.
const (
	DocumentDraft            DocumentStatus = "DRAFT"
	DocumentSent             DocumentStatus = "SENT"
	DocumentPendingSignature DocumentStatus = "PENDING_SIGNATURE"
	DocumentSigned           DocumentStatus = "SIGNED"
	DocumentApproved         DocumentStatus = "APPROVED"
	DocumentRejected         DocumentStatus = "REJECTED"
	DocumentSubmitted        DocumentStatus = "SUBMITTED"
	DocumentUnderReview      DocumentStatus = "UNDER_REVIEW"
	DocumentPaid             DocumentStatus = "PAID"
	DocumentOverdue          DocumentStatus = "OVERDUE"
	DocumentCompleted        DocumentStatus = "COMPLETED"
	DocumentArchived         DocumentStatus = "ARCHIVED"
	DocumentExpired          DocumentStatus = "EXPIRED"

	// DocumentReceived is how SENT is shown to the recipient. It is never sent upstream.
	DocumentReceived DocumentStatus = "RECEIVED"
)

// DocumentType identifies the kind of routed document.
type DocumentType string

// DocumentType constants.
const (
	DocUmbrellaAgreement     DocumentType = "UMBRELLA_AGREEMENT"
	DocTaxFormW9             DocumentType = "TAX_FORM_W9"
	DocTaxFormW8BEN          DocumentType = "TAX_FORM_W8BEN"
	DocPaymentAuthForm       DocumentType = "PAYMENT_AUTH_FORM"
	DocTaskOrder             DocumentType = "TASK_ORDER"
	DocAgreementModification DocumentType = "AGREEMENT_MODIFICATION"
	DocTaskOrderModification DocumentType = "TASK_ORDER_MODIFICATION"
	DocInvoice               DocumentType = "INVOICE"
	DocDeliverablesProof     DocumentType = "DELIVERABLES_PROOF"
)

// DocumentTypes lists every known document type.
var DocumentTypes = []DocumentType{
	DocUmbrellaAgreement,
	DocTaxFormW9,
	DocTaxFormW8BEN,
	DocPaymentAuthForm,
	DocTaskOrder,
	DocAgreementModification,
	DocTaskOrderModification,
	DocInvoice,
	DocDeliverablesProof,
}

// Document is an uploaded file routed between back office and a front-office user.
type Document struct {
	DocumentID           string         `json:"documentId"`
	Status               DocumentStatus `json:"status"`
	DocumentType         DocumentType   `json:"documentType,omitempty"`
	FrontOfficeUserEmail string         `json:"frontOfficeUserEmail"`
	FrontOfficeUserName  string         `json:"frontOfficeUserName"`
	SentBy               string         `json:"sentBy"`
	SentAt               string         `json:"sentAt"`
	SignedAt             string         `json:"signedAt,omitempty"`
	SignerName           string         `json:"signerName,omitempty"`
	ReviewedBy           string         `json:"reviewedBy,omitempty"`
	ReviewedAt           string         `json:"reviewedAt,omitempty"`
	GoogleDriveURL       string         `json:"googleDriveUrl,omitempty"`
	DocumentURL          string         `json:"documentUrl,omitempty"`
	DocumentName         string         `json:"documentName,omitempty"`
	Notes                string         `json:"notes,omitempty"`
}

// Type returns the document type, defaulting to UMBRELLA_AGREEMENT when absent.
func (d Document) Type() DocumentType {
	if d.DocumentType == "" {
		return DocUmbrellaAgreement
	}
	return d.DocumentType
}

// Attachment is a file carried in a multipart send or sign request.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// SendDocumentRequest sends a document to a front-office user.
type SendDocumentRequest struct {
	FrontOfficeUserID string
	DocumentType      DocumentType
	Notes             string
	Document          *Attachment
}

// SignDocumentRequest signs or submits a received document.
type SignDocumentRequest struct {
	DocumentID     string
	DocumentType   DocumentType
	SignerName     string
	HasReviewed    bool
	Notes          string
	SignedDocument *Attachment
}

// ReviewDocumentRequest is the outgoing back-office review of a document.
type ReviewDocumentRequest struct {
	DocumentID string `json:"documentId"`
	Approved   bool   `json:"approved"`
	Notes      string `json:"notes,omitempty"`
}

// SaveToDriveRequest asks the upstream to file a document in Google Drive.
type SaveToDriveRequest struct {
	DocumentID string `json:"documentId"`
	FolderName string `json:"folderName"`
}

// DocumentFile is a downloaded document body.
type DocumentFile struct {
	ContentType string
	Filename    string
	Content     []byte
}
