package workflow

import "github.com/justresults/hirepay-console/pkg/models"

// SaveToDriveFolder is the Drive folder documents are filed under.
const SaveToDriveFolder = "Umbrella Agreements"

var documentBadgeClasses = map[models.DocumentStatus]string{
	models.DocumentDraft:            "badge--gray",
	models.DocumentSent:             "badge--blue",
	models.DocumentReceived:         "badge--blue",
	models.DocumentPendingSignature: "badge--yellow",
	models.DocumentSigned:           "badge--yellow",
	models.DocumentSubmitted:        "badge--blue",
	models.DocumentUnderReview:      "badge--yellow",
	models.DocumentApproved:         "badge--green",
	models.DocumentPaid:             "badge--green",
	models.DocumentCompleted:        "badge--green",
	models.DocumentRejected:         "badge--red",
	models.DocumentOverdue:          "badge--red",
	models.DocumentExpired:          "badge--red",
	models.DocumentArchived:         "badge--gray",
}

// IsKnownDocumentStatus reports whether s is part of the document taxonomy.
func IsKnownDocumentStatus(s models.DocumentStatus) bool {
	_, ok := documentBadgeClasses[s]
	return ok
}

// IsSignable reports whether the recipient may sign or submit the document.
func IsSignable(s models.DocumentStatus) bool {
	return s == models.DocumentSent
}

// IsDocumentReviewable reports whether back office may approve or reject the document.
func IsDocumentReviewable(s models.DocumentStatus) bool {
	switch s {
	case models.DocumentSigned, models.DocumentSubmitted, models.DocumentUnderReview:
		return true
	}
	return false
}

// CanSaveToDrive reports whether back office may file the document in Drive.
func CanSaveToDrive(s models.DocumentStatus) bool {
	return s == models.DocumentApproved
}

// DocumentStatusLabel returns the status text shown to viewer. The stored status is unchanged.
func DocumentStatusLabel(s models.DocumentStatus, t models.DocumentType, viewer Viewer) string {
	if !viewer.IsBackOffice() {
		if s == models.DocumentSent {
			return string(models.DocumentReceived)
		}
		return string(s)
	}
	if IsFormSubmission(t) {
		switch s {
		case models.DocumentSent, models.DocumentSubmitted, models.DocumentApproved, models.DocumentRejected:
			return "FORM_" + string(s)
		}
	}
	return string(s)
}

// DocumentBadge returns the badge for a document as seen by viewer.
func DocumentBadge(s models.DocumentStatus, t models.DocumentType, viewer Viewer) Badge {
	class, ok := documentBadgeClasses[s]
	if !ok {
		return Badge{Label: string(s), Class: GenericBadgeClass}
	}
	return Badge{Label: DocumentStatusLabel(s, t, viewer), Class: class}
}

// DocumentActions returns the actions offered on a document row.
func DocumentActions(doc models.Document, viewer Viewer) []ActionOption {
	var actions []ActionOption
	if doc.DocumentURL != "" || doc.DocumentName != "" {
		actions = append(actions, ActionOption{Action: ActionDownload, Label: "Download"})
	}
	if viewer.IsBackOffice() {
		if IsDocumentReviewable(doc.Status) {
			actions = append(actions, ActionOption{Action: ActionReview, Label: "Review"})
		}
		if CanSaveToDrive(doc.Status) {
			actions = append(actions, ActionOption{Action: ActionSaveToDrive, Label: "Save to Drive"})
		}
		return actions
	}
	if IsSignable(doc.Status) {
		label := "Sign"
		if IsFormSubmission(doc.Type()) {
			label = "Submit Form"
		}
		actions = append(actions, ActionOption{Action: ActionSign, Label: label})
	}
	return actions
}

// BrowserStatus maps a document status onto the approved-documents browser vocabulary.
// SENT reads as RECEIVED; PENDING_SIGNATURE and anything unknown read as PENDING.
func BrowserStatus(s models.DocumentStatus) string {
	switch s {
	case models.DocumentSent:
		return string(models.DocumentReceived)
	case models.DocumentPendingSignature:
		return "PENDING"
	}
	if IsKnownDocumentStatus(s) && s != models.DocumentReceived {
		return string(s)
	}
	return "PENDING"
}
