package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justresults/hirepay-console/pkg/models"
)

func TestDocumentStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		status models.DocumentStatus
		typ    models.DocumentType
		viewer Viewer
		want   string
	}{
		{"front office sees sent as received", models.DocumentSent, models.DocUmbrellaAgreement, FrontOfficeViewer, "RECEIVED"},
		{"front office form sent is received too", models.DocumentSent, models.DocTaxFormW9, FrontOfficeViewer, "RECEIVED"},
		{"front office signed unchanged", models.DocumentSigned, models.DocUmbrellaAgreement, FrontOfficeViewer, "SIGNED"},
		{"back office agreement sent", models.DocumentSent, models.DocUmbrellaAgreement, BackOfficeViewer, "SENT"},
		{"back office form sent", models.DocumentSent, models.DocTaxFormW9, BackOfficeViewer, "FORM_SENT"},
		{"back office form submitted", models.DocumentSubmitted, models.DocTaxFormW8BEN, BackOfficeViewer, "FORM_SUBMITTED"},
		{"back office form approved", models.DocumentApproved, models.DocPaymentAuthForm, BackOfficeViewer, "FORM_APPROVED"},
		{"back office form rejected", models.DocumentRejected, models.DocTaxFormW9, BackOfficeViewer, "FORM_REJECTED"},
		{"back office form under review unchanged", models.DocumentUnderReview, models.DocTaxFormW9, BackOfficeViewer, "UNDER_REVIEW"},
		{"back office invoice submitted", models.DocumentSubmitted, models.DocInvoice, BackOfficeViewer, "SUBMITTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentStatusLabel(tt.status, tt.typ, tt.viewer))
		})
	}
}

func TestDocumentBadge(t *testing.T) {
	assert.Equal(t, Badge{Label: "RECEIVED", Class: "badge--blue"},
		DocumentBadge(models.DocumentSent, models.DocUmbrellaAgreement, FrontOfficeViewer))
	assert.Equal(t, Badge{Label: "FORM_APPROVED", Class: "badge--green"},
		DocumentBadge(models.DocumentApproved, models.DocTaxFormW9, BackOfficeViewer))
	assert.Equal(t, Badge{Label: "LOST", Class: GenericBadgeClass},
		DocumentBadge(models.DocumentStatus("LOST"), models.DocUmbrellaAgreement, BackOfficeViewer))
}

func TestDocumentActions(t *testing.T) {
	sent := models.Document{DocumentID: "d1", Status: models.DocumentSent, DocumentName: "agreement.pdf"}

	t.Run("recipient may sign a sent document", func(t *testing.T) {
		actions := DocumentActions(sent, FrontOfficeViewer)
		assert.Equal(t, []ActionOption{
			{Action: ActionDownload, Label: "Download"},
			{Action: ActionSign, Label: "Sign"},
		}, actions)
	})

	t.Run("recipient submits a form", func(t *testing.T) {
		form := models.Document{DocumentID: "d2", Status: models.DocumentSent, DocumentType: models.DocTaxFormW9}
		assert.Equal(t, []ActionOption{{Action: ActionSign, Label: "Submit Form"}}, DocumentActions(form, FrontOfficeViewer))
	})

	t.Run("back office never signs", func(t *testing.T) {
		assert.False(t, HasAction(DocumentActions(sent, BackOfficeViewer), ActionSign))
	})

	t.Run("back office reviews signed", func(t *testing.T) {
		signed := models.Document{DocumentID: "d3", Status: models.DocumentSigned}
		assert.Equal(t, []ActionOption{{Action: ActionReview, Label: "Review"}}, DocumentActions(signed, BackOfficeViewer))
		assert.Empty(t, DocumentActions(signed, FrontOfficeViewer))
	})

	t.Run("back office saves approved to drive", func(t *testing.T) {
		approved := models.Document{DocumentID: "d4", Status: models.DocumentApproved}
		assert.Equal(t, []ActionOption{{Action: ActionSaveToDrive, Label: "Save to Drive"}}, DocumentActions(approved, BackOfficeViewer))
	})
}

func TestBrowserStatus(t *testing.T) {
	assert.Equal(t, "RECEIVED", BrowserStatus(models.DocumentSent))
	assert.Equal(t, "PENDING", BrowserStatus(models.DocumentPendingSignature))
	assert.Equal(t, "SIGNED", BrowserStatus(models.DocumentSigned))
	assert.Equal(t, "ARCHIVED", BrowserStatus(models.DocumentArchived))
	assert.Equal(t, "PENDING", BrowserStatus(models.DocumentStatus("WHATEVER")))
	assert.Equal(t, "PENDING", BrowserStatus(models.DocumentReceived))
}
