package hirepay

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/justresults/hirepay-console/pkg/models"
)

const documentsBase = "/api/umbrella-agreements"

func documentPath(id, suffix string) string {
	p := documentsBase + "/" + url.PathEscape(id)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// SendDocument sends a document to a front-office user as a multipart form.
func (c *Client) SendDocument(ctx context.Context, req models.SendDocumentRequest) (*models.Document, error) {
	form := &multipartForm{}
	form.add("frontOfficeUserId", req.FrontOfficeUserID)
	form.addOptional("documentType", string(req.DocumentType))
	form.addOptional("notes", req.Notes)
	form.attach("document", req.Document)

	var doc models.Document
	if err := c.doMultipart(ctx, "send_document", documentsBase+"/send", form, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SignDocument signs or submits a received document as a multipart form.
func (c *Client) SignDocument(ctx context.Context, req models.SignDocumentRequest) (*models.Document, error) {
	form := &multipartForm{}
	form.add("documentId", req.DocumentID)
	form.add("signerName", req.SignerName)
	form.add("hasReviewed", strconv.FormatBool(req.HasReviewed))
	form.addOptional("notes", req.Notes)
	form.attach("signedDocument", req.SignedDocument)

	var doc models.Document
	if err := c.doMultipart(ctx, "sign_document", documentsBase+"/sign", form, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReviewDocument approves or rejects a signed or submitted document.
func (c *Client) ReviewDocument(ctx context.Context, req models.ReviewDocumentRequest) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, "review_document", http.MethodPost, documentsBase+"/review", nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveToDrive files an approved document in Google Drive.
func (c *Client) SaveToDrive(ctx context.Context, req models.SaveToDriveRequest) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, "save_to_drive", http.MethodPost, documentsBase+"/save-to-drive", nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MyDocuments returns documents sent to or by the caller.
func (c *Client) MyDocuments(ctx context.Context) ([]models.Document, error) {
	return c.listDocuments(ctx, "my_documents", documentsBase+"/my-agreements")
}

// PendingReviewDocuments returns documents waiting for back-office review.
func (c *Client) PendingReviewDocuments(ctx context.Context) ([]models.Document, error) {
	return c.listDocuments(ctx, "pending_review_documents", documentsBase+"/pending-review")
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, "get_document", http.MethodGet, documentPath(id, ""), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DownloadDocument fetches a document's file with its content type.
func (c *Client) DownloadDocument(ctx context.Context, id string) (*models.DocumentFile, error) {
	resp, body, err := c.do(ctx, call{
		op:     "download_document",
		method: http.MethodGet,
		path:   documentPath(id, "download"),
		accept: "*/*",
	})
	if err != nil {
		return nil, err
	}

	file := &models.DocumentFile{
		ContentType: resp.Header.Get("Content-Type"),
		Content:     body,
	}
	if file.ContentType == "" {
		file.ContentType = "application/octet-stream"
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		file.Filename = params["filename"]
	}
	return file, nil
}

func (c *Client) listDocuments(ctx context.Context, op, apiPath string) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, op, http.MethodGet, apiPath, nil, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
