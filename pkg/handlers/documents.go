package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/services"
	"github.com/justresults/hirepay-console/pkg/views"
)

// multipartOverhead is the room left above the file cap for form fields and boundaries.
const multipartOverhead = 1 << 20

// DocumentReviewBody is a document review decision: approve or reject.
type DocumentReviewBody struct {
	DocumentID string `json:"documentId"`
	Decision   string `json:"decision"`
	Notes      string `json:"notes"`
}

// SaveToDriveBody names the document to file in Drive.
type SaveToDriveBody struct {
	DocumentID string `json:"documentId"`
}

// DocumentMutationResponse is the changed document and the reloaded document page.
type DocumentMutationResponse struct {
	Document views.DocumentRow  `json:"document"`
	Page     views.DocumentPage `json:"page"`
}

// DocumentsHandler serves the document views and forwards document routing.
type DocumentsHandler struct {
	documentService services.DocumentService
	maxUploadBytes  int64
	logger          *zap.Logger
}

// NewDocumentsHandler creates a documents handler.
func NewDocumentsHandler(documentService services.DocumentService, maxUploadBytes int64, logger *zap.Logger) *DocumentsHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = services.DefaultMaxUploadBytes
	}
	return &DocumentsHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// RegisterRoutes registers the document routes. Every route needs a session.
func (h *DocumentsHandler) RegisterRoutes(mux *http.ServeMux, sessionMiddleware *auth.SessionMiddleware) {
	mux.HandleFunc("GET /api/documents", sessionMiddleware.Require(h.List))
	mux.HandleFunc("GET /api/documents/approved", sessionMiddleware.Require(h.Approved))
	mux.HandleFunc("GET /api/documents/{id}", sessionMiddleware.Require(h.Get))
	mux.HandleFunc("GET /api/documents/{id}/download", sessionMiddleware.Require(h.Download))
	mux.HandleFunc("POST /api/documents/send", sessionMiddleware.Require(h.Send))
	mux.HandleFunc("POST /api/documents/sign", sessionMiddleware.Require(h.Sign))
	mux.HandleFunc("POST /api/documents/review", sessionMiddleware.Require(h.Review))
	mux.HandleFunc("POST /api/documents/save-to-drive", sessionMiddleware.Require(h.SaveToDrive))
}

// List handles GET /api/documents
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	overview, err := h.documentService.Overview(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, "list_documents", err)
		return
	}
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK, documentPage(overview, identity))
}

// Approved handles GET /api/documents/approved?search&page&size
func (h *DocumentsHandler) Approved(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.Finalized(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, "approved_documents", err)
		return
	}
	page, size := ParsePaging(r, views.DefaultBrowserPageSize)
	writeJSON(w, h.logger, http.StatusOK, views.NewApprovedBrowser(docs, r.URL.Query().Get("search"), page, size))
}

// Get handles GET /api/documents/{id}
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, "get_document", err)
		return
	}
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, http.StatusOK, views.NewDocumentRow(*doc, identity))
}

// Download handles GET /api/documents/{id}/download and streams the upstream file.
func (h *DocumentsHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseDocumentID(w, r, h.logger)
	if !ok {
		return
	}

	file, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, "download_document", err)
		return
	}

	filename := file.Filename
	if filename == "" {
		filename = id
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(file.Content); err != nil {
		h.logger.Warn("Failed to write download", zap.String("document_id", id), zap.Error(err))
	}
}

// Send handles POST /api/documents/send (multipart: frontOfficeUserId, documentType, notes, document).
func (h *DocumentsHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	file, ok := h.readAttachment(w, r, "document")
	if !ok {
		return
	}

	result, err := h.documentService.Send(r.Context(), models.SendDocumentRequest{
		FrontOfficeUserID: r.FormValue("frontOfficeUserId"),
		DocumentType:      models.DocumentType(strings.TrimSpace(r.FormValue("documentType"))),
		Notes:             r.FormValue("notes"),
		Document:          file,
	})
	h.respondMutation(w, r, http.StatusCreated, "send_document", result, err)
}

// Sign handles POST /api/documents/sign (multipart: documentId, documentType, signerName,
// hasReviewed, notes, signedDocument).
func (h *DocumentsHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	file, ok := h.readAttachment(w, r, "signedDocument")
	if !ok {
		return
	}

	hasReviewed, _ := strconv.ParseBool(r.FormValue("hasReviewed"))
	result, err := h.documentService.Sign(r.Context(), models.SignDocumentRequest{
		DocumentID:     r.FormValue("documentId"),
		DocumentType:   models.DocumentType(strings.TrimSpace(r.FormValue("documentType"))),
		SignerName:     r.FormValue("signerName"),
		HasReviewed:    hasReviewed,
		Notes:          r.FormValue("notes"),
		SignedDocument: file,
	})
	h.respondMutation(w, r, http.StatusOK, "sign_document", result, err)
}

// Review handles POST /api/documents/review
func (h *DocumentsHandler) Review(w http.ResponseWriter, r *http.Request) {
	var body DocumentReviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.documentService.Review(r.Context(), body.DocumentID, body.Decision, body.Notes)
	h.respondMutation(w, r, http.StatusOK, "review_document", result, err)
}

// SaveToDrive handles POST /api/documents/save-to-drive
func (h *DocumentsHandler) SaveToDrive(w http.ResponseWriter, r *http.Request) {
	var body SaveToDriveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.documentService.SaveToDrive(r.Context(), body.DocumentID)
	h.respondMutation(w, r, http.StatusOK, "save_to_drive", result, err)
}

// parseMultipart reads the form with the body capped just above the upload limit.
// An oversized body is reported as a validation failure on the file.
func (h *DocumentsHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteServiceError(w, h.logger, "upload", apperrors.NewValidationError("file",
				services.UploadLimitMessage(h.maxUploadBytes)))
			return false
		}
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid multipart form")
		return false
	}
	return true
}

// readAttachment returns the named file part, or nil when the form has none.
func (h *DocumentsHandler) readAttachment(w http.ResponseWriter, r *http.Request, field string) (*models.Attachment, bool) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid file upload")
		return nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "Invalid file upload")
		return nil, false
	}

	return &models.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, true
}

func (h *DocumentsHandler) respondMutation(w http.ResponseWriter, r *http.Request, status int, action string, result *services.DocumentMutation, err error) {
	if err != nil {
		WriteServiceError(w, h.logger, action, err)
		return
	}
	identity, _ := auth.GetIdentity(r.Context())
	writeJSON(w, h.logger, status, DocumentMutationResponse{
		Document: views.NewDocumentRow(*result.Document, identity),
		Page:     documentPage(result.Overview, identity),
	})
}

func documentPage(overview *services.DocumentOverview, identity *auth.Identity) views.DocumentPage {
	return views.NewDocumentPage(overview.Mine, overview.PendingReview, overview.Recipients, identity)
}
