package services

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/workflow"
)

// DefaultMaxUploadBytes is the upload cap used when none is configured.
const DefaultMaxUploadBytes = 5 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// DocumentAPI is the subset of the HirePay client used for documents.
type DocumentAPI interface {
	SendDocument(ctx context.Context, req models.SendDocumentRequest) (*models.Document, error)
	SignDocument(ctx context.Context, req models.SignDocumentRequest) (*models.Document, error)
	ReviewDocument(ctx context.Context, req models.ReviewDocumentRequest) (*models.Document, error)
	SaveToDrive(ctx context.Context, req models.SaveToDriveRequest) (*models.Document, error)
	MyDocuments(ctx context.Context) ([]models.Document, error)
	PendingReviewDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	DownloadDocument(ctx context.Context, id string) (*models.DocumentFile, error)
	ListFrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error)
}

// DocumentOverview is the document page: the viewer's documents and, for back office,
// the documents waiting for review and the users documents can be sent to.
type DocumentOverview struct {
	Mine          []models.Document
	PendingReview []models.Document
	Recipients    []models.FrontOfficeUser
}

// DocumentMutation is the result of a document change with the page reloaded.
type DocumentMutation struct {
	Document *models.Document
	Overview *DocumentOverview
}

// DocumentService validates document routing and keeps the document page in step with upstream.
type DocumentService interface {
	Overview(ctx context.Context) (*DocumentOverview, error)
	Finalized(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Download(ctx context.Context, id string) (*models.DocumentFile, error)

	Send(ctx context.Context, req models.SendDocumentRequest) (*DocumentMutation, error)
	Sign(ctx context.Context, req models.SignDocumentRequest) (*DocumentMutation, error)
	Review(ctx context.Context, documentID, decision, notes string) (*DocumentMutation, error)
	SaveToDrive(ctx context.Context, documentID string) (*DocumentMutation, error)
}

type documentService struct {
	api            DocumentAPI
	maxUploadBytes int64
	logger         *zap.Logger
}

var _ DocumentService = (*documentService)(nil)

// NewDocumentService creates a document service. A non-positive maxUploadBytes means
// DefaultMaxUploadBytes.
func NewDocumentService(api DocumentAPI, maxUploadBytes int64, logger *zap.Logger) DocumentService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &documentService{
		api:            api,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.Named("document_service"),
	}
}

// Overview loads the viewer's documents and, for back office, pending reviews and
// recipients, concurrently. Any failed load fails the page.
func (s *documentService) Overview(ctx context.Context) (*DocumentOverview, error) {
	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return nil, apperrors.ErrNoSession
	}

	overview := &DocumentOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		docs, err := s.api.MyDocuments(gctx)
		if err != nil {
			return fmt.Errorf("failed to load documents: %w", err)
		}
		overview.Mine = docs
		return nil
	})
	if identity.IsBackOffice() {
		g.Go(func() error {
			docs, err := s.api.PendingReviewDocuments(gctx)
			if err != nil {
				return fmt.Errorf("failed to load documents pending review: %w", err)
			}
			overview.PendingReview = docs
			return nil
		})
		g.Go(func() error {
			users, err := s.api.ListFrontOfficeUsers(gctx)
			if err != nil {
				return fmt.Errorf("failed to load front-office users: %w", err)
			}
			overview.Recipients = users
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// Finalized returns the viewer's SIGNED and APPROVED documents.
func (s *documentService) Finalized(ctx context.Context) ([]models.Document, error) {
	docs, err := s.api.MyDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	finalized := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if d.Status == models.DocumentSigned || d.Status == models.DocumentApproved {
			finalized = append(finalized, d)
		}
	}
	return finalized, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.api.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id string) (*models.DocumentFile, error) {
	file, err := s.api.DownloadDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to download document %s: %w", id, err)
	}
	return file, nil
}

// Send validates and sends a document. Form types need a file; other types may be
// sent without one and the upstream attaches its template.
func (s *documentService) Send(ctx context.Context, req models.SendDocumentRequest) (*DocumentMutation, error) {
	req.FrontOfficeUserID = strings.TrimSpace(req.FrontOfficeUserID)
	req.Notes = strings.TrimSpace(req.Notes)
	if req.FrontOfficeUserID == "" {
		return nil, apperrors.NewValidationError("frontOfficeUserId", "Select a front-office user")
	}
	if req.DocumentType == "" {
		req.DocumentType = models.DocUmbrellaAgreement
	}
	if err := s.checkAttachment("document", req.DocumentType, req.Document); err != nil {
		return nil, err
	}

	return s.mutate(ctx, "send", req.FrontOfficeUserID, func() (*models.Document, error) {
		return s.api.SendDocument(ctx, req)
	})
}

// Sign validates and signs a received document. The signer must confirm they reviewed it,
// and form types need the completed file.
func (s *documentService) Sign(ctx context.Context, req models.SignDocumentRequest) (*DocumentMutation, error) {
	req.DocumentID = strings.TrimSpace(req.DocumentID)
	req.SignerName = strings.TrimSpace(req.SignerName)
	req.Notes = strings.TrimSpace(req.Notes)
	if req.DocumentID == "" {
		return nil, apperrors.NewValidationError("documentId", "Document is required")
	}
	if req.SignerName == "" {
		return nil, apperrors.NewValidationError("signerName", "Signer name is required")
	}
	if !req.HasReviewed {
		return nil, apperrors.NewValidationError("hasReviewed", "Confirm that you have reviewed the document")
	}

	// The attachment rule follows the type on record upstream, not the submitted form.
	current, err := s.api.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", req.DocumentID, err)
	}
	if current.DocumentType != "" {
		req.DocumentType = current.DocumentType
	}
	if err := s.checkAttachment("signedDocument", req.DocumentType, req.SignedDocument); err != nil {
		return nil, err
	}

	return s.mutate(ctx, "sign", req.DocumentID, func() (*models.Document, error) {
		return s.api.SignDocument(ctx, req)
	})
}

func (s *documentService) Review(ctx context.Context, documentID, decision, notes string) (*DocumentMutation, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, apperrors.NewValidationError("documentId", "Document is required")
	}
	d, err := workflow.ParseDecision(decision)
	if err != nil {
		return nil, apperrors.NewValidationError("decision", err.Error())
	}
	req, err := workflow.BuildDocumentReview(documentID, d, notes)
	if err != nil {
		return nil, apperrors.NewValidationError("decision", err.Error())
	}

	return s.mutate(ctx, "review", documentID, func() (*models.Document, error) {
		return s.api.ReviewDocument(ctx, req)
	})
}

func (s *documentService) SaveToDrive(ctx context.Context, documentID string) (*DocumentMutation, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, apperrors.NewValidationError("documentId", "Document is required")
	}
	req := models.SaveToDriveRequest{DocumentID: documentID, FolderName: workflow.SaveToDriveFolder}

	return s.mutate(ctx, "save_to_drive", documentID, func() (*models.Document, error) {
		return s.api.SaveToDrive(ctx, req)
	})
}

func (s *documentService) mutate(ctx context.Context, action, ref string, call func() (*models.Document, error)) (*DocumentMutation, error) {
	doc, err := call()
	if err != nil {
		s.logger.Info("Document change rejected",
			zap.String("action", action),
			zap.String("ref", ref),
			zap.Error(err))
		return nil, fmt.Errorf("failed to %s document: %w", strings.ReplaceAll(action, "_", " "), err)
	}

	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Document changed",
		zap.String("action", action),
		zap.String("document_id", doc.DocumentID),
		zap.String("status", string(doc.Status)))
	return &DocumentMutation{Document: doc, Overview: overview}, nil
}

// checkAttachment enforces the file rules before anything is sent upstream.
func (s *documentService) checkAttachment(field string, docType models.DocumentType, file *models.Attachment) error {
	if file == nil {
		if workflow.RequiresAttachment(docType) {
			return apperrors.NewValidationError(field, "A completed form file is required")
		}
		return nil
	}
	return ValidateUpload(field, file, s.maxUploadBytes)
}

// ValidateUpload accepts PDF, DOC and DOCX files up to maxBytes. The type is taken from
// the declared content type or, failing that, the file extension.
func ValidateUpload(field string, file *models.Attachment, maxBytes int64) error {
	size := file.Size
	if n := int64(len(file.Content)); n > size {
		size = n
	}
	if size > maxBytes {
		return apperrors.NewValidationError(field, UploadLimitMessage(maxBytes))
	}

	contentType := file.ContentType
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if allowedUploadTypes[strings.ToLower(contentType)] {
		return nil
	}
	if allowedUploadExtensions[strings.ToLower(filepath.Ext(file.Filename))] {
		return nil
	}
	return apperrors.NewValidationError(field, "Only PDF, DOC and DOCX files are accepted")
}

// UploadLimitMessage states the upload limit in the largest unit that keeps it readable.
func UploadLimitMessage(maxBytes int64) string {
	var limit string
	switch {
	case maxBytes >= 1<<20 && maxBytes%(1<<20) == 0:
		limit = fmt.Sprintf("%d MB", maxBytes>>20)
	case maxBytes >= 1<<20:
		limit = strconv.FormatFloat(float64(maxBytes)/(1<<20), 'f', 1, 64) + " MB"
	case maxBytes >= 1<<10 && maxBytes%(1<<10) == 0:
		limit = fmt.Sprintf("%d KB", maxBytes>>10)
	default:
		limit = fmt.Sprintf("%d bytes", maxBytes)
	}
	return "File must be " + limit + " or smaller"
}
