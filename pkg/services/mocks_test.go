package services

import (
	"context"
	"sync"

	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
)

// fakeAPI implements every service API interface over in-memory state.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	loginToken string
	loginErr   error

	users      *models.Page[models.User]
	foUsers    []models.FrontOfficeUser
	createdReq *models.CreateUserRequest

	scopes        map[int64]*models.Scope
	scopeErr      error
	reviewReq     *models.ReviewScopeRequest
	createScope   *models.CreateScopeRequest
	updateScope   *models.UpdateScopeRequest
	dashboardErr  error
	foUsersErr    error
	documents     []models.Document
	pending       []models.Document
	sendReq       *models.SendDocumentRequest
	signReq       *models.SignDocumentRequest
	docReviewReq  *models.ReviewDocumentRequest
	saveReq       *models.SaveToDriveRequest
	documentErr   error
	downloadFile  *models.DocumentFile
	bootstrapSeen *models.LoginRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{scopes: map[int64]*models.Scope{}}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	f.record("login")
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) BootstrapAdmin(ctx context.Context, req models.LoginRequest) error {
	f.record("bootstrap_admin")
	f.bootstrapSeen = &req
	return nil
}

func (f *fakeAPI) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	f.record("create_user")
	f.createdReq = &req
	return nil, nil
}

func (f *fakeAPI) ListUsers(ctx context.Context, page, size int, sortBy string) (*models.Page[models.User], error) {
	f.record("list_users")
	return f.users, nil
}

func (f *fakeAPI) ListFrontOfficeUsers(ctx context.Context) ([]models.FrontOfficeUser, error) {
	f.record("list_front_office_users")
	return f.foUsers, f.foUsersErr
}

func (f *fakeAPI) sortedScopes() []models.Scope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Scope, 0, len(f.scopes))
	for id := int64(1); id <= 1000 && len(out) < len(f.scopes); id++ {
		if s, ok := f.scopes[id]; ok {
			out = append(out, *s)
		}
	}
	return out
}

func (f *fakeAPI) setStatus(id int64, status models.ScopeStatus) (*models.Scope, error) {
	if f.scopeErr != nil {
		return nil, f.scopeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scopes[id]
	if !ok {
		s = &models.Scope{ID: id}
		f.scopes[id] = s
	}
	s.Status = status
	copied := *s
	return &copied, nil
}

func (f *fakeAPI) CreateScope(ctx context.Context, req models.CreateScopeRequest) (*models.Scope, error) {
	f.record("create_scope")
	f.createScope = &req
	if f.scopeErr != nil {
		return nil, f.scopeErr
	}
	id := int64(len(f.scopes) + 1)
	f.scopes[id] = &models.Scope{ID: id, Title: req.Title, Status: models.ScopeDraft}
	copied := *f.scopes[id]
	return &copied, nil
}

func (f *fakeAPI) GetScope(ctx context.Context, id int64) (*models.Scope, error) {
	f.record("get_scope")
	s, ok := f.scopes[id]
	if !ok {
		return nil, f.scopeErr
	}
	copied := *s
	return &copied, nil
}

func (f *fakeAPI) UpdateScope(ctx context.Context, id int64, req models.UpdateScopeRequest) (*models.Scope, error) {
	f.record("update_scope")
	f.updateScope = &req
	return f.setStatus(id, models.ScopeInProgress)
}

func (f *fakeAPI) ReviewScope(ctx context.Context, id int64, req models.ReviewScopeRequest) (*models.Scope, error) {
	f.record("review_scope")
	f.reviewReq = &req
	switch {
	case req.Approved:
		return f.setStatus(id, models.ScopeApproved)
	case req.RequestChanges != nil && *req.RequestChanges:
		return f.setStatus(id, models.ScopeChangesRequested)
	}
	return f.setStatus(id, models.ScopeRejected)
}

func (f *fakeAPI) SubmitScope(ctx context.Context, id int64) (*models.Scope, error) {
	f.record("submit_scope")
	return f.setStatus(id, models.ScopeUnderReview)
}

func (f *fakeAPI) StartWork(ctx context.Context, id int64) (*models.Scope, error) {
	f.record("start_work")
	return f.setStatus(id, models.ScopeInProgress)
}

func (f *fakeAPI) Dashboard(ctx context.Context) (*models.ScopeDashboard, error) {
	f.record("dashboard")
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return &models.ScopeDashboard{AllScopes: f.sortedScopes()}, nil
}

func (f *fakeAPI) MyScopes(ctx context.Context) ([]models.Scope, error) {
	f.record("my_scopes")
	return f.sortedScopes(), nil
}

func (f *fakeAPI) ScopesAssignedByMe(ctx context.Context) ([]models.Scope, error) {
	f.record("assigned_by_me")
	return f.sortedScopes(), nil
}

func (f *fakeAPI) ScopesPendingReview(ctx context.Context) ([]models.Scope, error) {
	f.record("pending_review")
	return nil, nil
}

func (f *fakeAPI) SendDocument(ctx context.Context, req models.SendDocumentRequest) (*models.Document, error) {
	f.record("send_document")
	f.sendReq = &req
	if f.documentErr != nil {
		return nil, f.documentErr
	}
	return &models.Document{DocumentID: "doc-new", Status: models.DocumentSent, DocumentType: req.DocumentType}, nil
}

func (f *fakeAPI) SignDocument(ctx context.Context, req models.SignDocumentRequest) (*models.Document, error) {
	f.record("sign_document")
	f.signReq = &req
	return &models.Document{DocumentID: req.DocumentID, Status: models.DocumentSigned}, nil
}

func (f *fakeAPI) ReviewDocument(ctx context.Context, req models.ReviewDocumentRequest) (*models.Document, error) {
	f.record("review_document")
	f.docReviewReq = &req
	return &models.Document{DocumentID: req.DocumentID, Status: models.DocumentApproved}, nil
}

func (f *fakeAPI) SaveToDrive(ctx context.Context, req models.SaveToDriveRequest) (*models.Document, error) {
	f.record("save_to_drive")
	f.saveReq = &req
	return &models.Document{DocumentID: req.DocumentID, Status: models.DocumentApproved, GoogleDriveURL: "https://drive.example/x"}, nil
}

func (f *fakeAPI) MyDocuments(ctx context.Context) ([]models.Document, error) {
	f.record("my_documents")
	return f.documents, nil
}

func (f *fakeAPI) PendingReviewDocuments(ctx context.Context) ([]models.Document, error) {
	f.record("pending_review_documents")
	return f.pending, nil
}

func (f *fakeAPI) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	f.record("get_document")
	if f.documentErr != nil {
		return nil, f.documentErr
	}
	for _, d := range f.documents {
		if d.DocumentID == id {
			return &d, nil
		}
	}
	return &models.Document{DocumentID: id}, nil
}

func (f *fakeAPI) DownloadDocument(ctx context.Context, id string) (*models.DocumentFile, error) {
	f.record("download_document")
	return f.downloadFile, nil
}

func withIdentity(token string) context.Context {
	return auth.WithSession(context.Background(), token, auth.DecodeIdentity(token))
}
