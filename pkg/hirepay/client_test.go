package hirepay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/models"
	"github.com/justresults/hirepay-console/pkg/testhelpers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *prometheus.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reg := prometheus.NewRegistry()
	client, err := NewClient(server.URL, 5*time.Second, NewMetrics(reg), zap.NewNop())
	require.NoError(t, err)
	return client, reg
}

func sessionContext(token string) context.Context {
	return auth.WithSession(context.Background(), token, auth.DecodeIdentity(token))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("/api", 0, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient("not a url", 0, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestClient_InjectsBearerToken(t *testing.T) {
	token := testhelpers.BackOfficeToken()
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/scopes/my-scopes", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.Scope{{ID: 4, Title: "Landing page", Status: models.ScopeDraft}})
	})

	scopes, err := client.MyScopes(sessionContext(token))
	require.NoError(t, err)
	require.Len(t, scopes, 1)
	assert.Equal(t, int64(4), scopes[0].ID)
	assert.Equal(t, "Bearer "+token, gotAuth)
}

func TestClient_NoTokenWithoutSession(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []models.Scope{})
	})

	_, err := client.MyScopes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_LoginSendsNoToken(t *testing.T) {
	var gotAuth string
	var gotBody models.LoginRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "issued"})
	})

	token, err := client.Login(sessionContext(testhelpers.AdminToken()), models.LoginRequest{Email: "a@b.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "issued", token)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "a@b.io", gotBody.Email)
}

func TestClient_LoginWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{})
	})

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.io", Password: "pw"})
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.DefaultRequestMessage, reqErr.Message)
}

func TestClient_BootstrapAdminEmptyBody(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/auth/bootstrap-admin", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := client.BootstrapAdmin(sessionContext(testhelpers.AdminToken()), models.LoginRequest{Email: "root@hirepay.io", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "message preferred",
			status:      http.StatusConflict,
			body:        `{"error":"INVALID_STATE","message":"Scope is not in draft"}`,
			wantMessage: "Scope is not in draft",
			wantCode:    "INVALID_STATE",
		},
		{
			name:        "error used when message missing",
			status:      http.StatusForbidden,
			body:        `{"error":"ACCESS_DENIED"}`,
			wantMessage: "ACCESS_DENIED",
			wantCode:    "ACCESS_DENIED",
		},
		{
			name:        "default when body is not json",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: apperrors.DefaultRequestMessage,
		},
		{
			name:        "default when body is empty",
			status:      http.StatusInternalServerError,
			wantMessage: apperrors.DefaultRequestMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.SubmitScope(sessionContext(testhelpers.FrontOfficeToken()), 9)
			reqErr, ok := apperrors.AsRequestError(err)
			require.True(t, ok, "expected RequestError, got %v", err)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
			assert.Equal(t, tt.wantCode, reqErr.Code)
			assert.False(t, reqErr.IsTransport())
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(baseURL, time.Second, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Dashboard(context.Background())
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.True(t, reqErr.IsTransport())
	assert.Equal(t, apperrors.DefaultRequestMessage, reqErr.Message)
	assert.Error(t, reqErr.Err)
}

func TestClient_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.ScopesPendingReview(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_ListUsersQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "20", q.Get("size"))
		assert.Equal(t, "fullName", q.Get("sortBy"))
		writeJSON(t, w, http.StatusOK, models.Page[models.User]{
			Content:       []models.User{{ID: 3, Email: "c@hirepay.io", Roles: []models.Role{models.RoleFrontOffice}}},
			TotalElements: 41,
			TotalPages:    3,
			Size:          20,
			Number:        2,
			Last:          true,
		})
	})

	page, err := client.ListUsers(sessionContext(testhelpers.AdminToken()), 2, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(41), page.TotalElements)
	assert.True(t, page.Last)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "c@hirepay.io", page.Content[0].Email)
}

func TestClient_CreateUserEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/users", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	user, err := client.CreateUser(sessionContext(testhelpers.AdminToken()), models.CreateUserRequest{Email: "n@hirepay.io"})
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestClient_CreateUserUnreadableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `["not","a","user"]`)
	})

	user, err := client.CreateUser(sessionContext(testhelpers.AdminToken()), models.CreateUserRequest{Email: "n@hirepay.io"})
	assert.Nil(t, user)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, "Request failed", reqErr.Message)
	require.Error(t, reqErr.Err)
	assert.Contains(t, reqErr.Err.Error(), "failed to parse create_user response")
}

func TestClient_ListFrontOfficeUsersFlexibleIDs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":7,"email":"fo@hirepay.io","fullName":"Frankie"},{"id":"8","email":"x@hirepay.io"}]`)
	})

	users, err := client.ListFrontOfficeUsers(sessionContext(testhelpers.BackOfficeToken()))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "7", users[0].ID.String())
	assert.Equal(t, "8", users[1].ID.String())
	assert.Equal(t, "x@hirepay.io", users[1].DisplayName())
}

func TestClient_ReviewScopeBody(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scopes/12/review", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, models.Scope{ID: 12, Status: models.ScopeChangesRequested})
	})

	yes := true
	scope, err := client.ReviewScope(sessionContext(testhelpers.BackOfficeToken()), 12, models.ReviewScopeRequest{
		Approved:       false,
		RequestChanges: &yes,
		ReviewNotes:    "Tighten the timeline",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScopeChangesRequested, scope.Status)
	assert.Equal(t, false, got["approved"])
	assert.Equal(t, true, got["requestChanges"])
	assert.Equal(t, "Tighten the timeline", got["reviewNotes"])
}

func TestClient_SendDocumentMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/umbrella-agreements/send", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "7", r.FormValue("frontOfficeUserId"))
		assert.Equal(t, "TAX_FORM_W9", r.FormValue("documentType"))
		_, hasNotes := r.MultipartForm.Value["notes"]
		assert.False(t, hasNotes)

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "w9.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(content))

		writeJSON(t, w, http.StatusOK, models.Document{DocumentID: "doc-1", Status: models.DocumentSent, DocumentType: models.DocTaxFormW9})
	})

	doc, err := client.SendDocument(sessionContext(testhelpers.BackOfficeToken()), models.SendDocumentRequest{
		FrontOfficeUserID: "7",
		DocumentType:      models.DocTaxFormW9,
		Document: &models.Attachment{
			Filename:    "w9.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.4"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.DocumentID)
}

func TestClient_SignDocumentWithoutFile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/umbrella-agreements/sign", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "doc-1", r.FormValue("documentId"))
		assert.Equal(t, "Frankie F", r.FormValue("signerName"))
		assert.Equal(t, "true", r.FormValue("hasReviewed"))
		assert.Equal(t, "looks good", r.FormValue("notes"))
		assert.Empty(t, r.MultipartForm.File)
		writeJSON(t, w, http.StatusOK, models.Document{DocumentID: "doc-1", Status: models.DocumentSigned})
	})

	doc, err := client.SignDocument(sessionContext(testhelpers.FrontOfficeToken()), models.SignDocumentRequest{
		DocumentID:  "doc-1",
		SignerName:  "Frankie F",
		HasReviewed: true,
		Notes:       "looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentSigned, doc.Status)
}

func TestClient_DownloadDocument(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/umbrella-agreements/doc-1/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="agreement.pdf"`)
		_, _ = io.WriteString(w, "%PDF-1.7")
	})

	file, err := client.DownloadDocument(sessionContext(testhelpers.FrontOfficeToken()), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "agreement.pdf", file.Filename)
	assert.Equal(t, "%PDF-1.7", string(file.Content))
}

func TestClient_DownloadNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"NOT_FOUND","message":"Document not found"}`)
	})

	_, err := client.DownloadDocument(sessionContext(testhelpers.FrontOfficeToken()), "missing")
	assert.True(t, IsNotFound(err))
}

func TestClient_BasePathPrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, models.Scope{ID: 5})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/hirepay/", 0, nil, zap.NewNop())
	require.NoError(t, err)

	_, err = client.GetScope(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "/hirepay/api/scopes/5", gotPath)
}

func TestClient_RecordsMetrics(t *testing.T) {
	client, reg := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/scopes/1/start-work" {
			writeJSON(t, w, http.StatusOK, models.Scope{ID: 1, Status: models.ScopeInProgress})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx := sessionContext(testhelpers.FrontOfficeToken())
	_, err := client.StartWork(ctx, 1)
	require.NoError(t, err)
	_, err = client.StartWork(ctx, 2)
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "hirepay_console_upstream_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			counts[labels["operation"]+"/"+labels["outcome"]] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, float64(1), counts["start_work/success"])
	assert.Equal(t, float64(1), counts["start_work/server_error"])
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, "404", outcomeFor(http.StatusNotFound))
	assert.Equal(t, "server_error", outcomeFor(http.StatusServiceUnavailable))
}
