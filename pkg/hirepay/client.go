// Package hirepay is the client for the HirePay REST API.
//
// Every call takes the bearer token from the request context (see auth.WithSession),
// except login and admin bootstrap, which run before a token exists. Failures are
// always returned as *apperrors.RequestError. There are no retries.
package hirepay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/logging"
	"github.com/justresults/hirepay-console/pkg/models"
)

// DefaultTimeout is the maximum time to wait for a HirePay response.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 32 << 20

// Paths that are called without a bearer token.
var unauthenticatedPaths = []string{"/api/auth/login", "/api/auth/bootstrap-admin"}

// Client provides access to the HirePay API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *Metrics
	logger     *zap.Logger
}

// NewClient creates a HirePay client. A zero timeout means DefaultTimeout.
// metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, metrics *Metrics, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid HirePay base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger.Named("hirepay"),
	}, nil
}

// call describes one upstream request.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
}

// doJSON sends a JSON body (when in is non-nil) and decodes the JSON response into out
// (when out is non-nil and the response has a body).
func (c *Client) doJSON(ctx context.Context, op, method, apiPath string, query url.Values, in, out any) error {
	cl := call{op: op, method: method, path: apiPath, query: query, accept: "application/json"}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		cl.body = bytes.NewReader(payload)
		cl.contentType = "application/json"
	}

	resp, body, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	return c.decode(op, resp, body, out)
}

// doMultipart sends a multipart form and decodes the JSON response into out.
func (c *Client) doMultipart(ctx context.Context, op, apiPath string, form *multipartForm, out any) error {
	payload, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("failed to encode %s form: %w", op, err)
	}

	resp, body, err := c.do(ctx, call{
		op:          op,
		method:      http.MethodPost,
		path:        apiPath,
		body:        bytes.NewReader(payload),
		contentType: contentType,
		accept:      "application/json",
	})
	if err != nil {
		return err
	}
	return c.decode(op, resp, body, out)
}

func (c *Client) decode(op string, resp *http.Response, body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("HirePay returned an unreadable body",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logging.SanitizeBody(body)))
		return &apperrors.RequestError{
			StatusCode: resp.StatusCode,
			Message:    apperrors.DefaultRequestMessage,
			Err:        fmt.Errorf("failed to parse %s response: %w", op, err),
		}
	}
	return nil
}

// do executes the request and returns the response with its body read.
// Non-2xx responses and transport failures come back as *apperrors.RequestError.
func (c *Client) do(ctx context.Context, cl call) (*http.Response, []byte, error) {
	start := time.Now()

	endpoint := c.buildURL(cl.path, cl.query)
	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, cl.body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.accept != "" {
		req.Header.Set("Accept", cl.accept)
	}
	if requiresToken(cl.path) {
		if token, ok := auth.GetToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("Calling HirePay",
		zap.String("operation", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(cl.op, outcomeTransportError, time.Since(start))
		c.logger.Warn("HirePay request failed",
			zap.String("operation", cl.op),
			zap.String("error", logging.SanitizeError(err)))
		return nil, nil, &apperrors.RequestError{Message: apperrors.DefaultRequestMessage, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.observe(cl.op, outcomeTransportError, time.Since(start))
		return nil, nil, &apperrors.RequestError{
			StatusCode: resp.StatusCode,
			Message:    apperrors.DefaultRequestMessage,
			Err:        fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(cl.op, outcomeFor(resp.StatusCode), time.Since(start))
		reqErr := normalizeError(resp.StatusCode, body)
		fields := []zap.Field{
			zap.String("operation", cl.op),
			zap.Int("status", resp.StatusCode),
			zap.String("code", reqErr.Code),
			zap.String("body", logging.SanitizeBody(body)),
		}
		if resp.StatusCode >= 500 {
			c.logger.Error("HirePay returned error", fields...)
		} else {
			c.logger.Info("HirePay rejected request", fields...)
		}
		return nil, nil, reqErr
	}

	c.metrics.observe(cl.op, outcomeSuccess, time.Since(start))
	return resp, body, nil
}

// errorBody is the upstream error payload: {"error": CODE, "message": text}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// normalizeError prefers the server message, then the server error field, then the default.
func normalizeError(status int, body []byte) *apperrors.RequestError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	message := strings.TrimSpace(eb.Message)
	if message == "" {
		message = strings.TrimSpace(eb.Error)
	}
	if message == "" {
		message = apperrors.DefaultRequestMessage
	}

	return &apperrors.RequestError{
		StatusCode: status,
		Code:       eb.Error,
		Message:    message,
	}
}

func requiresToken(apiPath string) bool {
	for _, p := range unauthenticatedPaths {
		if strings.HasPrefix(apiPath, p) {
			return false
		}
	}
	return true
}

// buildURL joins the base URL path with apiPath and attaches query.
func (c *Client) buildURL(apiPath string, query url.Values) string {
	u := *c.baseURL
	u.Path = path.Join("/", u.Path, apiPath)
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// multipartForm collects text fields and at most one file part.
type multipartForm struct {
	fields    [][2]string
	fileField string
	file      *models.Attachment
}

func (f *multipartForm) add(name, value string) {
	f.fields = append(f.fields, [2]string{name, value})
}

func (f *multipartForm) addOptional(name, value string) {
	if value != "" {
		f.add(name, value)
	}
}

func (f *multipartForm) attach(name string, file *models.Attachment) {
	if file != nil {
		f.fileField = name
		f.file = file
	}
}

func (f *multipartForm) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}

	if f.file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     f.fileField,
			"filename": f.file.Filename,
		}))
		contentType := f.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var reqErr *apperrors.RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}
