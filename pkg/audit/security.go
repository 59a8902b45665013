// Package audit logs security-relevant console events in a structured form that a
// SIEM can filter on the "security_audit" logger name.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventLoginFailure is logged when the upstream rejects a login or bootstrap.
	EventLoginFailure SecurityEventType = "login_failure"
	// EventLoginThrottled is logged when a client exceeds the login rate.
	EventLoginThrottled SecurityEventType = "login_throttled"
	// EventSessionTokenUndecodable is logged when a stored token cannot be decoded.
	EventSessionTokenUndecodable SecurityEventType = "session_token_undecodable"
)

// SecurityEvent is one auditable event.
type SecurityEvent struct {
	EventID   uuid.UUID         `json:"event_id"`
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	Email     string            `json:"email,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Details   any               `json:"details,omitempty"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// LoginFailureDetails describes a rejected login.
type LoginFailureDetails struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// SecurityAuditor writes security events.
type SecurityAuditor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSecurityAuditor creates an auditor logging under the "security_audit" name.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{
		logger: logger.Named("security_audit"),
		now:    time.Now,
	}
}

// LogLoginFailure records a login or bootstrap the upstream refused.
// Logged at WARN: most are mistyped passwords.
func (a *SecurityAuditor) LogLoginFailure(email, clientIP string, details LoginFailureDetails) {
	event := a.newEvent(EventLoginFailure, "warning", email, clientIP, details)
	a.logger.Warn("Login failed",
		zap.String("event_json", marshal(event)),
		zap.String("event_id", event.EventID.String()),
		zap.String("email", email),
		zap.String("client_ip", clientIP),
		zap.String("endpoint", details.Endpoint),
		zap.Int("status", details.StatusCode),
		zap.String("severity", event.Severity),
	)
}

// LogLoginThrottled records a login attempt rejected by the rate limiter.
// Logged at ERROR with critical severity: sustained throttling means credential stuffing.
func (a *SecurityAuditor) LogLoginThrottled(clientIP, path string) {
	event := a.newEvent(EventLoginThrottled, "critical", "", clientIP, map[string]string{"path": path})
	a.logger.Error("Login attempt throttled",
		zap.String("event_json", marshal(event)),
		zap.String("event_id", event.EventID.String()),
		zap.String("client_ip", clientIP),
		zap.String("path", path),
		zap.String("severity", event.Severity),
	)
}

// LogUndecodableToken records a stored session token that no longer decodes.
// The session is cleared by the caller.
func (a *SecurityAuditor) LogUndecodableToken(clientIP, store string) {
	event := a.newEvent(EventSessionTokenUndecodable, "warning", "", clientIP, map[string]string{"store": store})
	a.logger.Warn("Session token could not be decoded",
		zap.String("event_json", marshal(event)),
		zap.String("event_id", event.EventID.String()),
		zap.String("client_ip", clientIP),
		zap.String("store", store),
		zap.String("severity", event.Severity),
	)
}

func (a *SecurityAuditor) newEvent(eventType SecurityEventType, severity, email, clientIP string, details any) SecurityEvent {
	return SecurityEvent{
		EventID:   uuid.New(),
		Timestamp: a.now().UTC(),
		EventType: eventType,
		Email:     email,
		ClientIP:  clientIP,
		Details:   details,
		Severity:  severity,
	}
}

// marshal ignores the error: every event holds plain JSON-safe values.
func marshal(event SecurityEvent) string {
	b, _ := json.Marshal(event)
	return string(b)
}
