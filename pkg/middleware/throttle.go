package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/justresults/hirepay-console/pkg/audit"
	"github.com/justresults/hirepay-console/pkg/auth"
)

const (
	visitorTTL      = 10 * time.Minute
	sweepThreshold  = 1024
	throttleMessage = "Too many login attempts. Try again in a minute."
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginThrottle is a per-client-IP token bucket in front of the credential endpoints.
type LoginThrottle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	auditor  *audit.SecurityAuditor
	now      func() time.Time
}

// NewLoginThrottle allows perMinute attempts per client IP with the given burst.
func NewLoginThrottle(perMinute, burst int, auditor *audit.SecurityAuditor) *LoginThrottle {
	return &LoginThrottle{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		auditor:  auditor,
		now:      time.Now,
	}
}

// Wrap rejects requests over the limit with 429 and audits them.
func (t *LoginThrottle) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := auth.ClientIP(r)
		if !t.allow(ip) {
			t.auditor.LogLoginThrottled(ip, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "too_many_requests",
				"message": throttleMessage,
			})
			return
		}
		next(w, r)
	}
}

func (t *LoginThrottle) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if len(t.visitors) >= sweepThreshold {
		for k, v := range t.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(t.visitors, k)
			}
		}
	}

	v, ok := t.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}
