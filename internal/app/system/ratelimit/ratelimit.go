// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/wuwapi/internal/app/system/apiresp"
	"go.uber.org/zap"
)

// Limiter counts requests per key in fixed windows. It is safe for
// concurrent use. Expired windows are pruned lazily on Allow.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	duration  time.Duration
	now       func() time.Time
	lastPrune time.Time

	// TrustedProxies may set the client address through forwarding
	// headers. Empty keys every request on its connection address.
	TrustedProxies Proxies
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per key per duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// limit. retryAfter is the time left in the key's window when it is not.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true, 0
	}
	if w.count >= l.limit {
		return false, w.expiresAt.Sub(now)
	}
	w.count++
	return true, 0
}

// Remaining returns how many requests are left for key in its window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || l.now().After(w.expiresAt) {
		return l.limit
	}
	if remaining := l.limit - w.count; remaining > 0 {
		return remaining
	}
	return 0
}

// prune drops expired windows at most once per window duration.
func (l *Limiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.duration {
		return
	}
	l.lastPrune = now
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
// A nil Limiter lets every request through.
func (l *Limiter) Middleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, l.TrustedProxies)
			ok, wait := l.Allow(ip)
			if !ok {
				secs := int(wait.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				if log != nil {
					log.Warn("rate limited", zap.String("ip", ip), zap.String("path", r.URL.Path))
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				apiresp.JSON(w, http.StatusTooManyRequests, apiresp.ErrorBody{
					Code:    apiresp.CodeRateLimited,
					Message: "too many requests, retry later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Proxies is the set of networks whose forwarding headers are believed.
type Proxies []*net.IPNet

// ParseProxies accepts IP addresses and CIDR ranges.
func ParseProxies(list []string) (Proxies, error) {
	var out Proxies
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(item, "/") {
			ip := net.ParseIP(item)
			if ip == nil {
				return nil, fmt.Errorf("invalid proxy address %q", item)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(item)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy range %q: %w", item, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Contains reports whether ip falls inside one of the networks.
func (p Proxies) Contains(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range p {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// ClientIP extracts the client IP from an HTTP request. The connection's
// address is used unless it belongs to a trusted proxy, in which case the
// nearest untrusted hop in X-Forwarded-For (or X-Real-IP) is taken.
func ClientIP(r *http.Request, trusted Proxies) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !trusted.Contains(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !trusted.Contains(hop) {
				return hop
			}
		}
		if first := strings.TrimSpace(hops[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return remote
}
