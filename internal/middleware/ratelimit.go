package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimit throttles each client IP to limit requests per interval. The
// wallet submit endpoints are cheap to serve but each one schedules a
// confirmation timer, so an unthrottled client could pile up queued work.
// Rejections carry the API's failure envelope and a Retry-After hint.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*window)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := limiterKey(r)
			now := time.Now()

			mu.Lock()
			win, ok := windows[key]
			if !ok || now.After(win.resetAt) {
				win = &window{resetAt: now.Add(per)}
				windows[key] = win
			}
			if win.count >= limit {
				retryAfter := win.resetAt.Sub(now)
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"success":false,"error":"rate limit exceeded"}`))
				return
			}
			win.count++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// limiterKey buckets requests by validated client IP. Unparseable values
// fall back to the raw remote address so garbage headers cannot share one
// global bucket.
func limiterKey(r *http.Request) string {
	if ip := ClientIP(r); net.ParseIP(ip) != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
