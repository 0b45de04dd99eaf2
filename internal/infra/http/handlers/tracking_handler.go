package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)


type TrackingHandler struct {
	resolve     *usecase.ResolveClickUseCase
	rateLimiter *RateLimiter
}


func NewTrackingHandler(resolve *usecase.ResolveClickUseCase) *TrackingHandler {
	return &TrackingHandler{
		resolve:     resolve,
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 req/min por IP
	}
}


// HandleClick é o destino dos links rastreáveis dos emails. Endpoint
// público: tem rate limit próprio por IP.
func (h *TrackingHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	token := chi.URLParam(r, "token")
	out, err := h.resolve.Execute(r.Context(), token)
	if err != nil {
		if usecase.IsDomainError(err) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "<html><body><p>Este link expirou ou já foi utilizado.</p></body></html>")
			return
		}
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordClick(out.Action)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	switch out.Action {
	case entity.ActionContactRequest:
		fmt.Fprint(w, "<html><body><p>Recebido! Nosso time entra em contato em instantes. 🚀</p></body></html>")
	case entity.ActionReschedule:
		fmt.Fprint(w, "<html><body><p>Sem problemas! Vamos te mandar novas opções de horário.</p></body></html>")
	case entity.ActionUnsubscribe:
		fmt.Fprint(w, "<html><body><p>Você não vai mais receber emails desta campanha.</p></body></html>")
	default:
		fmt.Fprint(w, "<html><body><p>Presença confirmada. Até lá! ✅</p></body></html>")
	}
}


func getClientIP(r *http.Request) string {

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}


type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}


func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}


func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}


func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
