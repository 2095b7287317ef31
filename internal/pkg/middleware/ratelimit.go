package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"sweetshop/internal/pkg/cache"
	"sweetshop/internal/pkg/logger"
)

// RateLimiter limita requisições por IP em janelas fixas, com contadores no Redis.
// Se o Redis estiver indisponível a requisição segue (fail-open) e o erro é registrado.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			if err == cache.ErrCacheMiss {
				// Primeira requisição da janela: cria o contador com TTL.
				if setErr := client.Set(ctx, key, 1, window); setErr != nil {
					log.Error("Falha ao iniciar contador de rate limit.", setErr)
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			} else if err != nil {
				log.Error("Falha ao consultar contador de rate limit.", err)
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				log.Warn("Limite de requisições excedido.", map[string]interface{}{"ip": ip, "count": count})
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			newCount, err := client.Incr(ctx, key)
			if err != nil {
				log.Error("Falha ao incrementar contador de rate limit.", err)
				newCount = int64(count + 1)
			}
			remaining := limit - int(newCount)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
