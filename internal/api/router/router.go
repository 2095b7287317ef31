package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "sweetshop/docs" // registra a documentação OpenAPI
	"sweetshop/internal/api/inventory"
	"sweetshop/internal/api/sweet"
	"sweetshop/internal/api/user"
	"sweetshop/internal/domain"
	"sweetshop/internal/pkg/cache"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/middleware"
)

// Options reúne as configurações dos middlewares globais.
type Options struct {
	AllowedOrigin   string
	RateLimitMax    int
	RateLimitPeriod time.Duration
}

// Handlers agrupa os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Sweet     *sweet.Handler
	Inventory *inventory.Handler
	User      *user.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// Com cacheClient nil o rate limiting fica desligado.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, cacheClient cache.Client, opts Options, log logger.Logger) http.Handler {
	// ServeMux padrão do net/http com padrões "MÉTODO /caminho/{param}"
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc, log)
	anyRole := middleware.PermissionMiddleware(log, domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.PermissionMiddleware(log, domain.RoleAdmin)

	// --- 1. Health Check e Documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Autenticação (pública) ---
	mux.HandleFunc("POST /api/auth/register", h.User.RegisterUserHandler)
	mux.HandleFunc("POST /api/auth/login", h.User.LoginUserHandler)

	// --- 3. Catálogo (USER e ADMIN) ---
	mux.HandleFunc("GET /api/sweets", middleware.Chain(h.Sweet.ListSweetsHandler, auth, anyRole))
	mux.HandleFunc("GET /api/sweets/available", middleware.Chain(h.Sweet.ListAvailableHandler, auth, anyRole))
	mux.HandleFunc("GET /api/sweets/not-available", middleware.Chain(h.Sweet.ListOutOfStockHandler, auth, anyRole))
	mux.HandleFunc("GET /api/sweets/search", middleware.Chain(h.Sweet.SearchSweetsHandler, auth, anyRole))
	mux.HandleFunc("GET /api/sweets/{id}", middleware.Chain(h.Sweet.GetSweetHandler, auth, anyRole))

	// --- 4. Gestão (ADMIN) ---
	mux.HandleFunc("POST /api/sweets", middleware.Chain(h.Sweet.CreateSweetHandler, auth, adminOnly))
	mux.HandleFunc("PUT /api/sweets/{id}", middleware.Chain(h.Sweet.UpdateSweetHandler, auth, adminOnly))
	mux.HandleFunc("DELETE /api/sweets/{id}", middleware.Chain(h.Sweet.DeleteSweetHandler, auth, adminOnly))

	// --- 5. Inventário ---
	mux.HandleFunc("POST /api/sweets/{id}/purchase", middleware.Chain(h.Inventory.PurchaseHandler, auth, anyRole))
	mux.HandleFunc("POST /api/sweets/{id}/restock", middleware.Chain(h.Inventory.RestockHandler, auth, adminOnly))

	// --- 6. Middlewares Globais (o primeiro aplicado é o mais interno) ---
	var handler http.Handler = mux
	if cacheClient != nil {
		handler = middleware.RateLimiter(cacheClient, opts.RateLimitMax, opts.RateLimitPeriod, log)(handler)
	}
	handler = middleware.RequestLogger(log)(handler)
	handler = middleware.CORS(opts.AllowedOrigin)(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
