package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"sweetshop/config"
	"sweetshop/internal/pkg/cache"
	"sweetshop/internal/pkg/database"
	"sweetshop/internal/pkg/keylock"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"sweetshop/internal/api/inventory"
	"sweetshop/internal/api/router"
	"sweetshop/internal/api/sweet"
	"sweetshop/internal/api/user"
	"sweetshop/internal/repository/sweetrepo"
	"sweetshop/internal/repository/userrepo"
	"sweetshop/internal/service/catalogservice"
	"sweetshop/internal/service/inventoryservice"
	"sweetshop/internal/service/managementservice"
	"sweetshop/internal/service/userservice"
)

// @title SweetShop API
// @version 1.0
// @description API de inventário da loja de doces: catálogo, compras e reposição de estoque.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço SweetShop...")
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	if syncer, ok := appLog.(interface{ Sync() error }); ok {
		defer syncer.Sync()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	sqlDB, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer sqlDB.Close()
	db := database.WrapSQLX(sqlDB)
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Redis (contadores do rate limiting). Falha no PING não é fatal:
	// o rate limiter libera as requisições enquanto o Redis estiver fora.
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		appLog.Warn("Redis indisponível no momento; rate limiting em modo fail-open.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		appLog.Info("Conexão Redis estabelecida.", nil)
	}
	defer redisClient.Close()
	var cacheClient cache.Client = redisClient

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	sweetRepo := sweetrepo.NewSweetRepository(db, cfg.DBTimeout, appLog)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)

	// B. Serviços. Inventário e gestão compartilham os locks por ID de doce.
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	locks := keylock.New()
	inventorySvc := inventoryservice.NewService(sweetRepo, locks, appLog)
	managementSvc := managementservice.NewService(sweetRepo, locks, appLog)
	catalogSvc := catalogservice.NewService(sweetRepo, appLog)
	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userSvc.EnsureAdmin(bootstrapCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		appLog.Error("Falha ao garantir a conta de administrador.", err)
	}
	cancelBootstrap()

	// C. Handlers
	handlers := router.Handlers{
		Sweet:     sweet.NewHandler(catalogSvc, managementSvc, appLog),
		Inventory: inventory.NewHandler(inventorySvc, appLog),
		User:      user.NewHandler(userSvc, appLog),
	}
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, tokenSvc, cacheClient, router.Options{
		AllowedOrigin:   cfg.CORSAllowedOrigin,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
	}, appLog)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor SweetShop ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
