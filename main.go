package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/GGlistano/repo2/config"
	"github.com/GGlistano/repo2/controllers"
	"github.com/GGlistano/repo2/database"
	"github.com/GGlistano/repo2/middleware"
	"github.com/GGlistano/repo2/repository"
	"github.com/GGlistano/repo2/services"
	"github.com/GGlistano/repo2/utils"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// initReportService arranca o relatório periódico de tickets pendentes
func initReportService(funnels repository.FunnelRepository, tickets repository.TicketRepository, email *services.EmailService) {
	report := services.NewReportService(funnels, tickets, email, 1*time.Hour)
	report.Start()
	log.Println("Relatório de tickets pendentes arrancado")
}

func main() {
	// Carregamos o .env quando existe
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Ficheiro .env não encontrado, a usar variáveis de ambiente")
	}

	// Inicializamos a configuração
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Erro ao carregar a configuração: %v", err)
	}

	// Inicializamos a ligação à base de dados
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Erro na ligação à base de dados: %v", err)
	}

	// Registos mínimos de arranque
	if err := database.Seed(db, cfg); err != nil {
		log.Fatalf("Erro ao semear a base de dados: %v", err)
	}

	// Repositórios
	var funnelRepo repository.FunnelRepository = repository.NewGormFunnelRepository(db)
	ticketRepo := repository.NewGormTicketRepository(db)
	agentRepo := repository.NewGormAgentRepository(db)

	// Cache de funis em Redis, quando configurado
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		funnelRepo = repository.NewCachedFunnelRepository(funnelRepo, rdb, 5*time.Minute)
		log.Println("Cache de funis em Redis activo")
	}

	// Serviços
	emailService := services.NewEmailService(cfg)
	quoteService := services.NewQuoteService()
	ticketService := services.NewTicketService(funnelRepo, ticketRepo, emailService, cfg.TicketExpirationHours)
	funnelService := services.NewFunnelService(funnelRepo)
	agentService := services.NewAgentService(agentRepo)

	// Arrancamos o relatório de pendentes
	initReportService(funnelRepo, ticketRepo, emailService)

	// Criamos o router
	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.RequestID)
	router.Use(middleware.CORS)
	router.Use(middleware.Logging)

	limiter := utils.NewRateLimiter(100, time.Minute)
	router.Use(middleware.RateLimit(limiter, 100))

	// Inicializamos os controladores
	ticketController := controllers.NewTicketController(ticketService)
	quoteController := controllers.NewQuoteController(quoteService)
	funnelController := controllers.NewFunnelController(funnelService, ticketService)
	authController := controllers.NewAuthController(agentService, cfg)

	// Endpoint de criação de tickets, chamado pelo formulário.
	// OPTIONS é resolvido pelo middleware de CORS antes da autenticação.
	serviceAuth := middleware.ServiceAuth(cfg.ServiceToken)
	router.Handle("/functions/v1/create-ticket",
		serviceAuth(http.HandlerFunc(ticketController.CreateTicket))).
		Methods("POST", "OPTIONS")

	// Simulação pública
	router.HandleFunc("/api/quote", quoteController.GetQuote).Methods("GET", "OPTIONS")

	// Autenticação dos agentes
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST", "OPTIONS")

	// Rotas protegidas do back-office
	protected := router.PathPrefix("/api/admin").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))

	protected.HandleFunc("/funnels", funnelController.CreateFunnel).Methods("POST")
	protected.HandleFunc("/funnels", funnelController.ListFunnels).Methods("GET")
	protected.HandleFunc("/funnels/{slug}/tickets", funnelController.ListTickets).Methods("GET")
	protected.HandleFunc("/tickets/{code}", funnelController.GetTicket).Methods("GET")
	protected.HandleFunc("/metrics", funnelController.GetMetrics).Methods("GET")

	// Arrancamos o servidor
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor a escutar na porta %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Erro no arranque do servidor: %v", err)
	}
}
