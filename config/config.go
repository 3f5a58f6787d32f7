package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config representa a configuração da aplicação
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	Redis struct {
		Addr     string // vazio desativa o cache de funis
		Password string
		DB       int
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // em horas
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	// Token de serviço exigido no endpoint de criação de tickets
	// (cabeçalhos Authorization: Bearer e Apikey)
	ServiceToken string
	// Base do sistema de chat para onde o formulário redirecciona
	ChatBaseURL string
	// Slug do funil padrão criado pelo seeder
	DefaultFunnelSlug string
	// Validade padrão dos tickets, em horas
	TicketExpirationHours int
	// Destinatário das notificações de novos tickets (vazio desativa)
	AgentInbox string
	// Conta de agente criada pelo seeder quando a tabela está vazia
	BootstrapAgentEmail    string
	BootstrapAgentPassword string
}

// NewConfig cria uma nova instância de configuração
func NewConfig() (*Config, error) {
	cfg := &Config{}

	// Configurações do servidor
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido da porta do servidor: %v", err)
	}
	cfg.Server.Port = port

	// Configurações da base de dados
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido da porta da base de dados: %v", err)
	}
	cfg.DB.Port = dbPort
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "funnel_db")

	// Configurações do Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido do índice do Redis: %v", err)
	}
	cfg.Redis.DB = redisDB

	// Configurações JWT
	cfg.JWT.SecretKey = getEnv("JWT_SECRET_KEY", "your-secret-key-here")
	jwtExpiresIn, err := strconv.Atoi(getEnv("JWT_EXPIRES_IN", "24"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido do tempo de vida do JWT: %v", err)
	}
	cfg.JWT.ExpiresIn = jwtExpiresIn

	// Configurações SMTP
	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido da porta SMTP: %v", err)
	}
	cfg.SMTP.Port = smtpPort
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "your-email@gmail.com")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "your-app-password")
	cfg.SMTP.From = getEnv("SMTP_FROM", "your-email@gmail.com")

	// Configurações do funil
	cfg.ServiceToken = getEnv("SERVICE_TOKEN", "your-service-token-here")
	cfg.ChatBaseURL = getEnv("CHAT_BASE_URL", "https://chat.txenecamoz.online/")
	cfg.DefaultFunnelSlug = getEnv("DEFAULT_FUNNEL_SLUG", "emprestimo")
	expiration, err := strconv.Atoi(getEnv("TICKET_EXPIRATION_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("formato inválido da validade dos tickets: %v", err)
	}
	cfg.TicketExpirationHours = expiration
	cfg.AgentInbox = getEnv("AGENT_INBOX", "")
	cfg.BootstrapAgentEmail = getEnv("BOOTSTRAP_AGENT_EMAIL", "")
	cfg.BootstrapAgentPassword = getEnv("BOOTSTRAP_AGENT_PASSWORD", "")

	return cfg, nil
}

// getEnv obtém o valor de uma variável de ambiente ou devolve o valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
