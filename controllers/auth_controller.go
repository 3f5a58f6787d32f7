package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/GGlistano/repo2/config"
	"github.com/GGlistano/repo2/services"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// AuthController trata a autenticação dos agentes do back-office
type AuthController struct {
	agentService *services.AgentService
	validate     *validator.Validate
	config       *config.Config
}

// SignInRequest representa o pedido de autenticação
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Claims representa as claims do token JWT de um agente
type Claims struct {
	AgentID uint   `json:"agent_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AuthResponse representa a resposta de autenticação
type AuthResponse struct {
	Token string `json:"token"`
	Agent struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"agent"`
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(agentService *services.AgentService, cfg *config.Config) *AuthController {
	return &AuthController{
		agentService: agentService,
		validate:     validator.New(),
		config:       cfg,
	}
}

// GetJWTKey devolve a chave de assinatura dos tokens
func (c *AuthController) GetJWTKey() string {
	return c.config.JWT.SecretKey
}

// SignIn trata a autenticação de um agente
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Corpo do pedido inválido", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		http.Error(w, "Email ou palavra-passe em formato inválido", http.StatusBadRequest)
		return
	}

	agent, err := c.agentService.Authenticate(req.Email, req.Password)
	if err != nil {
		http.Error(w, services.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	// Emitimos o token JWT
	expiresAt := time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)
	claims := &Claims{
		AgentID: agent.ID,
		Email:   agent.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.config.JWT.SecretKey))
	if err != nil {
		http.Error(w, "Erro ao emitir o token", http.StatusInternalServerError)
		return
	}

	response := AuthResponse{Token: tokenString}
	response.Agent.ID = agent.ID
	response.Agent.Name = agent.Name
	response.Agent.Email = agent.Email

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
