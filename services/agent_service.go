package services

import (
	"errors"

	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials é devolvido quando o par email/palavra-passe
// não corresponde a nenhum agente
var ErrInvalidCredentials = errors.New("Credenciais inválidas")

// AgentService gere as contas de agentes do back-office
type AgentService struct {
	agents repository.AgentRepository
}

// NewAgentService cria uma nova instância de AgentService
func NewAgentService(agents repository.AgentRepository) *AgentService {
	return &AgentService{agents: agents}
}

// Authenticate verifica as credenciais de um agente
func (s *AgentService) Authenticate(email, password string) (*models.Agent, error) {
	agent, err := s.agents.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return agent, nil
}

// Create regista uma nova conta de agente com a palavra-passe cifrada
func (s *AgentService) Create(name, email, password string) (*models.Agent, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("erro ao cifrar a palavra-passe")
	}

	agent := &models.Agent{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.agents.Create(agent); err != nil {
		return nil, errors.New("erro ao criar a conta de agente")
	}

	return agent, nil
}
