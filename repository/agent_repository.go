package repository

import (
	"github.com/GGlistano/repo2/models"
	"gorm.io/gorm"
)

// AgentRepository abstrai o armazenamento de contas de agentes
type AgentRepository interface {
	GetByEmail(email string) (*models.Agent, error)
	Create(agent *models.Agent) error
	Count() (int64, error)
}

// GormAgentRepository implementa AgentRepository sobre o gorm
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository cria uma nova instância de GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// GetByEmail procura um agente pelo email
func (r *GormAgentRepository) GetByEmail(email string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.Where("email = ?", email).First(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// Create cria uma nova conta de agente
func (r *GormAgentRepository) Create(agent *models.Agent) error {
	return r.db.Create(agent).Error
}

// Count devolve o número de agentes registados
func (r *GormAgentRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Agent{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
