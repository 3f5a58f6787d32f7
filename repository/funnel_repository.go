package repository

import (
	"github.com/GGlistano/repo2/models"
	"gorm.io/gorm"
)

// FunnelRepository abstrai o armazenamento de funis
type FunnelRepository interface {
	GetBySlug(slug string) (*models.Funnel, error)
	Create(funnel *models.Funnel) error
	List() ([]models.Funnel, error)
}

// GormFunnelRepository implementa FunnelRepository sobre o gorm
type GormFunnelRepository struct {
	db *gorm.DB
}

// NewGormFunnelRepository cria uma nova instância de GormFunnelRepository
func NewGormFunnelRepository(db *gorm.DB) *GormFunnelRepository {
	return &GormFunnelRepository{db: db}
}

// GetBySlug procura um funil pelo slug (igualdade exacta)
func (r *GormFunnelRepository) GetBySlug(slug string) (*models.Funnel, error) {
	var funnel models.Funnel
	if err := r.db.Where("slug = ?", slug).First(&funnel).Error; err != nil {
		return nil, err
	}
	return &funnel, nil
}

// Create cria um novo funil
func (r *GormFunnelRepository) Create(funnel *models.Funnel) error {
	return r.db.Create(funnel).Error
}

// List devolve todos os funis
func (r *GormFunnelRepository) List() ([]models.Funnel, error) {
	var funnels []models.Funnel
	if err := r.db.Order("created_at ASC").Find(&funnels).Error; err != nil {
		return nil, err
	}
	return funnels, nil
}
