package repository

import (
	"github.com/GGlistano/repo2/models"
	"gorm.io/gorm"
)

// TicketRepository abstrai o armazenamento de tickets.
// Este sistema apenas cria e lê tickets; transições de estado pertencem
// ao sistema de agentes a jusante.
type TicketRepository interface {
	Create(ticket *models.Ticket) error
	GetByCode(code string) (*models.Ticket, error)
	ListByFunnelID(funnelID uint) ([]models.Ticket, error)
	CountPendingByFunnel() (map[uint]int64, error)
}

// GormTicketRepository implementa TicketRepository sobre o gorm
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository cria uma nova instância de GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Create cria um novo ticket
func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// GetByCode procura um ticket pelo código
func (r *GormTicketRepository) GetByCode(code string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Preload("Funnel").Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListByFunnelID devolve os tickets de um funil, mais recentes primeiro
func (r *GormTicketRepository) ListByFunnelID(funnelID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Where("funnel_id = ?", funnelID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// CountPendingByFunnel conta os tickets pendentes agrupados por funil
func (r *GormTicketRepository) CountPendingByFunnel() (map[uint]int64, error) {
	type row struct {
		FunnelID uint
		Total    int64
	}
	var rows []row
	if err := r.db.Model(&models.Ticket{}).
		Select("funnel_id, count(*) as total").
		Where("status = ?", models.TicketStatusPending).
		Group("funnel_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.FunnelID] = r.Total
	}
	return counts, nil
}
