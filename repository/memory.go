package repository

import (
	"errors"
	"sync"

	"github.com/GGlistano/repo2/models"
	"gorm.io/gorm"
)

// Implementações em memória, usadas nos testes e em execução local
// sem base de dados. Devolvem gorm.ErrRecordNotFound para manter o
// contrato das implementações gorm.

// MemoryFunnelRepository guarda funis em memória
type MemoryFunnelRepository struct {
	mu      sync.Mutex
	nextID  uint
	funnels []models.Funnel
}

// NewMemoryFunnelRepository cria um repositório de funis em memória
func NewMemoryFunnelRepository() *MemoryFunnelRepository {
	return &MemoryFunnelRepository{nextID: 1}
}

func (r *MemoryFunnelRepository) GetBySlug(slug string) (*models.Funnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.funnels {
		if r.funnels[i].Slug == slug {
			funnel := r.funnels[i]
			return &funnel, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryFunnelRepository) Create(funnel *models.Funnel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.funnels {
		if r.funnels[i].Slug == funnel.Slug {
			return errors.New("slug duplicado")
		}
	}
	funnel.ID = r.nextID
	r.nextID++
	r.funnels = append(r.funnels, *funnel)
	return nil
}

func (r *MemoryFunnelRepository) List() ([]models.Funnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Funnel, len(r.funnels))
	copy(out, r.funnels)
	return out, nil
}

// MemoryTicketRepository guarda tickets em memória
type MemoryTicketRepository struct {
	mu      sync.Mutex
	nextID  uint
	tickets []models.Ticket

	// FailCreate força o erro de inserção, para testes do ramo 500
	FailCreate bool
}

// NewMemoryTicketRepository cria um repositório de tickets em memória
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{nextID: 1}
}

func (r *MemoryTicketRepository) Create(ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreate {
		return errors.New("insert falhou")
	}
	// índice único sobre ticket_code, como na migração
	for i := range r.tickets {
		if r.tickets[i].TicketCode == ticket.TicketCode {
			return errors.New("ticket_code duplicado")
		}
	}
	ticket.ID = r.nextID
	r.nextID++
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *MemoryTicketRepository) GetByCode(code string) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].TicketCode == code {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryTicketRepository) ListByFunnelID(funnelID uint) ([]models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Ticket
	for i := len(r.tickets) - 1; i >= 0; i-- {
		if r.tickets[i].FunnelID == funnelID {
			out = append(out, r.tickets[i])
		}
	}
	return out, nil
}

func (r *MemoryTicketRepository) CountPendingByFunnel() (map[uint]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint]int64)
	for i := range r.tickets {
		if r.tickets[i].Status == models.TicketStatusPending {
			counts[r.tickets[i].FunnelID]++
		}
	}
	return counts, nil
}

// All devolve uma cópia de todos os tickets guardados
func (r *MemoryTicketRepository) All() []models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out
}

// MemoryAgentRepository guarda agentes em memória
type MemoryAgentRepository struct {
	mu     sync.Mutex
	nextID uint
	agents []models.Agent
}

// NewMemoryAgentRepository cria um repositório de agentes em memória
func NewMemoryAgentRepository() *MemoryAgentRepository {
	return &MemoryAgentRepository{nextID: 1}
}

func (r *MemoryAgentRepository) GetByEmail(email string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.agents {
		if r.agents[i].Email == email {
			agent := r.agents[i]
			return &agent, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryAgentRepository) Create(agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.agents {
		if r.agents[i].Email == agent.Email {
			return errors.New("email duplicado")
		}
	}
	agent.ID = r.nextID
	r.nextID++
	r.agents = append(r.agents, *agent)
	return nil
}

func (r *MemoryAgentRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.agents)), nil
}
