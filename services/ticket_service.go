package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/repository"
	"github.com/GGlistano/repo2/utils"
	"github.com/go-playground/validator/v10"
)

// Erros de negócio do emissor de tickets. As mensagens são o contrato
// devolvido ao formulário, tal como o front-end as apresenta.
var (
	ErrFunnelSlugRequired = errors.New("funnel_slug é obrigatório")
	ErrFunnelNotFound     = errors.New("Funil não encontrado")
	ErrTicketCreate       = errors.New("Erro ao criar ticket")
)

// DefaultExpirationHours é a validade aplicada quando o pedido não
// indica expiration_hours
const DefaultExpirationHours = 24

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CreateTicketDTO representa o pedido de criação de um ticket
type CreateTicketDTO struct {
	FunnelSlug      string          `json:"funnel_slug" validate:"required"`
	LeadData        json.RawMessage `json:"lead_data"`
	ExpirationHours int             `json:"expiration_hours"`
}

// TicketResult representa o resultado da criação de um ticket
type TicketResult struct {
	TicketCode string    `json:"ticket_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// TicketService emite tickets de passagem de leads para o chat
type TicketService struct {
	funnels      repository.FunnelRepository
	tickets      repository.TicketRepository
	validator    *validator.Validate
	email        *EmailService
	defaultHours int
}

// NewTicketService cria uma nova instância de TicketService.
// defaultHours é a validade aplicada quando o pedido não indica
// expiration_hours; valores não positivos caem em DefaultExpirationHours.
func NewTicketService(funnels repository.FunnelRepository, tickets repository.TicketRepository, email *EmailService, defaultHours int) *TicketService {
	if defaultHours <= 0 {
		defaultHours = DefaultExpirationHours
	}
	return &TicketService{
		funnels:      funnels,
		tickets:      tickets,
		validator:    validator.New(),
		email:        email,
		defaultHours: defaultHours,
	}
}

// Create valida o pedido, resolve o funil e persiste um novo ticket com
// estado "pending". Nunca escreve qualquer outro estado: o ciclo de vida
// posterior pertence ao sistema de agentes.
func (s *TicketService) Create(dto CreateTicketDTO) (*TicketResult, error) {
	if err := s.validator.Struct(dto); err != nil || strings.TrimSpace(dto.FunnelSlug) == "" {
		return nil, ErrFunnelSlugRequired
	}

	// Um funil desconhecido é o ramo de falha mais importante: nunca
	// emitimos ticket sem funil. Falhas na própria consulta recebem o
	// mesmo tratamento.
	funnel, err := s.funnels.GetBySlug(dto.FunnelSlug)
	if err != nil {
		return nil, ErrFunnelNotFound
	}

	hours := dto.ExpirationHours
	if hours <= 0 {
		hours = s.defaultHours
	}

	ticketCode := generateTicketCode()
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)

	ticket := &models.Ticket{
		TicketCode: ticketCode,
		FunnelID:   funnel.ID,
		LeadData:   []byte(dto.LeadData),
		Status:     models.TicketStatusPending,
		ExpiresAt:  expiresAt,
	}

	if err := s.tickets.Create(ticket); err != nil {
		utils.LogError("Erro ao criar ticket para o funil %s: %v", funnel.Slug, err)
		utils.GetMetrics().RecordTicketCreated(err)
		return nil, ErrTicketCreate
	}

	utils.GetMetrics().RecordTicketCreated(nil)

	// Notificação para a caixa dos agentes; falhas apenas são registadas
	if s.email != nil {
		go func() {
			if err := s.email.SendTicketNotification(funnel.Name, ticketCode, expiresAt); err != nil {
				log.Printf("Erro ao enviar notificação do ticket %s: %v", ticketCode, err)
			}
		}()
	}

	return &TicketResult{
		TicketCode: ticketCode,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetByCode devolve um ticket pelo código
func (s *TicketService) GetByCode(code string) (*models.Ticket, error) {
	return s.tickets.GetByCode(code)
}

// ListByFunnelSlug devolve os tickets de um funil
func (s *TicketService) ListByFunnelSlug(slug string) ([]models.Ticket, error) {
	funnel, err := s.funnels.GetBySlug(slug)
	if err != nil {
		return nil, ErrFunnelNotFound
	}
	return s.tickets.ListByFunnelID(funnel.ID)
}

// generateTicketCode gera um código com componente temporal e sufixo
// aleatório em maiúsculas. A unicidade é probabilística; o índice único
// na tabela é a salvaguarda final.
func generateTicketCode() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return fmt.Sprintf("PED-%d-%s", time.Now().UnixMilli(), suffix)
}
