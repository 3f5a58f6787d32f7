package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TicketStatus representa o estado de um ticket
type TicketStatus string

const (
	// TicketStatusPending é o único estado escrito por este sistema;
	// os restantes pertencem ao sistema de chat/agentes a jusante.
	TicketStatusPending TicketStatus = "pending"
	TicketStatusActive  TicketStatus = "active"
	TicketStatusClosed  TicketStatus = "closed"
	TicketStatusExpired TicketStatus = "expired"
)

// Ticket representa o registo de passagem de um lead para o chat
type Ticket struct {
	gorm.Model
	TicketCode string         `gorm:"uniqueIndex;not null;size:40" json:"ticket_code"`
	FunnelID   uint           `gorm:"not null;index" json:"funnel_id"`
	Funnel     Funnel         `gorm:"foreignKey:FunnelID" json:"-"`
	LeadData   datatypes.JSON `gorm:"type:jsonb" json:"lead_data"` // payload opaco, nunca interpretado
	Status     TicketStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ExpiresAt  time.Time      `gorm:"not null" json:"expires_at"`
}

// TableName devolve o nome da tabela para o modelo Ticket
func (Ticket) TableName() string {
	return "tickets"
}
