package models

import (
	"gorm.io/gorm"
)

// Funnel representa uma campanha de captação de leads, identificada por slug
type Funnel struct {
	gorm.Model
	Name    string   `gorm:"not null;size:100" json:"name"`
	Slug    string   `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Tickets []Ticket `gorm:"foreignKey:FunnelID" json:"-"`
}

// TableName devolve o nome da tabela para o modelo Funnel
func (Funnel) TableName() string {
	return "funnels"
}
