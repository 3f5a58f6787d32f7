package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Agent representa uma conta de agente do back-office
type Agent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;size:100"`
	Email     string    `gorm:"column:email;unique;not null;size:100;index"`
	Password  string    `gorm:"column:password;not null;size:100"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Agent) TableName() string {
	return "agents"
}

// BeforeCreate valida os campos antes da criação
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if len(a.Name) < 2 || len(a.Name) > 100 {
		return errors.New("o nome deve ter entre 2 e 100 caracteres")
	}
	if len(a.Email) < 3 || len(a.Email) > 100 {
		return errors.New("o email deve ter entre 3 e 100 caracteres")
	}
	return nil
}
