package database

import (
	"errors"
	"log"

	"github.com/GGlistano/repo2/config"
	"github.com/GGlistano/repo2/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed garante os registos mínimos de arranque: o funil padrão e,
// quando configurada, uma conta de agente inicial.
func Seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedDefaultFunnel(db, cfg); err != nil {
		return err
	}
	return seedBootstrapAgent(db, cfg)
}

// seedDefaultFunnel cria o funil padrão se ainda não existir
func seedDefaultFunnel(db *gorm.DB, cfg *config.Config) error {
	var funnel models.Funnel
	err := db.Where("slug = ?", cfg.DefaultFunnelSlug).First(&funnel).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	funnel = models.Funnel{
		Name: "Empréstimo",
		Slug: cfg.DefaultFunnelSlug,
	}
	if err := db.Create(&funnel).Error; err != nil {
		return err
	}
	log.Printf("Funil padrão %q criado", funnel.Slug)
	return nil
}

// seedBootstrapAgent cria a conta de agente inicial quando a tabela
// está vazia e as credenciais foram configuradas
func seedBootstrapAgent(db *gorm.DB, cfg *config.Config) error {
	if cfg.BootstrapAgentEmail == "" || cfg.BootstrapAgentPassword == "" {
		return nil
	}

	var total int64
	if err := db.Model(&models.Agent{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAgentPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	agent := models.Agent{
		Name:     "Agente",
		Email:    cfg.BootstrapAgentEmail,
		Password: string(hash),
	}
	if err := db.Create(&agent).Error; err != nil {
		return err
	}
	log.Printf("Conta de agente inicial %q criada", agent.Email)
	return nil
}
