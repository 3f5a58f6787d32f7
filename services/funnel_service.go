package services

import (
	"errors"
	"strings"

	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/repository"
	"github.com/go-playground/validator/v10"
)

// CreateFunnelDTO representa os dados para criar um funil
type CreateFunnelDTO struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Slug string `json:"slug" validate:"required,min=2,max=100"`
}

// FunnelService gere os funis de captação
type FunnelService struct {
	funnels   repository.FunnelRepository
	validator *validator.Validate
}

// NewFunnelService cria uma nova instância de FunnelService
func NewFunnelService(funnels repository.FunnelRepository) *FunnelService {
	return &FunnelService{
		funnels:   funnels,
		validator: validator.New(),
	}
}

// Create valida e cria um novo funil
func (s *FunnelService) Create(dto CreateFunnelDTO) (*models.Funnel, error) {
	if err := s.validator.Struct(dto); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "o campo "+e.Field()+" é obrigatório")
			case "min":
				errorMessages = append(errorMessages, "o campo "+e.Field()+" deve ter no mínimo "+e.Param()+" caracteres")
			case "max":
				errorMessages = append(errorMessages, "o campo "+e.Field()+" deve ter no máximo "+e.Param()+" caracteres")
			}
		}
		return nil, errors.New(strings.Join(errorMessages, "; "))
	}

	funnel := &models.Funnel{
		Name: strings.TrimSpace(dto.Name),
		Slug: normalizeSlug(dto.Slug),
	}

	if err := s.funnels.Create(funnel); err != nil {
		return nil, errors.New("erro ao criar o funil")
	}

	return funnel, nil
}

// List devolve todos os funis
func (s *FunnelService) List() ([]models.Funnel, error) {
	funnels, err := s.funnels.List()
	if err != nil {
		return nil, errors.New("erro ao listar os funis")
	}
	return funnels, nil
}

// GetBySlug devolve um funil pelo slug
func (s *FunnelService) GetBySlug(slug string) (*models.Funnel, error) {
	funnel, err := s.funnels.GetBySlug(slug)
	if err != nil {
		return nil, ErrFunnelNotFound
	}
	return funnel, nil
}

// normalizeSlug normaliza um slug: minúsculas, espaços por hífenes
func normalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	return strings.ReplaceAll(slug, " ", "-")
}
