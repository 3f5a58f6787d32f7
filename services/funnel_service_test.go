package services

import (
	"testing"

	"github.com/GGlistano/repo2/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFunnelNormalizaOSlug(t *testing.T) {
	service := NewFunnelService(repository.NewMemoryFunnelRepository())

	funnel, err := service.Create(CreateFunnelDTO{Name: "  Empréstimo Rápido  ", Slug: "Empréstimo Rápido"})

	require.NoError(t, err)
	assert.Equal(t, "Empréstimo Rápido", funnel.Name)
	assert.Equal(t, "empréstimo-rápido", funnel.Slug)
}

func TestCreateFunnelValidaOsCampos(t *testing.T) {
	service := NewFunnelService(repository.NewMemoryFunnelRepository())

	_, err := service.Create(CreateFunnelDTO{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "o campo Name é obrigatório")
	assert.Contains(t, err.Error(), "o campo Slug é obrigatório")

	_, err = service.Create(CreateFunnelDTO{Name: "E", Slug: "e"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mínimo 2 caracteres")
}

func TestCreateFunnelSlugDuplicado(t *testing.T) {
	service := NewFunnelService(repository.NewMemoryFunnelRepository())

	_, err := service.Create(CreateFunnelDTO{Name: "Empréstimo", Slug: "emprestimo"})
	require.NoError(t, err)

	_, err = service.Create(CreateFunnelDTO{Name: "Outro", Slug: "emprestimo"})
	require.Error(t, err)
	assert.Equal(t, "erro ao criar o funil", err.Error())
}

func TestGetBySlugNaoEncontrado(t *testing.T) {
	service := NewFunnelService(repository.NewMemoryFunnelRepository())

	_, err := service.GetBySlug("inexistente")
	assert.ErrorIs(t, err, ErrFunnelNotFound)
}

func TestAgentAuthenticate(t *testing.T) {
	agents := repository.NewMemoryAgentRepository()
	service := NewAgentService(agents)

	created, err := service.Create("Carlos Mabote", "carlos@exemplo.co.mz", "segredo-forte")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo-forte", created.Password, "a palavra-passe fica cifrada")

	agent, err := service.Authenticate("carlos@exemplo.co.mz", "segredo-forte")
	require.NoError(t, err)
	assert.Equal(t, created.ID, agent.ID)

	_, err = service.Authenticate("carlos@exemplo.co.mz", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Authenticate("ninguem@exemplo.co.mz", "segredo-forte")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
