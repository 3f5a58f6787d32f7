package client

import (
	"encoding/json"
	"testing"

	"github.com/GGlistano/repo2/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preenchido() FormState {
	return NewFormState().
		WithField("fullName", "Ana Macuácua").
		WithField("phoneNumber", "841234567").
		WithField("password", "segredo1").
		WithField("confirmPassword", "segredo1")
}

func TestFormStateComecaNoPrimeiroPasso(t *testing.T) {
	state := NewFormState()
	assert.Equal(t, StepCredentials, state.Step)
}

func TestNextValidaCredenciais(t *testing.T) {
	state := NewFormState()

	next, errs := state.Next()

	assert.Equal(t, StepCredentials, next.Step, "com erros o passo não avança")
	assert.Equal(t, "O nome completo é obrigatório", errs["fullName"])
	assert.Equal(t, "O número de telefone é obrigatório", errs["phoneNumber"])
	assert.Equal(t, "A palavra-passe deve ter no mínimo 6 caracteres", errs["password"])
}

func TestNextValidaPalavraPasse(t *testing.T) {
	state := preenchido().
		WithField("password", "12345").
		WithField("confirmPassword", "12345")

	_, errs := state.Next()
	assert.Equal(t, "A palavra-passe deve ter no mínimo 6 caracteres", errs["password"])

	state = preenchido().WithField("confirmPassword", "diferente")
	_, errs = state.Next()
	assert.Equal(t, "As palavras-passe não coincidem", errs["confirmPassword"])
}

func TestNextAvancaQuandoValido(t *testing.T) {
	state := preenchido()

	next, errs := state.Next()
	assert.Nil(t, errs)
	assert.Equal(t, StepAddress, next.Step)

	// o passo de morada não tem campos obrigatórios
	next, errs = next.Next()
	assert.Nil(t, errs)
	assert.Equal(t, StepLoan, next.Step)

	_, errs = next.Next()
	assert.Equal(t, "O montante do empréstimo é obrigatório", errs["loanAmount"])

	next = next.WithField("loanAmount", "20000")
	next, errs = next.Next()
	assert.Nil(t, errs)
	assert.Equal(t, StepConfirm, next.Step)

	// no último passo o Next não passa além do fim
	next, _ = next.Next()
	assert.Equal(t, StepConfirm, next.Step)
}

func TestBackNaoRecuaAlemDoPrimeiroPasso(t *testing.T) {
	state := NewFormState()
	assert.Equal(t, StepCredentials, state.Back().Step)

	avancado, _ := preenchido().Next()
	assert.Equal(t, StepCredentials, avancado.Back().Step)
}

func TestFormStateImutavel(t *testing.T) {
	original := NewFormState()

	alterado := original.WithField("fullName", "Ana Macuácua")

	assert.Empty(t, original.FullName, "o estado original nunca muda")
	assert.Equal(t, "Ana Macuácua", alterado.FullName)

	_, _ = preenchido().Next()
	assert.Equal(t, StepCredentials, original.Step)
}

func TestBuildLeadDataSemPalavraPasse(t *testing.T) {
	quotes := services.NewQuoteService()
	quote := quotes.ComputeQuote("20000")
	require.NotNil(t, quote)

	state := preenchido().
		WithField("province", "Maputo").
		WithField("neighborhood", "Polana").
		WithField("block", "12").
		WithField("houseNumber", "34").
		WithField("workSector", "Comércio").
		WithField("loanAmount", "20000")

	lead := BuildLeadData(state, quote, quotes)

	assert.Equal(t, "Ana Macuácua", lead.Nome)
	assert.Equal(t, "841234567", lead.Contacto)
	assert.Equal(t, "Maputo", lead.Provincia)
	assert.Equal(t, "Mensal", lead.FormaPagamento)
	assert.Equal(t, "2.5%", lead.JurosMensais)
	assert.Equal(t, "12 meses", lead.Prazo)
	assert.Contains(t, lead.ParcelaEstimada, "MT/mês")

	payload, err := json.Marshal(lead)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "segredo1", "a palavra-passe nunca entra no payload")
	assert.NotContains(t, string(payload), "password")
}

func TestBuildLeadDataSemSimulacao(t *testing.T) {
	quotes := services.NewQuoteService()

	lead := BuildLeadData(preenchido(), nil, quotes)

	assert.Empty(t, lead.ValorSolicitado)
	assert.Empty(t, lead.ParcelaEstimada)
	assert.Equal(t, "Mensal", lead.FormaPagamento)
}
