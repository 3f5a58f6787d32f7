package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/GGlistano/repo2/middleware"
	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/repository"
	"github.com/GGlistano/repo2/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServiceToken = "token-de-servico-de-teste"

type ticketTestEnv struct {
	server  *httptest.Server
	tickets *repository.MemoryTicketRepository
}

// newTicketTestEnv monta o endpoint com a mesma pilha de middleware do
// arranque real: Recovery, CORS e autenticação por token de serviço
func newTicketTestEnv(t *testing.T) *ticketTestEnv {
	t.Helper()

	funnels := repository.NewMemoryFunnelRepository()
	tickets := repository.NewMemoryTicketRepository()
	require.NoError(t, funnels.Create(&models.Funnel{Name: "Empréstimo", Slug: "emprestimo"}))

	ticketService := services.NewTicketService(funnels, tickets, nil, services.DefaultExpirationHours)
	controller := NewTicketController(ticketService)

	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)

	serviceAuth := middleware.ServiceAuth(testServiceToken)
	router.Handle("/functions/v1/create-ticket", serviceAuth(http.HandlerFunc(controller.CreateTicket))).Methods("POST", "OPTIONS")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &ticketTestEnv{server: server, tickets: tickets}
}

func (e *ticketTestEnv) post(t *testing.T, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/functions/v1/create-ticket", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testServiceToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) createTicketResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope createTicketResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestCreateTicketEndpointSucesso(t *testing.T) {
	env := newTicketTestEnv(t)

	resp := env.post(t, `{"funnel_slug":"emprestimo","lead_data":{"nome":"Ana Macuácua","contacto":"841234567"}}`)
	envelope := decodeEnvelope(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	assert.Regexp(t, regexp.MustCompile(`^PED-\d+-[A-Z0-9]{6}$`), envelope.TicketCode)
	require.NotNil(t, envelope.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *envelope.ExpiresAt, time.Minute)
	assert.Empty(t, envelope.Error)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCreateTicketEndpointSlugEmFalta(t *testing.T) {
	env := newTicketTestEnv(t)

	for _, body := range []string{`{}`, `{"funnel_slug":""}`, `{"funnel_slug":"   "}`, `corpo inválido`} {
		resp := env.post(t, body)
		envelope := decodeEnvelope(t, resp)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "corpo: %s", body)
		assert.False(t, envelope.Success)
		assert.Equal(t, "funnel_slug é obrigatório", envelope.Error)
		assert.Empty(t, envelope.TicketCode)
	}

	assert.Empty(t, env.tickets.All(), "nenhum ticket deve ser persistido em pedidos inválidos")
}

func TestCreateTicketEndpointFunilDesconhecido(t *testing.T) {
	env := newTicketTestEnv(t)

	resp := env.post(t, `{"funnel_slug":"inexistente"}`)
	envelope := decodeEnvelope(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Funil não encontrado", envelope.Error)
	assert.Empty(t, env.tickets.All())
}

func TestCreateTicketEndpointFalhaDePersistencia(t *testing.T) {
	env := newTicketTestEnv(t)
	env.tickets.FailCreate = true

	resp := env.post(t, `{"funnel_slug":"emprestimo"}`)
	envelope := decodeEnvelope(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Erro ao criar ticket", envelope.Error)
}

func TestCreateTicketEndpointPreflight(t *testing.T) {
	env := newTicketTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, env.server.URL+"/functions/v1/create-ticket", nil)
	require.NoError(t, err)

	// preflight sem credenciais: o CORS responde antes da autenticação
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Client-Info, Apikey", resp.Header.Get("Access-Control-Allow-Headers"))

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "o preflight responde com corpo vazio")
}

func TestCreateTicketEndpointTokenInvalido(t *testing.T) {
	env := newTicketTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/functions/v1/create-ticket", bytes.NewBufferString(`{"funnel_slug":"emprestimo"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token-errado")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.tickets.All())
}

func TestCreateTicketEndpointTokenPorApikey(t *testing.T) {
	env := newTicketTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/functions/v1/create-ticket", bytes.NewBufferString(`{"funnel_slug":"emprestimo"}`))
	require.NoError(t, err)
	req.Header.Set("Apikey", testServiceToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
}
