package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/GGlistano/repo2/models"
)

// ErrSubmissionInProgress é devolvido quando já existe um envio em
// curso. O formulário mantém no máximo um pedido em voo de cada vez.
var ErrSubmissionInProgress = errors.New("já existe um envio em andamento")

// Config contém os parâmetros do cliente do emissor de tickets.
// A chave de serviço deve viver do lado do servidor que embrulha este
// cliente, nunca em código entregue ao navegador.
type Config struct {
	URL         string
	Key         string
	FunnelSlug  string
	ChatBaseURL string
}

// TicketResponse é a resposta do emissor de tickets
type TicketResponse struct {
	Success    bool      `json:"success"`
	TicketCode string    `json:"ticket_code"`
	ExpiresAt  time.Time `json:"expires_at"`
	Error      string    `json:"error"`
}

// createTicketRequest é o corpo enviado ao emissor
type createTicketRequest struct {
	FunnelSlug      string          `json:"funnel_slug"`
	LeadData        models.LeadData `json:"lead_data"`
	ExpirationHours int             `json:"expiration_hours"`
}

// Client fala com o emissor de tickets e constrói o URL de passagem
// para o chat
type Client struct {
	cfg  Config
	http *http.Client

	mu         sync.Mutex
	submitting bool
}

// New cria um novo cliente do emissor de tickets.
// Sem timeout explícito: em caso de bloqueio da rede aplica-se o
// comportamento padrão do http.Client.
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// CreateTicket envia o pedido de criação de ticket ao emissor
func (c *Client) CreateTicket(lead models.LeadData, expirationHours int) (*TicketResponse, error) {
	body, err := json.Marshal(createTicketRequest{
		FunnelSlug:      c.cfg.FunnelSlug,
		LeadData:        lead,
		ExpirationHours: expirationHours,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o pedido: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar o pedido: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Key)
	req.Header.Set("Apikey", c.cfg.Key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar com o emissor: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// tentamos extrair a mensagem do envelope antes de cair no
		// erro HTTP genérico
		var envelope TicketResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			return nil, errors.New(envelope.Error)
		}
		return nil, fmt.Errorf("Erro HTTP: %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var result TicketResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %v", err)
	}

	return &result, nil
}

// Submit envia o lead e devolve o URL do chat para onde redireccionar.
// Recusa um segundo envio enquanto um está pendente; não há novas
// tentativas automáticas — uma falha volta ao utilizador, que reenvia
// manualmente.
func (c *Client) Submit(lead models.LeadData, expirationHours int) (string, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return "", ErrSubmissionInProgress
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	result, err := c.CreateTicket(lead, expirationHours)
	if err != nil {
		return "", err
	}

	if !result.Success || result.TicketCode == "" {
		message := result.Error
		if message == "" {
			message = "Resposta da API não contém ticket_code válido"
		}
		return "", errors.New(message)
	}

	return c.ChatURL(result.TicketCode), nil
}

// ChatURL constrói o URL de passagem para o chat. O emissor não sabe
// nada sobre este esquema de URL; a composição é só do cliente.
func (c *Client) ChatURL(ticketCode string) string {
	return fmt.Sprintf("%schat/%s?ticket=%s",
		c.cfg.ChatBaseURL,
		c.cfg.FunnelSlug,
		url.QueryEscape(ticketCode),
	)
}
