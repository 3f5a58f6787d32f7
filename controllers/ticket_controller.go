package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GGlistano/repo2/services"
	"github.com/GGlistano/repo2/utils"
)

// TicketController trata os pedidos de criação de tickets vindos do
// formulário do funil
type TicketController struct {
	ticketService *services.TicketService
}

// NewTicketController cria uma nova instância de TicketController
func NewTicketController(ticketService *services.TicketService) *TicketController {
	return &TicketController{ticketService: ticketService}
}

// createTicketResponse é o envelope de resposta do endpoint
type createTicketResponse struct {
	Success    bool       `json:"success"`
	TicketCode string     `json:"ticket_code,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// CreateTicket trata o pedido de criação de um ticket.
// O contrato de resposta é fixo: 400 para slug em falta, 404 para funil
// desconhecido, 500 para falha de persistência ou inesperada, 200 com
// {ticket_code, expires_at} em sucesso. A construção do URL do chat é
// responsabilidade exclusiva do chamador.
func (c *TicketController) CreateTicket(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var dto services.CreateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, http.StatusBadRequest, services.ErrFunnelSlugRequired.Error())
		return
	}

	result, err := c.ticketService.Create(dto)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFunnelSlugRequired):
			c.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrFunnelNotFound):
			c.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrTicketCreate):
			c.writeError(w, http.StatusInternalServerError, err.Error())
		default:
			message := err.Error()
			if message == "" {
				message = "Erro desconhecido"
			}
			c.writeError(w, http.StatusInternalServerError, message)
		}
		utils.LogOperation("create-ticket", start, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(createTicketResponse{
		Success:    true,
		TicketCode: result.TicketCode,
		ExpiresAt:  &result.ExpiresAt,
	})
	utils.LogOperation("create-ticket", start, nil)
}

// writeError escreve o envelope de erro com o estado indicado
func (c *TicketController) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(createTicketResponse{
		Success: false,
		Error:   message,
	})
}
