package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GGlistano/repo2/services"
	"github.com/GGlistano/repo2/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// FunnelController trata os pedidos de administração de funis e a
// consulta de tickets pelos agentes. Os tickets são apenas de leitura:
// as transições de estado pertencem ao sistema de chat.
type FunnelController struct {
	funnelService *services.FunnelService
	ticketService *services.TicketService
}

// NewFunnelController cria uma nova instância de FunnelController
func NewFunnelController(funnelService *services.FunnelService, ticketService *services.TicketService) *FunnelController {
	return &FunnelController{
		funnelService: funnelService,
		ticketService: ticketService,
	}
}

// CreateFunnel trata o pedido de criação de um funil
func (c *FunnelController) CreateFunnel(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateFunnelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Corpo do pedido inválido", http.StatusBadRequest)
		return
	}

	funnel, err := c.funnelService.Create(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(funnel)
}

// ListFunnels devolve todos os funis
func (c *FunnelController) ListFunnels(w http.ResponseWriter, r *http.Request) {
	funnels, err := c.funnelService.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(funnels)
}

// ListTickets devolve os tickets de um funil
func (c *FunnelController) ListTickets(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tickets, err := c.ticketService.ListByFunnelSlug(vars["slug"])
	if err != nil {
		if errors.Is(err, services.ErrFunnelNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tickets)
}

// GetTicket devolve um ticket pelo código
func (c *FunnelController) GetTicket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ticket, err := c.ticketService.GetByCode(vars["code"])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Ticket não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao consultar o ticket", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ticket)
}

// GetMetrics devolve a fotografia das métricas da aplicação
func (c *FunnelController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(utils.GetMetrics().GetMetricsSnapshot())
}
