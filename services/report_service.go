package services

import (
	"fmt"
	"log"
	"time"

	"github.com/GGlistano/repo2/repository"
	"github.com/GGlistano/repo2/utils"
)

// ReportService acompanha periodicamente os tickets pendentes por funil.
// É estritamente de leitura: nunca altera o estado de um ticket — isso
// pertence ao sistema de agentes a jusante.
type ReportService struct {
	funnels  repository.FunnelRepository
	tickets  repository.TicketRepository
	email    *EmailService
	interval time.Duration
}

// NewReportService cria uma nova instância de ReportService
func NewReportService(funnels repository.FunnelRepository, tickets repository.TicketRepository, email *EmailService, interval time.Duration) *ReportService {
	return &ReportService{
		funnels:  funnels,
		tickets:  tickets,
		email:    email,
		interval: interval,
	}
}

// Start arranca o ciclo de relatório em segundo plano
func (s *ReportService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			if err := s.Process(); err != nil {
				log.Printf("Erro no relatório de tickets pendentes: %v", err)
			}
		}
	}()
}

// Process conta os pendentes, actualiza as métricas e, quando há email
// configurado, envia o resumo
func (s *ReportService) Process() error {
	counts, err := s.tickets.CountPendingByFunnel()
	if err != nil {
		return fmt.Errorf("erro ao contar tickets pendentes: %v", err)
	}

	funnels, err := s.funnels.List()
	if err != nil {
		return fmt.Errorf("erro ao listar funis: %v", err)
	}

	pendingBySlug := make(map[string]int64, len(funnels))
	var lines []string
	for _, funnel := range funnels {
		total := counts[funnel.ID]
		pendingBySlug[funnel.Slug] = total
		if total > 0 {
			lines = append(lines, fmt.Sprintf("%s (%s): %d", funnel.Name, funnel.Slug, total))
		}
	}

	utils.GetMetrics().SetPendingTickets(pendingBySlug)

	if s.email != nil && len(lines) > 0 {
		if err := s.email.SendPendingSummary(lines); err != nil {
			// o resumo é informativo; o erro fica no log
			log.Printf("Erro ao enviar resumo de pendentes: %v", err)
		}
	}

	return nil
}
