package services

import (
	"fmt"
	"time"

	"github.com/GGlistano/repo2/config"
	"gopkg.in/gomail.v2"
)

// EmailService envia notificações por email para a caixa dos agentes
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
}

// NewEmailService cria uma nova instância de EmailService.
// Devolve nil quando não há caixa de destino configurada; os chamadores
// tratam um serviço nil como notificações desativadas.
func NewEmailService(cfg *config.Config) *EmailService {
	if cfg.AgentInbox == "" {
		return nil
	}

	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		inbox:  cfg.AgentInbox,
	}
}

// SendEmail envia um email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro no envio do email: %v", err)
	}

	return nil
}

// SendTicketNotification avisa os agentes de um novo ticket
func (s *EmailService) SendTicketNotification(funnelName, ticketCode string, expiresAt time.Time) error {
	subject := "Novo lead à espera no chat"
	body := fmt.Sprintf(`
		<h2>Novo ticket criado</h2>
		<p>Funil: %s</p>
		<p>Ticket: %s</p>
		<p>Válido até: %s</p>
		<p>Data: %s</p>
	`, funnelName, ticketCode,
		expiresAt.Format("02/01/2006 15:04"),
		time.Now().Format("02/01/2006 15:04:05"))

	return s.SendEmail(s.inbox, subject, body)
}

// SendPendingSummary envia o resumo periódico de tickets pendentes
func (s *EmailService) SendPendingSummary(lines []string) error {
	subject := "Resumo de tickets pendentes"
	body := "<h2>Tickets pendentes por funil</h2>"
	if len(lines) == 0 {
		body += "<p>Sem tickets pendentes.</p>"
	}
	for _, line := range lines {
		body += fmt.Sprintf("<p>%s</p>", line)
	}
	body += fmt.Sprintf("<p>Data: %s</p>", time.Now().Format("02/01/2006 15:04:05"))

	return s.SendEmail(s.inbox, subject, body)
}
