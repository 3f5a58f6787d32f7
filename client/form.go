package client

import (
	"strings"

	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/services"
)

// Step identifica o passo actual do formulário
type Step int

const (
	StepCredentials Step = iota + 1
	StepAddress
	StepLoan
	StepConfirm
)

// FieldErrors mapeia o nome de um campo para a mensagem de validação
type FieldErrors map[string]string

// FormState é o estado imutável do formulário de candidatura. Cada
// transição devolve um novo estado em vez de alterar o existente, pelo
// que um estado antigo nunca muda debaixo de quem o guarda.
type FormState struct {
	Step            Step
	FullName        string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	Province        string
	Neighborhood    string
	Block           string
	HouseNumber     string
	WorkSector      string
	LoanAmount      string
	MonthlyIncome   string
}

// NewFormState cria o estado inicial do formulário
func NewFormState() FormState {
	return FormState{Step: StepCredentials}
}

// WithField devolve uma cópia do estado com o campo actualizado
func (s FormState) WithField(name, value string) FormState {
	switch name {
	case "fullName":
		s.FullName = value
	case "phoneNumber":
		s.PhoneNumber = value
	case "password":
		s.Password = value
	case "confirmPassword":
		s.ConfirmPassword = value
	case "province":
		s.Province = value
	case "neighborhood":
		s.Neighborhood = value
	case "block":
		s.Block = value
	case "houseNumber":
		s.HouseNumber = value
	case "workSector":
		s.WorkSector = value
	case "loanAmount":
		s.LoanAmount = value
	case "monthlyIncome":
		s.MonthlyIncome = value
	}
	return s
}

// Next valida o passo actual e avança quando não há erros. Com erros,
// devolve o mesmo estado e as mensagens por campo.
func (s FormState) Next() (FormState, FieldErrors) {
	errs := s.validateStep()
	if len(errs) > 0 {
		return s, errs
	}
	if s.Step < StepConfirm {
		s.Step++
	}
	return s, nil
}

// Back devolve o estado no passo anterior
func (s FormState) Back() FormState {
	if s.Step > StepCredentials {
		s.Step--
	}
	return s
}

// validateStep aplica as regras do passo actual
func (s FormState) validateStep() FieldErrors {
	errs := FieldErrors{}

	switch s.Step {
	case StepCredentials:
		if strings.TrimSpace(s.FullName) == "" {
			errs["fullName"] = "O nome completo é obrigatório"
		}
		if strings.TrimSpace(s.PhoneNumber) == "" {
			errs["phoneNumber"] = "O número de telefone é obrigatório"
		}
		if len(s.Password) < 6 {
			errs["password"] = "A palavra-passe deve ter no mínimo 6 caracteres"
		}
		if s.Password != s.ConfirmPassword {
			errs["confirmPassword"] = "As palavras-passe não coincidem"
		}
	case StepLoan:
		if strings.TrimSpace(s.LoanAmount) == "" {
			errs["loanAmount"] = "O montante do empréstimo é obrigatório"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// BuildLeadData monta o registo de lead a enviar ao emissor de tickets,
// com os valores da simulação já formatados para apresentação.
// A palavra-passe não entra no payload.
func BuildLeadData(s FormState, quote *services.Quote, quotes *services.QuoteService) models.LeadData {
	lead := models.LeadData{
		Nome:           s.FullName,
		Contacto:       s.PhoneNumber,
		Provincia:      s.Province,
		Bairro:         s.Neighborhood,
		Quarteirao:     s.Block,
		NumeroCasa:     s.HouseNumber,
		SectorTrabalho: s.WorkSector,
		FormaPagamento: "Mensal",
	}

	if quote != nil {
		lead.ValorSolicitado = quotes.FormatAmount(quote.Amount)
		lead.TaxaInscricao = quotes.FormatAmount(quote.RegistrationFee)
		lead.JurosMensais = quotes.FormatRate(quote.InterestRate)
		lead.Prazo = quotes.FormatTerm(quote.TermMonths)
		lead.ParcelaEstimada = quotes.FormatInstallment(quote.MonthlyPayment)
	}

	return lead
}
