package services

import (
	"math"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LoanTier representa um escalão fixo de montantes com a respetiva taxa,
// taxa de inscrição e prazo. A tabela é estática: não vive na base de
// dados e muda apenas com o código.
type LoanTier struct {
	MinValue        int64
	MaxValue        int64
	InterestRate    float64 // percentagem ao mês
	RegistrationFee int64
	TermMonths      int
}

// Os intervalos são contíguos e não sobrepostos; o primeiro escalão que
// contém o montante (ambos os extremos inclusivos) governa.
var loanTiers = []LoanTier{
	{MinValue: 5000, MaxValue: 20000, InterestRate: 2.5, RegistrationFee: 497, TermMonths: 12},
	{MinValue: 20000, MaxValue: 50000, InterestRate: 2.0, RegistrationFee: 497, TermMonths: 18},
	{MinValue: 50000, MaxValue: 100000, InterestRate: 1.5, RegistrationFee: 497, TermMonths: 24},
	{MinValue: 100000, MaxValue: 200000, InterestRate: 1.2, RegistrationFee: 497, TermMonths: 30},
}

// Quote representa a simulação calculada para um montante pedido.
// Nunca é persistida: é recalculada a cada pedido.
type Quote struct {
	Amount          int64   `json:"amount"`
	MonthlyPayment  int64   `json:"monthly_payment"`
	InterestRate    float64 `json:"interest_rate"`
	RegistrationFee int64   `json:"registration_fee"`
	TermMonths      int     `json:"term_months"`
}

var nonDigits = regexp.MustCompile(`[^\d]`)

// QuoteService calcula simulações de empréstimo
type QuoteService struct {
	printer *message.Printer
}

// NewQuoteService cria uma nova instância de QuoteService
func NewQuoteService() *QuoteService {
	return &QuoteService{
		printer: message.NewPrinter(language.Portuguese),
	}
}

// Tiers devolve a tabela de escalões
func (s *QuoteService) Tiers() []LoanTier {
	return loanTiers
}

// ComputeQuote calcula a simulação para o texto introduzido pelo
// utilizador. Entrada vazia ou sem dígitos devolve nil: ainda não há
// nada para simular, não é um erro. Montantes fora de todos os escalões
// caem no primeiro escalão por política deliberada.
func (s *QuoteService) ComputeQuote(raw string) *Quote {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return nil
	}

	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// só dígitos: o único erro possível é estouro, e nesse caso
		// ParseInt devolve o máximo representável
		amount = math.MaxInt64
	}
	if amount == 0 {
		return nil
	}

	tier := selectTier(amount)

	// Fórmula padrão de amortização com prestação fixa:
	// M = P·r·(1+r)^n / ((1+r)^n − 1)
	monthlyRate := tier.InterestRate / 100
	pow := math.Pow(1+monthlyRate, float64(tier.TermMonths))
	monthlyPayment := float64(amount) * monthlyRate * pow / (pow - 1)

	return &Quote{
		Amount:          amount,
		MonthlyPayment:  int64(math.Round(monthlyPayment)),
		InterestRate:    tier.InterestRate,
		RegistrationFee: tier.RegistrationFee,
		TermMonths:      tier.TermMonths,
	}
}

// selectTier devolve o primeiro escalão que contém o montante, ou o
// escalão mais baixo como recurso
func selectTier(amount int64) LoanTier {
	for _, t := range loanTiers {
		if amount >= t.MinValue && amount <= t.MaxValue {
			return t
		}
	}
	return loanTiers[0]
}

// FormatAmount formata um montante com separador de milhares e a moeda
func (s *QuoteService) FormatAmount(v int64) string {
	return s.printer.Sprintf("%d MT", v)
}

// FormatInstallment formata a prestação mensal estimada
func (s *QuoteService) FormatInstallment(v int64) string {
	return s.printer.Sprintf("~%d MT/mês", v)
}

// FormatRate formata a taxa de juro mensal
func (s *QuoteService) FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// FormatTerm formata o prazo em meses
func (s *QuoteService) FormatTerm(months int) string {
	return strconv.Itoa(months) + " meses"
}

// LoanAmountOptions devolve as opções de montante apresentadas no
// formulário, em incrementos de 5.000 MT
func (s *QuoteService) LoanAmountOptions() []string {
	options := make([]string, 0, 40)
	for i := 1; i <= 40; i++ {
		options = append(options, s.FormatAmount(int64(i)*5000))
	}
	return options
}

func init() {
	// a seleção do primeiro escalão correspondente assume contiguidade
	for i := 1; i < len(loanTiers); i++ {
		if loanTiers[i].MinValue != loanTiers[i-1].MaxValue {
			panic("tabela de escalões não é contígua")
		}
	}
}
