package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/GGlistano/repo2/services"
	"github.com/GGlistano/repo2/utils"
)

// QuoteController trata os pedidos de simulação de empréstimo
type QuoteController struct {
	quoteService *services.QuoteService
}

// NewQuoteController cria uma nova instância de QuoteController
func NewQuoteController(quoteService *services.QuoteService) *QuoteController {
	return &QuoteController{quoteService: quoteService}
}

// quoteResponse é o envelope de resposta da simulação
type quoteResponse struct {
	Success bool            `json:"success"`
	Quote   *services.Quote `json:"quote,omitempty"`
	Display *quoteDisplay   `json:"display,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// quoteDisplay contém os campos formatados para apresentação
type quoteDisplay struct {
	ValorSolicitado string `json:"valor_solicitado"`
	TaxaInscricao   string `json:"taxa_inscricao"`
	JurosMensais    string `json:"juros_mensais"`
	Prazo           string `json:"prazo"`
	ParcelaEstimada string `json:"parcela_estimada"`
}

// GetQuote calcula a simulação para o montante indicado no parâmetro
// amount. Entrada sem montante simulável devolve 422: o formulário deve
// continuar a pedir o valor, não é uma falha.
func (c *QuoteController) GetQuote(w http.ResponseWriter, r *http.Request) {
	amount := r.URL.Query().Get("amount")

	quote := c.quoteService.ComputeQuote(amount)
	utils.GetMetrics().RecordQuote(quote == nil)

	w.Header().Set("Content-Type", "application/json")
	if quote == nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(quoteResponse{
			Success: false,
			Error:   "Sem montante para simular",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(quoteResponse{
		Success: true,
		Quote:   quote,
		Display: &quoteDisplay{
			ValorSolicitado: c.quoteService.FormatAmount(quote.Amount),
			TaxaInscricao:   c.quoteService.FormatAmount(quote.RegistrationFee),
			JurosMensais:    c.quoteService.FormatRate(quote.InterestRate),
			Prazo:           c.quoteService.FormatTerm(quote.TermMonths),
			ParcelaEstimada: c.quoteService.FormatInstallment(quote.MonthlyPayment),
		},
	})
}
