package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GGlistano/repo2/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	controller := NewQuoteController(services.NewQuoteService())

	router := mux.NewRouter()
	router.HandleFunc("/api/quote", controller.GetQuote).Methods("GET")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestGetQuoteComMontante(t *testing.T) {
	server := newQuoteTestServer(t)

	resp, err := http.Get(server.URL + "/api/quote?amount=20000")
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope quoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Quote)
	assert.Equal(t, int64(20000), envelope.Quote.Amount)
	assert.Equal(t, int64(1950), envelope.Quote.MonthlyPayment)
	assert.Equal(t, 2.5, envelope.Quote.InterestRate)
	assert.Equal(t, int64(497), envelope.Quote.RegistrationFee)
	assert.Equal(t, 12, envelope.Quote.TermMonths)

	require.NotNil(t, envelope.Display)
	assert.Equal(t, "2.5%", envelope.Display.JurosMensais)
	assert.Equal(t, "12 meses", envelope.Display.Prazo)
	assert.Contains(t, envelope.Display.ValorSolicitado, "MT")
	assert.Contains(t, envelope.Display.ParcelaEstimada, "MT/mês")
}

func TestGetQuoteSemMontante(t *testing.T) {
	server := newQuoteTestServer(t)

	for _, query := range []string{"", "?amount=", "?amount=abc", "?amount=0"} {
		resp, err := http.Get(server.URL + "/api/quote" + query)
		require.NoError(t, err)

		var envelope quoteResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "query: %q", query)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Sem montante para simular", envelope.Error)
		assert.Nil(t, envelope.Quote)
	}
}
