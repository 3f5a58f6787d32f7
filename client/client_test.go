package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/GGlistano/repo2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIssuer simula o emissor de tickets com respostas programadas
func fakeIssuer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestSubmitComSucessoDevolveURLDoChat(t *testing.T) {
	var captured struct {
		authorization string
		apikey        string
		contentType   string
		body          map[string]interface{}
	}

	server := fakeIssuer(t, func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")
		captured.apikey = r.Header.Get("Apikey")
		captured.contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&captured.body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"ticket_code": "PED-1756500000000-A1B2C3",
			"expires_at":  time.Now().Add(24 * time.Hour),
		})
	})

	c := New(Config{
		URL:         server.URL,
		Key:         "chave-de-servico",
		FunnelSlug:  "emprestimo",
		ChatBaseURL: "https://chat.txenecamoz.online/",
	})

	lead := models.LeadData{Nome: "Ana Macuácua", Contacto: "841234567"}
	chatURL, err := c.Submit(lead, 0)

	require.NoError(t, err)
	assert.Equal(t, "https://chat.txenecamoz.online/chat/emprestimo?ticket=PED-1756500000000-A1B2C3", chatURL)

	assert.Equal(t, "Bearer chave-de-servico", captured.authorization)
	assert.Equal(t, "chave-de-servico", captured.apikey)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Equal(t, "emprestimo", captured.body["funnel_slug"])

	leadSent, ok := captured.body["lead_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ana Macuácua", leadSent["nome"])
}

func TestSubmitDevolveMensagemDoEnvelope(t *testing.T) {
	server := fakeIssuer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Funil não encontrado",
		})
	})

	c := New(Config{URL: server.URL, FunnelSlug: "inexistente"})

	chatURL, err := c.Submit(models.LeadData{}, 0)

	assert.Empty(t, chatURL)
	require.Error(t, err)
	assert.Equal(t, "Funil não encontrado", err.Error())
}

func TestSubmitErroHTTPSemEnvelope(t *testing.T) {
	server := fakeIssuer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := New(Config{URL: server.URL, FunnelSlug: "emprestimo"})

	_, err := c.Submit(models.LeadData{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Erro HTTP: 502")
}

func TestSubmitRespostaSemTicketCode(t *testing.T) {
	server := fakeIssuer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	c := New(Config{URL: server.URL, FunnelSlug: "emprestimo"})

	_, err := c.Submit(models.LeadData{}, 0)
	require.Error(t, err)
	assert.Equal(t, "Resposta da API não contém ticket_code válido", err.Error())
}

func TestSubmitRecusaSegundoEnvioEmCurso(t *testing.T) {
	release := make(chan struct{})
	server := fakeIssuer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":     true,
			"ticket_code": "PED-1756500000000-A1B2C3",
		})
	})

	c := New(Config{URL: server.URL, FunnelSlug: "emprestimo", ChatBaseURL: "https://chat.txenecamoz.online/"})

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := c.Submit(models.LeadData{}, 0)
		firstErr <- err
	}()

	// esperamos até o primeiro envio estar marcado como em curso
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.submitting
	}, time.Second, 5*time.Millisecond)

	_, err := c.Submit(models.LeadData{}, 0)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(release)
	wg.Wait()
	assert.NoError(t, <-firstErr)

	// com o primeiro concluído, um novo envio volta a ser aceite
	_, err = c.Submit(models.LeadData{}, 0)
	assert.NoError(t, err)
}

func TestChatURLEscapaOTicket(t *testing.T) {
	c := New(Config{FunnelSlug: "emprestimo", ChatBaseURL: "https://chat.txenecamoz.online/"})

	assert.Equal(t,
		"https://chat.txenecamoz.online/chat/emprestimo?ticket=PED-123-ABCDEF",
		c.ChatURL("PED-123-ABCDEF"),
	)
	assert.Equal(t,
		"https://chat.txenecamoz.online/chat/emprestimo?ticket=PED-123-A%26B",
		c.ChatURL("PED-123-A&B"),
	)
}
