package utils

import (
	"sync"
	"time"
)

// Metrics contém as métricas da aplicação
type Metrics struct {
	mu sync.RWMutex

	// Métricas de pedidos HTTP
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Métricas de tickets
	TotalTickets         int64
	FailedTickets        int64
	LastTicketTime       time.Time
	PendingTicketsBySlug map[string]int64

	// Métricas de simulações
	TotalQuotes    int64
	RejectedQuotes int64

	// Métricas de erros
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics devolve a instância de métricas
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes:           make(map[string]int64),
			PendingTicketsBySlug: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest regista as métricas de um pedido
func (m *Metrics) RecordRequest(duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if err != nil {
		m.FailedRequests++
		m.recordErrorLocked(err)
	}
}

// RecordTicketCreated regista a tentativa de criação de um ticket
func (m *Metrics) RecordTicketCreated(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastTicketTime = time.Now()
	if err != nil {
		m.FailedTickets++
		m.recordErrorLocked(err)
		return
	}
	m.TotalTickets++
}

// RecordQuote regista uma simulação; rejected indica entrada sem
// montante simulável
func (m *Metrics) RecordQuote(rejected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalQuotes++
	if rejected {
		m.RejectedQuotes++
	}
}

// SetPendingTickets substitui a fotografia de pendentes por funil
func (m *Metrics) SetPendingTickets(bySlug map[string]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]int64, len(bySlug))
	for slug, total := range bySlug {
		snapshot[slug] = total
	}
	m.PendingTicketsBySlug = snapshot
}

// RecordError regista as métricas de um erro
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErrorLocked(err)
}

func (m *Metrics) recordErrorLocked(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot devolve uma fotografia das métricas actuais
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pending := make(map[string]int64, len(m.PendingTicketsBySlug))
	for slug, total := range m.PendingTicketsBySlug {
		pending[slug] = total
	}

	return map[string]interface{}{
		"total_requests":  m.TotalRequests,
		"failed_requests": m.FailedRequests,
		"average_latency": m.AverageLatency,
		"total_tickets":   m.TotalTickets,
		"failed_tickets":  m.FailedTickets,
		"pending_tickets": pending,
		"total_quotes":    m.TotalQuotes,
		"rejected_quotes": m.RejectedQuotes,
		"error_count":     m.ErrorCount,
		"last_error_time": m.LastErrorTime,
		"error_types":     m.ErrorTypes,
	}
}

// ResetMetrics limpa todas as métricas
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.TotalTickets = 0
	m.FailedTickets = 0
	m.TotalQuotes = 0
	m.RejectedQuotes = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
	m.PendingTicketsBySlug = make(map[string]int64)
}
