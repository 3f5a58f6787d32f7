package models

// LeadData é o registo fechado com os dados de um lead, tal como o
// formulário os envia ao emissor de tickets. As chaves JSON são o contrato
// de rede e não mudam; o emissor trata o payload como opaco e limita-se a
// encaminhá-lo sem modificação.
//
// A palavra-passe recolhida no primeiro passo do formulário nunca aparece
// aqui: é validada no cliente e descartada.
type LeadData struct {
	Nome            string `json:"nome"`
	Contacto        string `json:"contacto"`
	Provincia       string `json:"provincia,omitempty"`
	Bairro          string `json:"bairro,omitempty"`
	Quarteirao      string `json:"quarteirao,omitempty"`
	NumeroCasa      string `json:"numero_casa,omitempty"`
	SectorTrabalho  string `json:"sector_trabalho,omitempty"`
	ValorSolicitado string `json:"valor_solicitado,omitempty"`
	TaxaInscricao   string `json:"taxa_inscricao,omitempty"`
	JurosMensais    string `json:"juros_mensais,omitempty"`
	Prazo           string `json:"prazo,omitempty"`
	ParcelaEstimada string `json:"parcela_estimada,omitempty"`
	FormaPagamento  string `json:"forma_pagamento,omitempty"`
}
