package processo

import (
	"time"
)

// Status possíveis de um documento do checklist.
const (
	DocPendente  = "pending"
	DocEnviado   = "uploaded"
	DocAprovado  = "approved"
	DocRejeitado = "rejected"
)

// Checklist inicial criado junto com o processo.
var ChecklistInicial = []string{
	"RG e CPF",
	"Comprovante de Renda",
	"Comprovante de Residência",
}

// Documento é um item do checklist do processo. Feedback só tem
// significado quando Status = rejected e é limpo no reenvio.
type Documento struct {
	ID        string     `json:"id"`
	Nome      string     `json:"nome"`
	Status    string     `json:"status"`
	URL       string     `json:"url,omitempty"`
	EnviadoEm *time.Time `json:"enviadoEm,omitempty"`
	Feedback  string     `json:"feedback,omitempty"`
	Extra     bool       `json:"extra,omitempty"`
}

// CampoExtra é um par rótulo/valor livre. Serve tanto para campos
// personalizados quanto para os dados estruturados capturados por etapa.
type CampoExtra struct {
	Rotulo string `json:"label"`
	Valor  string `json:"value"`
}

// Processo representa um caso de financiamento habitacional.
type Processo struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"processoId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NomeCliente  string `json:"nomeCliente"`
	ClienteID    string `gorm:"index" json:"clienteId"`
	EmailCliente string `gorm:"index" json:"emailCliente"`
	CPFCliente   string `json:"cpfCliente"`

	Tipo   string  `json:"tipo"`   // programa de financiamento, ex.: "Minha Casa Minha Vida"
	Valor  float64 `json:"valor"`  // valor do imóvel/financiamento
	Status string  `json:"status"` // sempre um id válido do catálogo de etapas

	AtendenteID string `gorm:"index" json:"atendenteId"`

	// Documentos e campos extras embutidos em JSONB, espelhando o shape
	// de um banco de documentos (um registro por processo).
	Documentos   []Documento  `gorm:"type:jsonb;serializer:json" json:"documentos"`
	CamposExtras []CampoExtra `gorm:"type:jsonb;serializer:json" json:"camposExtras"`

	NaoLido bool `json:"naoLido"` // indicador de chat não lido

	// Ids de notificações automáticas já disparadas para o processo.
	NotificacoesEnviadas []string `gorm:"type:jsonb;serializer:json" json:"notificacoesEnviadas"`
}

// ValorCampo devolve o valor de um campo extra pelo rótulo.
func (p Processo) ValorCampo(rotulo string) (string, bool) {
	for _, c := range p.CamposExtras {
		if c.Rotulo == rotulo {
			return c.Valor, true
		}
	}
	return "", false
}

// DefinirCampo grava um campo extra com semântica last-write-wins:
// substitui a entrada de mesmo rótulo ou acrescenta ao final.
func (p *Processo) DefinirCampo(rotulo, valor string) {
	for i, c := range p.CamposExtras {
		if c.Rotulo == rotulo {
			p.CamposExtras[i].Valor = valor
			return
		}
	}
	p.CamposExtras = append(p.CamposExtras, CampoExtra{Rotulo: rotulo, Valor: valor})
}

// Documento localiza um item do checklist pelo id.
func (p Processo) Documento(docID string) (Documento, int) {
	for i, d := range p.Documentos {
		if d.ID == docID {
			return d, i
		}
	}
	return Documento{}, -1
}

// Clonar devolve uma cópia profunda do processo, de modo que os motores
// possam trabalhar sobre o valor sem tocar o original em caso de erro.
func (p Processo) Clonar() Processo {
	c := p
	c.Documentos = append([]Documento(nil), p.Documentos...)
	c.CamposExtras = append([]CampoExtra(nil), p.CamposExtras...)
	c.NotificacoesEnviadas = append([]string(nil), p.NotificacoesEnviadas...)
	return c
}
