package etapa

import (
	"errors"
	"sort"
)

// Identificadores das etapas do financiamento habitacional.
// As pendências são estados sobrepostos ao funil, não etapas ordinais.
const (
	AnaliseCredito     = "credit_analysis"
	Avaliacao          = "valuation"
	AnaliseJuridica    = "legal_analysis"
	EmissaoITBI        = "itbi_emission"
	RegistroCartorio   = "registry_service"
	AssinaturaContrato = "contract_signing"
	PendenciaCliente   = "pending_client"
	PendenciaInterna   = "pending_internal"
)

var ErrEtapaDesconhecida = errors.New("etapa desconhecida")

// Etapa descreve uma entrada do catálogo: porcentagem de progresso,
// textos exibidos ao cliente e os campos capturados na transição.
type Etapa struct {
	ID          string
	Titulo      string
	Porcentagem int
	Descricao   string
	Campos      []Campo
}

// Pendencia indica se a etapa é um pseudo-estado de pendência.
func (e Etapa) Pendencia() bool {
	return e.ID == PendenciaCliente || e.ID == PendenciaInterna
}

var catalogo = map[string]Etapa{
	AnaliseCredito: {
		ID:          AnaliseCredito,
		Titulo:      "20% - Crédito",
		Porcentagem: 20,
		Descricao:   "Análise de crédito nos bancos",
		Campos: []Campo{
			{Nome: "bank_approved", Rotulo: "Banco(s) Aprovado(s)", Tipo: TipoTexto, Obrigatorio: true},
			{Nome: "credit_value", Rotulo: "Valor da Carta de Crédito (R$)", Tipo: TipoNumero, Obrigatorio: true},
			{Nome: "credit_letter_link", Rotulo: "Link da Carta de Crédito (PDF)", Tipo: TipoURL},
		},
	},
	Avaliacao: {
		ID:          Avaliacao,
		Titulo:      "40% - Avaliação",
		Porcentagem: 40,
		Descricao:   "Vistoria e laudo do imóvel",
		Campos: []Campo{
			{Nome: "valuation_value", Rotulo: "Valor da Avaliação (R$)", Tipo: TipoNumero, Obrigatorio: true},
		},
	},
	AnaliseJuridica: {
		ID:          AnaliseJuridica,
		Titulo:      "60% - Jurídico",
		Porcentagem: 60,
		Descricao:   "Análise jurídica e documentação",
		Campos: []Campo{
			{Nome: "has_pendency", Rotulo: "Há pendências?", Tipo: TipoSelecao, Opcoes: []string{"Não", "Sim"}, Obrigatorio: true},
			{Nome: "pendency_type", Rotulo: "Tipo de Pendência", Tipo: TipoSelecao, Opcoes: []string{"Cliente", "Interna"}, CondicionalCampo: "has_pendency", CondicionalValor: "Sim"},
			{Nome: "pendency_desc", Rotulo: "Descrição da Pendência", Tipo: TipoTextoLongo, CondicionalCampo: "has_pendency", CondicionalValor: "Sim"},
		},
	},
	EmissaoITBI: {
		ID:          EmissaoITBI,
		Titulo:      "80% - ITBI",
		Porcentagem: 80,
		Descricao:   "Emissão de documentos e impostos",
		Campos: []Campo{
			{Nome: "itbi_value", Rotulo: "Valor do ITBI (R$)", Tipo: TipoNumero, Obrigatorio: true},
			{Nome: "itbi_due_date", Rotulo: "Data de Vencimento", Tipo: TipoData, Obrigatorio: true},
		},
	},
	RegistroCartorio: {
		ID:          RegistroCartorio,
		Titulo:      "Registro",
		Porcentagem: 95,
		Descricao:   "Registro em cartório",
		Campos: []Campo{
			{Nome: "registry_office", Rotulo: "Cartório", Tipo: TipoTexto, Obrigatorio: true},
			{Nome: "protocol_number", Rotulo: "Número do Protocolo", Tipo: TipoTexto, Obrigatorio: true},
		},
	},
	AssinaturaContrato: {
		ID:          AssinaturaContrato,
		Titulo:      "100% - Contrato",
		Porcentagem: 100,
		Descricao:   "Assinatura e conclusão",
		Campos: []Campo{
			{Nome: "signing_date", Rotulo: "Data de Assinatura", Tipo: TipoData, Obrigatorio: true},
		},
	},
	PendenciaCliente: {
		ID:          PendenciaCliente,
		Titulo:      "Pendência Cliente",
		Porcentagem: 0,
		Descricao:   "Aguardando documentos do cliente",
		Campos: []Campo{
			{Nome: "move_obs", Rotulo: "Observação", Tipo: TipoTextoLongo},
		},
	},
	PendenciaInterna: {
		ID:          PendenciaInterna,
		Titulo:      "Pendência Interna",
		Porcentagem: 0,
		Descricao:   "Erro interno - correção necessária",
		Campos: []Campo{
			{Nome: "move_obs", Rotulo: "Observação", Tipo: TipoTextoLongo},
		},
	},
}

// Buscar retorna a etapa do catálogo ou ErrEtapaDesconhecida.
func Buscar(id string) (Etapa, error) {
	e, ok := catalogo[id]
	if !ok {
		return Etapa{}, ErrEtapaDesconhecida
	}
	return e, nil
}

// Valida informa se o identificador pertence ao catálogo.
func Valida(id string) bool {
	_, ok := catalogo[id]
	return ok
}

// Ordenadas lista as etapas do funil em ordem crescente de porcentagem,
// excluindo os pseudo-estados de pendência.
func Ordenadas() []Etapa {
	out := make([]Etapa, 0, len(catalogo))
	for _, e := range catalogo {
		if e.Pendencia() {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Porcentagem < out[j].Porcentagem })
	return out
}

// Primeira retorna a primeira etapa do funil.
func Primeira() Etapa {
	return Ordenadas()[0]
}

// Proxima retorna a etapa seguinte no funil e false quando a etapa
// atual é a última ou é um pseudo-estado de pendência.
func Proxima(id string) (Etapa, bool) {
	ord := Ordenadas()
	for i, e := range ord {
		if e.ID == id && i+1 < len(ord) {
			return ord[i+1], true
		}
	}
	return Etapa{}, false
}

// Porcentagem retorna o progresso da etapa; 0 para id fora do catálogo.
func Porcentagem(id string) int {
	return catalogo[id].Porcentagem
}

// Titulo retorna o título da etapa ou o próprio id quando desconhecido.
func Titulo(id string) string {
	if e, ok := catalogo[id]; ok {
		return e.Titulo
	}
	return id
}
