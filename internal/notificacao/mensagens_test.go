package notificacao

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

func processoNaEtapa(status string, campos map[string]string) processo.Processo {
	p := processo.Processo{NomeCliente: "João Pereira da Silva", Status: status}
	for rotulo, valor := range campos {
		p.DefinirCampo(rotulo, valor)
	}
	return p
}

func TestMensagemCreditoAprovado(t *testing.T) {
	p := processoNaEtapa(etapa.AnaliseCredito, map[string]string{
		"bank_approved": "Caixa Econômica",
		"credit_value":  "250000",
	})

	msg := ComporMensagemEtapa(p)

	assert.Contains(t, msg, "Olá João!", "usa só o primeiro nome")
	assert.Contains(t, msg, "Caixa Econômica")
	assert.Contains(t, msg, "R$ 250.000")
}

func TestMensagemCreditoSemBanco(t *testing.T) {
	p := processoNaEtapa(etapa.AnaliseCredito, nil)

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "banco parceiro", "sem captura entra o texto genérico")
	assert.NotContains(t, msg, "no valor de")
}

func TestMensagemITBIOmiteVencimentoAusente(t *testing.T) {
	p := processoNaEtapa(etapa.EmissaoITBI, map[string]string{
		"itbi_value": "4850.50",
	})

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "R$ 4.850,50")
	assert.NotContains(t, msg, "com vencimento", "data ausente sai da frase inteira")
}

func TestMensagemITBICompleta(t *testing.T) {
	p := processoNaEtapa(etapa.EmissaoITBI, map[string]string{
		"itbi_value":    "4850.50",
		"itbi_due_date": "2026-09-15",
	})

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "com vencimento em 15/09/2026")
}

func TestMensagemJuridicoPendenciaDoCliente(t *testing.T) {
	p := processoNaEtapa(etapa.AnaliseJuridica, map[string]string{
		"pendency_type": "client",
		"pendency_desc": "Falta certidão de casamento",
	})

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "Falta certidão de casamento")
	assert.Contains(t, msg, "pendência")
}

func TestMensagemJuridicoSemPendencia(t *testing.T) {
	p := processoNaEtapa(etapa.AnaliseJuridica, map[string]string{
		"pendency_type": "none",
	})

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "Análise jurídica concluída")
}

func TestMensagemEtapaForaDoCatalogo(t *testing.T) {
	p := processoNaEtapa("qualquer_coisa", nil)

	msg := ComporMensagemEtapa(p)
	assert.Contains(t, msg, "Seu processo está em andamento")
}

func TestMensagemDocumentoRejeitadoEmbuteMotivo(t *testing.T) {
	doc := processo.Documento{Nome: "RG e CPF", Feedback: "Foto cortada, reenviar frente e verso"}

	msg := ComporMensagemDocumento(doc, EventoDocumentoRejeitado)
	assert.Contains(t, msg, `"RG e CPF"`)
	assert.Contains(t, msg, "Foto cortada, reenviar frente e verso")

	aprovado := ComporMensagemDocumento(doc, EventoDocumentoAprovado)
	assert.False(t, strings.Contains(aprovado, "Motivo"), "aprovação não carrega feedback")
}

func TestAssuntoEtapa(t *testing.T) {
	p := processoNaEtapa(etapa.Avaliacao, nil)
	assert.Equal(t, "Atualização do seu processo - 40% - Avaliação", AssuntoEtapa(p))
}

func TestMoeda(t *testing.T) {
	assert.Equal(t, "250.000", moeda("250000"))
	assert.Equal(t, "4.850,50", moeda("4850.50"))
	assert.Equal(t, "1.234.567", moeda("1234567"))
	assert.Equal(t, "980", moeda("980"))
	assert.Equal(t, "abc", moeda("abc"), "valor não numérico sai como entrou")
}

func TestDataBR(t *testing.T) {
	assert.Equal(t, "15/09/2026", dataBR("2026-09-15"))
	assert.Equal(t, "15/09", dataBR("15/09"), "formato inesperado sai como entrou")
}
