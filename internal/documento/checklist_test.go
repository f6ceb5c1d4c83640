package documento

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

var agoraFixo = time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

func processoComDocs(status ...string) processo.Processo {
	p := processo.Processo{ID: "p-1", Status: etapa.AnaliseCredito}
	for i, s := range status {
		p.Documentos = append(p.Documentos, processo.Documento{
			ID:     string(rune('a' + i)),
			Nome:   "Documento",
			Status: s,
		})
	}
	return p
}

func TestAdicionarPermiteNomesDuplicados(t *testing.T) {
	p := processoComDocs()

	p1, doc1 := Adicionar(p, "Comprovante de Renda", agoraFixo)
	p2, doc2 := Adicionar(p1, "Comprovante de Renda", agoraFixo)

	require.Len(t, p2.Documentos, 2)
	assert.NotEqual(t, doc1.ID, doc2.ID)
	assert.Equal(t, processo.DocPendente, doc1.Status)
	assert.True(t, doc1.Extra)
}

func TestRegistrarEnvioLimpaFeedback(t *testing.T) {
	p := processoComDocs(processo.DocRejeitado)
	p.Documentos[0].Feedback = "Ilegível, reenviar"

	atualizado, err := RegistrarEnvio(p, "a", "https://cdn/prova.pdf", agoraFixo)
	require.NoError(t, err)

	doc := atualizado.Documentos[0]
	assert.Equal(t, processo.DocEnviado, doc.Status)
	assert.Equal(t, "https://cdn/prova.pdf", doc.URL)
	assert.Empty(t, doc.Feedback, "reenvio descarta o motivo da rejeição anterior")
	require.NotNil(t, doc.EnviadoEm)
	assert.Equal(t, agoraFixo, *doc.EnviadoEm)
}

func TestRegistrarEnvioDocumentoInexistente(t *testing.T) {
	p := processoComDocs(processo.DocPendente)

	_, err := RegistrarEnvio(p, "zz", "https://cdn/x.pdf", agoraFixo)
	assert.ErrorIs(t, err, ErrDocumentoNaoEncontrado)
}

func TestAprovarExigeEquipe(t *testing.T) {
	p := processoComDocs(processo.DocEnviado)

	_, _, err := Aprovar(p, "a", auth.PapelCliente, agoraFixo)
	assert.ErrorIs(t, err, ErrNaoAutorizado)

	_, _, err = Aprovar(p, "a", auth.PapelAtendente, agoraFixo)
	assert.NoError(t, err)
}

func TestAprovarExigeEnvio(t *testing.T) {
	p := processoComDocs(processo.DocPendente)

	_, _, err := Aprovar(p, "a", auth.PapelAdmin, agoraFixo)
	assert.ErrorIs(t, err, ErrDocumentoNaoEnviado)
}

func TestAprovarSinalizaChecklistCompleto(t *testing.T) {
	p := processoComDocs(processo.DocAprovado, processo.DocEnviado)

	atualizado, todos, err := Aprovar(p, "b", auth.PapelAdmin, agoraFixo)
	require.NoError(t, err)
	assert.True(t, todos, "último documento aprovado completa o checklist")
	assert.Equal(t, processo.DocAprovado, atualizado.Documentos[1].Status)

	// com um terceiro ainda pendente o sinal é falso
	p = processoComDocs(processo.DocAprovado, processo.DocEnviado, processo.DocPendente)
	_, todos, err = Aprovar(p, "b", auth.PapelAdmin, agoraFixo)
	require.NoError(t, err)
	assert.False(t, todos)
}

func TestRejeitarExigeFeedback(t *testing.T) {
	p := processoComDocs(processo.DocEnviado)

	retornado, err := Rejeitar(p, "a", auth.PapelAdmin, "   ", agoraFixo)
	assert.ErrorIs(t, err, ErrFeedbackObrigatorio)
	assert.Equal(t, processo.DocEnviado, retornado.Documentos[0].Status, "rejeição sem motivo não muda nada")
}

func TestRejeitarGuardaMotivo(t *testing.T) {
	p := processoComDocs(processo.DocEnviado)

	atualizado, err := Rejeitar(p, "a", auth.PapelAtendente, "Documento vencido", agoraFixo)
	require.NoError(t, err)

	doc := atualizado.Documentos[0]
	assert.Equal(t, processo.DocRejeitado, doc.Status)
	assert.Equal(t, "Documento vencido", doc.Feedback)
}

func TestTodosAprovadosChecklistVazio(t *testing.T) {
	assert.False(t, TodosAprovados(processoComDocs()), "checklist vazio nunca conta como completo")
	assert.True(t, TodosAprovados(processoComDocs(processo.DocAprovado, processo.DocAprovado)))
}
