// Package documento implementa o fluxo de aprovação do checklist de
// documentos de um processo. As operações trabalham sobre cópias do
// processo e devolvem o valor atualizado; persistir é papel do chamador.
package documento

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

var (
	ErrDocumentoNaoEncontrado = errors.New("documento não encontrado")
	ErrFeedbackObrigatorio    = errors.New("feedback é obrigatório na rejeição")
	ErrNaoAutorizado          = errors.New("apenas a equipe pode aprovar ou rejeitar documentos")
	ErrDocumentoNaoEnviado    = errors.New("documento ainda não foi enviado")
)

// Adicionar acrescenta um item avulso ao checklist, em status pendente.
// Nomes duplicados são permitidos (múltiplas vias de um mesmo requisito).
func Adicionar(p processo.Processo, nome string, agora time.Time) (processo.Processo, processo.Documento) {
	atualizado := p.Clonar()
	doc := processo.Documento{
		ID:     uuid.NewString(),
		Nome:   nome,
		Status: processo.DocPendente,
		Extra:  true,
	}
	atualizado.Documentos = append(atualizado.Documentos, doc)
	atualizado.UpdatedAt = agora
	return atualizado, doc
}

// RegistrarEnvio marca o documento como enviado, guarda a URL e limpa
// qualquer feedback de rejeição anterior. Reenvio após rejeição é o
// fluxo normal do cliente.
func RegistrarEnvio(p processo.Processo, docID, url string, agora time.Time) (processo.Processo, error) {
	_, idx := p.Documento(docID)
	if idx < 0 {
		return p, ErrDocumentoNaoEncontrado
	}
	atualizado := p.Clonar()
	d := &atualizado.Documentos[idx]
	d.Status = processo.DocEnviado
	d.URL = url
	enviado := agora
	d.EnviadoEm = &enviado
	d.Feedback = ""
	atualizado.UpdatedAt = agora
	return atualizado, nil
}

// Aprovar valida o documento enviado. Somente equipe (admin/atendente).
// O segundo retorno informa se, após esta aprovação, todos os
// documentos do checklist estão aprovados — o chamador decide o que
// fazer com o evento (ver coordenador).
func Aprovar(p processo.Processo, docID string, papel auth.Papel, agora time.Time) (processo.Processo, bool, error) {
	if !papel.Equipe() {
		return p, false, ErrNaoAutorizado
	}
	doc, idx := p.Documento(docID)
	if idx < 0 {
		return p, false, ErrDocumentoNaoEncontrado
	}
	if doc.Status != processo.DocEnviado {
		return p, false, ErrDocumentoNaoEnviado
	}
	atualizado := p.Clonar()
	atualizado.Documentos[idx].Status = processo.DocAprovado
	atualizado.UpdatedAt = agora
	return atualizado, TodosAprovados(atualizado), nil
}

// Rejeitar devolve o documento ao cliente com o motivo. O feedback é
// obrigatório; sem ele nada é alterado.
func Rejeitar(p processo.Processo, docID string, papel auth.Papel, feedback string, agora time.Time) (processo.Processo, error) {
	if !papel.Equipe() {
		return p, ErrNaoAutorizado
	}
	if strings.TrimSpace(feedback) == "" {
		return p, ErrFeedbackObrigatorio
	}
	_, idx := p.Documento(docID)
	if idx < 0 {
		return p, ErrDocumentoNaoEncontrado
	}
	atualizado := p.Clonar()
	atualizado.Documentos[idx].Status = processo.DocRejeitado
	atualizado.Documentos[idx].Feedback = feedback
	atualizado.UpdatedAt = agora
	return atualizado, nil
}

// TodosAprovados informa se todo o checklist atual está aprovado.
func TodosAprovados(p processo.Processo) bool {
	if len(p.Documentos) == 0 {
		return false
	}
	for _, d := range p.Documentos {
		if d.Status != processo.DocAprovado {
			return false
		}
	}
	return true
}
