package documento

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/notificacao"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

// Avancador recebe o evento "todos os documentos aprovados" e decide o
// avanço automático (ver coordenador).
type Avancador interface {
	DocumentosAprovados(processoID string) (*processo.Processo, bool, error)
}

type Handler struct {
	Repo        processo.Repository
	Avancador   Avancador
	Notificador *notificacao.Notificador
}

func NewHandler(repo processo.Repository, avancador Avancador, n *notificacao.Notificador) *Handler {
	return &Handler{Repo: repo, Avancador: avancador, Notificador: n}
}

type adicionarRequest struct {
	Nome string `json:"nome"`
}

type envioRequest struct {
	URL string `json:"url"`
}

type rejeitarRequest struct {
	Feedback string `json:"feedback"`
}

// Adicionar trata POST /processos/{id}/documentos (equipe).
func (h *Handler) Adicionar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req adicionarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	atualizado, doc := Adicionar(*p, req.Nome, time.Now())
	if err := h.Repo.Atualizar(&atualizado); err != nil {
		http.Error(w, "Erro ao adicionar documento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(doc)
}

// RegistrarEnvio trata PATCH /processos/{id}/documentos/{docId}/envio.
// Cliente dono ou equipe em nome dele.
func (h *Handler) RegistrarEnvio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, papel := auth.UsuarioDoContexto(r.Context())

	var req envioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		http.Error(w, "JSON inválido ou URL vazia", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(vars["id"])
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}
	if !papel.Equipe() && !processo.Dono(p, userID, auth.EmailDoContexto(r.Context())) {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	atualizado, err := RegistrarEnvio(*p, vars["docId"], req.URL, time.Now())
	if err != nil {
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repo.Atualizar(&atualizado); err != nil {
		http.Error(w, "Erro ao registrar envio", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// Aprovar trata PATCH /processos/{id}/documentos/{docId}/aprovacao
// (equipe). Com o checklist inteiro aprovado na primeira etapa, o
// coordenador avança o processo.
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	_, papel := auth.UsuarioDoContexto(r.Context())

	p, err := h.Repo.BuscarPorID(vars["id"])
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	atualizado, todosAprovados, err := Aprovar(*p, vars["docId"], papel, time.Now())
	if err != nil {
		h.responderErro(w, err)
		return
	}
	if err := h.Repo.Atualizar(&atualizado); err != nil {
		http.Error(w, "Erro ao aprovar documento", http.StatusInternalServerError)
		return
	}

	doc, _ := atualizado.Documento(vars["docId"])
	h.notificarDocumento(atualizado, doc, notificacao.EventoDocumentoAprovado)

	resultado := atualizado
	if todosAprovados && h.Avancador != nil {
		if avancado, moveu, err := h.Avancador.DocumentosAprovados(atualizado.ID); err == nil && moveu {
			resultado = *avancado
		} else if err != nil {
			slog.Warn("falha no avanço automático", "processo", atualizado.ID, "erro", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultado)
}

// Rejeitar trata PATCH /processos/{id}/documentos/{docId}/rejeicao
// (equipe). Exige o motivo, repassado literalmente ao cliente.
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	_, papel := auth.UsuarioDoContexto(r.Context())

	var req rejeitarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(vars["id"])
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	atualizado, err := Rejeitar(*p, vars["docId"], papel, req.Feedback, time.Now())
	if err != nil {
		h.responderErro(w, err)
		return
	}
	if err := h.Repo.Atualizar(&atualizado); err != nil {
		http.Error(w, "Erro ao rejeitar documento", http.StatusInternalServerError)
		return
	}

	doc, _ := atualizado.Documento(vars["docId"])
	h.notificarDocumento(atualizado, doc, notificacao.EventoDocumentoRejeitado)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizado)
}

// notificarDocumento avisa o cliente pelo chat, best-effort, depois da
// gravação.
func (h *Handler) notificarDocumento(p processo.Processo, doc processo.Documento, evento string) {
	if h.Notificador == nil || doc.ID == "" {
		return
	}
	mensagem := notificacao.ComporMensagemDocumento(doc, evento)
	if err := h.Notificador.Notificar(p, notificacao.CanalChat, mensagem); err != nil {
		slog.Warn("evento de documento sem notificação", "processo", p.ID, "erro", err)
	}
}

func (h *Handler) responderErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNaoAutorizado):
		http.Error(w, "Acesso negado", http.StatusForbidden)
	case errors.Is(err, ErrDocumentoNaoEncontrado):
		http.Error(w, "Documento não encontrado", http.StatusNotFound)
	case errors.Is(err, ErrFeedbackObrigatorio):
		http.Error(w, "O campo 'feedback' é obrigatório", http.StatusBadRequest)
	case errors.Is(err, ErrDocumentoNaoEnviado):
		http.Error(w, "Documento ainda não foi enviado", http.StatusConflict)
	default:
		http.Error(w, "Erro ao atualizar documento", http.StatusInternalServerError)
	}
}
