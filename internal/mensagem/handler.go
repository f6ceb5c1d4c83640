package mensagem

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

// BuscadorNome resolve o nome de exibição do remetente autenticado.
type BuscadorNome interface {
	NomePorID(id string) (string, error)
}

type Handler struct {
	Servico *Servico
	Nomes   BuscadorNome
}

func NewHandler(s *Servico, nomes BuscadorNome) *Handler {
	return &Handler{Servico: s, Nomes: nomes}
}

type enviarRequest struct {
	Conteudo string `json:"conteudo"`
}

// autorizar carrega o processo e barra quem não é equipe nem dono.
// O chat é restrito às mesmas pessoas que enxergam o processo.
func (h *Handler) autorizar(w http.ResponseWriter, r *http.Request) (string, bool) {
	processoID := mux.Vars(r)["id"]
	userID, papel := auth.UsuarioDoContexto(r.Context())

	p, err := h.Servico.Processos.BuscarPorID(processoID)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return "", false
	}
	if !papel.Equipe() && !processo.Dono(p, userID, auth.EmailDoContexto(r.Context())) {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return "", false
	}
	return processoID, true
}

// Listar trata GET /processos/{id}/mensagens
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	processoID, ok := h.autorizar(w, r)
	if !ok {
		return
	}

	list, err := h.Servico.Repo.ListarPorProcesso(processoID)
	if err != nil {
		http.Error(w, "Erro ao buscar mensagens", http.StatusInternalServerError)
		return
	}
	h.Servico.MarcarLido(processoID)

	if list == nil {
		list = []Mensagem{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Enviar trata POST /processos/{id}/mensagens
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	processoID, ok := h.autorizar(w, r)
	if !ok {
		return
	}
	userID, papel := auth.UsuarioDoContexto(r.Context())

	var req enviarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Conteudo) == "" {
		http.Error(w, "JSON inválido ou mensagem vazia", http.StatusBadRequest)
		return
	}

	nome := "Usuário"
	if h.Nomes != nil {
		if n, err := h.Nomes.NomePorID(userID); err == nil && n != "" {
			nome = n
		}
	}

	m, err := h.Servico.Publicar(processoID, userID, nome, papel, req.Conteudo)
	if err != nil {
		http.Error(w, "Erro ao enviar mensagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}
