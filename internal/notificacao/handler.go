package notificacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

type Handler struct {
	Repo        processo.Repository
	Notificador *Notificador
}

func NewHandler(repo processo.Repository, n *Notificador) *Handler {
	return &Handler{Repo: repo, Notificador: n}
}

type enviarRequest struct {
	Canal    Canal  `json:"canal"`
	Mensagem string `json:"mensagem"`
}

type enviarResponse struct {
	Canal    Canal  `json:"canal"`
	Mensagem string `json:"mensagem"`
	Aviso    string `json:"aviso,omitempty"`
}

// Enviar trata POST /processos/{id}/notificacoes (equipe). Sem
// mensagem no corpo, compõe o texto padrão da etapa atual. Falha de
// entrega vira aviso na resposta: o processo já registrou a tentativa.
func (h *Handler) Enviar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req enviarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	mensagem := strings.TrimSpace(req.Mensagem)
	if mensagem == "" {
		mensagem = ComporMensagemEtapa(*p)
	}

	resposta := enviarResponse{Canal: req.Canal, Mensagem: mensagem}
	if err := h.Notificador.Notificar(*p, req.Canal, mensagem); err != nil {
		switch {
		case errors.Is(err, ErrCanalDesconhecido):
			http.Error(w, "Canal de notificação desconhecido", http.StatusBadRequest)
			return
		case errors.Is(err, ErrDestinatarioAusente):
			http.Error(w, "Processo sem destinatário para o canal", http.StatusUnprocessableEntity)
			return
		default:
			resposta.Aviso = "Falha na entrega da notificação"
		}
	}

	registro := p.Clonar()
	registro.NotificacoesEnviadas = append(registro.NotificacoesEnviadas, string(req.Canal))
	if err := h.Repo.Atualizar(&registro); err != nil {
		http.Error(w, "Erro ao registrar notificação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta)
}
