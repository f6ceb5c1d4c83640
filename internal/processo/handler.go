package processo

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/pendencia"
)

// ContasCliente faz o pré-cadastro da conta do cliente quando a equipe
// abre um processo para quem ainda não tem acesso.
type ContasCliente interface {
	CriarCliente(nome, email string) (id string, senhaTemporaria string, err error)
}

// EmailBoasVindas envia as credenciais iniciais; falha não bloqueia a
// criação do processo.
type EmailBoasVindas interface {
	EnviarBoasVindas(nome, para, senha string) error
}

type Handler struct {
	Repo       Repository
	Contas     ContasCliente
	BoasVindas EmailBoasVindas
}

func NewHandler(repo Repository, contas ContasCliente, boasVindas EmailBoasVindas) *Handler {
	return &Handler{Repo: repo, Contas: contas, BoasVindas: boasVindas}
}

type criarRequest struct {
	NomeCliente  string       `json:"nomeCliente"`
	EmailCliente string       `json:"emailCliente"`
	CPFCliente   string       `json:"cpfCliente"`
	Telefone     string       `json:"telefone"`
	Tipo         string       `json:"tipo"`
	Valor        float64      `json:"valor"`
	Status       string       `json:"status"`
	CamposExtras []CampoExtra `json:"camposExtras"`
}

type atualizarStatusRequest struct {
	Status string            `json:"status"`
	Campos map[string]string `json:"campos"`
}

type atualizarCamposRequest struct {
	CamposExtras []CampoExtra `json:"camposExtras"`
}

// resumoResponse acrescenta ao processo os dados derivados que o quadro
// usa para pintar os cartões.
type resumoResponse struct {
	Processo
	Porcentagem int                     `json:"porcentagem"`
	Pendencia   pendencia.Classificacao `json:"pendencia"`
}

func resumo(p Processo) resumoResponse {
	return resumoResponse{
		Processo:    p,
		Porcentagem: etapa.Porcentagem(p.Status),
		Pendencia:   pendencia.Classificar(p.ValorCampo),
	}
}

// Criar trata POST /processos (equipe). O processo nasce na primeira
// etapa do funil com o checklist inicial, e o cliente sem conta ganha
// um pré-cadastro com senha temporária enviada por e-mail.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	atendenteID, _ := auth.UsuarioDoContexto(r.Context())

	var req criarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.NomeCliente) == "" {
		http.Error(w, "O campo 'nomeCliente' é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Valor < 0 {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}

	status := req.Status
	if status == "" {
		status = etapa.Primeira().ID
	}
	if !etapa.Valida(status) {
		http.Error(w, "Etapa desconhecida", http.StatusBadRequest)
		return
	}

	var clienteID, senha string
	if h.Contas != nil && req.EmailCliente != "" {
		var err error
		clienteID, senha, err = h.Contas.CriarCliente(req.NomeCliente, req.EmailCliente)
		if err != nil {
			http.Error(w, "Erro ao criar conta do cliente", http.StatusInternalServerError)
			return
		}
	}

	agora := time.Now()
	p := Processo{
		ID:           uuid.NewString(),
		CreatedAt:    agora,
		UpdatedAt:    agora,
		NomeCliente:  req.NomeCliente,
		ClienteID:    clienteID,
		EmailCliente: strings.ToLower(strings.TrimSpace(req.EmailCliente)),
		CPFCliente:   req.CPFCliente,
		Tipo:         req.Tipo,
		Valor:        req.Valor,
		Status:       status,
		AtendenteID:  atendenteID,
		CamposExtras: append([]CampoExtra(nil), req.CamposExtras...),
	}
	if req.Telefone != "" {
		p.DefinirCampo("Telefone", req.Telefone)
	}
	for _, nome := range ChecklistInicial {
		p.Documentos = append(p.Documentos, Documento{
			ID:     uuid.NewString(),
			Nome:   nome,
			Status: DocPendente,
		})
	}

	if err := h.Repo.Salvar(&p); err != nil {
		http.Error(w, "Erro ao salvar processo", http.StatusInternalServerError)
		return
	}

	// Boas-vindas best-effort: o processo já está criado.
	if h.BoasVindas != nil && senha != "" {
		if err := h.BoasVindas.EnviarBoasVindas(p.NomeCliente, p.EmailCliente, senha); err != nil {
			slog.Warn("falha no e-mail de boas-vindas", "processo", p.ID, "erro", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resumo(p))
}

// Listar trata GET /processos com o recorte por papel: admin vê tudo,
// atendente vê os seus, cliente vê os próprios (com fallback pelo
// e-mail autenticado para processos pré-cadastrados).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, papel := auth.UsuarioDoContexto(r.Context())

	var (
		list []Processo
		err  error
	)
	switch papel {
	case auth.PapelAdmin:
		list, err = h.Repo.ListarTodos()
	case auth.PapelAtendente:
		list, err = h.Repo.ListarPorAtendente(userID)
	default:
		// O e-mail do fallback sai do token, nunca da query string:
		// com parâmetro livre qualquer cliente listaria os processos
		// de outro.
		list, err = h.Repo.ListarPorCliente(userID, auth.EmailDoContexto(r.Context()))
	}
	if err != nil {
		http.Error(w, "Erro ao listar processos", http.StatusInternalServerError)
		return
	}

	out := make([]resumoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, resumo(p))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// BuscarPorID trata GET /processos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregarComPermissao(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo(*p))
}

// AtualizarStatus trata PATCH /processos/{id}/status (equipe): aplica a
// transição de etapa com os campos capturados no formulário. A
// notificação ao cliente é um passo separado do chamador.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "O campo 'status' é obrigatório", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	atualizado, err := Transicionar(*p, req.Status, req.Campos, time.Now())
	if err != nil {
		var faltando *ErrCampoObrigatorio
		switch {
		case errors.Is(err, etapa.ErrEtapaDesconhecida):
			http.Error(w, "Etapa desconhecida", http.StatusBadRequest)
		case errors.As(err, &faltando):
			http.Error(w, "Campo obrigatório ausente: "+faltando.Campo, http.StatusBadRequest)
		default:
			http.Error(w, "Erro ao mudar etapa", http.StatusInternalServerError)
		}
		return
	}

	if err := h.Repo.Atualizar(&atualizado); err != nil {
		http.Error(w, "Erro ao atualizar processo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo(atualizado))
}

// AtualizarCampos trata PUT /processos/{id}/campos (equipe): substitui
// a lista de campos personalizados.
func (h *Handler) AtualizarCampos(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req atualizarCamposRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return
	}

	p.CamposExtras = append([]CampoExtra(nil), req.CamposExtras...)
	p.UpdatedAt = time.Now()
	if err := h.Repo.Atualizar(p); err != nil {
		http.Error(w, "Erro ao atualizar campos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo(*p))
}

// carregarComPermissao busca o processo e aplica a regra de acesso:
// equipe ou dono, por id do cliente ou pelo e-mail autenticado (o
// mesmo fallback da listagem, para processos pré-cadastrados).
func (h *Handler) carregarComPermissao(w http.ResponseWriter, r *http.Request) (*Processo, bool) {
	id := mux.Vars(r)["id"]
	userID, papel := auth.UsuarioDoContexto(r.Context())

	p, err := h.Repo.BuscarPorID(id)
	if err != nil {
		http.Error(w, "Processo não encontrado", http.StatusNotFound)
		return nil, false
	}
	if !papel.Equipe() && !Dono(p, userID, auth.EmailDoContexto(r.Context())) {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return nil, false
	}
	return p, true
}

// Dono informa se o usuário autenticado é o cliente do processo, por
// id da conta ou pelo e-mail do pré-cadastro.
func Dono(p *Processo, userID, email string) bool {
	if p.ClienteID != "" && p.ClienteID == userID {
		return true
	}
	return email != "" && p.EmailCliente == email
}
