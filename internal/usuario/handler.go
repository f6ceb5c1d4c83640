package usuario

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/utils"
)

type Handler struct {
	Repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{Repo: repo}
}

type registrarRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token   string   `json:"token"`
	Usuario *Usuario `json:"usuario"`
}

type convidarRequest struct {
	Email string `json:"email"`
}

// Registrar trata POST /registrar. Todo cadastro nasce como cliente;
// e-mails previamente autorizados pelo admin entram como atendente.
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	var req registrarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "Nome e email são obrigatórios", http.StatusBadRequest)
		return
	}
	if len(req.Senha) < 6 {
		http.Error(w, "A senha deve ter pelo menos 6 caracteres", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.BuscarPorEmail(req.Email); err == nil {
		http.Error(w, "Este email já está cadastrado", http.StatusConflict)
		return
	}

	papel := auth.PapelCliente
	if ok, _ := h.Repo.AtendenteAutorizado(req.Email); ok {
		papel = auth.PapelAtendente
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "Erro ao criar conta", http.StatusInternalServerError)
		return
	}

	u := &Usuario{
		ID:    uuid.NewString(),
		Nome:  req.Nome,
		Email: req.Email,
		Senha: hash,
		Papel: papel,
	}
	if err := h.Repo.Salvar(u); err != nil {
		http.Error(w, "Erro ao criar conta", http.StatusInternalServerError)
		return
	}

	token, err := auth.GerarToken(u.ID, u.Email, u.Papel)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(loginResponse{Token: token, Usuario: u})
}

// Login trata POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.BuscarPorEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !utils.CheckSenha(u.Senha, req.Senha) {
		http.Error(w, "Email ou senha incorretos", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(u.ID, u.Email, u.Papel)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{Token: token, Usuario: u})
}

// Me trata GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UsuarioDoContexto(r.Context())
	u, err := h.Repo.BuscarPorID(userID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// ConvidarAtendente trata POST /atendentes/convites (somente admin).
func (h *Handler) ConvidarAtendente(w http.ResponseWriter, r *http.Request) {
	var req convidarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		http.Error(w, "O campo 'email' é obrigatório", http.StatusBadRequest)
		return
	}
	if err := h.Repo.AutorizarAtendente(email); err != nil {
		http.Error(w, "Erro ao autorizar email (talvez já esteja autorizado)", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
