package mensagem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

func comUsuario(r *http.Request, userID, email string, papel auth.Papel) *http.Request {
	ctx := context.WithValue(r.Context(), auth.CtxUserID, userID)
	ctx = context.WithValue(ctx, auth.CtxEmail, email)
	ctx = context.WithValue(ctx, auth.CtxPapel, papel)
	return r.WithContext(ctx)
}

func novoHandler(t *testing.T) *Handler {
	t.Helper()
	processos := processo.NewRepositoryMemoria()
	require.NoError(t, processos.Salvar(&processo.Processo{
		ID:           "p-1",
		ClienteID:    "dono-id",
		EmailCliente: "dono@example.com",
		Status:       etapa.AnaliseCredito,
	}))
	return NewHandler(NewServico(NewRepositoryMemoria(), nil, processos), nil)
}

func requisicaoChat(metodo, corpo, userID, email string, papel auth.Papel) *http.Request {
	r := httptest.NewRequest(metodo, "/processos/p-1/mensagens", strings.NewReader(corpo))
	r = mux.SetURLVars(r, map[string]string{"id": "p-1"})
	return comUsuario(r, userID, email, papel)
}

func TestListarChatNegaClienteAlheio(t *testing.T) {
	h := novoHandler(t)

	w := httptest.NewRecorder()
	h.Listar(w, requisicaoChat(http.MethodGet, "", "intruso-id", "intruso@example.com", auth.PapelCliente))

	assert.Equal(t, http.StatusForbidden, w.Code,
		"saber o id do processo não dá acesso ao chat")
}

func TestEnviarChatNegaClienteAlheio(t *testing.T) {
	h := novoHandler(t)

	w := httptest.NewRecorder()
	h.Enviar(w, requisicaoChat(http.MethodPost, `{"conteudo":"oi"}`, "intruso-id", "intruso@example.com", auth.PapelCliente))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatPermiteDonoEEquipe(t *testing.T) {
	h := novoHandler(t)

	w := httptest.NewRecorder()
	h.Enviar(w, requisicaoChat(http.MethodPost, `{"conteudo":"bom dia"}`, "dono-id", "dono@example.com", auth.PapelCliente))
	require.Equal(t, http.StatusCreated, w.Code)

	// dono por fallback de e-mail (processo pré-cadastrado)
	w = httptest.NewRecorder()
	h.Listar(w, requisicaoChat(http.MethodGet, "", "outra-conta", "dono@example.com", auth.PapelCliente))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Listar(w, requisicaoChat(http.MethodGet, "", "atendente-id", "atendente@example.com", auth.PapelAtendente))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bom dia")
}

func TestChatProcessoInexistente(t *testing.T) {
	h := novoHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/processos/p-9/mensagens", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "p-9"})
	r = comUsuario(r, "dono-id", "dono@example.com", auth.PapelCliente)
	w := httptest.NewRecorder()

	h.Listar(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeWSNegaClienteAlheio(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	processos := processo.NewRepositoryMemoria()
	require.NoError(t, processos.Salvar(&processo.Processo{
		ID:           "p-1",
		ClienteID:    "dono-id",
		EmailCliente: "dono@example.com",
	}))
	hub := NewHub(processos)

	intruso, err := auth.GerarToken("intruso-id", "intruso@example.com", auth.PapelCliente)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/ws?token="+intruso+"&processo=p-1", nil)
	w := httptest.NewRecorder()
	hub.ServeWS(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code,
		"token válido de outro cliente não assina o canal do processo")

	semToken := httptest.NewRequest(http.MethodGet, "/ws?processo=p-1", nil)
	w = httptest.NewRecorder()
	hub.ServeWS(w, semToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
