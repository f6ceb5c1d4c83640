package processo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
)

func comUsuario(r *http.Request, userID, email string, papel auth.Papel) *http.Request {
	ctx := context.WithValue(r.Context(), auth.CtxUserID, userID)
	ctx = context.WithValue(ctx, auth.CtxEmail, email)
	ctx = context.WithValue(ctx, auth.CtxPapel, papel)
	return r.WithContext(ctx)
}

func repoComVitima(t *testing.T) Repository {
	t.Helper()
	repo := NewRepositoryMemoria()
	require.NoError(t, repo.Salvar(&Processo{
		ID:           "p-vitima",
		NomeCliente:  "Vítima Silva",
		EmailCliente: "vitima@example.com",
		Status:       etapa.AnaliseCredito,
		UpdatedAt:    time.Now(),
	}))
	return repo
}

func TestListarClienteIgnoraEmailDaQuery(t *testing.T) {
	h := NewHandler(repoComVitima(t), nil, nil)

	// cliente autenticado como outra pessoa tenta listar pelo e-mail
	// da vítima via query string
	r := httptest.NewRequest(http.MethodGet, "/processos?email=vitima@example.com", nil)
	r = comUsuario(r, "atacante-id", "atacante@example.com", auth.PapelCliente)
	w := httptest.NewRecorder()

	h.Listar(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "p-vitima",
		"o recorte por e-mail usa o token, não parâmetro da requisição")
}

func TestListarClientePreCadastradoPeloEmailDoToken(t *testing.T) {
	h := NewHandler(repoComVitima(t), nil, nil)

	// a dona do processo ainda não tem ClienteID vinculado; o fallback
	// usa o e-mail autenticado
	r := httptest.NewRequest(http.MethodGet, "/processos", nil)
	r = comUsuario(r, "vitima-id", "vitima@example.com", auth.PapelCliente)
	w := httptest.NewRecorder()

	h.Listar(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p-vitima")
}

func TestBuscarPorIDNegaClienteAlheio(t *testing.T) {
	h := NewHandler(repoComVitima(t), nil, nil)

	r := httptest.NewRequest(http.MethodGet, "/processos/p-vitima?email=vitima@example.com", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "p-vitima"})
	r = comUsuario(r, "atacante-id", "atacante@example.com", auth.PapelCliente)
	w := httptest.NewRecorder()

	h.BuscarPorID(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBuscarPorIDDonoPorEmail(t *testing.T) {
	h := NewHandler(repoComVitima(t), nil, nil)

	r := httptest.NewRequest(http.MethodGet, "/processos/p-vitima", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "p-vitima"})
	r = comUsuario(r, "vitima-id", "vitima@example.com", auth.PapelCliente)
	w := httptest.NewRecorder()

	h.BuscarPorID(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"porcentagem":20`)
}

func TestResumoDerivaPendencia(t *testing.T) {
	repo := NewRepositoryMemoria()
	p := Processo{ID: "p-1", Status: etapa.AnaliseJuridica}
	p.DefinirCampo("pendency_type", "client")
	require.NoError(t, repo.Salvar(&p))
	h := NewHandler(repo, nil, nil)

	r := httptest.NewRequest(http.MethodGet, "/processos/p-1", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "p-1"})
	r = comUsuario(r, "admin-id", "admin@example.com", auth.PapelAdmin)
	w := httptest.NewRecorder()

	h.BuscarPorID(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"temPendencia":true`)
	assert.Contains(t, w.Body.String(), `"cliente":true`)
}

func TestDono(t *testing.T) {
	p := &Processo{ClienteID: "c-1", EmailCliente: "cliente@example.com"}

	assert.True(t, Dono(p, "c-1", ""))
	assert.True(t, Dono(p, "outro", "cliente@example.com"))
	assert.False(t, Dono(p, "outro", "intruso@example.com"))

	preCadastro := &Processo{EmailCliente: "cliente@example.com"}
	assert.False(t, Dono(preCadastro, "", ""), "processo sem conta não casa com id vazio")
	assert.True(t, Dono(preCadastro, "qualquer", "cliente@example.com"))
}
