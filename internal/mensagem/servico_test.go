package mensagem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

func novoServico(t *testing.T) (*Servico, processo.Repository) {
	t.Helper()
	processos := processo.NewRepositoryMemoria()
	require.NoError(t, processos.Salvar(&processo.Processo{
		ID:     "p-1",
		Status: etapa.AnaliseCredito,
	}))
	return NewServico(NewRepositoryMemoria(), nil, processos), processos
}

func TestPublicarGravaEMarcaNaoLido(t *testing.T) {
	s, processos := novoServico(t)

	m, err := s.Publicar("p-1", "u-1", "Maria", auth.PapelCliente, "Bom dia!")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Bom dia!", m.Conteudo)

	hist, err := s.Repo.ListarPorProcesso("p-1")
	require.NoError(t, err)
	require.Len(t, hist, 1)

	p, err := processos.BuscarPorID("p-1")
	require.NoError(t, err)
	assert.True(t, p.NaoLido, "mensagem nova acende o indicador do processo")
}

func TestMarcarLidoApagaIndicador(t *testing.T) {
	s, processos := novoServico(t)
	_, err := s.Publicar("p-1", "u-1", "Maria", auth.PapelCliente, "Oi")
	require.NoError(t, err)

	s.MarcarLido("p-1")

	p, err := processos.BuscarPorID("p-1")
	require.NoError(t, err)
	assert.False(t, p.NaoLido)
}

func TestEnviarChatEntraComoSistema(t *testing.T) {
	s, _ := novoServico(t)

	require.NoError(t, s.EnviarChat("p-1", auth.PapelAtendente, "Seu processo avançou."))

	hist, err := s.Repo.ListarPorProcesso("p-1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "sistema", hist[0].RemetenteID)
	assert.Equal(t, auth.PapelAtendente, hist[0].Papel)
}
