package etapa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdenadasCrescenteSemPendencias(t *testing.T) {
	ord := Ordenadas()
	require.Len(t, ord, 6)

	for i := 1; i < len(ord); i++ {
		assert.Greater(t, ord[i].Porcentagem, ord[i-1].Porcentagem,
			"porcentagens devem ser estritamente crescentes")
	}
	for _, e := range ord {
		assert.False(t, e.Pendencia(), "pendências não entram no funil ordenado")
	}

	assert.Equal(t, AnaliseCredito, ord[0].ID)
	assert.Equal(t, AssinaturaContrato, ord[len(ord)-1].ID)
}

func TestBuscarDesconhecida(t *testing.T) {
	_, err := Buscar("stage_inexistente")
	assert.ErrorIs(t, err, ErrEtapaDesconhecida)
}

func TestPrimeira(t *testing.T) {
	assert.Equal(t, AnaliseCredito, Primeira().ID)
	assert.Equal(t, 20, Primeira().Porcentagem)
}

func TestProxima(t *testing.T) {
	prox, ok := Proxima(AnaliseCredito)
	require.True(t, ok)
	assert.Equal(t, Avaliacao, prox.ID)

	_, ok = Proxima(AssinaturaContrato)
	assert.False(t, ok, "a última etapa não tem sucessora")

	_, ok = Proxima(PendenciaCliente)
	assert.False(t, ok, "pendência não participa da ordem do funil")
}

func TestPorcentagemETitulo(t *testing.T) {
	assert.Equal(t, 95, Porcentagem(RegistroCartorio))
	assert.Equal(t, 0, Porcentagem("outra_coisa"))
	assert.Equal(t, "100% - Contrato", Titulo(AssinaturaContrato))
	assert.Equal(t, "xyz", Titulo("xyz"))
}

func TestCampoAplicavel(t *testing.T) {
	def, err := Buscar(AnaliseJuridica)
	require.NoError(t, err)

	var tipoPendencia Campo
	for _, c := range def.Campos {
		if c.Nome == "pendency_type" {
			tipoPendencia = c
		}
	}
	require.NotEmpty(t, tipoPendencia.Nome)

	assert.True(t, tipoPendencia.Aplicavel(map[string]string{"has_pendency": "Sim"}))
	assert.False(t, tipoPendencia.Aplicavel(map[string]string{"has_pendency": "Não"}))
	assert.False(t, tipoPendencia.Aplicavel(map[string]string{}))

	incondicional := Campo{Nome: "valuation_value"}
	assert.True(t, incondicional.Aplicavel(nil))
}
