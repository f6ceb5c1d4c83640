package processo

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
)

// Metricas são os números do painel administrativo.
type Metricas struct {
	Total              int            `json:"total"`
	AnaliseCredito     int            `json:"creditAnalysis"`
	Avaliacao          int            `json:"valuation"`
	AnaliseJuridica    int            `json:"legalAnalysis"`
	EmissaoITBI        int            `json:"itbiEmission"`
	AssinaturaContrato int            `json:"contractSigning"`
	Pendencias         int            `json:"pending"`
	VolumeMensal       []VolumeMensal `json:"monthlyVolume"`
}

type VolumeMensal struct {
	Nome  string `json:"name"`
	Valor int    `json:"value"`
}

var mesesAbreviados = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// CalcularMetricas agrega os processos por etapa e por mês de criação
// (últimos seis meses).
func CalcularMetricas(processos []Processo, agora time.Time) Metricas {
	m := Metricas{Total: len(processos)}
	for _, p := range processos {
		switch p.Status {
		case etapa.AnaliseCredito:
			m.AnaliseCredito++
		case etapa.Avaliacao:
			m.Avaliacao++
		case etapa.AnaliseJuridica:
			m.AnaliseJuridica++
		case etapa.EmissaoITBI:
			m.EmissaoITBI++
		case etapa.AssinaturaContrato:
			m.AssinaturaContrato++
		case etapa.PendenciaCliente, etapa.PendenciaInterna:
			m.Pendencias++
		}
	}

	// Ancorado no dia 1 para a aritmética de meses não normalizar
	// datas de fim de mês (31 de março - 1 mês cairia em 3 de março).
	base := time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
	for i := 5; i >= 0; i-- {
		ref := base.AddDate(0, -i, 0)
		vm := VolumeMensal{Nome: mesesAbreviados[int(ref.Month())-1]}
		for _, p := range processos {
			if p.CreatedAt.Year() == ref.Year() && p.CreatedAt.Month() == ref.Month() {
				vm.Valor++
			}
		}
		m.VolumeMensal = append(m.VolumeMensal, vm)
	}
	return m
}

// Metricas trata GET /metricas (equipe).
func (h *Handler) Metricas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarTodos()
	if err != nil {
		http.Error(w, "Erro ao calcular métricas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CalcularMetricas(list, time.Now()))
}
