package processo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
)

// ErrCampoObrigatorio indica transição submetida sem um campo exigido
// pela etapa de destino. Nenhuma mutação é aplicada nesse caso.
type ErrCampoObrigatorio struct {
	Campo string
}

func (e *ErrCampoObrigatorio) Error() string {
	return fmt.Sprintf("campo obrigatório ausente: %s", e.Campo)
}

// Transicionar aplica a mudança de etapa com os dados capturados pela
// equipe. Valida antes de mutar: em caso de erro o processo de entrada
// permanece intacto (UpdatedAt inclusive). Mover para trás no funil é
// permitido; o fluxo normal da interface é só para frente.
func Transicionar(p Processo, destino string, campos map[string]string, agora time.Time) (Processo, error) {
	def, err := etapa.Buscar(destino)
	if err != nil {
		return p, err
	}

	for _, regra := range def.Campos {
		if !regra.Obrigatorio || !regra.Aplicavel(campos) {
			continue
		}
		if strings.TrimSpace(campos[regra.Nome]) == "" {
			return p, &ErrCampoObrigatorio{Campo: regra.Nome}
		}
	}

	finais := normalizarCaptura(destino, campos)

	atualizado := p.Clonar()
	// Mescla por rótulo, last-write-wins; ordem determinística para os
	// rótulos novos.
	rotulos := make([]string, 0, len(finais))
	for r := range finais {
		rotulos = append(rotulos, r)
	}
	sort.Strings(rotulos)
	for _, r := range rotulos {
		atualizado.DefinirCampo(r, finais[r])
	}
	atualizado.Status = destino
	atualizado.UpdatedAt = agora
	return atualizado, nil
}

// Avancar move o processo sem captura de dados. É o caminho usado pelo
// coordenador no avanço automático, onde não há equipe preenchendo
// formulário.
func Avancar(p Processo, destino string, agora time.Time) (Processo, error) {
	if !etapa.Valida(destino) {
		return p, etapa.ErrEtapaDesconhecida
	}
	atualizado := p.Clonar()
	atualizado.Status = destino
	atualizado.UpdatedAt = agora
	return atualizado, nil
}

// normalizarCaptura trata o caso especial da análise jurídica: o campo
// auxiliar has_pendency apenas decide quais campos se aplicam e é
// descartado; pendency_type é canonizado para client/internal/none.
func normalizarCaptura(destino string, campos map[string]string) map[string]string {
	finais := make(map[string]string, len(campos))
	for k, v := range campos {
		finais[k] = v
	}
	if destino != etapa.AnaliseJuridica {
		return finais
	}

	switch finais["has_pendency"] {
	case "Não":
		finais["pendency_type"] = "none"
		delete(finais, "pendency_desc")
	case "Sim":
		switch tipo := finais["pendency_type"]; {
		case strings.EqualFold(tipo, "Cliente") || strings.EqualFold(tipo, "client"):
			finais["pendency_type"] = "client"
		case strings.EqualFold(tipo, "Interna") || strings.EqualFold(tipo, "internal"):
			finais["pendency_type"] = "internal"
		}
	}
	delete(finais, "has_pendency")
	return finais
}
