// Package coordenador liga o checklist de documentos ao motor de
// transição: quando todos os documentos de um processo na primeira
// etapa do funil são aprovados, o processo avança sozinho para a etapa
// seguinte. Manter a regra aqui deixa os dois motores desacoplados.
package coordenador

import (
	"log/slog"
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/documento"
	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/notificacao"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

type Coordenador struct {
	Repo        processo.Repository
	Notificador *notificacao.Notificador

	// Agora permite fixar o relógio nos testes; nil usa time.Now.
	Agora func() time.Time
}

func New(repo processo.Repository, n *notificacao.Notificador) *Coordenador {
	return &Coordenador{Repo: repo, Notificador: n}
}

func (c *Coordenador) agora() time.Time {
	if c.Agora != nil {
		return c.Agora()
	}
	return time.Now()
}

// DocumentosAprovados trata o evento "todos os documentos aprovados".
// Relê o processo do repositório em vez de confiar na cópia em memória
// de quem aprovou: outra sessão pode ter mexido no checklist entre a
// gravação e esta checagem. Se o processo ainda está na primeira etapa
// do funil com tudo aprovado, avança uma etapa; senão é no-op, o que
// torna a regra idempotente.
func (c *Coordenador) DocumentosAprovados(processoID string) (*processo.Processo, bool, error) {
	p, err := c.Repo.BuscarPorID(processoID)
	if err != nil {
		return nil, false, err
	}
	if p.Status != etapa.Primeira().ID || !documento.TodosAprovados(*p) {
		return p, false, nil
	}
	proxima, ok := etapa.Proxima(p.Status)
	if !ok {
		return p, false, nil
	}

	avancado, err := processo.Avancar(*p, proxima.ID, c.agora())
	if err != nil {
		return p, false, err
	}
	if err := c.Repo.Atualizar(&avancado); err != nil {
		return p, false, err
	}
	slog.Info("processo avançou automaticamente",
		"processo", avancado.ID,
		"etapa", avancado.Status)

	// Notificação best-effort, depois da gravação; falha de entrega
	// nunca desfaz o avanço.
	if c.Notificador != nil {
		mensagem := notificacao.ComporMensagemEtapa(avancado)
		if err := c.Notificador.Notificar(avancado, notificacao.CanalEmail, mensagem); err != nil {
			slog.Warn("avanço automático sem notificação", "processo", avancado.ID, "erro", err)
		}
	}
	return &avancado, true, nil
}
