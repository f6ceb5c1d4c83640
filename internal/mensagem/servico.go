package mensagem

import (
	"time"

	"github.com/google/uuid"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

// Servico grava mensagens, difunde no hub e mantém o indicador de
// não lido do processo. Também serve de remetente de chat para o
// dispatcher de notificações.
type Servico struct {
	Repo      Repository
	Hub       *Hub
	Processos processo.Repository
}

func NewServico(repo Repository, hub *Hub, processos processo.Repository) *Servico {
	return &Servico{Repo: repo, Hub: hub, Processos: processos}
}

// Publicar grava e difunde uma mensagem no chat do processo.
func (s *Servico) Publicar(processoID, remetenteID, nome string, papel auth.Papel, conteudo string) (*Mensagem, error) {
	m := &Mensagem{
		ID:            uuid.NewString(),
		ProcessoID:    processoID,
		RemetenteID:   remetenteID,
		NomeRemetente: nome,
		Papel:         papel,
		Conteudo:      conteudo,
		CriadaEm:      time.Now(),
	}
	if err := s.Repo.Salvar(m); err != nil {
		return nil, err
	}
	if s.Hub != nil {
		s.Hub.Difundir(*m)
	}
	s.marcarNaoLido(processoID)
	return m, nil
}

// EnviarChat implementa o contrato de remetente do dispatcher de
// notificações: mensagens automáticas entram no chat como "sistema".
func (s *Servico) EnviarChat(processoID string, papel auth.Papel, texto string) error {
	_, err := s.Publicar(processoID, "sistema", "Prime Habitação", papel, texto)
	return err
}

func (s *Servico) marcarNaoLido(processoID string) {
	p, err := s.Processos.BuscarPorID(processoID)
	if err != nil || p.NaoLido {
		return
	}
	p.NaoLido = true
	_ = s.Processos.Atualizar(p)
}

// MarcarLido zera o indicador quando o histórico é aberto.
func (s *Servico) MarcarLido(processoID string) {
	p, err := s.Processos.BuscarPorID(processoID)
	if err != nil || !p.NaoLido {
		return
	}
	p.NaoLido = false
	_ = s.Processos.Atualizar(p)
}
