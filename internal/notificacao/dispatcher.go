package notificacao

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

// Canal de entrega de uma notificação.
type Canal string

const (
	CanalEmail Canal = "email"
	CanalSMS   Canal = "sms"
	CanalChat  Canal = "chat"
)

var (
	ErrCanalDesconhecido   = errors.New("canal de notificação desconhecido")
	ErrEntregaNotificacao  = errors.New("falha na entrega da notificação")
	ErrDestinatarioAusente = errors.New("processo sem contato para o canal escolhido")
)

// Contratos dos remetentes externos. Cada um pode falhar de forma
// independente; o dispatcher nunca propaga a falha para a mutação que
// a originou.
type RemetenteEmail interface {
	EnviarEmail(para, assunto, html string) error
}

type RemetenteSMS interface {
	EnviarSMS(para, texto string) error
}

type RemetenteChat interface {
	EnviarChat(processoID string, papel auth.Papel, texto string) error
}

// Notificador compõe e entrega mensagens pelos canais configurados.
type Notificador struct {
	Email RemetenteEmail
	SMS   RemetenteSMS
	Chat  RemetenteChat
}

// Notificar entrega a mensagem pelo canal. O erro retornado serve só
// para o aviso na interface: a mudança de etapa/documento que disparou
// a notificação já foi persistida e não é desfeita.
func (n *Notificador) Notificar(p processo.Processo, canal Canal, mensagem string) error {
	var err error
	switch canal {
	case CanalEmail:
		if n.Email == nil || p.EmailCliente == "" {
			err = ErrDestinatarioAusente
			break
		}
		err = n.Email.EnviarEmail(p.EmailCliente, AssuntoEtapa(p), mensagem)
	case CanalSMS:
		telefone, _ := p.ValorCampo("Telefone")
		if n.SMS == nil || telefone == "" {
			err = ErrDestinatarioAusente
			break
		}
		err = n.SMS.EnviarSMS(telefone, mensagem)
	case CanalChat:
		if n.Chat == nil {
			err = ErrDestinatarioAusente
			break
		}
		err = n.Chat.EnviarChat(p.ID, auth.PapelAtendente, mensagem)
	default:
		return ErrCanalDesconhecido
	}

	if err != nil {
		slog.Warn("falha ao notificar cliente",
			"processo", p.ID,
			"canal", string(canal),
			"erro", err)
		if errors.Is(err, ErrDestinatarioAusente) || errors.Is(err, ErrCanalDesconhecido) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrEntregaNotificacao, err)
	}
	slog.Info("notificação entregue", "processo", p.ID, "canal", string(canal))
	return nil
}
