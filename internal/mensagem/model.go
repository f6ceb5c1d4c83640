package mensagem

import (
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
)

// Mensagem é uma entrada do chat de um processo.
type Mensagem struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"mensagemId"`
	ProcessoID    string     `gorm:"index;not null" json:"processoId"`
	RemetenteID   string     `json:"remetenteId"` // "sistema" para mensagens automáticas
	NomeRemetente string     `json:"nomeRemetente"`
	Papel         auth.Papel `gorm:"size:20" json:"papel"`
	Conteudo      string     `gorm:"type:text" json:"conteudo"`
	CriadaEm      time.Time  `json:"criadaEm"`
}
