package usuario

import (
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
)

type Usuario struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"usuarioId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nome  string     `json:"nome"`
	Email string     `gorm:"uniqueIndex" json:"email"`
	Senha string     `json:"-"`
	Papel auth.Papel `gorm:"size:20" json:"papel"`

	PrecisaRedefinirSenha bool `json:"-"`
}

// AtendenteAutorizado é a lista de e-mails liberados pelo admin: quem
// se cadastrar com um deles recebe o papel de atendente.
type AtendenteAutorizado struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex" json:"email"`
}
