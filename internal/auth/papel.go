package auth

// Papel identifica o perfil de acesso de um usuário.
type Papel string

const (
	PapelAdmin     Papel = "admin"
	PapelAtendente Papel = "attendant"
	PapelCliente   Papel = "client"
)

// Equipe informa se o papel pertence à equipe interna (admin ou atendente).
func (p Papel) Equipe() bool {
	return p == PapelAdmin || p == PapelAtendente
}

// Valido informa se a string corresponde a um papel conhecido.
func (p Papel) Valido() bool {
	return p == PapelAdmin || p == PapelAtendente || p == PapelCliente
}
