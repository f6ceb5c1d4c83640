package usuario

import (
	"github.com/google/uuid"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/utils"
)

// Contas expõe o pré-cadastro de clientes feito pela equipe: a conta
// nasce com senha temporária e marcada para redefinição.
type Contas struct {
	Repo Repository
}

func (c *Contas) CriarCliente(nome, email string) (string, string, error) {
	// Conta já existente: o processo novo é ligado a ela, sem nova senha.
	if existente, err := c.Repo.BuscarPorEmail(email); err == nil {
		return existente.ID, "", nil
	}

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		return "", "", err
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return "", "", err
	}

	u := &Usuario{
		ID:                    uuid.NewString(),
		Nome:                  nome,
		Email:                 email,
		Senha:                 hash,
		Papel:                 auth.PapelCliente,
		PrecisaRedefinirSenha: true,
	}
	if err := c.Repo.Salvar(u); err != nil {
		return "", "", err
	}
	return u.ID, senha, nil
}
