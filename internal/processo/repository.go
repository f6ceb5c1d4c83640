package processo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrProcessoNaoEncontrado = errors.New("processo não encontrado")

// Repository abstrai o armazenamento de processos. Há duas
// implementações intercambiáveis: Postgres (gorm) e um banco de
// documentos em memória, escolhidas na inicialização.
type Repository interface {
	Salvar(p *Processo) error
	Atualizar(p *Processo) error
	BuscarPorID(id string) (*Processo, error)
	ListarTodos() ([]Processo, error)
	ListarPorAtendente(atendenteID string) ([]Processo, error)
	// ListarPorCliente busca por id do cliente, com fallback por e-mail
	// para processos pré-cadastrados antes do cliente ter conta.
	ListarPorCliente(clienteID, email string) ([]Processo, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Salvar(p *Processo) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) Atualizar(p *Processo) error {
	return r.db.Save(p).Error
}

func (r *gormRepository) BuscarPorID(id string) (*Processo, error) {
	var p Processo
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcessoNaoEncontrado
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) ListarTodos() ([]Processo, error) {
	var list []Processo
	err := r.db.Order("updated_at desc").Find(&list).Error
	return list, err
}

func (r *gormRepository) ListarPorAtendente(atendenteID string) ([]Processo, error) {
	var list []Processo
	err := r.db.
		Where("atendente_id = ?", atendenteID).
		Order("updated_at desc").
		Find(&list).Error
	return list, err
}

func (r *gormRepository) ListarPorCliente(clienteID, email string) ([]Processo, error) {
	var list []Processo
	q := r.db.Where("cliente_id = ?", clienteID)
	if email != "" {
		q = r.db.Where("cliente_id = ? OR email_cliente = ?", clienteID, email)
	}
	err := q.Order("updated_at desc").Find(&list).Error
	return list, err
}
