package mensagem

import (
	"sort"
	"sync"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(m *Mensagem) error
	ListarPorProcesso(processoID string) ([]Mensagem, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Salvar(m *Mensagem) error {
	return r.db.Create(m).Error
}

func (r *gormRepository) ListarPorProcesso(processoID string) ([]Mensagem, error) {
	var list []Mensagem
	err := r.db.
		Where("processo_id = ?", processoID).
		Order("criada_em asc").
		Find(&list).Error
	return list, err
}

type memoriaRepository struct {
	mu   sync.RWMutex
	list []Mensagem
}

func NewRepositoryMemoria() Repository {
	return &memoriaRepository{}
}

func (r *memoriaRepository) Salvar(m *Mensagem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, *m)
	return nil
}

func (r *memoriaRepository) ListarPorProcesso(processoID string) ([]Mensagem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Mensagem
	for _, m := range r.list {
		if m.ProcessoID == processoID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CriadaEm.Before(out[j].CriadaEm) })
	return out, nil
}
