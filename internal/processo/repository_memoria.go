package processo

import (
	"sort"
	"sync"
)

// memoriaRepository guarda um registro JSON-like por processo, como um
// banco de documentos. Usado nos testes e via STORAGE_DRIVER=memoria.
type memoriaRepository struct {
	mu        sync.RWMutex
	processos map[string]Processo
}

func NewRepositoryMemoria() Repository {
	return &memoriaRepository{processos: make(map[string]Processo)}
}

func (r *memoriaRepository) Salvar(p *Processo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processos[p.ID] = p.Clonar()
	return nil
}

func (r *memoriaRepository) Atualizar(p *Processo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.processos[p.ID]; !ok {
		return ErrProcessoNaoEncontrado
	}
	// Last-write-wins no registro inteiro, sem detecção de conflito.
	r.processos[p.ID] = p.Clonar()
	return nil
}

func (r *memoriaRepository) BuscarPorID(id string) (*Processo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processos[id]
	if !ok {
		return nil, ErrProcessoNaoEncontrado
	}
	c := p.Clonar()
	return &c, nil
}

func (r *memoriaRepository) ListarTodos() ([]Processo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Processo, 0, len(r.processos))
	for _, p := range r.processos {
		list = append(list, p.Clonar())
	}
	ordenarPorAtualizacao(list)
	return list, nil
}

func (r *memoriaRepository) ListarPorAtendente(atendenteID string) ([]Processo, error) {
	return r.filtrar(func(p Processo) bool { return p.AtendenteID == atendenteID })
}

func (r *memoriaRepository) ListarPorCliente(clienteID, email string) ([]Processo, error) {
	return r.filtrar(func(p Processo) bool {
		if p.ClienteID == clienteID {
			return true
		}
		return email != "" && p.EmailCliente == email
	})
}

func (r *memoriaRepository) filtrar(keep func(Processo) bool) ([]Processo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []Processo
	for _, p := range r.processos {
		if keep(p) {
			list = append(list, p.Clonar())
		}
	}
	ordenarPorAtualizacao(list)
	return list, nil
}

func ordenarPorAtualizacao(list []Processo) {
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
}
