package usuario

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

var ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")

type Repository interface {
	Salvar(u *Usuario) error
	BuscarPorID(id string) (*Usuario, error)
	BuscarPorEmail(email string) (*Usuario, error)
	NomePorID(id string) (string, error)
	AutorizarAtendente(email string) error
	AtendenteAutorizado(email string) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Salvar(u *Usuario) error {
	return r.db.Create(u).Error
}

func (r *gormRepository) BuscarPorID(id string) (*Usuario, error) {
	var u Usuario
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormRepository) NomePorID(id string) (string, error) {
	u, err := r.BuscarPorID(id)
	if err != nil {
		return "", err
	}
	return u.Nome, nil
}

func (r *gormRepository) AutorizarAtendente(email string) error {
	return r.db.Create(&AtendenteAutorizado{Email: email}).Error
}

func (r *gormRepository) AtendenteAutorizado(email string) (bool, error) {
	var n int64
	err := r.db.Model(&AtendenteAutorizado{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// memoriaRepository acompanha o adaptador de documentos dos processos,
// para subir o serviço inteiro sem Postgres.
type memoriaRepository struct {
	mu          sync.RWMutex
	porID       map[string]Usuario
	autorizados map[string]bool
}

func NewRepositoryMemoria() Repository {
	return &memoriaRepository{
		porID:       make(map[string]Usuario),
		autorizados: make(map[string]bool),
	}
}

func (r *memoriaRepository) Salvar(u *Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existente := range r.porID {
		if existente.Email == u.Email {
			return errors.New("email já cadastrado")
		}
	}
	r.porID[u.ID] = *u
	return nil
}

func (r *memoriaRepository) BuscarPorID(id string) (*Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.porID[id]
	if !ok {
		return nil, ErrUsuarioNaoEncontrado
	}
	return &u, nil
}

func (r *memoriaRepository) BuscarPorEmail(email string) (*Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.porID {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, ErrUsuarioNaoEncontrado
}

func (r *memoriaRepository) NomePorID(id string) (string, error) {
	u, err := r.BuscarPorID(id)
	if err != nil {
		return "", err
	}
	return u.Nome, nil
}

func (r *memoriaRepository) AutorizarAtendente(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.autorizados[email] {
		return errors.New("email já autorizado")
	}
	r.autorizados[email] = true
	return nil
}

func (r *memoriaRepository) AtendenteAutorizado(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.autorizados[email], nil
}
