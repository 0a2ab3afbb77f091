// Package memory implementa los puertos de repositorio en memoria de proceso.
// Es el almacén por defecto (STORE_DRIVER=memory) y el que usan los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// table colección indexada por ID que conserva el orden de inserción.
type table[T any] struct {
	rows map[string]T
	ids  []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t table[T]) clone() table[T] {
	c := table[T]{rows: make(map[string]T, len(t.rows)), ids: append([]string(nil), t.ids...)}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

func (t table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i:i], t.ids[i+1:]...)
			break
		}
	}
}

// each recorre en orden de inserción.
func (t table[T]) each(fn func(T)) {
	for _, id := range t.ids {
		fn(t.rows[id])
	}
}

// state contenido completo del almacén. Los registros guardados nunca se mutan en sitio:
// los repositorios guardan y devuelven copias, por lo que clonar los mapas basta para aislar
// una transacción.
type state struct {
	products     table[*entity.Product]
	orders       table[*entity.Order]
	entries      table[*entity.StockEntry]
	stockItems   table[*entity.StockItem]
	exits        table[*entity.StockExit]
	installments table[*entity.PaymentInstallment]
	users        table[*entity.User]
}

func newState() *state {
	return &state{
		products:     newTable[*entity.Product](),
		orders:       newTable[*entity.Order](),
		entries:      newTable[*entity.StockEntry](),
		stockItems:   newTable[*entity.StockItem](),
		exits:        newTable[*entity.StockExit](),
		installments: newTable[*entity.PaymentInstallment](),
		users:        newTable[*entity.User](),
	}
}

func (s *state) clone() *state {
	return &state{
		products:     s.products.clone(),
		orders:       s.orders.clone(),
		entries:      s.entries.clone(),
		stockItems:   s.stockItems.clone(),
		exits:        s.exits.clone(),
		installments: s.installments.clone(),
		users:        s.users.clone(),
	}
}

// Store almacén en memoria con transacciones serializadas.
// txMu serializa a todos los escritores; mu protege el puntero al estado vigente.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios que leen y escriben directamente sobre el estado vigente.
func (s *Store) Repos() repository.Repos {
	return newRepos(liveScope{s: s})
}

// Run ejecuta fn sobre una copia del estado; la copia reemplaza al estado vigente solo si fn
// devuelve nil. Los lectores nunca ven cambios parciales.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(newRepos(txScope{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// scope acceso al estado: vigente (con locks) o de una transacción en curso (sin locks).
type scope interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type liveScope struct{ s *Store }

func (l liveScope) read(fn func(st *state) error) error {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return fn(l.s.st)
}

func (l liveScope) write(fn func(st *state) error) error {
	l.s.txMu.Lock()
	defer l.s.txMu.Unlock()
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return fn(l.s.st)
}

type txScope struct{ st *state }

func (t txScope) read(fn func(st *state) error) error  { return fn(t.st) }
func (t txScope) write(fn func(st *state) error) error { return fn(t.st) }

func newRepos(sc scope) repository.Repos {
	return repository.Repos{
		Products:     &ProductRepo{sc: sc},
		Orders:       &OrderRepo{sc: sc},
		Entries:      &StockEntryRepo{sc: sc},
		StockItems:   &StockItemRepo{sc: sc},
		Exits:        &StockExitRepo{sc: sc},
		Installments: &InstallmentRepo{sc: sc},
		Users:        &UserRepo{sc: sc},
	}
}
