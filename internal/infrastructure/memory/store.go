// Package memory implementa el almacén de entidades en memoria.
//
// Todas las escrituras pasan por una copia de trabajo: si el callback falla la copia
// se descarta; si termina bien se guarda a través del Persister (cuando hay uno) y
// recién entonces reemplaza al estado vigente. Así una operación rechazada nunca
// deja el almacén a medias.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

// Nombres de colección: clave de cada blob en el almacén persistente.
const (
	CollectionProducts     = "products"
	CollectionWarehouses   = "warehouses"
	CollectionStock        = "stock"
	CollectionTransactions = "transactions"
	CollectionSales        = "sales"
	CollectionUsers        = "users"
)

// AllCollections en el orden en que se guardan.
var AllCollections = []string{
	CollectionProducts, CollectionWarehouses, CollectionStock,
	CollectionTransactions, CollectionSales, CollectionUsers,
}

// Snapshot es la representación serializable del almacén.
type Snapshot struct {
	Products     []entity.Product     `json:"products"`
	Warehouses   []entity.Warehouse   `json:"warehouses"`
	Stock        []entity.Stock       `json:"stock"`
	Transactions []entity.Transaction `json:"transactions"`
	Sales        []entity.Sale        `json:"sales"`
	Users        []entity.User        `json:"users"`
}

// IsEmpty indica si no hay nada cargado (almacén nuevo o ausente).
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Products) == 0 && len(s.Users) == 0 && len(s.Warehouses) == 0)
}

// Persister guarda y recupera el almacén. Load devuelve (nil, nil) si no hay datos.
// Save recibe el snapshot completo y las colecciones modificadas por el commit.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot, collections []string) error
}

type state struct {
	products     []entity.Product
	warehouses   []entity.Warehouse
	stock        []entity.Stock
	transactions []entity.Transaction
	sales        []entity.Sale
	users        []entity.User
}

func stateFromSnapshot(s *Snapshot) *state {
	if s == nil {
		return &state{}
	}
	return &state{
		products:     append([]entity.Product(nil), s.Products...),
		warehouses:   append([]entity.Warehouse(nil), s.Warehouses...),
		stock:        append([]entity.Stock(nil), s.Stock...),
		transactions: append([]entity.Transaction(nil), s.Transactions...),
		sales:        append([]entity.Sale(nil), s.Sales...),
		users:        append([]entity.User(nil), s.Users...),
	}
}

func (st *state) clone() *state {
	return stateFromSnapshot(st.snapshot())
}

func (st *state) snapshot() *Snapshot {
	return &Snapshot{
		Products:     append([]entity.Product(nil), st.products...),
		Warehouses:   append([]entity.Warehouse(nil), st.warehouses...),
		Stock:        append([]entity.Stock(nil), st.stock...),
		Transactions: append([]entity.Transaction(nil), st.transactions...),
		Sales:        append([]entity.Sale(nil), st.sales...),
		Users:        append([]entity.User(nil), st.users...),
	}
}

// work es la copia de trabajo de una escritura y las colecciones que tocó.
type work struct {
	st    *state
	dirty map[string]bool
}

// Store es el almacén en memoria. Se pasa por referencia a repositorios y casos de uso.
type Store struct {
	mu        sync.RWMutex
	state     *state
	persister Persister
	log       zerolog.Logger
}

// New crea un almacén a partir de un snapshot, sin persistencia.
func New(snap *Snapshot) *Store {
	return &Store{state: stateFromSnapshot(snap), log: zerolog.Nop()}
}

// Open carga el almacén desde el Persister. Si está vacío o ausente usa seed()
// y lo guarda completo.
func Open(ctx context.Context, p Persister, seed func() *Snapshot, log zerolog.Logger) (*Store, error) {
	var snap *Snapshot
	if p != nil {
		loaded, err := p.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("memory: cargar almacén: %w", err)
		}
		snap = loaded
	}
	s := &Store{persister: p, log: log}
	if snap.IsEmpty() && seed != nil {
		snap = seed()
		log.Info().Msg("almacén vacío, cargando datos semilla")
		if p != nil {
			if err := p.Save(ctx, snap, AllCollections); err != nil {
				return nil, fmt.Errorf("memory: guardar semilla: %w", err)
			}
		}
	}
	s.state = stateFromSnapshot(snap)
	log.Info().
		Int("products", len(s.state.products)).
		Int("transactions", len(s.state.transactions)).
		Msg("almacén cargado")
	return s, nil
}

// Snapshot devuelve una copia del estado vigente.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

func (s *Store) view(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// update aplica fn sobre una copia; si no hay error guarda y reemplaza el estado.
func (s *Store) update(ctx context.Context, fn func(w *work) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := &work{st: s.state.clone(), dirty: map[string]bool{}}
	if err := fn(w); err != nil {
		return err
	}
	if len(w.dirty) > 0 && s.persister != nil {
		collections := make([]string, 0, len(w.dirty))
		for c := range w.dirty {
			collections = append(collections, c)
		}
		sort.Strings(collections)
		if err := s.persister.Save(ctx, w.st.snapshot(), collections); err != nil {
			return fmt.Errorf("memory: guardar cambios: %w", err)
		}
	}
	s.state = w.st
	return nil
}

// Run ejecuta fn con repositorios atados a una copia de trabajo (ledger.TxRunner).
// Los repositorios recibidos no deben usarse fuera de fn.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	saleRepo repository.SaleRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	return s.update(ctx, func(w *work) error {
		b := base{s: s, w: w}
		return fn(&StockRepo{b}, &TransactionRepo{b}, &SaleRepo{b}, &WarehouseRepo{b})
	})
}

// Repositorios fuera de transacción (cada escritura es su propio commit).
func (s *Store) Products() *ProductRepo         { return &ProductRepo{base{s: s}} }
func (s *Store) Warehouses() *WarehouseRepo     { return &WarehouseRepo{base{s: s}} }
func (s *Store) Stock() *StockRepo              { return &StockRepo{base{s: s}} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{base{s: s}} }
func (s *Store) Sales() *SaleRepo               { return &SaleRepo{base{s: s}} }
func (s *Store) Users() *UserRepo               { return &UserRepo{base{s: s}} }

// base decide si un repositorio opera sobre una copia de trabajo (w != nil) o sobre el estado vigente.
type base struct {
	s *Store
	w *work
}

func (b base) read(fn func(st *state)) {
	if b.w != nil {
		fn(b.w.st)
		return
	}
	b.s.view(fn)
}

func (b base) write(ctx context.Context, collection string, fn func(st *state) error) error {
	if b.w != nil {
		if err := fn(b.w.st); err != nil {
			return err
		}
		b.w.dirty[collection] = true
		return nil
	}
	return b.s.update(ctx, func(w *work) error {
		if err := fn(w.st); err != nil {
			return err
		}
		w.dirty[collection] = true
		return nil
	})
}
