// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory).
// Se usa en demos locales y en tests; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/internal/domain/entity"
	"github.com/jhoicas/mei-mentor-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository            = (*CustomerRepo)(nil)
	_ repository.TransactionRepository         = (*TransactionRepo)(nil)
	_ repository.OpportunityAnalysisRepository = (*AnalysisRepo)(nil)
	_ repository.OperatorRepository            = (*OperatorRepo)(nil)
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu           sync.RWMutex
	customers    map[string]entity.Customer // por ID
	transactions map[string][]entity.Transaction
	analyses     map[string]entity.OpportunityAnalysis // por CustomerID
	operators    map[string]entity.Operator            // por email en minúsculas

	seedMu sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		customers:    map[string]entity.Customer{},
		transactions: map[string][]entity.Transaction{},
		analyses:     map[string]entity.OpportunityAnalysis{},
		operators:    map[string]entity.Operator{},
	}
}

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Transactions repositorio de transacciones.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Analyses repositorio de análisis.
func (s *Store) Analyses() *AnalysisRepo { return &AnalysisRepo{s: s} }

// Operators repositorio de operadores.
func (s *Store) Operators() *OperatorRepo { return &OperatorRepo{s: s} }

// RunSeed ejecuta fn y, si falla, restaura clientes y transacciones al estado previo.
func (s *Store) RunSeed(ctx context.Context, fn func(
	customers repository.CustomerRepository,
	transactions repository.TransactionRepository,
) error) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	s.mu.RLock()
	customers := maps.Clone(s.customers)
	txs := make(map[string][]entity.Transaction, len(s.transactions))
	for k, v := range s.transactions {
		txs[k] = append([]entity.Transaction(nil), v...)
	}
	s.mu.RUnlock()

	if err := fn(s.Customers(), s.Transactions()); err != nil {
		s.mu.Lock()
		s.customers = customers
		s.transactions = txs
		s.mu.Unlock()
		return err
	}
	return ctx.Err()
}

// ── Customers ────────────────────────────────────────────────────────────────

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct{ s *Store }

// Create persiste un nuevo cliente; el CPF es único.
func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.customers {
		if existing.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.s.customers[c.ID] = *c
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByTaxID obtiene un cliente por CPF normalizado.
func (r *CustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.TaxID == taxID {
			return &c, nil
		}
	}
	return nil, nil
}

// ExistsByTaxID indica si ya hay un cliente con ese CPF.
func (r *CustomerRepo) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	c, err := r.GetByTaxID(ctx, taxID)
	return c != nil, err
}

// List lista clientes ordenados por nombre, con el total.
func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, int, error) {
	r.s.mu.RLock()
	all := make([]entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, c)
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].TaxID < all[j].TaxID
		}
		return all[i].Name < all[j].Name
	})
	total := len(all)
	if offset >= total {
		return []*entity.Customer{}, total, nil
	}
	end := min(total, offset+limit)
	out := make([]*entity.Customer, 0, end-offset)
	for i := offset; i < end; i++ {
		c := all[i]
		out = append(out, &c)
	}
	return out, total, nil
}

// UpdateDeclaredIncome actualiza la renta declarada.
func (r *CustomerRepo) UpdateDeclaredIncome(_ context.Context, id string, income decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.DeclaredIncome = income
	c.UpdatedAt = time.Now().UTC()
	r.s.customers[id] = c
	return nil
}

// ── Transactions ─────────────────────────────────────────────────────────────

// TransactionRepo implementación en memoria de TransactionRepository.
type TransactionRepo struct{ s *Store }

// CreateBatch agrega transacciones inmutables.
func (r *TransactionRepo) CreateBatch(_ context.Context, txs []*entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tx := range txs {
		r.s.transactions[tx.CustomerID] = append(r.s.transactions[tx.CustomerID], *tx)
	}
	return nil
}

// ListByCustomer devuelve las transacciones del cliente por fecha ascendente.
func (r *TransactionRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Transaction, error) {
	return r.filter(customerID, func(entity.Transaction) bool { return true }), nil
}

// ListByCustomerBetween filtra por fecha (extremos inclusivos).
func (r *TransactionRepo) ListByCustomerBetween(_ context.Context, customerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return r.filter(customerID, func(tx entity.Transaction) bool {
		return !tx.Date.Before(from) && !tx.Date.After(to)
	}), nil
}

func (r *TransactionRepo) filter(customerID string, keep func(entity.Transaction) bool) []*entity.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Transaction, 0, len(r.s.transactions[customerID]))
	for _, tx := range r.s.transactions[customerID] {
		if keep(tx) {
			t := tx
			out = append(out, &t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ── Analyses ─────────────────────────────────────────────────────────────────

// AnalysisRepo implementación en memoria de OpportunityAnalysisRepository.
type AnalysisRepo struct{ s *Store }

// Upsert reemplaza el análisis del cliente conservando los IDs existentes.
func (r *AnalysisRepo) Upsert(_ context.Context, a *entity.OpportunityAnalysis) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if prev, ok := r.s.analyses[a.CustomerID]; ok {
		a.ID = prev.ID
		if a.MarketIntelligence != nil && prev.MarketIntelligence != nil {
			a.MarketIntelligence.ID = prev.MarketIntelligence.ID
		}
	}
	r.s.analyses[a.CustomerID] = cloneAnalysis(a)
	return nil
}

// GetByCustomerID último análisis persistido del cliente.
func (r *AnalysisRepo) GetByCustomerID(_ context.Context, customerID string) (*entity.OpportunityAnalysis, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.analyses[customerID]
	if !ok {
		return nil, nil
	}
	out := cloneAnalysis(&a)
	return &out, nil
}

// ListWithCustomer análisis con nombre y CPF, ordenados por puntaje descendente.
func (r *AnalysisRepo) ListWithCustomer(_ context.Context) ([]*repository.AnalysisListItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*repository.AnalysisListItem, 0, len(r.s.analyses))
	for customerID, a := range r.s.analyses {
		c, ok := r.s.customers[customerID]
		if !ok {
			continue
		}
		cp := cloneAnalysis(&a)
		out = append(out, &repository.AnalysisListItem{CustomerName: c.Name, TaxID: c.TaxID, Analysis: &cp})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Analysis.PotentialScore == out[j].Analysis.PotentialScore {
			return out[i].CustomerName < out[j].CustomerName
		}
		return out[i].Analysis.PotentialScore > out[j].Analysis.PotentialScore
	})
	return out, nil
}

func cloneAnalysis(a *entity.OpportunityAnalysis) entity.OpportunityAnalysis {
	out := *a
	if a.MarketIntelligence != nil {
		mi := *a.MarketIntelligence
		out.MarketIntelligence = &mi
	}
	return out
}

// ── Operators ────────────────────────────────────────────────────────────────

// OperatorRepo implementación en memoria de OperatorRepository.
type OperatorRepo struct{ s *Store }

// Create persiste un operador; el email es único sin distinguir mayúsculas.
func (r *OperatorRepo) Create(_ context.Context, op *entity.Operator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(op.Email)
	if _, ok := r.s.operators[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.operators[key] = *op
	return nil
}

// GetByID obtiene un operador por ID.
func (r *OperatorRepo) GetByID(_ context.Context, id string) (*entity.Operator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, op := range r.s.operators {
		if op.ID == id {
			return &op, nil
		}
	}
	return nil, nil
}

// GetByEmail obtiene un operador por email.
func (r *OperatorRepo) GetByEmail(_ context.Context, email string) (*entity.Operator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	op, ok := r.s.operators[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &op, nil
}
