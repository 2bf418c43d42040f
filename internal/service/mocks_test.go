package service

import (
	"context"
	"strings"
	"sync"

	"github.com/bifroggame1-create/FastPayAI/internal/cache"
	"github.com/bifroggame1-create/FastPayAI/internal/cryptopay"
	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
)

type mockProductRepo struct {
	m        sync.RWMutex
	products []domain.Product
	err      error
	listCall int
}

func (m *mockProductRepo) List(context.Context, repository.ProductFilter) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.listCall++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			return &m.products[i], nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) GetByIDs(context.Context, []string) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.products, m.err
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.products = append(m.products, *p)
	return nil
}

type mockCatalogCache struct {
	m           sync.RWMutex
	products    []domain.Product
	err         error
	invalidated bool
}

func (m *mockCatalogCache) Get(context.Context, repository.ProductFilter) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCatalogCache) Set(_ context.Context, _ repository.ProductFilter, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return m.err
}

func (m *mockCatalogCache) InvalidateAll(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	m.invalidated = true
	return m.err
}

type mockUserRepo struct {
	m           sync.RWMutex
	users       map[string]*domain.User
	bonuses     map[string]int64
	ordersCount map[string]int64
	err         error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:       make(map[string]*domain.User),
		bonuses:     make(map[string]int64),
		ordersCount: make(map[string]int64),
	}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) AccrueReferralBonus(_ context.Context, referralCode string, bonus int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.bonuses[referralCode] += bonus
	return nil
}

func (m *mockUserRepo) IncrementOrdersCount(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.ordersCount[userID]++
	return nil
}

type mockOrderRepo struct {
	m      sync.RWMutex
	orders []domain.Order
	err    error
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) GetByID(context.Context, string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.orders) == 0 {
		return nil, repository.ErrOrderNotFound
	}
	return &m.orders[0], nil
}

type mockPromoRepo struct {
	m      sync.RWMutex
	promos map[string]*domain.PromoCode
	err    error
}

func newMockPromoRepo(promos ...*domain.PromoCode) *mockPromoRepo {
	repo := &mockPromoRepo{promos: make(map[string]*domain.PromoCode)}
	for _, p := range promos {
		repo.promos[strings.ToUpper(p.Code)] = p
	}
	return repo
}

func (m *mockPromoRepo) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.promos[strings.ToUpper(code)]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repository.ErrPromoNotFound
}

func (m *mockPromoRepo) ListActive(context.Context) ([]domain.PromoCode, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.PromoCode
	for _, p := range m.promos {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPromoRepo) Redeem(_ context.Context, code string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	p, ok := m.promos[strings.ToUpper(code)]
	if !ok {
		return repository.ErrPromoNotFound
	}
	if p.MaxUses > 0 && p.UsedCount >= p.MaxUses {
		return repository.ErrPromoExhausted
	}
	p.UsedCount++
	return nil
}

type mockProvider struct {
	m           sync.Mutex
	created     []cryptopay.CreateInvoiceParams
	invoice     *cryptopay.Invoice
	balances    []cryptopay.Balance
	err         error
	getInvoices int
}

func (m *mockProvider) CreateInvoice(_ context.Context, params cryptopay.CreateInvoiceParams) (*cryptopay.Invoice, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, params)
	return m.invoice, nil
}

func (m *mockProvider) GetInvoice(context.Context, int64) (*cryptopay.Invoice, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.getInvoices++
	if m.err != nil {
		return nil, m.err
	}
	return m.invoice, nil
}

func (m *mockProvider) GetBalance(context.Context) ([]cryptopay.Balance, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.balances, m.err
}
