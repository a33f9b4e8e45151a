package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// MemoryStore is an in-memory repository.Store. Transactions are serialized
// and rolled back on error unless LockFreeTx is set, in which case callers
// must provide their own serialization.
type MemoryStore struct {
	// LockFreeTx disables transaction serialization and rollback.
	LockFreeTx bool
	// ReadDelay is slept after every row-locking read to widen race windows.
	ReadDelay time.Duration
	// Fail injects errors by operation name, for example "orders.create".
	Fail map[string]error

	txMu sync.Mutex
	mu   sync.Mutex
	data memoryData
}

type memoryData struct {
	nextID        int64
	users         map[int64]model.User
	credits       []model.CreditEntry
	orders        map[int64]model.Order
	products      map[int64]model.Product
	rewards       map[int64]model.Reward
	redemptions   map[int64]model.Redemption
	announcements map[int64]model.Announcement
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: memoryData{
		users:         make(map[int64]model.User),
		orders:        make(map[int64]model.Order),
		products:      make(map[int64]model.Product),
		rewards:       make(map[int64]model.Reward),
		redemptions:   make(map[int64]model.Redemption),
		announcements: make(map[int64]model.Announcement),
	}}
}

func (d memoryData) clone() memoryData {
	c := memoryData{
		nextID:        d.nextID,
		credits:       append([]model.CreditEntry(nil), d.credits...),
		users:         make(map[int64]model.User, len(d.users)),
		orders:        make(map[int64]model.Order, len(d.orders)),
		products:      make(map[int64]model.Product, len(d.products)),
		rewards:       make(map[int64]model.Reward, len(d.rewards)),
		redemptions:   make(map[int64]model.Redemption, len(d.redemptions)),
		announcements: make(map[int64]model.Announcement, len(d.announcements)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.rewards {
		c.rewards[k] = v
	}
	for k, v := range d.redemptions {
		c.redemptions[k] = v
	}
	for k, v := range d.announcements {
		c.announcements[k] = v
	}
	return c
}

// WithinTx runs fn and restores the previous state when it fails.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Factory) error) error {
	if s.LockFreeTx {
		return fn(ctx, s)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) Users() repository.UserRepository                 { return memUsers{s} }
func (s *MemoryStore) Credits() repository.CreditRepository             { return memCredits{s} }
func (s *MemoryStore) Orders() repository.OrderRepository               { return memOrders{s} }
func (s *MemoryStore) Products() repository.ProductRepository           { return memProducts{s} }
func (s *MemoryStore) Rewards() repository.RewardRepository             { return memRewards{s} }
func (s *MemoryStore) Redemptions() repository.RedemptionRepository     { return memRedemptions{s} }
func (s *MemoryStore) Announcements() repository.AnnouncementRepository { return memAnnouncements{s} }

func (s *MemoryStore) fail(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail[op]
}

func (s *MemoryStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func (s *MemoryStore) delay() {
	if s.ReadDelay > 0 {
		time.Sleep(s.ReadDelay)
	}
}

// SeedUser stores u, assigning an id when missing, and returns the id.
func (s *MemoryStore) SeedUser(u model.User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	} else if u.ID > s.data.nextID {
		s.data.nextID = u.ID
	}
	if u.Role == "" {
		u.Role = model.RoleClient
	}
	s.data.users[u.ID] = u
	return u.ID
}

// SeedProduct stores p and returns its id.
func (s *MemoryStore) SeedProduct(p model.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	p.CreatedAt = time.Now()
	s.data.products[p.ID] = p
	return p.ID
}

// SeedReward stores r and returns its id.
func (s *MemoryStore) SeedReward(r model.Reward) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	s.data.rewards[r.ID] = r
	return r.ID
}

// Balance returns the stored balance of a user.
func (s *MemoryStore) Balance(userID int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.users[userID].Credits
}

// CreditEntries returns a copy of the ledger history.
func (s *MemoryStore) CreditEntries() []model.CreditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CreditEntry(nil), s.data.credits...)
}

// RedemptionCount returns the number of stored redemptions.
func (s *MemoryStore) RedemptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.redemptions)
}

// OrderCount returns the number of stored orders.
func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders)
}

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.create"); err != nil {
		return err
	}
	for _, existing := range r.s.data.users {
		if existing.DiscordID == u.DiscordID || existing.ReferralCode == u.ReferralCode {
			return domainErrors.ErrAlreadyExists
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.data.users[u.ID] = *u
	return nil
}

func (r memUsers) get(id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.get"); err != nil {
		return nil, err
	}
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.get(id)
}

func (r memUsers) GetByIDForUpdate(ctx context.Context, id int64) (*model.User, error) {
	u, err := r.get(id)
	r.s.delay()
	return u, err
}

func (r memUsers) find(match func(model.User) bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memUsers) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.DiscordID == discordID })
}

func (r memUsers) GetByReferralCode(ctx context.Context, code string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ReferralCode != "" && u.ReferralCode == code })
}

func (r memUsers) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByReferralCode(ctx, code)
	return err == nil, nil
}

func (r memUsers) UpdateProfile(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.users[u.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Username = u.Username
	stored.Discriminator = u.Discriminator
	stored.Avatar = u.Avatar
	stored.Email = u.Email
	stored.LastLogin = u.LastLogin
	stored.UpdatedAt = time.Now()
	r.s.data.users[u.ID] = stored
	return nil
}

func (r memUsers) SetCredits(ctx context.Context, id int64, credits float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.set_credits"); err != nil {
		return err
	}
	stored, ok := r.s.data.users[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Credits = credits
	r.s.data.users[id] = stored
	return nil
}

func (r memUsers) SetRole(ctx context.Context, id int64, role model.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.users[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Role = role
	r.s.data.users[id] = stored
	return nil
}

func (r memUsers) List(ctx context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]model.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type memCredits struct{ s *MemoryStore }

func (r memCredits) Append(ctx context.Context, e *model.CreditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("credits.append"); err != nil {
		return err
	}
	e.ID = r.s.id()
	e.CreatedAt = time.Now()
	r.s.data.credits = append(r.s.data.credits, *e)
	return nil
}

func (r memCredits) ListByUser(ctx context.Context, userID int64) ([]model.CreditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.CreditEntry
	for i := len(r.s.data.credits) - 1; i >= 0; i-- {
		if r.s.data.credits[i].UserID == userID {
			result = append(result, r.s.data.credits[i])
		}
	}
	return result, nil
}

type memOrders struct{ s *MemoryStore }

func (r memOrders) Create(ctx context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.create"); err != nil {
		return err
	}
	o.ID = r.s.id()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	o.Items = append([]model.OrderItem(nil), o.Items...)
	r.s.data.orders[o.ID] = *o
	return nil
}

func (r memOrders) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

func (r memOrders) GetByIDForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	o, err := r.GetByID(ctx, id)
	r.s.delay()
	return o, err
}

func (r memOrders) GetForUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return o, nil
}

func (r memOrders) filter(match func(model.Order) bool) []model.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.Order
	for _, o := range r.s.data.orders {
		if match(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

func (r memOrders) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.filter(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (r memOrders) List(ctx context.Context, includeHidden bool) ([]model.Order, error) {
	return r.filter(func(o model.Order) bool { return includeHidden || !o.HiddenFromStaff }), nil
}

func (r memOrders) UpdateFulfilment(ctx context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.update"); err != nil {
		return err
	}
	stored, ok := r.s.data.orders[o.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Status = o.Status
	stored.AdminRemarks = o.AdminRemarks
	stored.ReferralPaid = o.ReferralPaid
	stored.UpdatedAt = time.Now()
	r.s.data.orders[o.ID] = stored
	return nil
}

func (r memOrders) SetHidden(ctx context.Context, id int64, hidden bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.HiddenFromStaff = hidden
	r.s.data.orders[id] = stored
	return nil
}

type memProducts struct{ s *MemoryStore }

func (r memProducts) Create(ctx context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.products {
		if existing.Name == p.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.data.products[p.ID] = *p
	return nil
}

func (r memProducts) Update(ctx context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.products[p.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for id, existing := range r.s.data.products {
		if id != p.ID && existing.Name == p.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = time.Now()
	r.s.data.products[p.ID] = *p
	return nil
}

func (r memProducts) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.data.products, id)
	return nil
}

func (r memProducts) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

func (r memProducts) List(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(q.Search)
	var result []model.Product
	for _, p := range r.s.data.products {
		if q.Featured && !p.Featured {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch q.Sort {
		case model.ProductSortPriceLow:
			return a.Price < b.Price
		case model.ProductSortPriceHigh:
			return a.Price > b.Price
		case model.ProductSortNameAZ:
			return a.Name < b.Name
		case model.ProductSortNameZA:
			return a.Name > b.Name
		default:
			return a.ID > b.ID
		}
	})
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

type memRewards struct{ s *MemoryStore }

func (r memRewards) Create(ctx context.Context, rw *model.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.rewards {
		if existing.Name == rw.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	rw.ID = r.s.id()
	rw.CreatedAt = time.Now()
	rw.UpdatedAt = rw.CreatedAt
	r.s.data.rewards[rw.ID] = *rw
	return nil
}

func (r memRewards) Update(ctx context.Context, rw *model.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.rewards[rw.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for id, existing := range r.s.data.rewards {
		if id != rw.ID && existing.Name == rw.Name {
			return domainErrors.ErrAlreadyExists
		}
	}
	rw.CreatedAt = stored.CreatedAt
	rw.UpdatedAt = time.Now()
	r.s.data.rewards[rw.ID] = *rw
	return nil
}

func (r memRewards) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.rewards[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.data.rewards, id)
	return nil
}

func (r memRewards) GetByID(ctx context.Context, id int64) (*model.Reward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rw, ok := r.s.data.rewards[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &rw, nil
}

func (r memRewards) List(ctx context.Context, availableOnly bool) ([]model.Reward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.Reward
	for _, rw := range r.s.data.rewards {
		if availableOnly && !rw.Available {
			continue
		}
		result = append(result, rw)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreditCost < result[j].CreditCost })
	return result, nil
}

type memRedemptions struct{ s *MemoryStore }

func (r memRedemptions) Create(ctx context.Context, rd *model.Redemption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("redemptions.create"); err != nil {
		return err
	}
	rd.ID = r.s.id()
	r.s.data.redemptions[rd.ID] = *rd
	return nil
}

func (r memRedemptions) GetByID(ctx context.Context, id int64) (*model.Redemption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rd, ok := r.s.data.redemptions[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &rd, nil
}

func (r memRedemptions) GetByIDForUpdate(ctx context.Context, id int64) (*model.Redemption, error) {
	rd, err := r.GetByID(ctx, id)
	r.s.delay()
	return rd, err
}

func (r memRedemptions) Resolve(ctx context.Context, rd *model.Redemption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("redemptions.resolve"); err != nil {
		return err
	}
	stored, ok := r.s.data.redemptions[rd.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Status = rd.Status
	stored.AdminRemarks = rd.AdminRemarks
	stored.ProcessedBy = rd.ProcessedBy
	stored.ProcessedAt = rd.ProcessedAt
	r.s.data.redemptions[rd.ID] = stored
	return nil
}

func (r memRedemptions) filter(match func(model.Redemption) bool) []model.Redemption {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.Redemption
	for _, rd := range r.s.data.redemptions {
		if match(rd) {
			result = append(result, rd)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

func (r memRedemptions) ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error) {
	return r.filter(func(rd model.Redemption) bool { return rd.UserID == userID }), nil
}

func (r memRedemptions) List(ctx context.Context) ([]model.Redemption, error) {
	return r.filter(func(model.Redemption) bool { return true }), nil
}

type memAnnouncements struct{ s *MemoryStore }

func (r memAnnouncements) Create(ctx context.Context, a *model.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.s.data.announcements[a.ID] = *a
	return nil
}

func (r memAnnouncements) Update(ctx context.Context, a *model.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.data.announcements[a.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Title = a.Title
	stored.Content = a.Content
	stored.Severity = a.Severity
	stored.Active = a.Active
	stored.UpdatedAt = time.Now()
	r.s.data.announcements[a.ID] = stored
	*a = stored
	return nil
}

func (r memAnnouncements) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.announcements[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.s.data.announcements, id)
	return nil
}

func (r memAnnouncements) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.announcements[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &a, nil
}

func (r memAnnouncements) List(ctx context.Context, activeOnly bool) ([]model.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.Announcement
	for _, a := range r.s.data.announcements {
		if activeOnly && !a.Active {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

var _ repository.Store = (*MemoryStore)(nil)
