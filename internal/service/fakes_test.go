package service

import (
	"context"
	"sync"
	"time"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository"
)

type fakeUserRepo struct {
	users []domain.User
	pres  map[string]domain.Preregistration
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{pres: map[string]domain.Preregistration{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	if pre, ok := r.pres[user.Email]; ok {
		user.Role = pre.Role
		delete(r.pres, user.Email)
	}
	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, user)

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint, role domain.Role) (domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Role = role
			return r.users[i], nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Preregister(_ context.Context, pre domain.Preregistration) (domain.Preregistration, error) {
	r.pres[pre.Email] = pre
	return pre, nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (r *fakeRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[tokenID] = ttl

	return nil
}

type fakeSessionRepo struct {
	sessions map[uint]domain.Session
	nextID   uint
}

func newFakeSessionRepo(sessions ...domain.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: map[uint]domain.Session{}}
	for _, s := range sessions {
		r.Create(context.Background(), s)
	}

	return r
}

func (r *fakeSessionRepo) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	r.nextID++
	session.ID = r.nextID
	r.sessions[session.ID] = session

	return session, nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}

	return s, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context) ([]domain.Session, error) {
	all := make([]domain.Session, 0, len(r.sessions))
	for id := uint(1); id <= r.nextID; id++ {
		if s, ok := r.sessions[id]; ok {
			all = append(all, s)
		}
	}

	return all, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session domain.Session) (domain.Session, error) {
	if _, ok := r.sessions[session.ID]; !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	r.sessions[session.ID] = session

	return session, nil
}

func (r *fakeSessionRepo) UpdateMany(ctx context.Context, sessions []domain.Session) ([]domain.Session, error) {
	for _, s := range sessions {
		if _, ok := r.sessions[s.ID]; !ok {
			return nil, repository.ErrSessionNotFound
		}
	}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}

	return sessions, nil
}

// fakeStore backs both StockRepository and SaleRepository so that sales
// recorded through the stock service show up in reports.
type fakeStore struct {
	mu       sync.Mutex
	sessions *fakeSessionRepo
	items    map[uint]domain.StockItem
	deposits []domain.DepositRecord
	sales    []domain.SaleRecord
	nextID   uint
}

func newFakeStore(sessions *fakeSessionRepo) *fakeStore {
	return &fakeStore{sessions: sessions, items: map[uint]domain.StockItem{}}
}

func (f *fakeStore) withFees(item domain.StockItem) (domain.StockItemWithFees, error) {
	session := f.sessions.sessions[item.SessionID]
	final, err := domain.ComputeFinalPrice(item.UnitPrice, session.FixedFee, session.PercentFee)
	if err != nil {
		return domain.StockItemWithFees{}, err
	}

	return domain.StockItemWithFees{
		StockItem:   item,
		SessionName: session.Name,
		FixedFee:    session.FixedFee,
		PercentFee:  session.PercentFee,
		FinalPrice:  final,
	}, nil
}

func (f *fakeStore) Deposit(_ context.Context, in domain.DepositInput) (domain.StockItemWithFees, domain.DepositRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sessions.sessions[in.SessionID]; !ok {
		return domain.StockItemWithFees{}, domain.DepositRecord{}, repository.ErrSessionNotFound
	}

	f.nextID++
	item := domain.StockItem{
		ID:              f.nextID,
		SellerEmail:     in.SellerEmail,
		GameName:        in.GameName,
		UnitPrice:       in.UnitPrice,
		SessionID:       in.SessionID,
		CurrentQuantity: in.Quantity,
		OnSale:          in.OnSale,
		PhotoPath:       in.PhotoPath,
	}
	f.items[item.ID] = item

	record := domain.DepositRecord{
		ID:                uint(len(f.deposits) + 1),
		SellerEmail:       in.SellerEmail,
		SessionID:         in.SessionID,
		StockItemID:       item.ID,
		QuantityDeposited: in.Quantity,
	}
	f.deposits = append(f.deposits, record)

	withFees, err := f.withFees(item)
	return withFees, record, err
}

func (f *fakeStore) FindByID(_ context.Context, id uint) (domain.StockItemWithFees, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return domain.StockItemWithFees{}, repository.ErrStockNotFound
	}

	return f.withFees(item)
}

func (f *fakeStore) list(keep func(domain.StockItem) bool) ([]domain.StockItemWithFees, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.StockItemWithFees
	for id := uint(1); id <= f.nextID; id++ {
		item, ok := f.items[id]
		if !ok || !keep(item) {
			continue
		}

		withFees, err := f.withFees(item)
		if err != nil {
			return nil, err
		}
		result = append(result, withFees)
	}

	return result, nil
}

func (f *fakeStore) FindAll(context.Context) ([]domain.StockItemWithFees, error) {
	return f.list(func(domain.StockItem) bool { return true })
}

func (f *fakeStore) FindOnSale(context.Context) ([]domain.StockItemWithFees, error) {
	return f.list(func(i domain.StockItem) bool { return i.OnSale })
}

func (f *fakeStore) FindBySeller(_ context.Context, email string) ([]domain.StockItemWithFees, error) {
	return f.list(func(i domain.StockItem) bool { return i.SellerEmail == email })
}

func (f *fakeStore) RecordSale(_ context.Context, id uint, quantity int) (domain.SaleRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return domain.SaleRecord{}, 0, repository.ErrStockNotFound
	}
	if quantity > item.CurrentQuantity {
		return domain.SaleRecord{}, 0, repository.ErrInsufficientStock
	}

	item.CurrentQuantity -= quantity
	if item.CurrentQuantity == 0 {
		delete(f.items, id)
	} else {
		f.items[id] = item
	}

	sale := domain.SaleRecord{
		ID:           uint(len(f.sales) + 1),
		SellerEmail:  item.SellerEmail,
		GameName:     item.GameName,
		UnitPrice:    item.UnitPrice,
		PhotoPath:    item.PhotoPath,
		SessionID:    item.SessionID,
		QuantitySold: quantity,
	}
	f.sales = append(f.sales, sale)

	return sale, item.CurrentQuantity, nil
}

func (f *fakeStore) Withdraw(_ context.Context, id uint, quantity int) (domain.StockItem, domain.WithdrawResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return domain.StockItem{}, domain.WithdrawResult{}, repository.ErrStockNotFound
	}
	if quantity > item.CurrentQuantity {
		return domain.StockItem{}, domain.WithdrawResult{}, repository.ErrQuantityExceedsStock
	}

	remaining := item.CurrentQuantity - quantity
	if remaining == 0 {
		delete(f.items, id)
	} else {
		updated := item
		updated.CurrentQuantity = remaining
		f.items[id] = updated
	}

	return item, domain.WithdrawResult{StockItemID: id, Deleted: remaining == 0, RemainingQuantity: remaining}, nil
}

func (f *fakeStore) SetOnSale(_ context.Context, id uint, onSale bool) (domain.StockItemWithFees, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[id]
	if !ok {
		return domain.StockItemWithFees{}, repository.ErrStockNotFound
	}
	item.OnSale = onSale
	f.items[id] = item

	return f.withFees(item)
}

func (f *fakeStore) matches(email string, sessionID uint, filter domain.ReportFilter) bool {
	if filter.SellerEmail != nil && *filter.SellerEmail != email {
		return false
	}

	return filter.SessionID == nil || *filter.SessionID == sessionID
}

func (f *fakeStore) FindSales(_ context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.SaleRecord
	for _, s := range f.sales {
		if f.matches(s.SellerEmail, s.SessionID, filter) {
			result = append(result, s)
		}
	}

	return result, nil
}

func (f *fakeStore) FindSalesWithFees(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleWithFees, error) {
	sales, _ := f.FindSales(ctx, filter)

	result := make([]domain.SaleWithFees, 0, len(sales))
	for _, s := range sales {
		session := f.sessions.sessions[s.SessionID]
		result = append(result, domain.SaleWithFees{
			SaleRecord: s,
			FixedFee:   session.FixedFee,
			PercentFee: session.PercentFee,
		})
	}

	return result, nil
}

func (f *fakeStore) SumDeposited(_ context.Context, filter domain.ReportFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total int64
	for _, d := range f.deposits {
		if f.matches(d.SellerEmail, d.SessionID, filter) {
			total += int64(d.QuantityDeposited)
		}
	}

	return total, nil
}

func (f *fakeStore) MarkSellerPaid(_ context.Context, email string, paidAt time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for i := range f.sales {
		if f.sales[i].SellerEmail == email && !f.sales[i].SellerPaid {
			f.sales[i].SellerPaid = true
			at := paidAt
			f.sales[i].PaidAt = &at
			n++
		}
	}

	return n, nil
}

type recordingNotifier struct {
	events []domain.StockEvent
}

func (n *recordingNotifier) Publish(event domain.StockEvent) {
	n.events = append(n.events, event)
}
