package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/test"
)

type orderFixture struct {
	store      *test.MemoryStore
	notifier   *test.NotifierStub
	uc         *OrderUseCase
	buyerID    int64
	referrerID int64
	admin      *model.User
	productID  int64
}

func newOrderFixture(t *testing.T, settings OrderSettings) *orderFixture {
	t.Helper()
	store := test.NewMemoryStore()
	notifier := &test.NotifierStub{}
	discount := 8.0
	f := &orderFixture{
		store:      store,
		notifier:   notifier,
		uc:         NewOrderUseCase(store, NewLedgerUseCase(store), notifier, test.DiscardLogger(), settings),
		buyerID:    store.SeedUser(model.User{DiscordID: "100", Username: "buyer", ReferralCode: "BUYER001"}),
		referrerID: store.SeedUser(model.User{DiscordID: "200", Username: "friend", ReferralCode: "FRIEND01", Credits: 1}),
		productID:  store.SeedProduct(model.Product{Name: "Boost", Price: 10, DiscountPrice: &discount, Category: model.ProductCategoryBoosts}),
	}
	f.admin = &model.User{ID: store.SeedUser(model.User{DiscordID: "300", Username: "boss", Role: model.RoleAdmin}), Username: "boss", Role: model.RoleAdmin}
	return f
}

func (f *orderFixture) place(t *testing.T, code string) *model.Order {
	t.Helper()
	order, err := f.uc.Place(context.Background(), f.buyerID, []model.OrderLine{{ProductID: f.productID, Quantity: 5}}, code)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	return order
}

func TestOrderPlaceSnapshotsProducts(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{ReferralPercentage: 10})
	order := f.place(t, "FRIEND01")

	if order.Status != model.OrderStatusPending || order.TotalAmount != 40 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.DeliveryAddress != model.DefaultDeliveryAddress {
		t.Fatalf("unexpected delivery address %q", order.DeliveryAddress)
	}
	if !strings.HasPrefix(order.Number, "ORD-") {
		t.Fatalf("unexpected order number %q", order.Number)
	}
	if order.ReferrerID == nil || *order.ReferrerID != f.referrerID {
		t.Fatalf("expected referrer %d, got %v", f.referrerID, order.ReferrerID)
	}
	if len(order.Items) != 1 || order.Items[0].Price != 8 || order.Items[0].Name != "Boost" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	product, _ := f.store.Products().GetByID(context.Background(), f.productID)
	product.Name = "Renamed"
	product.DiscountPrice = nil
	product.Price = 99
	if err := f.store.Products().Update(context.Background(), product); err != nil {
		t.Fatalf("update product: %v", err)
	}

	stored, err := f.uc.GetForUser(context.Background(), f.buyerID, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Items[0].Name != "Boost" || stored.Items[0].Price != 8 || stored.TotalAmount != 40 {
		t.Fatalf("snapshot changed: %+v", stored)
	}

	if len(f.notifier.ByChannel(model.ChannelOrderConfirmation)) != 1 {
		t.Fatal("expected order confirmation notification")
	}
}

func TestOrderPlaceValidation(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{})
	ctx := context.Background()

	if _, err := f.uc.Place(ctx, f.buyerID, nil, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.uc.Place(ctx, f.buyerID, []model.OrderLine{{ProductID: 999, Quantity: 1}}, ""); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := f.uc.Place(ctx, f.buyerID, []model.OrderLine{{ProductID: f.productID, Quantity: 0}}, ""); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := f.uc.Place(ctx, 999, []model.OrderLine{{ProductID: f.productID, Quantity: 1}}, ""); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if f.store.OrderCount() != 0 {
		t.Fatal("no order must be stored")
	}
}

func TestOrderPlaceIgnoresUnknownAndSelfReferral(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{ReferralPercentage: 10})

	for _, code := range []string{"NOPE0000", "BUYER001", ""} {
		order := f.place(t, code)
		if order.ReferrerID != nil {
			t.Fatalf("code %q must not set a referrer", code)
		}
	}
}

func TestOrderReferralCreditedOnce(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{ReferralPercentage: 10})
	order := f.place(t, "FRIEND01")
	ctx := context.Background()

	steps := []model.OrderStatus{
		model.OrderStatusProcessing,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
		model.OrderStatusDelivered,
		model.OrderStatusDelivered,
	}
	for _, status := range steps {
		if _, err := f.uc.SetStatus(ctx, order.ID, status, nil, f.admin); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
	}

	if got := f.store.Balance(f.referrerID); got != 5 {
		t.Fatalf("expected referrer balance 5, got %v", got)
	}
	var referrals int
	for _, e := range f.store.CreditEntries() {
		if e.Reason == model.CreditReasonReferral {
			referrals++
			if e.Reference != order.Number {
				t.Fatalf("unexpected reference %q", e.Reference)
			}
		}
	}
	if referrals != 1 {
		t.Fatalf("expected one referral credit, got %d", referrals)
	}
}

func TestOrderReferralConcurrentDelivered(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{ReferralPercentage: 10})
	order := f.place(t, "FRIEND01")
	f.store.LockFreeTx = true

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.uc.SetStatus(context.Background(), order.ID, model.OrderStatusDelivered, nil, f.admin)
		}()
	}
	wg.Wait()

	if got := f.store.Balance(f.referrerID); got != 5 {
		t.Fatalf("expected a single credit, got balance %v", got)
	}
}

func TestOrderReferralSkippedWithoutPercentage(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{})
	order := f.place(t, "FRIEND01")

	if _, err := f.uc.SetStatus(context.Background(), order.ID, model.OrderStatusDelivered, nil, f.admin); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got := f.store.Balance(f.referrerID); got != 1 {
		t.Fatalf("balance must be unchanged, got %v", got)
	}
}

func TestOrderSetStatusRemarksAndNotifications(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{})
	order := f.place(t, "")
	remarks := "on its way"

	updated, err := f.uc.SetStatus(context.Background(), order.ID, model.OrderStatusShipped, &remarks, f.admin)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != model.OrderStatusShipped || updated.AdminRemarks != remarks {
		t.Fatalf("unexpected order: %+v", updated)
	}

	status := f.notifier.ByChannel(model.ChannelOrderStatus)
	if len(status) != 1 {
		t.Fatalf("expected status webhook, got %d", len(status))
	}
	dms := f.notifier.ByChannel(model.ChannelDirectMessage)
	if len(dms) == 0 || dms[len(dms)-1].Recipient != "100" {
		t.Fatalf("expected DM to owner, got %+v", dms)
	}

	// nil remarks keep the previous value
	updated, err = f.uc.SetStatus(context.Background(), order.ID, model.OrderStatusDelivered, nil, f.admin)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.AdminRemarks != remarks {
		t.Fatalf("remarks must be kept, got %q", updated.AdminRemarks)
	}
}

func TestOrderSetStatusValidation(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{})
	order := f.place(t, "")

	if _, err := f.uc.SetStatus(context.Background(), order.ID, "Lost", nil, f.admin); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := f.uc.SetStatus(context.Background(), 999, model.OrderStatusShipped, nil, f.admin); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderStrictTransitions(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{StrictTransitions: true})
	order := f.place(t, "")
	ctx := context.Background()

	if _, err := f.uc.SetStatus(ctx, order.ID, model.OrderStatusCancelled, nil, f.admin); err != nil {
		t.Fatalf("pending to cancelled: %v", err)
	}
	if _, err := f.uc.SetStatus(ctx, order.ID, model.OrderStatusDelivered, nil, f.admin); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	permissive := newOrderFixture(t, OrderSettings{})
	other := permissive.place(t, "")
	if _, err := permissive.uc.SetStatus(ctx, other.ID, model.OrderStatusCancelled, nil, permissive.admin); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := permissive.uc.SetStatus(ctx, other.ID, model.OrderStatusDelivered, nil, permissive.admin); err != nil {
		t.Fatalf("permissive mode must allow any edge: %v", err)
	}
}

func TestOrderOwnershipAndVisibility(t *testing.T) {
	f := newOrderFixture(t, OrderSettings{})
	order := f.place(t, "")
	ctx := context.Background()

	if _, err := f.uc.GetForUser(ctx, f.referrerID, order.ID); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("foreign order must be hidden, got %v", err)
	}

	if err := f.uc.SetVisibility(ctx, order.ID, true); err != nil {
		t.Fatalf("hide: %v", err)
	}
	staff, err := f.uc.ListAll(ctx, model.RoleStaff)
	if err != nil || len(staff) != 0 {
		t.Fatalf("staff must not see hidden orders, got %v %v", staff, err)
	}
	admin, err := f.uc.ListAll(ctx, model.RoleAdmin)
	if err != nil || len(admin) != 1 {
		t.Fatalf("admin must see hidden orders, got %v %v", admin, err)
	}
	own, err := f.uc.ListForUser(ctx, f.buyerID)
	if err != nil || len(own) != 1 {
		t.Fatalf("owner must see own orders, got %v %v", own, err)
	}

	if err := f.uc.SetVisibility(ctx, 999, true); !errors.Is(err, domainErrors.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderNumberFormat(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := orderNumber(now)
	b := orderNumber(now)
	if a == b {
		t.Fatalf("order numbers must differ: %s", a)
	}
	parts := strings.Split(a, "-")
	if len(parts) != 3 || len(parts[2]) != 8 || strings.ToUpper(parts[2]) != parts[2] {
		t.Fatalf("unexpected order number %q", a)
	}
}
