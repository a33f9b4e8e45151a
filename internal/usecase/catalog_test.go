package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/test"
)

func TestProductUseCaseListFiltersAndSorts(t *testing.T) {
	store := test.NewMemoryStore()
	uc := NewProductUseCase(store)
	ctx := context.Background()

	for _, p := range []model.Product{
		{Name: "Alpha Bot", Price: 30, Category: model.ProductCategoryBots, Featured: true},
		{Name: "Beta Boost", Price: 10, Category: model.ProductCategoryBoosts},
		{Name: "Gamma Bot", Price: 20, Category: model.ProductCategoryBots, Description: "moderation"},
	} {
		p := p
		if err := uc.Create(ctx, &p); err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
	}

	bots, err := uc.List(ctx, model.ProductQuery{Category: model.ProductCategoryBots, Sort: model.ProductSortPriceLow})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bots) != 2 || bots[0].Name != "Gamma Bot" || bots[1].Name != "Alpha Bot" {
		t.Fatalf("unexpected bots: %+v", bots)
	}

	found, err := uc.List(ctx, model.ProductQuery{Search: "  MODERATION "})
	if err != nil || len(found) != 1 || found[0].Name != "Gamma Bot" {
		t.Fatalf("unexpected search result: %+v %v", found, err)
	}

	all, err := uc.List(ctx, model.ProductQuery{Sort: "bogus"})
	if err != nil || len(all) != 3 || all[0].Name != "Gamma Bot" {
		t.Fatalf("unknown sort must fall back to newest: %+v %v", all, err)
	}

	if _, err := uc.List(ctx, model.ProductQuery{Category: "Pets"}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	featured, err := uc.Featured(ctx)
	if err != nil || len(featured) != 1 {
		t.Fatalf("unexpected featured: %+v %v", featured, err)
	}
}

func TestProductUseCaseValidationAndNotFound(t *testing.T) {
	uc := NewProductUseCase(test.NewMemoryStore())
	ctx := context.Background()
	negative := -1.0

	invalid := []model.Product{
		{Name: " ", Price: 1, Category: model.ProductCategoryBots},
		{Name: "x", Price: -1, Category: model.ProductCategoryBots},
		{Name: "x", Price: 1, Category: "Pets"},
		{Name: "x", Price: 1, Category: model.ProductCategoryBots, DiscountPrice: &negative},
	}
	for _, p := range invalid {
		p := p
		if err := uc.Create(ctx, &p); !errors.Is(err, domainErrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", p, err)
		}
	}

	if _, err := uc.Get(ctx, 1); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, 1); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	missing := model.Product{ID: 5, Name: "x", Price: 1, Category: model.ProductCategoryBots}
	if err := uc.Update(ctx, &missing); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRewardUseCase(t *testing.T) {
	uc := NewRewardUseCase(test.NewMemoryStore())
	ctx := context.Background()

	visible := model.Reward{Name: "Role", CreditCost: 10, Available: true}
	hidden := model.Reward{Name: "Retired", CreditCost: 5, Category: model.RewardCategoryAssets}
	for _, r := range []*model.Reward{&visible, &hidden} {
		if err := uc.Create(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if visible.Category != model.RewardCategoryOther {
		t.Fatalf("expected default category, got %s", visible.Category)
	}

	available, err := uc.ListAvailable(ctx)
	if err != nil || len(available) != 1 || available[0].ID != visible.ID {
		t.Fatalf("unexpected available rewards: %+v %v", available, err)
	}
	all, err := uc.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("unexpected rewards: %+v %v", all, err)
	}

	if err := uc.Create(ctx, &model.Reward{Name: "Role", CreditCost: 20}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for duplicate name, got %v", err)
	}
	renamed := hidden
	renamed.Name = visible.Name
	if err := uc.Update(ctx, &renamed); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on rename, got %v", err)
	}
	if all, _ := uc.ListAll(ctx); len(all) != 2 {
		t.Fatalf("duplicate reward stored: %+v", all)
	}

	if err := uc.Create(ctx, &model.Reward{Name: "bad", CreditCost: -1}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.Delete(ctx, 999); !errors.Is(err, domainErrors.ErrRewardNotFound) {
		t.Fatalf("expected ErrRewardNotFound, got %v", err)
	}
}

func TestAnnouncementUseCase(t *testing.T) {
	uc := NewAnnouncementUseCase(test.NewMemoryStore())
	ctx := context.Background()

	a := model.Announcement{Title: " Maintenance ", Content: "Tonight", Active: true}
	if err := uc.Create(ctx, &a, 3); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Severity != model.SeverityInfo || a.AuthorID != 3 || a.Title != "Maintenance" {
		t.Fatalf("unexpected announcement: %+v", a)
	}

	a.Active = false
	if err := uc.Update(ctx, &a); err != nil {
		t.Fatalf("update: %v", err)
	}
	active, err := uc.ListActive(ctx)
	if err != nil || len(active) != 0 {
		t.Fatalf("inactive announcement listed: %+v %v", active, err)
	}

	if err := uc.Create(ctx, &model.Announcement{Title: "x", Content: "y", Severity: "loud"}, 3); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.Delete(ctx, 999); !errors.Is(err, domainErrors.ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestUserUseCase(t *testing.T) {
	store := test.NewMemoryStore()
	uc := NewUserUseCase(store, NewLedgerUseCase(store))
	ctx := context.Background()
	id := store.SeedUser(model.User{DiscordID: "1", Credits: 5})

	if err := uc.SetRole(ctx, id, model.RoleStaff); err != nil {
		t.Fatalf("set role: %v", err)
	}
	profile, err := uc.Profile(ctx, id)
	if err != nil || profile.Role != model.RoleStaff {
		t.Fatalf("unexpected profile: %+v %v", profile, err)
	}
	if err := uc.SetRole(ctx, id, "Owner"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.SetRole(ctx, 999, model.RoleAdmin); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	balance, err := uc.AdjustCredits(ctx, id, 7.5, "bonus")
	if err != nil || balance != 12.5 {
		t.Fatalf("adjust: %v %v", balance, err)
	}
	if _, err := uc.AdjustCredits(ctx, id, 0, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	history, err := uc.CreditHistory(ctx, id)
	if err != nil || len(history) != 1 || history[0].Reason != model.CreditReasonAdjustment {
		t.Fatalf("unexpected history: %+v %v", history, err)
	}
	if _, err := uc.Profile(ctx, 999); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUseCasePromoteByDiscordID(t *testing.T) {
	store := test.NewMemoryStore()
	uc := NewUserUseCase(store, NewLedgerUseCase(store))
	ctx := context.Background()
	id := store.SeedUser(model.User{DiscordID: "4242", Role: model.RoleClient})

	user, err := uc.PromoteByDiscordID(ctx, "4242", model.RoleAdmin)
	if err != nil || user.ID != id || user.Role != model.RoleAdmin {
		t.Fatalf("unexpected promotion: %+v %v", user, err)
	}
	stored, _ := uc.Profile(ctx, id)
	if stored.Role != model.RoleAdmin {
		t.Fatalf("expected stored role Admin, got %s", stored.Role)
	}
	if _, err := uc.PromoteByDiscordID(ctx, "missing", model.RoleStaff); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := uc.PromoteByDiscordID(ctx, "4242", "Owner"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
