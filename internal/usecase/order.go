package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderSettings tunes fulfilment rules.
type OrderSettings struct {
	ReferralPercentage float64
	StrictTransitions  bool
}

// OrderUseCase places orders and drives their fulfilment status.
type OrderUseCase struct {
	store    repository.Store
	ledger   *LedgerUseCase
	notifier Notifier
	logger   *slog.Logger
	settings OrderSettings
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(store repository.Store, ledger *LedgerUseCase, notifier Notifier, logger *slog.Logger, settings OrderSettings) *OrderUseCase {
	return &OrderUseCase{store: store, ledger: ledger, notifier: notifier, logger: logger, settings: settings, now: time.Now}
}

// Place snapshots the requested products and stores a pending order.
// Unknown and self referral codes are ignored.
func (u *OrderUseCase) Place(ctx context.Context, userID int64, lines []model.OrderLine, referralCode string) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}

	items := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		product, err := u.store.Products().GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrProductNotFound
			}
			return nil, err
		}
		if line.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidQuantity
		}
		price := product.EffectivePrice()
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
	}

	buyer, err := u.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}

	now := u.now()
	order := &model.Order{
		UserID:          userID,
		Number:          orderNumber(now),
		Items:           items,
		TotalAmount:     total.Round(creditPlaces).InexactFloat64(),
		Status:          model.OrderStatusPending,
		DeliveryAddress: model.DefaultDeliveryAddress,
		ReferralCode:    strings.TrimSpace(referralCode),
	}

	referrer, err := u.resolveReferrer(ctx, buyer, order.ReferralCode)
	if err != nil {
		return nil, err
	}
	if referrer != nil {
		order.ReferrerID = &referrer.ID
	}

	if err := u.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	for _, n := range orderPlacedMessages(order, buyer, referrer, now) {
		u.notifier.Notify(n)
	}
	return order, nil
}

func (u *OrderUseCase) resolveReferrer(ctx context.Context, buyer *model.User, code string) (*model.User, error) {
	if code == "" {
		return nil, nil
	}
	referrer, err := u.store.Users().GetByReferralCode(ctx, code)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Info("unknown referral code ignored", slog.String("code", code), slog.Int64("user_id", buyer.ID))
		return nil, nil
	case err != nil:
		return nil, err
	case referrer.ID == buyer.ID || referrer.DiscordID == buyer.DiscordID:
		u.logger.Info("self referral ignored", slog.String("code", code), slog.Int64("user_id", buyer.ID))
		return nil, nil
	}
	return referrer, nil
}

// SetStatus moves the order to status. The first transition into Delivered
// credits the referrer once; the persisted flag blocks any later credit.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, remarks *string, actor *model.User) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	current, err := u.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}

	var (
		updated   *model.Order
		oldStatus model.OrderStatus
	)
	update := func(ctx context.Context, repos repository.Factory) error {
		order, err := repos.Orders().GetByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrOrderNotFound
			}
			return err
		}
		oldStatus = order.Status
		if u.settings.StrictTransitions && !oldStatus.CanTransitionTo(status) {
			return domainErrors.ErrInvalidTransition
		}

		order.Status = status
		if remarks != nil {
			order.AdminRemarks = *remarks
		}

		if oldStatus != model.OrderStatusDelivered && status == model.OrderStatusDelivered &&
			order.ReferrerID != nil && !order.ReferralPaid {
			order.ReferralPaid = true
			if err := u.creditReferrer(ctx, repos, order); err != nil {
				return err
			}
		}

		if err := repos.Orders().UpdateFulfilment(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	}

	if current.ReferrerID != nil {
		err = u.ledger.withUserTx(ctx, *current.ReferrerID, update)
	} else {
		err = u.store.WithinTx(ctx, update)
	}
	if err != nil {
		return nil, err
	}

	owner, err := u.store.Users().GetByID(ctx, updated.UserID)
	if err != nil {
		u.logger.Warn("order owner lookup failed", slog.Int64("order_id", updated.ID), slog.String("error", err.Error()))
	}
	for _, n := range orderStatusMessages(updated, owner, oldStatus, actor, u.now()) {
		u.notifier.Notify(n)
	}
	return updated, nil
}

func (u *OrderUseCase) creditReferrer(ctx context.Context, repos repository.Factory, order *model.Order) error {
	amount := referralShare(order.TotalAmount, u.settings.ReferralPercentage)
	if amount <= 0 {
		return nil
	}
	balance, err := applyDelta(ctx, repos, *order.ReferrerID, amount, model.CreditReasonReferral, order.Number)
	if errors.Is(err, domainErrors.ErrUserNotFound) {
		u.logger.Warn("referrer not found, referral credit skipped",
			slog.Int64("referrer_id", *order.ReferrerID), slog.String("order", order.Number))
		return nil
	}
	if err != nil {
		return err
	}
	u.logger.Info("referral credited",
		slog.Int64("referrer_id", *order.ReferrerID),
		slog.String("order", order.Number),
		slog.Float64("amount", amount),
		slog.Float64("balance", balance))
	return nil
}

// SetVisibility hides or shows the order for staff.
func (u *OrderUseCase) SetVisibility(ctx context.Context, orderID int64, hidden bool) error {
	if err := u.store.Orders().SetHidden(ctx, orderID, hidden); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrOrderNotFound
		}
		return err
	}
	return nil
}

// ListForUser returns the user's own orders, newest first.
func (u *OrderUseCase) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.store.Orders().ListByUser(ctx, userID)
}

// GetForUser returns the order only when userID owns it.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.store.Orders().GetForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListAll returns every order for admins and the non-hidden ones for staff.
func (u *OrderUseCase) ListAll(ctx context.Context, role model.Role) ([]model.Order, error) {
	return u.store.Orders().List(ctx, role.AtLeast(model.RoleAdmin))
}

func orderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
