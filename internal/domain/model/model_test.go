package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "Pending"},
		{"processing", OrderStatusProcessing, "Processing"},
		{"shipped", OrderStatusShipped, "Shipped"},
		{"delivered", OrderStatusDelivered, "Delivered"},
		{"cancelled", OrderStatusCancelled, "Cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("Lost").Valid() {
		t.Fatal("unexpected valid status")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatus("Lost"), false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestRoleOrdering(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleStaff) || !RoleAdmin.AtLeast(RoleClient) || !RoleStaff.AtLeast(RoleClient) {
		t.Fatal("expected higher roles to include lower privileges")
	}
	if RoleClient.AtLeast(RoleAdmin) || RoleStaff.AtLeast(RoleAdmin) || RoleClient.AtLeast(RoleStaff) {
		t.Fatal("expected lower roles to be rejected")
	}
	if Role("Owner").Valid() || Role("Owner").AtLeast(RoleClient) {
		t.Fatal("unknown role must grant nothing")
	}
}

func TestProductEffectivePrice(t *testing.T) {
	p := Product{Price: 20}
	if p.EffectivePrice() != 20 {
		t.Fatalf("expected list price, got %v", p.EffectivePrice())
	}
	discount := 0.0
	p.DiscountPrice = &discount
	if p.EffectivePrice() != 0 {
		t.Fatalf("expected zero discount price to apply, got %v", p.EffectivePrice())
	}
}

func TestEnumValidation(t *testing.T) {
	if !ProductCategoryBots.Valid() || ProductCategory("Toys").Valid() {
		t.Fatal("unexpected product category validation")
	}
	if !RewardCategoryOther.Valid() || RewardCategory("Bots").Valid() {
		t.Fatal("unexpected reward category validation")
	}
	if !SeverityWarning.Valid() || Severity("critical").Valid() {
		t.Fatal("unexpected severity validation")
	}
	if !RedemptionStatusApproved.IsDecision() || !RedemptionStatusRejected.IsDecision() || RedemptionStatusPending.IsDecision() {
		t.Fatal("unexpected redemption decision classification")
	}
}
