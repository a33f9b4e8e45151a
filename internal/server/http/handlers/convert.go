package handlers

import (
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		DiscordID:     u.DiscordID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
		Email:         u.Email,
		Credits:       u.Credits,
		ReferralCode:  u.ReferralCode,
		ReferredBy:    u.ReferredBy,
		Role:          string(u.Role),
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Price:           p.Price,
		DiscountPrice:   p.DiscountPrice,
		Image:           p.Image,
		Category:        string(p.Category),
		Tags:            tags,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func fromProductRequest(req dto.ProductRequest) *model.Product {
	return &model.Product{
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		Image:           req.Image,
		Category:        model.ProductCategory(req.Category),
		Tags:            req.Tags,
		Featured:        req.Featured,
	}
}

func toRewardResponse(r model.Reward) dto.RewardResponse {
	return dto.RewardResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		CreditCost:  r.CreditCost,
		Category:    string(r.Category),
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromRewardRequest(req dto.RewardRequest) *model.Reward {
	return &model.Reward{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreditCost:  req.CreditCost,
		Category:    model.RewardCategory(req.Category),
		Available:   boolOr(req.Available, true),
	}
}

func toAnnouncementResponse(a model.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Severity:  string(a.Severity),
		Active:    a.Active,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAnnouncementRequest(req dto.AnnouncementRequest) *model.Announcement {
	severity := model.Severity(req.Severity)
	if severity == "" {
		severity = model.SeverityInfo
	}
	return &model.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Severity: severity,
		Active:   boolOr(req.Active, true),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Number:          o.Number,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		ReferralCode:    o.ReferralCode,
		AdminRemarks:    o.AdminRemarks,
		HiddenFromStaff: o.HiddenFromStaff,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toCreditEntryResponse(e model.CreditEntry) dto.CreditEntryResponse {
	return dto.CreditEntryResponse{
		ID:        e.ID,
		Delta:     e.Delta,
		Balance:   e.Balance,
		Reason:    string(e.Reason),
		Reference: e.Reference,
		CreatedAt: e.CreatedAt,
	}
}

func toRedemptionResponse(r model.Redemption) dto.RedemptionResponse {
	return dto.RedemptionResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		RewardID:     r.RewardID,
		RewardName:   r.RewardName,
		CreditCost:   r.CreditCost,
		Status:       string(r.Status),
		AdminRemarks: r.AdminRemarks,
		ProcessedBy:  r.ProcessedBy,
		RequestedAt:  r.RequestedAt,
		ProcessedAt:  r.ProcessedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
