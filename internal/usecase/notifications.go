package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Notifier delivers outbound messages without blocking the caller. Delivery
// failures are handled by the implementation and never reach the workflow.
type Notifier interface {
	Notify(n model.Notification)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func credits(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func displayName(u *model.User) string {
	if u == nil {
		return "Unknown User"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

func orString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func itemList(items []model.OrderItem, bullet string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s%s (x%d)", bullet, item.Name, item.Quantity))
	}
	return strings.Join(lines, "\n")
}

func statusColor(status model.OrderStatus) int {
	switch status {
	case model.OrderStatusDelivered:
		return model.ColorSuccess
	case model.OrderStatusCancelled:
		return model.ColorDanger
	default:
		return model.ColorWarning
	}
}

func registrationMessage(u *model.User, now time.Time) model.Notification {
	return model.Notification{
		Channel:  model.ChannelNewRegistration,
		Username: "Registration Bot",
		Embeds: []model.Embed{{
			Title:       "New User Registered!",
			Description: fmt.Sprintf("**%s** just signed in for the first time.", displayName(u)),
			Color:       model.ColorSuccess,
			Fields: []model.EmbedField{
				{Name: "User ID", Value: fmt.Sprint(u.ID), Inline: true},
				{Name: "Discord ID", Value: u.DiscordID, Inline: true},
				{Name: "Email", Value: orString(u.Email, "N/A"), Inline: true},
				{Name: "Referral Code", Value: u.ReferralCode, Inline: true},
			},
			Timestamp: now.UTC().Format(time.RFC3339),
		}},
	}
}

func orderPlacedMessages(o *model.Order, buyer *model.User, referrer *model.User, now time.Time) []model.Notification {
	referredBy := "None"
	if referrer != nil {
		referredBy = referrer.DiscordID
	}
	ts := now.UTC().Format(time.RFC3339)
	webhook := model.Notification{
		Channel:  model.ChannelOrderConfirmation,
		Username: "Order Bot",
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("New Order Placed! #%s", o.Number),
			Description: fmt.Sprintf("A new order has been received from **%s**!", displayName(buyer)),
			Color:       model.ColorOrder,
			Fields: []model.EmbedField{
				{Name: "Order ID", Value: fmt.Sprint(o.ID), Inline: true},
				{Name: "Customer Discord ID", Value: buyer.DiscordID, Inline: true},
				{Name: "Total Amount", Value: money(o.TotalAmount), Inline: true},
				{Name: "Status", Value: string(o.Status), Inline: true},
				{Name: "Items", Value: itemList(o.Items, "- ")},
				{Name: "Referral Code Used By Buyer", Value: orString(o.ReferralCode, "None"), Inline: true},
				{Name: "Referred By (Discord ID)", Value: referredBy, Inline: true},
			},
			Timestamp: ts,
		}},
	}
	dm := model.Notification{
		Channel:   model.ChannelDirectMessage,
		Recipient: buyer.DiscordID,
		Content: fmt.Sprintf("Your order #%s has been successfully placed! Total: %s. Current status: %s. Thank you for your purchase!",
			o.Number, money(o.TotalAmount), o.Status),
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("Order #%s Confirmed!", o.Number),
			Description: "**Thank you for your purchase!**",
			Color:       model.ColorSuccess,
			Fields: []model.EmbedField{
				{Name: "Order Total", Value: money(o.TotalAmount), Inline: true},
				{Name: "Status", Value: string(o.Status), Inline: true},
				{Name: "Items", Value: itemList(o.Items, "")},
			},
			Timestamp: ts,
		}},
	}
	return []model.Notification{webhook, dm}
}

func orderStatusMessages(o *model.Order, owner *model.User, oldStatus model.OrderStatus, actor *model.User, now time.Time) []model.Notification {
	ts := now.UTC().Format(time.RFC3339)
	color := statusColor(o.Status)
	processedBy := "Unknown Admin/Staff"
	if actor != nil {
		processedBy = actor.Username
	}
	messages := []model.Notification{{
		Channel:  model.ChannelOrderStatus,
		Username: "Order Status Bot",
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("Order #%s Status Update!", o.Number),
			Description: fmt.Sprintf("Order for **%s** has changed status.", displayName(owner)),
			Color:       color,
			Fields: []model.EmbedField{
				{Name: "Order ID", Value: fmt.Sprint(o.ID), Inline: true},
				{Name: "Customer", Value: displayName(owner), Inline: true},
				{Name: "Previous Status", Value: string(oldStatus), Inline: true},
				{Name: "New Status", Value: string(o.Status), Inline: true},
				{Name: "Remarks", Value: orString(o.AdminRemarks, "None")},
				{Name: "Processed By", Value: processedBy, Inline: true},
			},
			Timestamp: ts,
		}},
	}}
	if owner == nil || owner.DiscordID == "" {
		return messages
	}
	content := fmt.Sprintf("Your order #%s has been updated! New status: %s. Total: %s.", o.Number, o.Status, money(o.TotalAmount))
	if o.AdminRemarks != "" {
		content += " Remarks: " + o.AdminRemarks
	}
	return append(messages, model.Notification{
		Channel:   model.ChannelDirectMessage,
		Recipient: owner.DiscordID,
		Content:   content,
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("Order #%s Status: %s", o.Number, o.Status),
			Description: "Your order has been updated by the store staff!",
			Color:       color,
			Fields: []model.EmbedField{
				{Name: "Order Total", Value: money(o.TotalAmount), Inline: true},
				{Name: "New Status", Value: string(o.Status), Inline: true},
				{Name: "Remarks", Value: orString(o.AdminRemarks, "None")},
			},
			Timestamp: ts,
		}},
	})
}

func redemptionRequestedMessages(r *model.Redemption, u *model.User, balance float64, now time.Time) []model.Notification {
	ts := now.UTC().Format(time.RFC3339)
	webhook := model.Notification{
		Channel:  model.ChannelRedeemRequest,
		Username: "Rewards Bot",
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("New Redemption Request! #%d", r.ID),
			Description: fmt.Sprintf("**%s** wants to redeem **%s**.", displayName(u), r.RewardName),
			Color:       model.ColorRedemption,
			Fields: []model.EmbedField{
				{Name: "Reward", Value: r.RewardName, Inline: true},
				{Name: "Cost", Value: credits(r.CreditCost) + " credits", Inline: true},
				{Name: "User Discord ID", Value: u.DiscordID, Inline: true},
				{Name: "Remaining Credits", Value: credits(balance), Inline: true},
				{Name: "Status", Value: string(r.Status), Inline: true},
			},
			Timestamp: ts,
		}},
	}
	dm := model.Notification{
		Channel:   model.ChannelDirectMessage,
		Recipient: u.DiscordID,
		Content:   fmt.Sprintf("Your redemption request for %s has been submitted and is awaiting approval.", r.RewardName),
		Embeds: []model.Embed{{
			Title:       "Redemption Request Submitted!",
			Description: fmt.Sprintf("You requested **%s** for %s credits.", r.RewardName, credits(r.CreditCost)),
			Color:       model.ColorRedemption,
			Fields: []model.EmbedField{
				{Name: "Remaining Credits", Value: credits(balance), Inline: true},
				{Name: "Status", Value: string(r.Status), Inline: true},
			},
			Timestamp: ts,
		}},
	}
	return []model.Notification{webhook, dm}
}

func redemptionProcessedMessage(r *model.Redemption, u *model.User, now time.Time) model.Notification {
	color := model.ColorSuccess
	outcome := "approved"
	if r.Status == model.RedemptionStatusRejected {
		color = model.ColorDanger
		outcome = fmt.Sprintf("rejected and %s credits were refunded", credits(r.CreditCost))
	}
	return model.Notification{
		Channel:   model.ChannelDirectMessage,
		Recipient: u.DiscordID,
		Content:   fmt.Sprintf("Your redemption of %s was %s.", r.RewardName, outcome),
		Embeds: []model.Embed{{
			Title:       fmt.Sprintf("Redemption %s", r.Status),
			Description: fmt.Sprintf("Reward: **%s**", r.RewardName),
			Color:       color,
			Fields: []model.EmbedField{
				{Name: "Remarks", Value: orString(r.AdminRemarks, "None")},
			},
			Timestamp: now.UTC().Format(time.RFC3339),
		}},
	}
}
