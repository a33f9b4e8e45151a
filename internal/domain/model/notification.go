package model

// NotificationChannel routes an outbound message.
type NotificationChannel string

const (
	ChannelNewRegistration   NotificationChannel = "new_registration"
	ChannelOrderConfirmation NotificationChannel = "order_confirmation"
	ChannelOrderStatus       NotificationChannel = "order_status"
	ChannelRedeemRequest     NotificationChannel = "redeem_request"
	ChannelDirectMessage     NotificationChannel = "direct_message"
)

// Embed colours.
const (
	ColorSuccess    = 3066993
	ColorDanger     = 15158332
	ColorWarning    = 16776960
	ColorRedemption = 10079487
	ColorOrder      = 6022839
)

// EmbedField is a name/value row of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a rich chat message block.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// Notification is a best-effort outbound message. Recipient is the Discord
// user id for direct messages and empty for webhook channels.
type Notification struct {
	ID        string
	Channel   NotificationChannel
	Recipient string
	Username  string
	AvatarURL string
	Content   string
	Embeds    []Embed
}
