package domain

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

// Prompt is a single turn handed to the text generator.
type Prompt struct {
	Prompt string
	Author Author
}

// Message is the caller context the host platform supplies with every
// incoming command: who sent it, where, and how to reach them again later.
type Message struct {
	ID             int
	ChatID         int64
	SenderID       string
	SenderName     string
	DeliveryTarget string
	Text           string
}

// SubscriptionRecord is one user's opt-in state for the daily push. Records
// are keyed by SubscriberID in the store and never deleted; `sub off` only
// flips Enabled.
type SubscriptionRecord struct {
	SubscriberID   string `json:"-"`
	Location       string `json:"location"`
	Enabled        bool   `json:"enabled"`
	UserName       string `json:"user_name"`
	DeliveryTarget string `json:"delivery_target"`
}
