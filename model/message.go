package model

import "time"

// Status is the canonical delivery status of a message. Provider-native
// statuses never reach storage; adapters map them to one of these values.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusSent, StatusDelivered, StatusFailed, StatusExpired:
		return true
	}
	return false
}

type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// RetentionPolicy classifies how long a record is expected to be kept.
// Informational only, nothing in this service reaps by it.
type RetentionPolicy string

const (
	RetentionEphemeral RetentionPolicy = "ephemeral"
	RetentionAudit     RetentionPolicy = "audit"
	RetentionPermanent RetentionPolicy = "permanent"
)

// ParseRetentionPolicy returns the policy named by v, or RetentionAudit
// when v is empty or unknown.
func ParseRetentionPolicy(v string) RetentionPolicy {
	switch RetentionPolicy(v) {
	case RetentionEphemeral, RetentionAudit, RetentionPermanent:
		return RetentionPolicy(v)
	}
	return RetentionAudit
}

// Message is the canonical, provider-agnostic record of an outbound sms.
// Only Status and UpdatedAt change after insert.
type Message struct {
	Id                string                 `storm:"id" json:"id"`
	Provider          string                 `storm:"index" json:"provider"`
	ProviderMessageId string                 `json:"provider_message_id,omitempty"`
	Direction         Direction              `json:"direction"`
	Status            Status                 `storm:"index" json:"status"`
	Sender            string                 `json:"sender,omitempty"`
	Recipient         string                 `json:"recipient"`
	Body              string                 `json:"body"`
	Encoding          string                 `json:"encoding,omitempty"`
	Parts             int                    `json:"parts"`
	Cost              float64                `json:"cost,omitempty"`
	Currency          string                 `json:"currency,omitempty"`
	CampaignId        string                 `json:"campaign_id,omitempty"`
	TransactionType   string                 `json:"transaction_type,omitempty"`
	RetentionPolicy   RetentionPolicy        `json:"retention_policy"`
	Meta              map[string]interface{} `json:"meta"`
	CreatedAt         time.Time              `storm:"index" json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	//Seq breaks CreatedAt ties in list order, newest insertion first
	Seq uint64 `storm:"increment" json:"seq"`
}
