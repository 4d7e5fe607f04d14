package provider

import (
	"github.com/dchest/uniuri"
	"github.com/dilshat/sms-gateway/model"
)

const TwilioName = "twilio"

type twilioAdapter struct {
}

func NewTwilio() Adapter {
	return &twilioAdapter{}
}

func (a *twilioAdapter) Name() string {
	return TwilioName
}

func (a *twilioAdapter) Send(raw map[string]interface{}) (model.Message, error) {
	if to := stringField(raw, "To"); to == "" {
		return model.Message{}, NewValidationError("To")
	}
	if body := stringField(raw, "Body"); body == "" {
		return model.Message{}, NewValidationError("Body")
	}

	return a.Normalize(raw, a.Acknowledge(raw)), nil
}

// Acknowledge synthesizes the carrier confirmation: a fresh message sid,
// an accepted status and the segment count for the body.
func (a *twilioAdapter) Acknowledge(raw map[string]interface{}) Ack {
	return Ack{
		"sid":         "SM" + uniuri.NewLen(32),
		"status":      model.StatusQueued.String(),
		"numSegments": segmentCount(stringField(raw, "Body")),
		"mediaUrls":   []interface{}{},
	}
}

func (a *twilioAdapter) Normalize(raw map[string]interface{}, ack Ack) model.Message {
	parts := 1
	if n, ok := numberField(ack, "numSegments"); ok && n >= 1 {
		parts = int(n)
	}

	return model.Message{
		Id:                newMessageId(),
		Provider:          a.Name(),
		ProviderMessageId: stringField(ack, "sid"),
		Direction:         model.DirectionOutbound,
		Status:            MapTwilioStatus(stringField(ack, "status")),
		Sender:            stringField(raw, "From"),
		Recipient:         stringField(raw, "To"),
		Body:              stringField(raw, "Body"),
		Parts:             parts,
		RetentionPolicy:   retentionOf(raw),
		Meta:              map[string]interface{}(ack),
	}
}
