package provider

import (
	"github.com/dchest/uniuri"
	"github.com/dilshat/sms-gateway/model"
)

const MimsmsName = "mimsms"

// billing hints attached to every mimsms acknowledgment
const (
	mimsmsCost     = 0.25
	mimsmsCurrency = "BDT"
)

type mimsmsAdapter struct {
}

func NewMimsms() Adapter {
	return &mimsmsAdapter{}
}

func (a *mimsmsAdapter) Name() string {
	return MimsmsName
}

func (a *mimsmsAdapter) Send(raw map[string]interface{}) (model.Message, error) {
	if phone := stringField(raw, "MobileNumber"); phone == "" {
		return model.Message{}, NewValidationError("MobileNumber")
	}
	if text := stringField(raw, "Message"); text == "" {
		return model.Message{}, NewValidationError("Message")
	}

	return a.Normalize(raw, a.Acknowledge(raw)), nil
}

func (a *mimsmsAdapter) Acknowledge(raw map[string]interface{}) Ack {
	return Ack{
		"trxnId":   "MIM-" + uniuri.NewLen(10),
		"status":   MimsmsSuccess,
		"cost":     mimsmsCost,
		"currency": mimsmsCurrency,
	}
}

func (a *mimsmsAdapter) Normalize(raw map[string]interface{}, ack Ack) model.Message {
	//audit copy of the full request merged with the acknowledgment
	meta := make(map[string]interface{}, len(raw)+len(ack))
	for k, v := range raw {
		meta[k] = v
	}
	for k, v := range ack {
		meta[k] = v
	}

	cost, _ := numberField(ack, "cost")

	return model.Message{
		Id:                newMessageId(),
		Provider:          a.Name(),
		ProviderMessageId: stringField(ack, "trxnId"),
		Direction:         model.DirectionOutbound,
		Status:            MapMimsmsStatus(stringField(ack, "status")),
		Sender:            stringField(raw, "SenderName"),
		Recipient:         stringField(raw, "MobileNumber"),
		Body:              stringField(raw, "Message"),
		Parts:             1,
		Cost:              cost,
		Currency:          stringField(ack, "currency"),
		CampaignId:        stringField(raw, "CampaignId"),
		TransactionType:   stringField(raw, "TransactionType"),
		RetentionPolicy:   retentionOf(raw),
		Meta:              meta,
	}
}
