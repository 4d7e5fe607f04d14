package provider

import (
	"fmt"
	"math/rand"

	"github.com/dilshat/sms-gateway/model"
)

const SmppName = "smpp"

// data_coding value signaling UCS2 payload
const dataCodingUcs2 = 8

const (
	EncodingGsm7 = "GSM7"
	EncodingUcs2 = "UCS2"
)

type smppAdapter struct {
}

func NewSmpp() Adapter {
	return &smppAdapter{}
}

func (a *smppAdapter) Name() string {
	return SmppName
}

func (a *smppAdapter) Send(raw map[string]interface{}) (model.Message, error) {
	if addr := stringField(raw, "destination_addr"); addr == "" {
		return model.Message{}, NewValidationError("destination_addr")
	}
	if msg := stringField(raw, "short_message"); msg == "" {
		return model.Message{}, NewValidationError("short_message")
	}

	return a.Normalize(raw, a.Acknowledge(raw)), nil
}

func (a *smppAdapter) Acknowledge(raw map[string]interface{}) Ack {
	return Ack{
		"pduId":    fmt.Sprintf("0x%x", rand.Intn(65536)),
		"esmClass": 0,
		"dlrCode":  DlrQueued,
	}
}

func (a *smppAdapter) Normalize(raw map[string]interface{}, ack Ack) model.Message {
	encoding := EncodingGsm7
	if dc, ok := numberField(raw, "data_coding"); ok && int(dc) == dataCodingUcs2 {
		encoding = EncodingUcs2
	}

	dlrCode := 0
	if code, ok := numberField(ack, "dlrCode"); ok {
		dlrCode = int(code)
	}

	//audit copy of the full request plus the response pdu
	meta := make(map[string]interface{}, len(raw)+1)
	for k, v := range raw {
		meta[k] = v
	}
	meta["pdu"] = map[string]interface{}(ack)

	return model.Message{
		Id:                newMessageId(),
		Provider:          a.Name(),
		ProviderMessageId: stringField(ack, "pduId"),
		Direction:         model.DirectionOutbound,
		Status:            MapSmppStatus(dlrCode),
		Sender:            stringField(raw, "source_addr"),
		Recipient:         stringField(raw, "destination_addr"),
		Body:              stringField(raw, "short_message"),
		Encoding:          encoding,
		Parts:             1,
		RetentionPolicy:   retentionOf(raw),
		Meta:              meta,
	}
}
