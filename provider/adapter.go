package provider

import (
	"math"

	"github.com/dilshat/sms-gateway/model"
	"github.com/dilshat/sms-gateway/util"
	"github.com/google/uuid"
)

// sms segment sizes per charset
const (
	gsm7SegmentLen = 160
	ucs2SegmentLen = 70
)

// Ack is a synthesized provider-side confirmation, standing in for what
// a real carrier API would return. Keys are provider-native.
type Ack map[string]interface{}

// Adapter translates one provider's request shape into the canonical
// message schema.
type Adapter interface {
	//Name returns the provider name used in the registry and on records
	Name() string
	//Send validates the raw payload, synthesizes an acknowledgment and
	//returns the normalized canonical message
	Send(raw map[string]interface{}) (model.Message, error)
}

func stringField(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// numberField reads a numeric raw field. JSON decoding yields float64,
// direct construction in tests may use int.
func numberField(raw map[string]interface{}, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func retentionOf(raw map[string]interface{}) model.RetentionPolicy {
	return model.ParseRetentionPolicy(stringField(raw, "retention_policy"))
}

func newMessageId() string {
	return uuid.NewString()
}

// segmentCount returns the number of sms segments needed for body:
// 160 chars per GSM7 segment, 70 per UCS2 segment for non-ASCII bodies.
func segmentCount(body string) int {
	runes := []rune(body)
	size := gsm7SegmentLen
	if !util.IsASCII(body) {
		size = ucs2SegmentLen
	}
	n := int(math.Ceil(float64(len(runes)) / float64(size)))
	if n < 1 {
		n = 1
	}
	return n
}
