package provider

import "github.com/dilshat/sms-gateway/model"

// provider-native delivery statuses
const (
	MimsmsSuccess   = "Success"
	MimsmsDelivered = "Delivered"
	MimsmsInvalid   = "Invalid"
)

// smpp delivery receipt codes
const (
	DlrQueued    = 0
	DlrSent      = 1
	DlrDelivered = 2
	DlrExpired   = 5
)

var mimsmsStatusMap = map[string]model.Status{
	MimsmsSuccess:   model.StatusQueued,
	MimsmsDelivered: model.StatusDelivered,
	MimsmsInvalid:   model.StatusFailed,
}

var smppDlrMap = map[int]model.Status{
	DlrQueued:    model.StatusQueued,
	DlrSent:      model.StatusSent,
	DlrDelivered: model.StatusDelivered,
	DlrExpired:   model.StatusExpired,
}

// MapMimsmsStatus maps a mimsms textual status to the canonical status.
// Unrecognized values map to failed.
func MapMimsmsStatus(status string) model.Status {
	if s, ok := mimsmsStatusMap[status]; ok {
		return s
	}
	return model.StatusFailed
}

// MapTwilioStatus passes a twilio status through when it is already a
// canonical value, otherwise failed.
func MapTwilioStatus(status string) model.Status {
	if s := model.Status(status); s.Valid() {
		return s
	}
	return model.StatusFailed
}

// MapSmppStatus maps an smpp delivery receipt code to the canonical
// status. Unrecognized codes map to failed.
func MapSmppStatus(dlrCode int) model.Status {
	if s, ok := smppDlrMap[dlrCode]; ok {
		return s
	}
	return model.StatusFailed
}
