package broker

import (
	"sync"

	"github.com/dilshat/sms-gateway/model"
	"go.uber.org/zap"
)

const (
	//EventSmsNew is the kind of event published for every stored message
	EventSmsNew = "sms.new"

	//DefaultBufferSize is the per-subscriber event buffer
	DefaultBufferSize = 16
)

// Event is the reduced view of a message pushed to live subscribers.
type Event struct {
	Event     string       `json:"event"`
	Id        string       `json:"id"`
	Provider  string       `json:"provider"`
	Recipient string       `json:"recipient"`
	Body      string       `json:"body"`
	Status    model.Status `json:"status"`
}

// Subscriber is one live listener. C is closed on unsubscribe.
type Subscriber struct {
	C chan Event
}

// Broker fans new messages out to live subscribers. Publish never
// blocks: a subscriber whose buffer is full is dropped.
type Broker interface {
	Subscribe() *Subscriber
	Unsubscribe(sub *Subscriber)
	Publish(msg model.Message)
}

type broker struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	buffer int
}

func New(buffer int) Broker {
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &broker{subs: make(map[*Subscriber]struct{}), buffer: buffer}
}

func (b *broker) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan Event, b.buffer)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

func (b *broker) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(sub)
}

func (b *broker) Publish(msg model.Message) {
	ev := Event{
		Event:     EventSmsNew,
		Id:        msg.Id,
		Provider:  msg.Provider,
		Recipient: msg.Recipient,
		Body:      msg.Body,
		Status:    msg.Status,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.C <- ev:
		default:
			//subscriber is not draining its buffer, drop it so one
			//stalled connection cannot hold up message ingestion
			b.remove(sub)
			zap.L().Warn("Dropped slow subscriber", zap.String("id", msg.Id))
		}
	}
}

// remove must be called with mu held. Idempotent.
func (b *broker) remove(sub *Subscriber) {
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.C)
	}
}
