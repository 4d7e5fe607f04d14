package service

import (
	"github.com/dilshat/sms-gateway/broker"
	"github.com/dilshat/sms-gateway/dao"
	"github.com/dilshat/sms-gateway/model"
	"github.com/dilshat/sms-gateway/provider"
	"github.com/dilshat/sms-gateway/service/dto"
	"go.uber.org/zap"
)

type Service interface {
	//SendMessage resolves the provider, runs its send and persists the
	//canonical result before announcing it to live subscribers
	SendMessage(providerName string, raw map[string]interface{}) (model.Message, error)
	//GetMessage returns a stored message by id
	GetMessage(id string) (model.Message, error)
	//ListMessages returns stored messages newest first per filter
	ListMessages(filter dto.Filter) ([]model.Message, error)
	//MarkQueuedDelivered transitions every queued message to delivered
	//and returns the number of messages changed
	MarkQueuedDelivered() (int, error)
	//Subscribe registers a live event subscriber
	Subscribe() *broker.Subscriber
	//Unsubscribe removes a live event subscriber
	Unsubscribe(sub *broker.Subscriber)
	//SupportedProviders returns the registered provider names in order
	SupportedProviders() []string
}

type service struct {
	registry   provider.Registry
	messageDao dao.MessageDao
	events     broker.Broker
}

func NewService(registry provider.Registry, messageDao dao.MessageDao, events broker.Broker) Service {
	return &service{
		registry:   registry,
		messageDao: messageDao,
		events:     events,
	}
}

func (s service) SendMessage(providerName string, raw map[string]interface{}) (model.Message, error) {
	adapter, err := s.registry.Lookup(providerName)
	if err != nil {
		return model.Message{}, err
	}

	msg, err := adapter.Send(raw)
	if err != nil {
		return model.Message{}, err
	}

	stored, err := s.messageDao.Insert(msg)
	if err != nil {
		zap.L().Error("Error persisting message", zap.String("provider", providerName), zap.Error(err))
		return model.Message{}, err
	}

	//the record is durable at this point, a subscriber reacting to the
	//event is guaranteed to find it in the store
	s.events.Publish(stored)

	return stored, nil
}

func (s service) GetMessage(id string) (model.Message, error) {
	return s.messageDao.GetOneById(id)
}

func (s service) ListMessages(filter dto.Filter) ([]model.Message, error) {
	return s.messageDao.GetAll(filter.Provider, filter.Limit)
}

func (s service) MarkQueuedDelivered() (int, error) {
	count, err := s.messageDao.BulkMarkDelivered()
	if err != nil {
		zap.L().Error("Error marking queued messages delivered", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s service) Subscribe() *broker.Subscriber {
	return s.events.Subscribe()
}

func (s service) Unsubscribe(sub *broker.Subscriber) {
	s.events.Unsubscribe(sub)
}

func (s service) SupportedProviders() []string {
	return s.registry.SupportedNames()
}
