package dao

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/dilshat/sms-gateway/model"
)

const (
	//DefaultLimit is used when a list request carries no limit
	DefaultLimit = 100
	//MaxLimit caps a list request regardless of the requested value
	MaxLimit = 500
)

type MessageDao interface {
	//Insert persists the message and returns the stored record re-read
	//from storage
	Insert(msg model.Message) (model.Message, error)
	//GetOneById returns the message with the given id or storm.ErrNotFound
	GetOneById(id string) (model.Message, error)
	//GetAll returns messages newest first, optionally filtered by
	//provider; limit defaults to DefaultLimit and is clamped to MaxLimit
	GetAll(provider string, limit int) ([]model.Message, error)
	//BulkMarkDelivered transitions every queued message to delivered in
	//one transaction and returns the number of messages changed
	BulkMarkDelivered() (int, error)
}

func NewMessageDao(db Db) MessageDao {
	return &messageDao{db: db}
}

type messageDao struct {
	db Db
}

func (d messageDao) Insert(msg model.Message) (model.Message, error) {
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	if err := d.db.Save(&msg); err != nil {
		return model.Message{}, &StorageError{Op: "insert", Err: err}
	}

	//re-read so the caller observes the storage-normalized record,
	//meta included, rather than the pre-insert object
	var stored model.Message
	if err := d.db.One("Id", msg.Id, &stored); err != nil {
		return model.Message{}, &StorageError{Op: "insert", Err: err}
	}
	return stored, nil
}

func (d messageDao) GetOneById(id string) (msg model.Message, err error) {
	err = d.db.One("Id", id, &msg)
	return
}

func (d messageDao) GetAll(provider string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var matchers []q.Matcher
	if provider != "" {
		matchers = append(matchers, q.Eq("Provider", provider))
	}

	var messages []model.Message
	err := d.db.Select(matchers...).OrderBy("CreatedAt", "Seq").Reverse().Limit(limit).Find(&messages)
	if err == storm.ErrNotFound {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return messages, nil
}

func (d messageDao) BulkMarkDelivered() (int, error) {
	//single writable transaction: bolt serializes writers, so the
	//read-modify-write cannot lose concurrent inserts
	tx, err := d.db.Begin(true)
	if err != nil {
		return 0, &StorageError{Op: "bulk mark delivered", Err: err}
	}
	defer tx.Rollback()

	var queued []model.Message
	err = tx.Select(q.Eq("Status", model.StatusQueued)).Find(&queued)
	if err == storm.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, &StorageError{Op: "bulk mark delivered", Err: err}
	}

	now := time.Now()
	for i := range queued {
		queued[i].Status = model.StatusDelivered
		queued[i].UpdatedAt = now
		if err := tx.Update(&queued[i]); err != nil {
			return 0, &StorageError{Op: "bulk mark delivered", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "bulk mark delivered", Err: err}
	}
	return len(queued), nil
}
