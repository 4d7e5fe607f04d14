package dao

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/dilshat/sms-gateway/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	PROVIDER  = "twilio"
	PROVIDER2 = "mimsms"
	RECIPIENT = "+16660002222"
	BODY      = "Hello World!"
)

func newMessage(provider string, status model.Status) model.Message {
	return model.Message{
		Id:              uuid.NewString(),
		Provider:        provider,
		Direction:       model.DirectionOutbound,
		Status:          status,
		Recipient:       RECIPIENT,
		Body:            BODY,
		Parts:           1,
		RetentionPolicy: model.RetentionAudit,
		Meta:            map[string]interface{}{"k": "v"},
	}
}

func TestMessageDao_Insert(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	stored, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))

	require.NoError(t, err)
	require.NotEmpty(t, stored.Id)
	require.False(t, stored.CreatedAt.IsZero())
	require.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	require.True(t, stored.Seq > 0)
}

// the stored record must deep-equal a subsequent read, meta included
func TestMessageDao_InsertRoundTrip(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	msg := newMessage(PROVIDER, model.StatusQueued)
	msg.Meta = map[string]interface{}{
		"To":     RECIPIENT,
		"Body":   BODY,
		"nested": map[string]interface{}{"dlrCode": float64(0)},
		"list":   []interface{}{"a", "b"},
	}

	stored, err := msgDao.Insert(msg)
	require.NoError(t, err)

	fetched, err := msgDao.GetOneById(stored.Id)
	require.NoError(t, err)
	require.Equal(t, stored, fetched)
	require.Equal(t, msg.Meta, fetched.Meta)
}

func TestMessageDao_GetOneByIdNotFound(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	_, err := msgDao.GetOneById("no-such-id")

	require.Equal(t, storm.ErrNotFound, err)
}

func TestMessageDao_GetAllOrder(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	var ids []string
	for i := 0; i < 5; i++ {
		stored, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))
		require.NoError(t, err)
		ids = append(ids, stored.Id)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := msgDao.GetAll("", 0)

	require.NoError(t, err)
	require.Equal(t, 5, len(all))
	//newest first
	for i := range all {
		require.Equal(t, ids[len(ids)-1-i], all[i].Id)
	}
}

func TestMessageDao_GetAllFilter(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	for i := 0; i < 3; i++ {
		_, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))
		require.NoError(t, err)
		_, err = msgDao.Insert(newMessage(PROVIDER2, model.StatusQueued))
		require.NoError(t, err)
	}

	all, err := msgDao.GetAll(PROVIDER2, 0)

	require.NoError(t, err)
	require.Equal(t, 3, len(all))
	for _, msg := range all {
		require.Equal(t, PROVIDER2, msg.Provider)
	}
}

func TestMessageDao_GetAllLimit(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	for i := 0; i < 10; i++ {
		_, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))
		require.NoError(t, err)
	}

	all, err := msgDao.GetAll("", 4)
	require.NoError(t, err)
	require.Equal(t, 4, len(all))

	//a limit above the cap is clamped, not rejected
	all, err = msgDao.GetAll("", 10000)
	require.NoError(t, err)
	require.Equal(t, 10, len(all))
}

func TestMessageDao_GetAllEmpty(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	all, err := msgDao.GetAll("", 0)

	require.NoError(t, err)
	require.Empty(t, all)
}

func TestMessageDao_BulkMarkDelivered(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	for i := 0; i < 4; i++ {
		_, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))
		require.NoError(t, err)
	}
	failed, err := msgDao.Insert(newMessage(PROVIDER, model.StatusFailed))
	require.NoError(t, err)
	sent, err := msgDao.Insert(newMessage(PROVIDER, model.StatusSent))
	require.NoError(t, err)

	count, err := msgDao.BulkMarkDelivered()

	require.NoError(t, err)
	require.Equal(t, 4, count)

	all, err := msgDao.GetAll("", 0)
	require.NoError(t, err)
	delivered := 0
	for _, msg := range all {
		if msg.Status == model.StatusDelivered {
			delivered++
			require.True(t, msg.UpdatedAt.After(msg.CreatedAt))
		}
	}
	require.Equal(t, 4, delivered)

	//untouched records keep their statuses
	msg, err := msgDao.GetOneById(failed.Id)
	require.NoError(t, err)
	require.Equal(t, model.StatusFailed, msg.Status)
	msg, err = msgDao.GetOneById(sent.Id)
	require.NoError(t, err)
	require.Equal(t, model.StatusSent, msg.Status)
}

func TestMessageDao_BulkMarkDeliveredEmpty(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	count, err := msgDao.BulkMarkDelivered()

	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// a record inserted during the transition is included or excluded but
// never miscounted
func TestMessageDao_BulkMarkDeliveredConcurrentInsert(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	msgDao := NewMessageDao(db)

	for i := 0; i < 20; i++ {
		_, err := msgDao.Insert(newMessage(PROVIDER, model.StatusQueued))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	inserted := make(chan int, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		n := 0
		for i := 0; i < 10; i++ {
			if _, err := msgDao.Insert(newMessage(PROVIDER2, model.StatusQueued)); err == nil {
				n++
			}
		}
		inserted <- n
	}()

	count, err := msgDao.BulkMarkDelivered()
	require.NoError(t, err)
	wg.Wait()
	n := <-inserted

	require.Equal(t, 10, n)
	require.True(t, count >= 20 && count <= 20+n, "unexpected count "+strconv.Itoa(count))

	//the reported count matches the rows actually changed
	all, err := msgDao.GetAll("", 0)
	require.NoError(t, err)
	delivered := 0
	for _, msg := range all {
		if msg.Status == model.StatusDelivered {
			delivered++
		}
	}
	require.Equal(t, count, delivered)
}
