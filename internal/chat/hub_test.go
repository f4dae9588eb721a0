package chat

import (
	"context"
	"testing"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestHub(t *testing.T) (*Hub, *dao.ChatRecordDAO) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ChatRecord{}))
	recordDAO := dao.NewChatRecordDAO(db)
	return NewHub(recordDAO, nil, 10, &logging.Logger{Logger: zap.NewNop()}), recordDAO
}

func seedRecord(t *testing.T, d *dao.ChatRecordDAO, uid int64) *model.ChatRecord {
	t.Helper()
	rec := &model.ChatRecord{
		UserID: uid, Nickname: "张三", Content: "hello",
		CreateTime: time.Now().Unix(),
	}
	require.NoError(t, d.Create(context.Background(), rec))
	return rec
}

func TestRecallRejectedForAnonymousClient(t *testing.T) {
	h, d := newTestHub(t)
	rec := seedRecord(t, d, 0)

	h.handleRecall(&Client{hub: h, userID: 0}, Envelope{Kind: KindRecall, ID: rec.ID})

	records, err := d.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Empty(t, h.broadcast)
}

func TestRecallRejectedForOtherUsersMessage(t *testing.T) {
	h, d := newTestHub(t)
	rec := seedRecord(t, d, 7)

	h.handleRecall(&Client{hub: h, userID: 8}, Envelope{Kind: KindRecall, ID: rec.ID})

	records, err := d.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Empty(t, h.broadcast)
}

func TestRecallDeletesOwnMessageAndBroadcasts(t *testing.T) {
	h, d := newTestHub(t)
	rec := seedRecord(t, d, 7)

	h.handleRecall(&Client{hub: h, userID: 7}, Envelope{Kind: KindRecall, ID: rec.ID})

	records, err := d.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, h.broadcast, 1)
}
