package dao

import (
	"context"
	"testing"
	"time"

	"go-blogadmin/internal/domain/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newUserDAO(t *testing.T) *UserDAO {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.UserRole{}))
	return NewUserDAO(db)
}

func TestRecordLoginRoundTrip(t *testing.T) {
	d := newUserDAO(t)
	ctx := context.Background()
	u := &model.User{Username: "admin", Nickname: "管理员"}
	require.NoError(t, d.Create(ctx, u))

	before := time.Now().Unix()
	require.NoError(t, d.RecordLogin(ctx, u.ID, "10.0.0.8"))

	got, err := d.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "10.0.0.8", got.LoginIP)
	assert.GreaterOrEqual(t, got.LoginTime, before)
	assert.LessOrEqual(t, got.LoginTime, time.Now().Unix())
}
