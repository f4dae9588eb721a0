package oplog

import (
	"context"
	"encoding/json"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/mq/kafka"
	"go-blogadmin/internal/repository/dao"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Entry 操作日志消息体，由 HTTP 中间件生产
type Entry struct {
	UserID     int64  `json:"user_id"`
	Nickname   string `json:"nickname"`
	ActionName string `json:"action_name"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Status     int    `json:"status"`
	LatencyMs  int64  `json:"latency_ms"`
	IP         string `json:"ip"`
	Body       string `json:"body"`
	CreateTime int64  `json:"create_time"`
}

// Consumer 消费操作日志 topic 并落库
type Consumer struct {
	consumer *kafka.Consumer
	opDAO    *dao.OperationLogDAO
	log      *logging.Logger
}

func New(c *kafka.Consumer, opDAO *dao.OperationLogDAO, log *logging.Logger) *Consumer {
	return &Consumer{consumer: c, opDAO: opDAO, log: log}
}

// Start 阻塞消费直到 ctx 取消；坏消息记日志后跳过，不阻塞位点
func (c *Consumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx, func(msgCtx context.Context, msg kafkaGo.Message) error {
		var e Entry
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			c.log.WithContext(msgCtx).Warn("oplog_decode_failed",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			return nil
		}
		err := c.opDAO.Create(msgCtx, &model.OperationLog{
			UserID:     e.UserID,
			Nickname:   e.Nickname,
			ActionName: e.ActionName,
			Path:       e.Path,
			Method:     e.Method,
			Status:     e.Status,
			LatencyMs:  e.LatencyMs,
			IP:         e.IP,
			Body:       e.Body,
			CreateTime: e.CreateTime,
		})
		if err != nil {
			c.log.WithContext(msgCtx).Error("oplog_persist_failed",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			return err
		}
		return nil
	})
}

func (c *Consumer) Close() error { return c.consumer.Close() }
