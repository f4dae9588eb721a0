package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go-blogadmin/internal/consumer/oplog"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/mq/kafka"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxLoggedBody = 2 << 10

// OpLog 写操作审计：请求完成后把操作记录发往 Kafka，由消费者落库。
// producer 为 nil 时直接跳过（未接 Kafka 的部署）。
func OpLog(producer *kafka.Producer, log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if producer == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody))
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
		}
		start := time.Now()
		c.Next()

		entry := oplog.Entry{
			UserID:     UID(c),
			ActionName: c.FullPath(),
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     c.Writer.Status(),
			LatencyMs:  time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			Body:       string(body),
			CreateTime: time.Now().Unix(),
		}
		buf, err := json.Marshal(entry)
		if err != nil {
			return
		}
		// 发送不阻塞响应；脱离请求取消但保留 trace 上下文
		ctx := context.WithoutCancel(c.Request.Context())
		go func() {
			if err := producer.Send(ctx, []byte(entry.Path), buf); err != nil {
				metrics.KafkaUp.Set(0)
				log.Warn("oplog_send_failed", zap.String("path", entry.Path), zap.Error(err))
				return
			}
			metrics.KafkaUp.Set(1)
		}()
	}
}
