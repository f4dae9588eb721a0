package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/metrics"
	"go-blogadmin/internal/repository/dao"
	rds "go-blogadmin/internal/repository/redis"

	"go.uber.org/zap"
)

// 消息类型
const (
	KindText    = "text"    // 普通聊天消息
	KindRecall  = "recall"  // 撤回
	KindHistory = "history" // 连接建立后推送的历史记录
	KindOnline  = "online"  // 在线人数变化
)

// Envelope 聊天室线上报文
type Envelope struct {
	Kind     string `json:"kind"`
	ID       int64  `json:"id,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Content  string `json:"content,omitempty"`
	Count    int64  `json:"count,omitempty"`
	Time     int64  `json:"time,omitempty"`
}

// Hub 聊天室中枢：注册/注销/广播都经由单 goroutine 串行处理
type Hub struct {
	clients     map[*Client]struct{}
	register    chan *Client
	unregister  chan *Client
	broadcast   chan []byte
	done        chan struct{}
	recordDAO   *dao.ChatRecordDAO
	redis       *rds.Client
	historySize int
	log         *logging.Logger
}

func NewHub(recordDAO *dao.ChatRecordDAO, r *rds.Client, historySize int, log *logging.Logger) *Hub {
	if historySize <= 0 {
		historySize = 50
	}
	return &Hub{
		clients:     make(map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 64),
		done:        make(chan struct{}),
		recordDAO:   recordDAO,
		redis:       r,
		historySize: historySize,
		log:         log,
	}
}

// Run 事件循环，随服务启动常驻
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.onJoin(c)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.onLeave(c)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// 发送缓冲满视为断连
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				close(c.send)
			}
			return
		}
	}
}

func (h *Hub) Close() { close(h.done) }

func (h *Hub) onJoin(c *Client) {
	ctx := context.Background()
	if err := h.redis.MarkOnline(ctx, strconv.FormatInt(c.userID, 10)); err != nil {
		h.log.Warn("chat_mark_online_failed", zap.Int64("uid", c.userID), zap.Error(err))
	}
	metrics.ChatOnline.Set(float64(len(h.clients)))

	// 新人先收历史，再全员广播在线数
	records, err := h.recordDAO.ListRecent(ctx, h.historySize)
	if err != nil {
		h.log.Warn("chat_history_load_failed", zap.Error(err))
	} else if len(records) > 0 {
		for _, r := range records {
			buf, _ := json.Marshal(Envelope{
				Kind: KindHistory, ID: r.ID, UserID: r.UserID,
				Nickname: r.Nickname, Avatar: r.Avatar,
				Content: r.Content, Time: r.CreateTime,
			})
			select {
			case c.send <- buf:
			default:
			}
		}
	}
	h.broadcastOnline(ctx)
}

func (h *Hub) onLeave(c *Client) {
	ctx := context.Background()
	if err := h.redis.MarkOffline(ctx, strconv.FormatInt(c.userID, 10)); err != nil {
		h.log.Warn("chat_mark_offline_failed", zap.Int64("uid", c.userID), zap.Error(err))
	}
	metrics.ChatOnline.Set(float64(len(h.clients)))
	h.broadcastOnline(ctx)
}

func (h *Hub) broadcastOnline(ctx context.Context) {
	buf, _ := json.Marshal(Envelope{Kind: KindOnline, Count: h.redis.OnlineCount(ctx)})
	select {
	case h.broadcast <- buf:
	default:
	}
}

// handleText 落库后广播
func (h *Hub) handleText(c *Client, env Envelope) {
	rec := &model.ChatRecord{
		UserID:     c.userID,
		Nickname:   c.nickname,
		Avatar:     c.avatar,
		Content:    env.Content,
		IP:         c.ip,
		CreateTime: time.Now().Unix(),
	}
	if err := h.recordDAO.Create(context.Background(), rec); err != nil {
		h.log.Warn("chat_record_save_failed", zap.Int64("uid", c.userID), zap.Error(err))
		return
	}
	metrics.ChatMessagesTotal.WithLabelValues(KindText).Inc()
	buf, _ := json.Marshal(Envelope{
		Kind: KindText, ID: rec.ID, UserID: rec.UserID,
		Nickname: rec.Nickname, Avatar: rec.Avatar,
		Content: rec.Content, Time: rec.CreateTime,
	})
	h.broadcast <- buf
}

// handleRecall 仅允许撤回自己的消息，删除记录后广播撤回事件
func (h *Hub) handleRecall(c *Client, env Envelope) {
	// 游客连接无身份，不允许撤回
	if c.userID == 0 {
		return
	}
	ctx := context.Background()
	records, err := h.recordDAO.ListRecent(ctx, h.historySize)
	if err != nil {
		h.log.Warn("chat_recall_load_failed", zap.Error(err))
		return
	}
	var owned bool
	for _, r := range records {
		if r.ID == env.ID && r.UserID == c.userID {
			owned = true
			break
		}
	}
	if !owned {
		return
	}
	if err := h.recordDAO.Delete(ctx, env.ID); err != nil {
		h.log.Warn("chat_recall_failed", zap.Int64("record_id", env.ID), zap.Error(err))
		return
	}
	metrics.ChatMessagesTotal.WithLabelValues(KindRecall).Inc()
	buf, _ := json.Marshal(Envelope{Kind: KindRecall, ID: env.ID, UserID: c.userID})
	h.broadcast <- buf
}
