package model

// OperationLog 后台操作日志，由 Kafka 消费者落库

type OperationLog struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id;index" json:"user_id"`
	Nickname   string `gorm:"size:64" json:"nickname"`
	ActionName string `gorm:"column:action_name;size:128" json:"action_name"`
	Path       string `gorm:"size:255" json:"path"`
	Method     string `gorm:"size:10" json:"method"`
	Status     int    `gorm:"column:status" json:"status"`
	LatencyMs  int64  `gorm:"column:latency_ms" json:"latency_ms"`
	IP         string `gorm:"column:ip;size:45" json:"ip"`
	Body       string `gorm:"size:2048" json:"body"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
}

func (OperationLog) TableName() string { return "blog_operation_log" }

// VisitLog 前台访问日志（定时任务负责清理）
type VisitLog struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Page       string `gorm:"size:128" json:"page"`
	IP         string `gorm:"column:ip;size:45" json:"ip"`
	UA         string `gorm:"column:ua;size:256" json:"ua"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
}

func (VisitLog) TableName() string { return "blog_visit_log" }

// ChatRecord 聊天室消息记录
type ChatRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id" json:"user_id"`
	Nickname   string `gorm:"size:64" json:"nickname"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	Content    string `gorm:"size:1024" json:"content"`
	IP         string `gorm:"column:ip;size:45" json:"ip"`
	CreateTime int64  `gorm:"column:create_time;index" json:"create_time"`
}

func (ChatRecord) TableName() string { return "blog_chat_record" }
