package handler

import (
	"go-blogadmin/internal/service"
	"go-blogadmin/internal/util/retcode"
	"go-blogadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// LogHandler 操作日志、访问日志与统计看板
type LogHandler struct {
	Log   *service.LogService
	Stats *service.StatsService
}

func NewLogHandler(log *service.LogService, stats *service.StatsService) *LogHandler {
	return &LogHandler{Log: log, Stats: stats}
}

func (h *LogHandler) ListOperations(c *gin.Context) {
	page, size := pagination(c)
	list, total, err := h.Log.ListOperations(c.Request.Context(), c.Query("keyword"), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load operation logs failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

func (h *LogHandler) DeleteOperations(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.EMPTY_PARAMS, "ids required")
		return
	}
	if err := h.Log.DeleteOperations(c.Request.Context(), req.IDs); err != nil {
		response.Error(c, retcode.DB_SAVE_ERROR, "delete operation logs failed")
		return
	}
	response.Success(c, nil)
}

func (h *LogHandler) ListVisits(c *gin.Context) {
	page, size := pagination(c)
	list, total, err := h.Log.ListVisits(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load visit logs failed")
		return
	}
	response.Success(c, gin.H{"list": list, "total": total})
}

// Overview 后台首页统计数字
func (h *LogHandler) Overview(c *gin.Context) {
	o, err := h.Stats.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, "load overview failed")
		return
	}
	response.Success(c, o)
}
