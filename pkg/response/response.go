package response

import (
	"go-blogadmin/internal/util/retcode"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func JSON(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(200, Body{Code: code, Msg: msg, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, retcode.SUCCESS, "success", data)
}

// Error code 为业务码（负值）；误传 >=0 时归一为 INVALID
func Error(c *gin.Context, code int, msg string) {
	if code >= 0 {
		code = retcode.INVALID
	}
	JSON(c, code, msg, nil)
}
