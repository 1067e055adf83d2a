package middleware

import (
	"net/http"

	"fridge-recipes/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BodySizeLimit 拒絕宣告長度超過 maxSize 的請求；maxSize <= 0 時不限制
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxSize <= 0 {
			c.Next()
			return
		}

		if declared := c.Request.ContentLength; declared > maxSize {
			common.LogWarn("請求內容超過上限",
				zap.Int64("declared", declared),
				zap.Int64("limit", maxSize),
				zap.String("route", c.FullPath()),
			)
			common.WriteError(c, common.ErrBodyTooLarge, false)
			return
		}

		// 未宣告長度的請求在讀取時才截斷
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		c.Next()
	}
}
