package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 提供给部署平台与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		respondInternal(c, err, "database handle unavailable")
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}
