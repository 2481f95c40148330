package controller

import (
	"context"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewHealthController rdb 为 nil 表示会话存在内存里，不检查 Redis
func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary 健康检查
// @Description 检查数据库和会话存储
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
	defer cancel()

	components := gin.H{"database": "up"}
	healthy := true

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(checkCtx)
	}
	if err != nil {
		logger.Log.Warn("database health check failed", zap.Error(err))
		components["database"] = "down"
		healthy = false
	}

	if c.Redis != nil {
		components["redis"] = "up"
		if err := c.Redis.Ping(checkCtx).Err(); err != nil {
			logger.Log.Warn("redis health check failed", zap.Error(err))
			components["redis"] = "down"
			healthy = false
		}
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "unhealthy",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
