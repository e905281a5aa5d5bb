package ioc

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"carpetqr/internal/app"
	"carpetqr/internal/metrics"
	"carpetqr/internal/router"
)

// InitCarpetHandler 构建 carpet HTTP 处理器。
func InitCarpetHandler(svc *app.Service, logger *zap.Logger) *router.CarpetHandler {
	return router.NewCarpetHandler(svc, logger)
}

// InitGinEngine 构建 gin 引擎并注册指标。
func InitGinEngine(carpetHandler *router.CarpetHandler) *gin.Engine {
	metrics.MustRegister(prometheus.DefaultRegisterer)
	return router.NewEngine(carpetHandler)
}
