package router

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpetqr/internal/app"
	"carpetqr/internal/imports"
	"carpetqr/internal/query"
)

// CarpetHandler 负责处理 carpet 查询、扫码解析与导入相关的 HTTP 请求。
type CarpetHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewCarpetHandler 构建一个新的 CarpetHandler。
func NewCarpetHandler(svc *app.Service, logger *zap.Logger) *CarpetHandler {
	return &CarpetHandler{svc: svc, logger: logger}
}

// RegisterRoutes 将路由注册到给定的路由组。
func (h *CarpetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/carpets/:id", h.handleLookup)
	rg.GET("/carpets", h.handleSearch)
	rg.POST("/scan/resolve", h.handleResolveScan)
	rg.POST("/import", h.handleImport)
	rg.POST("/index/refresh", h.handleIndexRefresh)
}

func (h *CarpetHandler) handleLookup(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.svc.Lookup(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, query.ErrNotFound):
			c.JSON(404, gin.H{"error": "carpet not found", "id": id})
		case errors.Is(err, app.ErrReadNotReady):
			c.JSON(503, gin.H{"error": err.Error()})
		default:
			if h.logger != nil {
				h.logger.Error("lookup failed", zap.String("id", id), zap.Error(err))
			}
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(200, doc)
}

func (h *CarpetHandler) handleSearch(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries := h.svc.Search(c.Query("query"), limit)
	c.JSON(200, gin.H{"entries": entries, "count": len(entries)})
}

type resolveRequest struct {
	Payload string `json:"payload"`
}

func (h *CarpetHandler) handleResolveScan(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request payload"})
		return
	}
	id, doc, err := h.svc.ResolveScan(c.Request.Context(), req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUnrecognized):
			c.JSON(422, gin.H{"error": err.Error()})
		case errors.Is(err, query.ErrNotFound):
			c.JSON(404, gin.H{"error": "carpet not found", "id": id})
		case errors.Is(err, app.ErrReadNotReady):
			c.JSON(503, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(200, gin.H{"carpet_id": id, "doc": doc})
}

func (h *CarpetHandler) handleImport(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "read import body failed"})
		return
	}

	summary, err := h.svc.Import(c.Request.Context(), string(data))
	if err != nil {
		if errors.Is(err, imports.ErrEmptyFile) || errors.Is(err, imports.ErrBadHeader) {
			c.JSON(422, gin.H{"error": err.Error(), "summary": summary})
			return
		}
		if h.logger != nil {
			h.logger.Error("import failed", zap.Error(err))
		}
		// 提交失败也带回已统计的行计数。
		c.JSON(502, gin.H{"error": err.Error(), "summary": summary})
		return
	}
	c.JSON(200, gin.H{"summary": summary})
}

func (h *CarpetHandler) handleIndexRefresh(c *gin.Context) {
	if err := h.svc.RefreshIndex(c.Request.Context()); err != nil {
		if h.logger != nil {
			h.logger.Error("index refresh failed", zap.Error(err))
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "refreshed"})
}
