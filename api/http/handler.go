package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blueflylabor/fakeTape/simulator"
	"github.com/blueflylabor/fakeTape/strategy"
)

// ==================== Handler 定义 ====================

// Handler HTTP 请求处理器
type Handler struct {
	// 模拟器实例
	// 内部状态（磁带、结果日志）不支持并发访问，用互斥锁串行化运行
	sim *simulator.Simulator
	mu  sync.Mutex
}

// NewHandler 创建新的 Handler
//
// 参数：
//   - sim: 模拟器实例
//
// 返回：
//   - *Handler: Handler 实例
func NewHandler(sim *simulator.Simulator) *Handler {
	return &Handler{
		sim: sim,
	}
}

// ==================== API 路由 ====================

// RegisterRoutes 注册所有路由
//
// 参数：
//   - engine: Gin 引擎
func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	// 健康检查
	engine.GET("/health", h.HealthCheck)

	// Prometheus 指标
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 模拟 API
	v1 := engine.Group("/v1")
	{
		v1.POST("/simulate", h.Simulate)
		v1.GET("/results", h.Results)
		v1.GET("/strategies", h.Strategies)
	}
}

// ==================== API 处理函数 ====================

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Strategies 返回可用策略名称
// GET /v1/strategies
func (h *Handler) Strategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": strategy.BuiltinNames(),
	})
}

// Simulate 请求处理
// POST /v1/simulate
func (h *Handler) Simulate(c *gin.Context) {
	// 解析请求体
	type SimulateRequest struct {
		Strategies []string `json:"strategies"`
		BlockCount int      `json:"block_count" binding:"required,gt=0"`
		QueryCount int      `json:"query_count" binding:"required,gt=0"`
	}

	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request: " + err.Error(),
		})
		return
	}

	// 未指定策略时对比全部内置策略
	names := req.Strategies
	if len(names) == 0 {
		names = strategy.BuiltinNames()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	queries := h.sim.GenerateQueries(req.QueryCount)
	results, err := h.sim.RunComparison(req.BlockCount, queries, names)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "simulation failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"block_count": req.BlockCount,
		"query_count": req.QueryCount,
		"results":     results,
	})
}

// Results 返回历史运行结果
// GET /v1/results
func (h *Handler) Results(c *gin.Context) {
	h.mu.Lock()
	results := h.sim.Results()
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// ==================== 服务器启动 ====================

// Server HTTP 服务器
type Server struct {
	addr    string
	engine  *gin.Engine
	handler *Handler
}

// NewServer 创建新的 Server
func NewServer(addr string, sim *simulator.Simulator) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	handler := NewHandler(sim)
	handler.RegisterRoutes(engine)

	return &Server{
		addr:    addr,
		engine:  engine,
		handler: handler,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	return s.engine.Run(s.addr)
}

// ServeHTTP 实现 http.Handler 接口
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// StartTLS 启动 HTTPS 服务器
func (s *Server) StartTLS(certFile, keyFile string) error {
	return s.engine.RunTLS(s.addr, certFile, keyFile)
}
