package gateway

import (
	"context"
	"net/http"
	"runtime"
	"sync"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/logger"
	"github.com/warp-contracts/minter/src/utils/monitoring"
	"github.com/warp-contracts/minter/src/utils/task"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Rest API server, exposes ledger operations and monitor counters
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine
	setupOnce  sync.Once

	ledger  *ledger.Ledger
	monitor monitoring.Monitor

	// Limits public mint requests, nil means no limit
	mintLimiter *rate.Limiter
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	if config.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router = gin.New()

	self.httpServer = &http.Server{
		Addr:         config.Gateway.RESTListenAddress,
		ReadTimeout:  config.Gateway.ServerRequestTimeout,
		WriteTimeout: config.Gateway.ServerRequestTimeout,
	}

	if config.Gateway.MintRateLimit > 0 {
		self.mintLimiter = rate.NewLimiter(rate.Limit(config.Gateway.MintRateLimit), config.Gateway.MintBurstSize)
	}

	return
}

func (self *Server) WithLedger(v *ledger.Ledger) *Server {
	self.ledger = v
	return self
}

func (self *Server) WithMonitor(v monitoring.Monitor) *Server {
	self.monitor = v
	return self
}

// Handler with all routes registered
func (self *Server) Handler() http.Handler {
	self.setupOnce.Do(self.setup)
	return self.Router
}

func (self *Server) setup() {
	self.Router.Use(gin.Recovery(), logger.RequestId(), self.countRequests)

	if self.Config.Profiler.Enabled {
		runtime.SetBlockProfileRate(self.Config.Profiler.BlockProfileRate)
		pprof.Register(self.Router)
	}

	v1 := self.Router.Group("v1")
	{
		v1.POST("mint", self.limitMints, self.onMint)
		v1.POST("reserve", self.onReserve)
		v1.POST("withdraw", self.onWithdraw)
		v1.GET("minting", self.onGetMinting)
		v1.POST("minting", self.onSetMinting)
		v1.POST("base-uri", self.onSetBaseURI)

		v1.GET("supply", self.onGetSupply)
		v1.GET("ledger", self.onGetLedger)
		v1.GET("tokens/:id", self.onGetToken)
		v1.GET("balances/:address", self.onGetBalance)

		v1.GET("health", self.monitor.OnGetHealth)
		v1.GET("state", self.monitor.OnGetState)

		registry := prometheus.NewRegistry()
		registry.MustRegister(self.monitor.GetPrometheusCollector())
		v1.GET("metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}
}

func (self *Server) countRequests(c *gin.Context) {
	self.monitor.GetReport().Gateway.State.Requests.Inc()
	c.Next()
}

func (self *Server) limitMints(c *gin.Context) {
	if self.mintLimiter != nil && !self.mintLimiter.Allow() {
		self.monitor.GetReport().Gateway.Errors.RateLimited.Inc()
		LOG(c).Warn("Mint rate limit reached")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody(KindRateLimited, "too many mint requests"))
		return
	}
	c.Next()
}

func (self *Server) run() (err error) {
	self.httpServer.Handler = self.Handler()

	self.Log.WithField("addr", self.httpServer.Addr).Info("Starting REST server")

	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
