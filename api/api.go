package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MinterTeam/taxtoken/coreV2/statistics"
	"github.com/MinterTeam/taxtoken/coreV2/token"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const shutdownTimeout = 5 * time.Second

// Response is the envelope of every API answer
type Response struct {
	Code   uint32          `json:"code"`
	Result interface{}     `json:"result,omitempty"`
	Log    string          `json:"log,omitempty"`
	Info   json.RawMessage `json:"info,omitempty"`
}

type Service struct {
	token   *token.Token
	logger  log.Logger
	metrics *statistics.Metrics
}

func NewService(t *token.Token, logger log.Logger, metrics *statistics.Metrics) *Service {
	return &Service{token: t, logger: logger, metrics: metrics}
}

// Handler returns the router wrapped with CORS and access log middlewares
func (s *Service) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.timer())

	r.GET("/status", s.status)
	r.GET("/balance/:address", s.balance)
	r.GET("/allowance/:owner/:spender", s.allowance)
	r.GET("/excluded/:address", s.excluded)
	r.GET("/pair/:address", s.pair)
	r.GET("/events/:height", s.eventsAt)
	r.POST("/check_transaction", s.checkTransaction)
	r.POST("/send_transaction", s.sendTransaction)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.CombinedLoggingHandler(logWriter{s.logger}, r))
}

// Run serves the API on listenAddr until ctx is done
func (s *Service) Run(ctx context.Context, listenAddr string) error {
	u, err := url.Parse(listenAddr)
	if err != nil {
		return errors.Wrap(err, "parse api address")
	}

	srv := &http.Server{
		Addr:              u.Host,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("API shutdown", "err", err)
		}
	}()

	s.logger.Info("Starting API", "addr", u.Host)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Service) timer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.metrics.SetApiTime(time.Since(start), c.FullPath())
	}
}

type logWriter struct {
	logger log.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Info("API request", "line", strings.TrimSpace(string(p)))
	return len(p), nil
}
