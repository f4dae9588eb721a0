package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-blogadmin/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server HTTP 服务，支持优雅停机
type Server struct {
	srv *http.Server
	log *logging.Logger
}

func NewServer(addr string, engine *gin.Engine, log *logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Start 阻塞监听，正常关闭不报错
func (s *Server) Start() error {
	s.log.Info("http_server_listen", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http_server_shutdown")
	return s.srv.Shutdown(ctx)
}
