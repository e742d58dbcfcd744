package server

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/store"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
	"time"
)

// SnapshotSource yields the current state of the pool being quoted.
type SnapshotSource interface {
	Snapshot() (amm.Pool, error)
}

type OperationSource interface {
	GetOperations(pool string, limit int) ([]*store.Operation, error)
}

type Server struct {
	ctx         context.Context
	logger      *log.Logger
	listen      string
	pool        string
	slippageBps uint16
	source      SnapshotSource
	operations  OperationSource
	httpServer  *http.Server
}

func NewServer(ctx context.Context, logger *log.Logger, listen string, pool string, slippageBps uint16, source SnapshotSource) *Server {
	return &Server{
		ctx:         ctx,
		logger:      logger,
		listen:      listen,
		pool:        pool,
		slippageBps: slippageBps,
		source:      source,
	}
}

// SetOperations enables /api/operations.
func (s *Server) SetOperations(operations OperationSource) {
	s.operations = operations
}

// Service serves until the context is cancelled.
func (s *Server) Service() error {
	if err := s.StartRPC(); err != nil {
		return err
	}
	<-s.ctx.Done()
	s.StopRPC()
	return nil
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	g := router.Group("/api")
	g.GET("/pool", s.getPool)
	g.GET("/quote/swap", s.quoteSwap)
	g.GET("/quote/deposit", s.quoteDeposit)
	g.GET("/quote/withdraw", s.quoteWithdraw)
	g.GET("/operations", s.getOperations)
	return router
}

func (s *Server) StartRPC() error {
	s.httpServer = &http.Server{
		Addr:    s.listen,
		Handler: s.Router(),
	}
	s.logger.Printf("start rpc server on %s......", s.listen)
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("ListenAndServe: %s", err.Error())
			errChan <- err
		}
	}()
	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (s *Server) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Printf("shutdown err: %s", err.Error())
	}
	s.logger.Printf("rpc server has stopped......")
}
