package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"libraminds/config"
	"libraminds/domain/interfaces"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP adapter over the policy engine. Every request runs in
// its own unit of work, committed only when the operation succeeds.
type Server struct {
	cfg        *config.Config
	uowFactory interfaces.UnitOfWorkFactory
	httpServer *http.Server
}

// NewServer creates the HTTP server with all routes registered
func NewServer(cfg *config.Config, uowFactory interfaces.UnitOfWorkFactory) *Server {
	s := &Server{
		cfg:        cfg,
		uowFactory: uowFactory,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.recoverPanic(s.rateLimit(s.logRequests(s.routes()))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	return s
}

func (s *Server) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(s.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(s.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", s.healthcheckHandler)

	// Lending
	router.HandlerFunc(http.MethodPost, "/v1/loans", s.borrowHandler)
	router.HandlerFunc(http.MethodPost, "/v1/returns", s.returnHandler)
	router.HandlerFunc(http.MethodPost, "/v1/reservations", s.reserveHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/reservations", s.cancelReservationHandler)

	// Wallet and membership
	router.HandlerFunc(http.MethodPost, "/v1/wallet/funds", s.addFundsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/wallet/fines", s.payFineHandler)
	router.HandlerFunc(http.MethodPost, "/v1/wallet/tier", s.upgradeTierHandler)

	// Catalog. Listing views are query parameters on the collection because
	// httprouter rejects static siblings of the :id wildcard.
	router.HandlerFunc(http.MethodPost, "/v1/books", s.addBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books", s.listBooksHandler)

	// Reviews
	router.HandlerFunc(http.MethodPost, "/v1/books/:id/reviews", s.addReviewHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id/reviews", s.listReviewsHandler)

	// Categories
	router.HandlerFunc(http.MethodPost, "/v1/categories", s.createCategoryHandler)
	router.HandlerFunc(http.MethodPost, "/v1/categories/:id/approve", s.approveCategoryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", s.listCategoriesHandler)

	// Per-user views
	router.HandlerFunc(http.MethodGet, "/v1/users/:id/loans", s.listUserLoansHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/:id/history", s.listUserHistoryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/:id/transactions", s.listUserTransactionsHandler)

	return router
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
