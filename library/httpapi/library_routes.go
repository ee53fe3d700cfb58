package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/features/query/ledgeraudit"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarydashboard"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryloans"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryreservations"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

func (s *Server) registerLibraryRoutes(api *echo.Group) {
	api.GET("/library/reservations", s.libraryReservations)
	api.GET("/library/dashboard", s.libraryDashboard)
	api.GET("/library/loans", s.libraryLoans)
	api.GET("/library/ledger-audit", s.ledgerAudit)
}

// GET /api/library/reservations
func (s *Server) libraryReservations(c echo.Context) error {
	var req libraryReservationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	query := libraryreservations.BuildQuery(actorOf(c), req.LibraryID, core.ReservationStatus(req.Status), s.now())

	result, err := s.handlers.LibraryReservations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromLibraryReservations(result))
}

// GET /api/library/dashboard
func (s *Server) libraryDashboard(c echo.Context) error {
	var req libraryScopeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.handlers.LibraryDashboard.Handle(
		c.Request().Context(),
		librarydashboard.BuildQuery(actorOf(c), req.LibraryID, s.now()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromDashboard(result))
}

// GET /api/library/loans
func (s *Server) libraryLoans(c echo.Context) error {
	var req libraryScopeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.handlers.LibraryLoans.Handle(
		c.Request().Context(),
		libraryloans.BuildQuery(actorOf(c), req.LibraryID, s.now()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromLoans(result))
}

// GET /api/library/ledger-audit
func (s *Server) ledgerAudit(c echo.Context) error {
	var req libraryScopeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.handlers.LedgerAudit.Handle(c.Request().Context(), ledgeraudit.BuildQuery(actorOf(c), req.LibraryID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromAudit(result))
}
