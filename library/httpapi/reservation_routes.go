package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/features/command/approvereservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/cancelreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/fulfilreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/rejectreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/reservebook"
	"github.com/snowRepo/LMS-sub006/library/features/query/memberreservations"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

func (s *Server) registerReservationRoutes(api *echo.Group) {
	api.POST("/reservations", s.reserveBook)
	api.GET("/reservations/mine", s.memberReservations)
	api.POST("/reservations/:id/cancel", s.cancelReservation)
	api.POST("/reservations/:id/approve", s.approveReservation)
	api.POST("/reservations/:id/reject", s.rejectReservation)
	api.POST("/reservations/:id/fulfil", s.fulfilReservation)
}

// POST /api/reservations
func (s *Server) reserveBook(c echo.Context) error {
	var req reserveBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	command := reservebook.BuildCommand(actorOf(c), req.BookID, req.Notes, s.now())

	result, err := s.handlers.ReserveBook.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newCommandResponse("Book reserved. A librarian will review your reservation.", result))
}

// GET /api/reservations/mine
func (s *Server) memberReservations(c echo.Context) error {
	var req reservationListRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	query := memberreservations.BuildQuery(actorOf(c), core.ReservationStatus(req.Status), s.now())

	result, err := s.handlers.MemberReservations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromMemberReservations(result))
}

// POST /api/reservations/:id/cancel
func (s *Server) cancelReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	command := cancelreservation.BuildCommand(actorOf(c), id, s.now())

	result, err := s.handlers.CancelReservation.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Reservation cancelled.", result))
}

// POST /api/reservations/:id/approve
func (s *Server) approveReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req librarianNotesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	command := approvereservation.BuildCommand(actorOf(c), id, req.LibrarianNotes, s.now())

	result, err := s.handlers.ApproveReservation.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Reservation approved.", result))
}

// POST /api/reservations/:id/reject
func (s *Server) rejectReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req rejectReservationRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	command := rejectreservation.BuildCommand(actorOf(c), id, req.Reason, req.LibrarianNotes, s.now())

	result, err := s.handlers.RejectReservation.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Reservation rejected.", result))
}

// POST /api/reservations/:id/fulfil
func (s *Server) fulfilReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req librarianNotesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	command := fulfilreservation.BuildCommand(actorOf(c), id, req.LibrarianNotes, s.now())

	result, err := s.handlers.FulfilReservation.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Reservation fulfilled.", result))
}

// bindAndValidate reads path, query and body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return id, nil
}
