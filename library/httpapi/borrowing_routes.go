package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/features/command/returnbook"
)

func (s *Server) registerBorrowingRoutes(api *echo.Group) {
	api.POST("/borrowings", s.issueBook)
	api.POST("/borrowings/:id/return", s.returnBook)
}

// POST /api/borrowings
func (s *Server) issueBook(c echo.Context) error {
	var req issueBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loanPeriod := s.loanPeriod
	if req.LoanDays > 0 {
		loanPeriod = time.Duration(req.LoanDays) * 24 * time.Hour
	}

	var command issuebook.Command
	if req.ReservationID > 0 {
		command = issuebook.BuildCommandForReservation(actorOf(c), req.ReservationID, loanPeriod, s.now())
	} else {
		command = issuebook.BuildCommand(actorOf(c), req.BookID, req.MemberID, loanPeriod, s.now())
	}

	result, err := s.handlers.IssueBook.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newCommandResponse("Book issued.", result))
}

// POST /api/borrowings/:id/return
func (s *Server) returnBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := s.handlers.ReturnBook.Handle(c.Request().Context(), returnbook.BuildCommand(actorOf(c), id, s.now()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Book returned.", result))
}
