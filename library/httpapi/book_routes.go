package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/features/command/addbook"
	"github.com/snowRepo/LMS-sub006/library/features/command/changebookcopies"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarycatalog"
)

func (s *Server) registerBookRoutes(api *echo.Group) {
	api.GET("/books", s.libraryCatalog)
	api.POST("/books", s.addBook)
	api.POST("/books/:id/copies", s.changeBookCopies)
}

// GET /api/books
func (s *Server) libraryCatalog(c echo.Context) error {
	var req catalogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.handlers.LibraryCatalog.Handle(
		c.Request().Context(),
		librarycatalog.BuildQuery(actorOf(c), req.LibraryID, req.ActiveOnly),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromCatalog(result))
}

// POST /api/books
func (s *Server) addBook(c echo.Context) error {
	var req addBookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	command := addbook.BuildCommand(
		actorOf(c), req.LibraryID, req.BookID, req.Title, req.AuthorName, req.TotalCopies, s.now(),
	)

	result, err := s.handlers.AddBook.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newCommandResponse("Book added.", result))
}

// POST /api/books/:id/copies
func (s *Server) changeBookCopies(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req changeCopiesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	command := changebookcopies.BuildCommand(actorOf(c), id, req.TotalCopies, s.now())

	result, err := s.handlers.ChangeBookCopies.Handle(c.Request().Context(), command)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Copies updated.", result))
}
