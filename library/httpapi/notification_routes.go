package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/features/command/markallnotificationsread"
	"github.com/snowRepo/LMS-sub006/library/features/command/marknotificationread"
	"github.com/snowRepo/LMS-sub006/library/features/query/notifications"
)

func (s *Server) registerNotificationRoutes(api *echo.Group) {
	api.GET("/notifications", s.inbox)
	api.POST("/notifications/read-all", s.markAllNotificationsRead)
	api.POST("/notifications/:id/read", s.markNotificationRead)
}

// GET /api/notifications
func (s *Server) inbox(c echo.Context) error {
	var req notificationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.handlers.Notifications.Handle(
		c.Request().Context(),
		notifications.BuildQuery(actorOf(c), req.UnreadOnly, req.Limit),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fromInbox(result))
}

// POST /api/notifications/:id/read
func (s *Server) markNotificationRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := s.handlers.MarkNotificationRead.Handle(
		c.Request().Context(),
		marknotificationread.BuildCommand(actorOf(c), id, s.now()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("Notification marked as read.", result))
}

// POST /api/notifications/read-all
func (s *Server) markAllNotificationsRead(c echo.Context) error {
	result, err := s.handlers.MarkAllNotificationsRead.Handle(
		c.Request().Context(),
		markallnotificationsread.BuildCommand(actorOf(c), s.now()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCommandResponse("All notifications marked as read.", result))
}
