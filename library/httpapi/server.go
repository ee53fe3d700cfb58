package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/snowRepo/LMS-sub006/library/features/command/addbook"
	"github.com/snowRepo/LMS-sub006/library/features/command/approvereservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/cancelreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/changebookcopies"
	"github.com/snowRepo/LMS-sub006/library/features/command/fulfilreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/features/command/markallnotificationsread"
	"github.com/snowRepo/LMS-sub006/library/features/command/marknotificationread"
	"github.com/snowRepo/LMS-sub006/library/features/command/rejectreservation"
	"github.com/snowRepo/LMS-sub006/library/features/command/reservebook"
	"github.com/snowRepo/LMS-sub006/library/features/command/returnbook"
	"github.com/snowRepo/LMS-sub006/library/features/query/ledgeraudit"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarycatalog"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarydashboard"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryloans"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryreservations"
	"github.com/snowRepo/LMS-sub006/library/features/query/memberreservations"
	"github.com/snowRepo/LMS-sub006/library/features/query/notifications"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	logMsgRequest        = "http request"
	logMsgRequestFailed  = "http request failed"
	logMsgRequestRefused = "http request refused"
	logMsgResponseFailed = "writing http error response failed"

	logAttrRequestID  = "request_id"
	logAttrMethod     = "method"
	logAttrPath       = "path"
	logAttrStatus     = "status"
	logAttrDurationMS = "duration_ms"
	logAttrError      = "error"

	defaultRateBurst = 10
	rateLimitExpiry  = 3 * time.Minute
	msgTooManyWrites = "Too many requests, please slow down."
)

// Handlers bundles every use case the API exposes. Each field accepts the core handler or its
// observable wrapper.
type Handlers struct {
	ReserveBook              shell.CoreCommandHandler[reservebook.Command]
	CancelReservation        shell.CoreCommandHandler[cancelreservation.Command]
	ApproveReservation       shell.CoreCommandHandler[approvereservation.Command]
	RejectReservation        shell.CoreCommandHandler[rejectreservation.Command]
	FulfilReservation        shell.CoreCommandHandler[fulfilreservation.Command]
	AddBook                  shell.CoreCommandHandler[addbook.Command]
	ChangeBookCopies         shell.CoreCommandHandler[changebookcopies.Command]
	IssueBook                shell.CoreCommandHandler[issuebook.Command]
	ReturnBook               shell.CoreCommandHandler[returnbook.Command]
	MarkNotificationRead     shell.CoreCommandHandler[marknotificationread.Command]
	MarkAllNotificationsRead shell.CoreCommandHandler[markallnotificationsread.Command]

	MemberReservations  shell.CoreQueryHandler[memberreservations.Query, memberreservations.MemberReservations]
	LibraryReservations shell.CoreQueryHandler[libraryreservations.Query, libraryreservations.LibraryReservations]
	LibraryDashboard    shell.CoreQueryHandler[librarydashboard.Query, librarydashboard.Dashboard]
	LibraryLoans        shell.CoreQueryHandler[libraryloans.Query, libraryloans.LibraryLoans]
	LedgerAudit         shell.CoreQueryHandler[ledgeraudit.Query, ledgeraudit.AuditReport]
	LibraryCatalog      shell.CoreQueryHandler[librarycatalog.Query, librarycatalog.Catalog]
	Notifications       shell.CoreQueryHandler[notifications.Query, notifications.Inbox]
}

// Config holds the settings of the request boundary.
type Config struct {
	JWTSecret []byte

	// RateLimitPerSecond limits mutating requests per user. Zero disables the limit.
	RateLimitPerSecond float64

	// LoanPeriod is used when an issue request does not name loan_days.
	LoanPeriod time.Duration

	Logger shell.Logger

	// Now is the clock of the commands, time.Now when nil.
	Now func() time.Time
}

// Server holds the dependencies of the route handlers.
type Server struct {
	handlers   Handlers
	users      shell.UserRepository
	loanPeriod time.Duration
	now        func() time.Time
}

// New builds the echo instance with middleware and every route registered.
func New(cfg Config, handlers Handlers, users shell.UserRepository) *echo.Echo {
	s := &Server{
		handlers:   handlers,
		users:      users,
		loanPeriod: cfg.LoanPeriod,
		now:        cfg.Now,
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.loanPeriod <= 0 {
		s.loanPeriod = core.LoanPeriod
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))

	e.GET("/health", health)

	api := e.Group("/api", authenticate(cfg.JWTSecret, users))
	if cfg.RateLimitPerSecond > 0 {
		api.Use(writeRateLimiter(cfg.RateLimitPerSecond))
	}

	s.registerReservationRoutes(api)
	s.registerLibraryRoutes(api)
	s.registerBookRoutes(api)
	s.registerBorrowingRoutes(api)
	s.registerNotificationRoutes(api)

	return e
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger writes one log record per request.
func requestLogger(logger shell.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if logger == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = statusOf(err)
			}

			logger.Debug(logMsgRequest,
				logAttrRequestID, c.Response().Header().Get(echo.HeaderXRequestID),
				logAttrMethod, c.Request().Method,
				logAttrPath, c.Path(),
				logAttrStatus, status,
				logAttrDurationMS, time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}

// writeRateLimiter applies a token bucket per user to every request that is not a GET.
func writeRateLimiter(perSecond float64) echo.MiddlewareFunc {
	limiterStore := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     max(defaultRateBurst, int(perSecond)),
		ExpiresIn: rateLimitExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method == http.MethodGet
		},
		Store: limiterStore,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if actor := actorOf(c); actor.ExternalUserID != "" {
				return actor.ExternalUserID, nil
			}
			return c.RealIP(), nil
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, msgTooManyWrites)
		},
	})
}
