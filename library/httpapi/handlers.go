package httpapi

import (
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
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CoreHandlers creates every use case handler without observability decorators.
func CoreHandlers(transactor shell.Transactor, l ledger.Ledger, queue notify.Queue) Handlers {
	return Handlers{
		ReserveBook:              reservebook.NewCommandHandler(transactor, l, queue),
		CancelReservation:        cancelreservation.NewCommandHandler(transactor, l, queue),
		ApproveReservation:       approvereservation.NewCommandHandler(transactor, l, queue),
		RejectReservation:        rejectreservation.NewCommandHandler(transactor, l, queue),
		FulfilReservation:        fulfilreservation.NewCommandHandler(transactor, l, queue),
		AddBook:                  addbook.NewCommandHandler(transactor),
		ChangeBookCopies:         changebookcopies.NewCommandHandler(transactor, l),
		IssueBook:                issuebook.NewCommandHandler(transactor, l, queue),
		ReturnBook:               returnbook.NewCommandHandler(transactor, l, queue),
		MarkNotificationRead:     marknotificationread.NewCommandHandler(transactor),
		MarkAllNotificationsRead: markallnotificationsread.NewCommandHandler(transactor),

		MemberReservations:  memberreservations.NewQueryHandler(transactor),
		LibraryReservations: libraryreservations.NewQueryHandler(transactor),
		LibraryDashboard:    librarydashboard.NewQueryHandler(transactor),
		LibraryLoans:        libraryloans.NewQueryHandler(transactor),
		LedgerAudit:         ledgeraudit.NewQueryHandler(transactor, l),
		LibraryCatalog:      librarycatalog.NewQueryHandler(transactor),
		Notifications:       notifications.NewQueryHandler(transactor),
	}
}
