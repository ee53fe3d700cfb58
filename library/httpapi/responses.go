package httpapi

import (
	stdjson "encoding/json"
	"time"

	"github.com/snowRepo/LMS-sub006/library/features/query/ledgeraudit"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarycatalog"
	"github.com/snowRepo/LMS-sub006/library/features/query/librarydashboard"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryloans"
	"github.com/snowRepo/LMS-sub006/library/features/query/libraryreservations"
	"github.com/snowRepo/LMS-sub006/library/features/query/memberreservations"
	"github.com/snowRepo/LMS-sub006/library/features/query/notifications"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// commandResponse answers every successful command.
type commandResponse struct {
	Message    string `json:"message"`
	Idempotent bool   `json:"idempotent"`
}

func newCommandResponse(message string, result shell.HandlerResult) commandResponse {
	return commandResponse{Message: message, Idempotent: result.Idempotent}
}

type reservationResponse struct {
	ID              int64      `json:"id"`
	ReservationID   string     `json:"reservation_id"`
	BookID          int64      `json:"book_id"`
	BookRef         string     `json:"book_ref"`
	BookTitle       string     `json:"book_title"`
	MemberUserID    string     `json:"member_user_id,omitempty"`
	MemberName      string     `json:"member_name,omitempty"`
	Status          string     `json:"status"`
	ReservationDate time.Time  `json:"reservation_date"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Notes           string     `json:"notes"`
	LibrarianNotes  string     `json:"librarian_notes"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CancelledDate   *time.Time `json:"cancelled_date,omitempty"`
	PastExpiry      bool       `json:"past_expiry"`
}

type reservationListResponse struct {
	Reservations []reservationResponse `json:"reservations"`
	Count        int                   `json:"count"`
}

func fromMemberReservations(result memberreservations.MemberReservations) reservationListResponse {
	out := reservationListResponse{Reservations: make([]reservationResponse, 0, result.Count), Count: result.Count}

	for _, r := range result.Reservations {
		out.Reservations = append(out.Reservations, reservationResponse{
			ID:              r.ID,
			ReservationID:   r.ReservationRef,
			BookID:          r.BookID,
			BookRef:         r.BookRef,
			BookTitle:       r.BookTitle,
			Status:          string(r.Status),
			ReservationDate: r.ReservationDate,
			ExpiryDate:      r.ExpiryDate,
			Notes:           r.Notes,
			LibrarianNotes:  r.LibrarianNotes,
			RejectionReason: r.RejectionReason,
			CancelledDate:   r.CancelledDate,
			PastExpiry:      r.PastExpiry,
		})
	}

	return out
}

func fromLibraryReservations(result libraryreservations.LibraryReservations) reservationListResponse {
	out := reservationListResponse{Reservations: make([]reservationResponse, 0, result.Count), Count: result.Count}

	for _, r := range result.Reservations {
		out.Reservations = append(out.Reservations, reservationResponse{
			ID:              r.ID,
			ReservationID:   r.ReservationRef,
			BookID:          r.BookID,
			BookRef:         r.BookRef,
			BookTitle:       r.BookTitle,
			MemberUserID:    r.MemberUserID,
			MemberName:      r.MemberName,
			Status:          string(r.Status),
			ReservationDate: r.ReservationDate,
			ExpiryDate:      r.ExpiryDate,
			Notes:           r.Notes,
			LibrarianNotes:  r.LibrarianNotes,
			PastExpiry:      r.PastExpiry,
		})
	}

	return out
}

type dashboardResponse struct {
	LibraryID       int64          `json:"library_id"`
	TotalBooks      int            `json:"total_books"`
	ActiveBooks     int            `json:"active_books"`
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
	Reserved        int            `json:"reserved"`
	Reservations    int            `json:"reservations"`
	ByStatus        map[string]int `json:"reservations_by_status"`
	ActiveLoans     int            `json:"active_loans"`
	OverdueLoans    int            `json:"overdue_loans"`
}

func fromDashboard(d librarydashboard.Dashboard) dashboardResponse {
	byStatus := make(map[string]int, len(d.ByStatus))
	for status, count := range d.ByStatus {
		byStatus[string(status)] = count
	}

	return dashboardResponse{
		LibraryID:       d.LibraryID,
		TotalBooks:      d.TotalBooks,
		ActiveBooks:     d.ActiveBooks,
		TotalCopies:     d.TotalCopies,
		AvailableCopies: d.AvailableCopies,
		Reserved:        d.Reserved,
		Reservations:    d.Reservations,
		ByStatus:        byStatus,
		ActiveLoans:     d.ActiveLoans,
		OverdueLoans:    d.OverdueLoans,
	}
}

type bookBalanceResponse struct {
	BookID          int64  `json:"book_id"`
	BookRef         string `json:"book_ref"`
	Title           string `json:"title"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	HeldCopies      int    `json:"held_copies"`
	HoldingRecords  int    `json:"holding_records"`
	Drift           int    `json:"drift"`
}

type auditResponse struct {
	LibraryID  int64                 `json:"library_id"`
	Books      []bookBalanceResponse `json:"books"`
	BookCount  int                   `json:"book_count"`
	DriftCount int                   `json:"drift_count"`
}

func fromAudit(report ledgeraudit.AuditReport) auditResponse {
	out := auditResponse{
		LibraryID:  report.LibraryID,
		Books:      make([]bookBalanceResponse, 0, len(report.Books)),
		BookCount:  report.BookCount,
		DriftCount: report.DriftCount,
	}

	for _, b := range report.Books {
		out.Books = append(out.Books, bookBalanceResponse{
			BookID:          b.BookID,
			BookRef:         b.BookRef,
			Title:           b.Title,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			HeldCopies:      b.HeldCopies,
			HoldingRecords:  b.HoldingRecords,
			Drift:           b.Drift(),
		})
	}

	return out
}

type loanResponse struct {
	BorrowingID   int64     `json:"borrowing_id"`
	BookID        int64     `json:"book_id"`
	BookRef       string    `json:"book_ref"`
	BookTitle     string    `json:"book_title"`
	MemberID      int64     `json:"member_id"`
	MemberUserID  string    `json:"member_user_id"`
	MemberName    string    `json:"member_name"`
	ReservationID *int64    `json:"reservation_id"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
	Overdue       bool      `json:"overdue"`
	Reminded      bool      `json:"reminded"`
}

type loanListResponse struct {
	Loans   []loanResponse `json:"loans"`
	Count   int            `json:"count"`
	Overdue int            `json:"overdue"`
}

func fromLoans(result libraryloans.LibraryLoans) loanListResponse {
	out := loanListResponse{Loans: make([]loanResponse, 0, result.Count), Count: result.Count, Overdue: result.Overdue}

	for _, l := range result.Loans {
		out.Loans = append(out.Loans, loanResponse{
			BorrowingID:   l.BorrowingID,
			BookID:        l.BookID,
			BookRef:       l.BookRef,
			BookTitle:     l.BookTitle,
			MemberID:      l.MemberID,
			MemberUserID:  l.MemberUserID,
			MemberName:    l.MemberName,
			ReservationID: l.ReservationID,
			IssueDate:     l.IssueDate,
			DueDate:       l.DueDate,
			Overdue:       l.Overdue,
			Reminded:      l.Reminded,
		})
	}

	return out
}

type bookResponse struct {
	ID              int64  `json:"id"`
	BookID          string `json:"book_id"`
	Title           string `json:"title"`
	AuthorName      string `json:"author_name"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	Status          string `json:"status"`
	Reservable      bool   `json:"reservable"`
}

type catalogResponse struct {
	LibraryID int64          `json:"library_id"`
	Books     []bookResponse `json:"books"`
	Count     int            `json:"count"`
}

func fromCatalog(catalog librarycatalog.Catalog) catalogResponse {
	out := catalogResponse{LibraryID: catalog.LibraryID, Books: make([]bookResponse, 0, catalog.Count), Count: catalog.Count}

	for _, b := range catalog.Books {
		out.Books = append(out.Books, bookResponse{
			ID:              b.ID,
			BookID:          b.BookRef,
			Title:           b.Title,
			AuthorName:      b.AuthorName,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			Status:          string(b.Status),
			Reservable:      b.Reservable,
		})
	}

	return out
}

type notificationResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      string             `json:"type"`
	ActionURL string             `json:"action_url"`
	EventType string             `json:"event_type"`
	Payload   stdjson.RawMessage `json:"payload"`
	Read      bool               `json:"read"`
	ReadAt    *time.Time         `json:"read_at"`
	CreatedAt time.Time          `json:"created_at"`
}

type inboxResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	Count         int                    `json:"count"`
	UnreadCount   int                    `json:"unread_count"`
}

func fromInbox(inbox notifications.Inbox) inboxResponse {
	out := inboxResponse{
		Notifications: make([]notificationResponse, 0, inbox.Count),
		Count:         inbox.Count,
		UnreadCount:   inbox.UnreadCount,
	}

	for _, n := range inbox.Notifications {
		out.Notifications = append(out.Notifications, notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			ActionURL: n.ActionURL,
			EventType: n.EventType,
			Payload:   n.Payload,
			Read:      n.Read,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return out
}
