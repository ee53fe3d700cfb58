package httpapi

import (
	"reflect"
	"strings"
)

type reserveBookRequest struct {
	BookID int64  `json:"book_id" validate:"required,gt=0"`
	Notes  string `json:"notes" validate:"max=1000"`
}

type librarianNotesRequest struct {
	LibrarianNotes string `json:"librarian_notes" validate:"max=1000"`
}

type rejectReservationRequest struct {
	Reason         string `json:"reason" validate:"required,max=500"`
	LibrarianNotes string `json:"librarian_notes" validate:"max=1000"`
}

type addBookRequest struct {
	LibraryID   int64  `json:"library_id" validate:"gte=0"`
	BookID      string `json:"book_id" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=255"`
	AuthorName  string `json:"author_name" validate:"max=255"`
	TotalCopies int    `json:"total_copies" validate:"gte=0,lte=10000"`
}

type changeCopiesRequest struct {
	TotalCopies int `json:"total_copies" validate:"gte=0,lte=10000"`
}

// issueBookRequest lends either the copy held by an approved reservation or, without one,
// a walk-in copy of book_id to member_id.
type issueBookRequest struct {
	ReservationID int64 `json:"reservation_id" validate:"gte=0"`
	BookID        int64 `json:"book_id" validate:"required_without=ReservationID,gte=0"`
	MemberID      int64 `json:"member_id" validate:"required_without=ReservationID,gte=0"`
	LoanDays      int   `json:"loan_days" validate:"gte=0,lte=90"`
}

type reservationListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected cancelled expired fulfilled borrowed returned"`
}

type libraryScopeRequest struct {
	LibraryID int64 `query:"library_id" validate:"gte=0"`
}

type libraryReservationsRequest struct {
	LibraryID int64  `query:"library_id" validate:"gte=0"`
	Status    string `query:"status" validate:"omitempty,oneof=pending approved rejected cancelled expired fulfilled borrowed returned"`
}

type catalogRequest struct {
	LibraryID  int64 `query:"library_id" validate:"gte=0"`
	ActiveOnly bool  `query:"active_only"`
}

type notificationsRequest struct {
	UnreadOnly bool `query:"unread"`
	Limit      int  `query:"limit" validate:"gte=0"`
}

// jsonFieldName reports validation failures with the name the client sent.
func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}
