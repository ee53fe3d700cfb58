package main

import (
	"github.com/snowRepo/LMS-sub006/library/httpapi"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/library/shared/shell/observable"
)

// instruments holds the observability collectors. metrics and tracing are nil without an OTel endpoint.
type instruments struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
}

// wrapping remembers the first failure while every handler of the API is wrapped.
type wrapping struct {
	instruments
	err error
}

func observe(core httpapi.Handlers, obs instruments) (httpapi.Handlers, error) {
	w := &wrapping{instruments: obs}

	wrapped := httpapi.Handlers{
		ReserveBook:              command(w, core.ReserveBook),
		CancelReservation:        command(w, core.CancelReservation),
		ApproveReservation:       command(w, core.ApproveReservation),
		RejectReservation:        command(w, core.RejectReservation),
		FulfilReservation:        command(w, core.FulfilReservation),
		AddBook:                  command(w, core.AddBook),
		ChangeBookCopies:         command(w, core.ChangeBookCopies),
		IssueBook:                command(w, core.IssueBook),
		ReturnBook:               command(w, core.ReturnBook),
		MarkNotificationRead:     command(w, core.MarkNotificationRead),
		MarkAllNotificationsRead: command(w, core.MarkAllNotificationsRead),

		MemberReservations:  query(w, core.MemberReservations),
		LibraryReservations: query(w, core.LibraryReservations),
		LibraryDashboard:    query(w, core.LibraryDashboard),
		LibraryLoans:        query(w, core.LibraryLoans),
		LedgerAudit:         query(w, core.LedgerAudit),
		LibraryCatalog:      query(w, core.LibraryCatalog),
		Notifications:       query(w, core.Notifications),
	}
	if w.err != nil {
		return httpapi.Handlers{}, w.err
	}

	return wrapped, nil
}

func command[C shell.Command](w *wrapping, handler shell.CoreCommandHandler[C]) shell.CoreCommandHandler[C] {
	if w.err != nil {
		return handler
	}

	opts := []observable.CommandOption[C]{
		observable.WithCommandLogging[C](w.logger),
		observable.WithCommandContextualLogging[C](w.contextualLogger),
	}
	if w.metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](w.metrics))
	}
	if w.tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](w.tracing))
	}

	wrapped, err := observable.NewCommandWrapper(handler, opts...)
	if err != nil {
		w.err = err
		return handler
	}

	return wrapped
}

func query[Q shell.Query, R any](w *wrapping, handler shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	if w.err != nil {
		return handler
	}

	opts := []observable.QueryOption[Q, R]{
		observable.WithQueryLogging[Q, R](w.logger),
		observable.WithQueryContextualLogging[Q, R](w.contextualLogger),
	}
	if w.metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](w.metrics))
	}
	if w.tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](w.tracing))
	}

	wrapped, err := observable.NewQueryWrapper(handler, opts...)
	if err != nil {
		w.err = err
		return handler
	}

	return wrapped
}
