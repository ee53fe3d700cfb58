// Package shell is the imperative shell around the library domain: retry with exponential backoff
// for conflicting transactions, the HandlerResult every command handler reports, the repository
// interfaces per entity that command and query handlers depend on, and the observability helpers
// used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
