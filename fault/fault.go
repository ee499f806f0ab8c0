// Copyright (c) 2014-2016 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// RetryableError marks a sweep-local failure the attachment controller
// should log and retry on the next tick: a ledger, POW, or DB hiccup
// that carries no information about the sweep itself.
type RetryableError GenericError

// FatalError marks a failure that violates a ledger-level invariant the
// controller cannot safely continue past; the process is expected to
// log it and terminate.
type FatalError GenericError

// FatalAbort is the panic value Panic and Panicf raise. A caller that
// selectively recovers panics (background.RunPeriodic's per-tick
// recovery, say) type-asserts for it so an intentional fatal abort
// still brings the process down instead of being swallowed alongside
// an ordinary bug panic.
type FatalAbort struct{ Message string }

func (f FatalAbort) Error() string { return f.Message }

// common errors
var (
	ErrAlreadyInitialised   = InvalidError("already initialised")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrRequiredConfigDir    = InvalidError("config folder is required")
	ErrConfigDirPath        = InvalidError("config is not a folder")
	ErrNotFoundConfigFile   = NotFoundError("config file is not found")
	ErrJsonParseFail        = ProcessError("parse to json failed")
	ErrMigrationFailed      = ProcessError("database migration failed")

	// ErrUnknownTail: mark-tail-as-confirmed or a similar DB gateway
	// call named a tail hash the store has no row for. Indicates a
	// logic error or an external mutation of sweep_tails.
	ErrUnknownTail = NotFoundError("unknown tail")

	// ErrLedgerUnavailable: a ledger client call failed on a transport
	// error (node-info, get-balances, find-transactions, get-trytes,
	// filter-confirmed-tails, filter-consistent-tails).
	ErrLedgerUnavailable = RetryableError("ledger unavailable")

	// ErrTipSelectionFailed: get-transactions-to-approve could not
	// produce a tip pair.
	ErrTipSelectionFailed = RetryableError("tip selection failed")

	// ErrPublicationFailed: store-transactions or broadcast-transactions
	// returned failure.
	ErrPublicationFailed = RetryableError("publication failed")

	// ErrDBTransient: a deadlock, dropped connection, or similar
	// recoverable failure from the database gateway.
	ErrDBTransient = RetryableError("database transient failure")

	// ErrRollbackFailed: rollback itself failed during sweep cleanup.
	// Logged and swallowed; it never escapes the tick.
	ErrRollbackFailed = RetryableError("rollback failed")

	// ErrMultipleConfirmedTails: Step A observed more than one
	// confirmed tail for a single sweep. Fatal: the ledger-level
	// invariant "at most one confirmed tail per sweep" is violated and
	// continuing risks double-crediting a withdrawal.
	ErrMultipleConfirmedTails = FatalError("multiple confirmed tails for one sweep")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RetryableError) Error() string { return string(e) }
func (e FatalError) Error() string     { return string(e) }

// determine the class of an error
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
func IsErrRetryable(e error) bool { _, ok := e.(RetryableError); return ok }
func IsErrFatal(e error) bool     { _, ok := e.(FatalError); return ok }
