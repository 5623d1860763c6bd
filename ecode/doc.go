// Package ecode defines the error codes and sentinel errors shared by the
// pagination engine, the HTTP fetcher and the command line tool.
//
// Error codes follow the numbering scheme below:
//   - 0: Success (OK)
//   - -200 to -299: Request validation errors
//   - -300 to -399: Data errors
//   - -500+: Upstream and server errors
//
// # Error Classes
//
// Every *Error matches exactly one sentinel through errors.Is:
//
//	ecode.ErrInvalidArgument // -201: invalid argument (empty input, bad mode, non-positive page cap)
//	ecode.ErrParse           // -301: malformed identifier or cursor
//	ecode.ErrTransport       // -502: HTTP or network failure while fetching a page
//	ecode.ErrCircuitOpen     // -503: upstream circuit breaker is open
//
// # Usage
//
//	if err := validate(req); err != nil {
//	    return ecode.InvalidArgument(ecode.FieldIsInvalid("max_pages"))
//	}
//
//	if errors.Is(err, ecode.ErrParse) {
//	    // caller or data contract violation
//	}
//
// # Messages
//
// The message helpers build short field messages:
//
//	ecode.FieldIsEmpty("items")   // "items empty"
//	ecode.FieldIsInvalid("mode")  // "mode invalid"
package ecode
