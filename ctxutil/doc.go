// Package ctxutil carries request-scoped values through context.Context.
//
// Every traversal runs under a trace id so that the log lines of all its
// page requests can be correlated:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	log.Infof(ctx, "starting traversal %s", traceID)
package ctxutil
