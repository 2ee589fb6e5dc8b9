// Package httputil provides HTTP helpers for the conceptmap server.
//
// # Overview
//
// Handlers write successful responses with [WriteJSON] or [WriteBytes] and
// failures with [WriteError], which maps the error code of a
// [github.com/matzehuels/conceptmap/pkg/errors.Error] to a status:
//
//	result, err := runner.Run(ctx, opts)
//	if err != nil {
//	    httputil.WriteError(w, r, err)
//	    return
//	}
//	httputil.WriteBytes(w, httputil.ContentTypeJSON, result.Artifacts["json"])
//
// Error bodies are JSON objects with a code and a user-facing message:
//
//	{"code": "INVALID_CUTOFF", "error": "cutoff 9 out of range [1, 5]"}
//
// # Instrumentation
//
// [Instrument] wraps a handler and reports every request to the HTTP hooks
// registered in [github.com/matzehuels/conceptmap/pkg/observability].
package httputil
