// Package fault captures and classifies abrupt failures.
//
// A Fault wraps either a value recovered from a panicking request handler or
// an error returned by the serving loop. The Classifier decides whether the
// fault was caused by the peer closing its connection (ClientDisconnect) or is
// anything else (Fatal).
//
// # Classification
//
// Typed errors are checked first with errors.Is: EPIPE, ECONNRESET,
// ECONNABORTED, net.ErrClosed and io.ErrClosedPipe. When the failure carries no
// usable type (a panic with a string, an error built from text) the classifier
// falls back to case-insensitive markers such as "broken pipe". Faults nest, so
// a fault raised by a worker that itself failed on a broken pipe is classified
// by that cause.
//
// The fallback is deliberately generous: a missed disconnect would take the
// server down, while a bug misread as a disconnect is only logged. Every
// Verdict carries the rule that matched so misclassifications show up in logs.
package fault
