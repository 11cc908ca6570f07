// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the transport and the dispatcher.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Recovery: Recovers panics raised while handling a request, classifies
//     them, and either absorbs client disconnects for that connection alone
//     or escalates the fault to the supervisor.
//
// Both are installed by the supervisor on every app it builds, RayID first.
package middleware
