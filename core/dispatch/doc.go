// Package dispatch matches incoming requests against the route table.
//
// The Dispatcher is installed as the single catch-all fiber handler; fiber's
// own router is not used. For every request it:
//
//  1. answers OPTIONS (any path) with a fixed CORS preflight: 204, the
//     trusted origin, Access-Control-Allow-Private-Network: true, and an
//     empty body, whatever the table contains;
//  2. otherwise looks up the exact (method, path) pair and invokes the first
//     matching handler with the shared configuration;
//  3. falls back to a not-found handler when nothing matches.
//
// The trusted origin is the constant TrustedOrigin. Reflecting the request's
// Origin header is never done.
package dispatch
