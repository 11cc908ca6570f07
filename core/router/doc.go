// Package router holds the route table consulted by the dispatcher.
//
// A Table is an ordered, append-only list of (method, path, handler) entries.
// It is built entirely before the server starts and sealed by the supervisor;
// from then on it is shared read-only by every worker without locking.
//
// # Matching
//
// Lookup compares method and path by exact string equality. There are no
// patterns, wildcards, parameters, or trailing-slash tolerance. When two
// routes share the same method and path, the one registered first wins.
//
// # Handlers
//
// A Handler receives the fiber context (request and response builder in one)
// together with the process-wide configuration:
//
//	table := router.NewTable()
//	_ = table.Register(router.Route{
//	    Method:  fiber.MethodGet,
//	    Path:    "/figma/font-files",
//	    Handler: router.HandlerFunc(h.HandleFontFiles),
//	})
package router
