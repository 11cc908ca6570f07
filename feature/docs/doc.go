// Package docs serves the Swagger UI and the generated OpenAPI document.
//
// The routing table matches exact paths only, so every file the UI loads is
// registered as its own route and forwarded to an embedded fiber app that
// mounts the swagger handler on its wildcard route.
package docs
