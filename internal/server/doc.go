// Package server provides the HTTP surface for text file storage and stateless spinning.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers so that the first one added runs outermost.
//
// The [BasicRouter] implementation registers "METHOD /path" patterns on [http.ServeMux],
// which also supplies path wildcards such as {profile}.
//
// # Endpoints
//
//   - GET  /get_text_file/{profile}/{type} returns {"content": "..."}, empty when nothing is stored
//   - POST /save_text_file accepts {"profile_name", "file_type", "content"}
//   - POST /spin accepts [SpinRequest] and returns [SpinResponse]
//   - GET  /health
//
// The text file routes match the admin panel backend, so the panel can point at this service instead.
// Malformed brace syntax in /spin is never an error; bad arguments such as a negative count are 400.
//
// # Middleware
//
// [Logging] records every request, [RateLimit] answers 429 once its token bucket is empty,
// and [Recover] converts panics into 500 responses.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
