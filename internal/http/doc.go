// Package http exposes composed pages and listings as JSON on go-router.
//
// Routes:
//   - GET /                  home page
//   - GET /pages/:slug       standalone page
//   - GET /articles          chronological listing (?page=N)
//   - GET /articles/:slug    article detail page
//   - GET /categories/:slug  category listing (?page=N)
//   - GET /tags/:slug        tag listing (?page=N)
//   - GET /health
//
// Missing pages answer 404 with {"error": "page not found"}. Requests over
// the configured rate answer 429.
package http
