// Package api provides the JSON HTTP surface for codelens on gin.
//
// Routes:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/auth/login
//	GET  /api/repos
//	GET  /api/repos/:owner/:repo/files
//	GET  /api/repos/:owner/:repo/file?path=
//	GET  /api/repos/:owner/:repo/functions
//	GET  /api/repos/:owner/:repo/analysis
//	POST /api/explain/function
//	POST /api/explain/usage
//	GET  /api/cache/stats
//
// The GitHub token is read from the github_token cookie or an
// "Authorization: Bearer" header. Errors are returned as {"error": message}
// with the status chosen by statusFor.
package api
