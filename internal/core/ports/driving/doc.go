// Package driving declares what codelens offers its front ends: the HTTP
// API, the MCP server, the cobra commands and the terminal browser all
// call these interfaces and never reach into services directly.
//
// The services package provides the only implementations.
package driving
