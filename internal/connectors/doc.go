// Package connectors holds the adapters that read source code from remote
// code hosts. Each subpackage implements driven.CodeHostFactory for one
// host; github is the only one today.
package connectors
