// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Cache: TTL key/value store for generated explanations
//   - RateLimiter: Fixed-window request counter per client
//   - CodeParser: Extracts functions, dependencies and features from source text
//   - CodeHostFactory: Opens an authenticated CodeHost (GitHub) per access token
//   - ConfigStore: Application configuration file
//
// # Optional Interfaces
//
// These can be empty or nil - the application degrades gracefully:
//
//   - LLMService: Zero configured providers makes explanations fail with
//     domain.ErrConfig instead of preventing startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or parser package
package driven
