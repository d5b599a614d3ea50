// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ExplainService wraps an ordered chain of LLM providers with a cache;
// RepositoryService turns a hosted repository into parsed functions,
// a dependency graph and a feature map.
package services
