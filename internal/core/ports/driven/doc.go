// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ContentStore: Content, summary and label persistence
//   - Generator: Summary and label generation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - RawStatementStore: Parameterised ad hoc statements (SQLite only)
//   - PromptStore: User-editable prompt templates. Without it, embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
