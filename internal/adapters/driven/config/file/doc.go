// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (BrainSpreadConfig.toml)
//   - PromptStore: User-editable generation prompt templates
package file
