package driven

// PromptStore provides access to generation prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptSummary asks for a summary readable in under five minutes.
	// The template expects two %s placeholders: title, then body.
	PromptSummary = "summary"

	// PromptLabels asks for exactly five comma-separated labels.
	// The template expects two %s placeholders: title, then body.
	PromptLabels = "labels"
)
