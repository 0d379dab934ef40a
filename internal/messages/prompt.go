package messages

// Prompt messages.
const (
	PromptCancelled        = "cancelled"
	PromptRequiresTerminal = "this prompt requires an interactive terminal; re-run with flags to skip it"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt = "%s [Y/n]: "
	// PromptNoDefaultFmt formats yes/no prompts with no as default.
	PromptNoDefaultFmt       = "%s [y/N]: "
	PromptRetryYesNo         = "Please answer y or n."
	PromptInvalidResponseFmt = "invalid response %q"
)
