package messages

// Configuration loading messages.
const (
	ConfigResolveHomeErrFmt      = "resolve home dir: %w"
	ConfigReadErrFmt             = "read config %s: %w"
	ConfigInvalidTOMLFmt         = "invalid config %s: %w"
	ConfigUnknownKeysFmt         = "config %s has unrecognized keys:\n%s"
	ConfigEmptyFieldFmt          = "config %s: %s must not be empty"
	ConfigEmptyPackageFmt        = "config %s: packages must not contain blank entries"
	ConfigInvalidStateVersionFmt = "config %s: state-version %q must be in the form YY.MM"
)
