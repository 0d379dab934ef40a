package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse = "nixstrap"
	// RootShort is the short description for the root command.
	RootShort = "Bootstrap a Nix + home-manager environment"
	RootLong  = "nixstrap installs nix when absent, enables the flakes feature set,\ngenerates a home-manager flake configuration, and applies it."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	UpUse   = "up"
	UpShort = "Run the full bootstrap: install, enable features, generate, apply"

	GenerateUse   = "generate"
	GenerateShort = "Enable nix features and generate the home-manager configuration"

	ApplyUse   = "apply"
	ApplyShort = "Apply the generated configuration with home-manager switch"

	DoctorUse   = "doctor"
	DoctorShort = "Check the health of the bootstrap environment"

	InitUse   = "init"
	InitShort = "Write the default nixstrap config.toml for editing"

	FlagYes      = "Assume yes for every confirmation prompt"
	FlagUsername = "Username for the generated configuration (skips the prompt)"

	UpNixPresentFmt    = "nix is already installed: %s\n"
	UpNixPresentNoVer  = "nix is already installed\n"
	UpNixAbsent        = "nix is not installed; installing\n"
	UpInstalledVerFmt  = "nix installed successfully: %s\n"
	UpAdoptedScriptFmt = "Loaded nix environment from %s\n"
	UpNoScriptWarn     = "Warning: no integration script found; assuming the session already carries the nix environment\n"
	UpFeaturesFmt      = "Enabled experimental features in %s\n"
	UpSmokeWarnFmt     = "Warning: flake smoke test failed (the config file is still written): %v\n"
	UpGeneratedFmt     = "Generated %s and %s\n"
	UpApplyingFmt      = "Applying configuration for %s\n"
	UpApplyDone        = "Environment applied successfully.\n"

	InitWroteConfigFmt    = "Wrote %s\n"
	InitOverwritePromptFmt = "Overwrite existing %s with the default template?"
	InitKeptExisting      = "Keeping the existing configuration.\n"
	InitCreateDirErrFmt   = "create config dir: %w"
	InitWriteConfigErrFmt = "write config: %w"
)
