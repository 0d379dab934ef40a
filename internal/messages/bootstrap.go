package messages

// Probe and installer messages.
const (
	ProbeSmokeTestFailedFmt = "flake smoke test against %s failed: %w"

	InstallerNoProfileScript  = "no nix integration script found after install"
	InstallerToolUnresolvable = "nix is still not resolvable after loading the integration script"

	InstallerConsentPrompt     = "Create /nix with elevated privileges before installing?"
	InstallerSetupDeclined     = "Skipping privileged /nix setup; the installer will choose its own mode."
	InstallerNoUserForChown    = "cannot determine invoking user for /nix ownership"
	InstallerPrepareDirWarnFmt = "Warning: privileged /nix setup failed, continuing unprivileged: %v\n"
	InstallerMkdirNixFailedFmt = "create /nix: %w"
	InstallerChownNixFailedFmt = "chown /nix: %w"

	InstallerResolveHomeErrFmt   = "resolve home dir: %w"
	InstallerCreateRequestErrFmt = "create install script request: %w"
	InstallerDownloadFailedFmt   = "download install script from %s: %w"
	InstallerDownloadStatusFmt   = "download install script from %s: unexpected status %s"
	InstallerCreateTempErrFmt    = "create temp install script: %w"
	InstallerWriteScriptErrFmt   = "write install script: %w"
	InstallerRunningFmt          = "Running the vendor install script from %s\n"
	InstallerRunFailedFmt        = "vendor install script failed: %w"
	InstallerSourcingFmt         = "Loading nix environment from %s\n"
	InstallerSourceFailedFmt     = "source integration script %s: %w"
	InstallerSetenvFailedFmt     = "set environment variable %s: %w"
)

// Identity messages.
const (
	IdentityEmptyUsername = "username is empty after sanitizing; cannot continue"
	IdentityPromptFmt     = "Username for the home-manager configuration (default: %s)"
)

// nix.conf feature messages.
const (
	NixconfResolveHomeErrFmt = "resolve home dir: %w"
	NixconfCreateDirErrFmt   = "create nix config dir %s: %w"
	NixconfReadErrFmt        = "read nix config %s: %w"
	NixconfWriteErrFmt       = "write nix config %s: %w"
)

// Flake generation messages.
const (
	FlakeResolveHomeErrFmt = "resolve home dir: %w"
	FlakeCreateDirErrFmt   = "create flake dir %s: %w"
	FlakeReadErrFmt        = "read generated file %s: %w"
	FlakeWriteErrFmt       = "write generated file %s: %w"
	FlakeDiffHeaderFmt     = "Regenerating %s with these changes:\n"
)

// Apply messages.
const (
	ApplyNoExecutable    = "no nix executable found on PATH or at the default profile location"
	ApplyNotGeneratedFmt = "generated configuration %s is missing; run 'nixstrap generate' first"

	// ApplyRemediationFmt formats the manual-recovery block printed when the
	// switch fails. Arguments: flake target, backup suffix, manual command.
	ApplyRemediationFmt = `home-manager switch failed.

First runs often fail on transient network or cache-population issues.
The generated configuration at %s is intact; conflicting files would have
been renamed with the .%s suffix. Re-run the switch manually once the
underlying issue is resolved:

  %s
`
)
