package messages

// Doctor check names and messages.
const (
	DoctorCheckNameNix      = "Nix"
	DoctorCheckNameFeatures = "Features"
	DoctorCheckNameFlake    = "Config"
	DoctorCheckNameUpdate   = "Update"

	DoctorNixMissing          = "nix is not installed"
	DoctorNixMissingRecommend = "Run 'nixstrap up' to install nix and bootstrap the environment"
	DoctorNixPresentFmt       = "nix found at %s"
	DoctorNixVersionFmt       = "%s (%s)"

	DoctorFeaturesUnreadableFmt = "cannot read %s"
	DoctorFeatureMissingFmt     = "%s is not declared in %s"
	DoctorFeaturesDeclaredFmt   = "experimental features declared in %s"
	DoctorFeaturesRecommend     = "Run 'nixstrap generate' to rewrite nix.conf"

	DoctorFlakeMissingFmt     = "generated file %s is missing"
	DoctorFlakeEmptyFmt       = "generated file %s is empty"
	DoctorFlakePresentFmt     = "%s present"
	DoctorFlakeStaleFmt       = "generated file %s does not match the current config"
	DoctorStaleCheckFailedFmt = "staleness check failed: %v"
	DoctorFlakeRecommend      = "Run 'nixstrap generate' to regenerate the configuration"

	DoctorUpdateFailedFmt    = "update check failed: %v"
	DoctorUpdateDevBuildFmt  = "running a dev build; latest release is %s"
	DoctorUpdateOutdatedFmt  = "update available: %s (current %s)"
	DoctorUpToDateFmt        = "up to date (%s)"
	DoctorUpdateRecommend    = "Download the latest release from https://github.com/conn-castle/nixstrap/releases"

	DoctorStatusOKLabel   = "[ OK ]"
	DoctorStatusWarnLabel = "[WARN]"
	DoctorStatusFailLabel = "[FAIL]"

	DoctorHeaderFmt            = "Checking nixstrap health\n\n"
	DoctorResultLineFmt        = "%s %s: %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorFailureSummary       = "Doctor found problems."
	DoctorSuccessSummary       = "Everything looks good."
)
