package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Manage a vim configuration and its git hosted plugins"
	MsgInstallShort    = "Install the configuration and fetch every plugin"
	MsgRemoveShort     = "Remove the configuration and fetched plugins"
	MsgUpdateShort     = "Fetch and link plugins of an existing install"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Generate one man page per command into the output directory."

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun          = "Show what would change without touching the filesystem or running git"
	MsgFlagForce           = "Replace existing ~/.vim and ~/.vimrc symlinks on install"
	MsgFlagConfig          = "Configuration file (default $XDG_CONFIG_HOME/vimfiles/config.toml)"
	MsgFlagDirectory       = "Install root (default ~/.vimfiles)"
	MsgFlagConfigRoot      = "Configuration tree (default <install_root>/dot-vim)"
	MsgFlagManifest        = "Plugin manifest (default <install_root>/plugins.yaml)"
	MsgFlagJobs            = "Number of repositories fetched at once"
	MsgFlagContinueOnError = "Keep going after a plugin fails and report every failure"
	MsgFlagFormat          = "Output format: auto, term, text or json"
	MsgFlagManDir          = "Directory the man pages are written to"

	// Errors
	MsgErrNoCommand = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/update-example.txt
	msgUpdateExampleRaw string
	MsgUpdateExample    = strings.TrimRight(msgUpdateExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
