package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/raykroeker/vimfiles/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed layout names. These define the on-disk structure and are not
// user-configurable; user-facing knobs live in pkg/config.
const (
	// AppDirName is the directory name used under XDG locations
	AppDirName = "vimfiles"

	// ConfigFileName is the user configuration file under XDG_CONFIG_HOME
	ConfigFileName = "config.toml"

	// RepositoriesDir holds every fetched plugin repository
	RepositoriesDir = "repositories"

	// DefaultNamespace groups repositories by hosting service
	DefaultNamespace = "com.github"

	// ConfigTreeDir is the default configuration tree, linked to ~/.vim
	ConfigTreeDir = "dot-vim"

	// VimrcFile is linked to ~/.vimrc
	VimrcFile = "dot-vimrc"

	// DefaultManifestFile is the manifest looked up under the install root
	DefaultManifestFile = "plugins.yaml"

	// HomeVimDir and HomeVimrc are the activation points in $HOME
	HomeVimDir = ".vim"
	HomeVimrc  = ".vimrc"
)

// Layout resolves the locations of one installation.
type Layout struct {
	InstallRoot string
	ConfigRoot  string
	Namespace   string
	Home        string
}

// NewLayout normalizes the given roots. An empty configRoot defaults to
// <installRoot>/dot-vim, an empty namespace to com.github and an empty home
// to the current user's home directory.
func NewLayout(installRoot, configRoot, namespace, home string) (Layout, error) {
	root, err := NormalizePath(installRoot)
	if err != nil {
		return Layout{}, errors.Wrap(err, errors.ErrConfigValid, "invalid install root")
	}

	if configRoot == "" {
		configRoot = filepath.Join(root, ConfigTreeDir)
	}
	cfgRoot, err := NormalizePath(configRoot)
	if err != nil {
		return Layout{}, errors.Wrap(err, errors.ErrConfigValid, "invalid config root")
	}

	if namespace == "" {
		namespace = DefaultNamespace
	}
	if err := ValidateSegment(namespace); err != nil {
		return Layout{}, errors.Wrap(err, errors.ErrConfigValid, "invalid namespace")
	}

	if home == "" {
		home = GetHomeDirectoryWithDefault("")
	}
	if home != "" {
		if home, err = NormalizePath(home); err != nil {
			return Layout{}, errors.Wrap(err, errors.ErrConfigValid, "invalid home directory")
		}
	}

	return Layout{
		InstallRoot: root,
		ConfigRoot:  cfgRoot,
		Namespace:   namespace,
		Home:        home,
	}, nil
}

// RepositoriesRoot returns <install_root>/repositories.
func (l Layout) RepositoriesRoot() string {
	return filepath.Join(l.InstallRoot, RepositoriesDir)
}

// NamespaceRoot returns <install_root>/repositories/<namespace>.
func (l Layout) NamespaceRoot() string {
	return filepath.Join(l.RepositoriesRoot(), l.Namespace)
}

// InstallPath returns where owner/repository is fetched to.
func (l Layout) InstallPath(owner, repository string) string {
	return InstallPath(l.InstallRoot, l.Namespace, owner, repository)
}

// VimrcPath returns <install_root>/dot-vimrc.
func (l Layout) VimrcPath() string {
	return filepath.Join(l.InstallRoot, VimrcFile)
}

// HomeVimDir returns ~/.vim.
func (l Layout) HomeVimDir() string {
	return filepath.Join(l.Home, HomeVimDir)
}

// HomeVimrc returns ~/.vimrc.
func (l Layout) HomeVimrc() string {
	return filepath.Join(l.Home, HomeVimrc)
}

// DefaultManifestPath returns <install_root>/plugins.yaml.
func (l Layout) DefaultManifestPath() string {
	return filepath.Join(l.InstallRoot, DefaultManifestFile)
}

// InstallPath is install_root/repositories/<namespace>/<owner>/<repository>.
func InstallPath(installRoot, namespace, owner, repository string) string {
	return filepath.Join(installRoot, RepositoriesDir, namespace, owner, repository)
}

// UserConfigFile returns $XDG_CONFIG_HOME/vimfiles/config.toml.
func UserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// NormalizePath normalizes a path by expanding home and environment
// variables, making it absolute, and cleaning it
func NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	expanded := expandHome(os.ExpandEnv(path))

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// GetHomeDirectoryWithDefault returns the home directory or defaultDir
func GetHomeDirectoryWithDefault(defaultDir string) string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return defaultDir
}
