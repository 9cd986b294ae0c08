// Package config loads the vimfiles configuration record.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/vimfiles/config.toml or --config
//  3. VIMFILES_* environment variables
//  4. command line flag overrides
//
// The result is validated and normalized once at startup and then passed
// explicitly to the commands; nothing here is global.
package config
