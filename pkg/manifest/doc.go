// Package manifest loads the declarative plugin list.
//
// A manifest maps plugin names to the repository that backs them and the
// files to link from that repository into the configuration tree:
//
//	theme:
//	  owner: acme
//	  repository: theme-pack
//	  links:
//	    - colors/theme.vim
//	pathogen:
//	  source: tpope/vim-pathogen
//	  links:
//	    - autoload/pathogen.vim: autoload/pathogen.vim
//
// Declaration order is preserved and defines processing order. YAML, JSON
// and TOML documents are accepted; see LinkSpec for the link shapes.
package manifest
