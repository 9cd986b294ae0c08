// Package paths derives every on-disk location vimfiles touches from the
// configured install root, configuration-tree root and home directory.
//
// Layout produced under the install root:
//
//	<install_root>/repositories/<namespace>/<owner>/<repository>/
//	<install_root>/dot-vim/          (default configuration tree)
//	<install_root>/dot-vimrc
//
// and, in the home directory, ~/.vim -> configuration tree and
// ~/.vimrc -> <install_root>/dot-vimrc.
package paths
