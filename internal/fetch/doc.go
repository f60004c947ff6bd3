// Package fetch materializes starter content into a project root, either by
// copying a local directory tree or by shallow-cloning a hosted repository.
// Neither strategy leaves the starter's own version-control metadata behind.
package fetch
