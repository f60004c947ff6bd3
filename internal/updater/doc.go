// Package updater tells users when a newer starterkit release exists. It
// checks GitHub Releases at most once a day, caches the answer in the config
// directory, and prints a banner from the cache without ever blocking a
// command on the network.
package updater
