package updater

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Newer reports whether latest is a newer release than current. Both may
// carry a leading "v". A current version that is not semver, such as "dev",
// is a development build and is never reported as outdated.
func Newer(current, latest string) (bool, error) {
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("release version %q: %w", latest, err)
	}
	cv, err := semver.NewVersion(current)
	if err != nil {
		return false, nil
	}
	return lv.GreaterThan(cv), nil
}
