package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{"equal", "1.2.3", "1.2.3", false, false},
		{"older", "1.2.3", "1.3.0", true, false},
		{"newer", "2.0.0", "1.9.9", false, false},
		{"v prefix on both", "v1.0.0", "v1.1.0", true, false},
		{"release after prerelease", "1.0.0-rc.1", "1.0.0", true, false},
		{"dev build", "dev", "1.0.0", false, false},
		{"invalid latest", "1.0.0", "garbage", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Newer(tt.current, tt.latest)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
