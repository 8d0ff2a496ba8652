package gitops

import "testing"

func TestCompareTags(t *testing.T) {
	tests := []struct {
		before, after string
		want          tagChange
	}{
		{"v1.0.0", "v1.1.0", tagUpgraded},
		{"1.1.0", "v1.1.0", tagSame},
		{"v2.0.0", "v1.9.9", tagDowngraded},
		{"", "v1.0.0", tagUnknown},
		{"nightly", "v1.0.0", tagUnknown},
	}
	for _, tt := range tests {
		if got := compareTags(tt.before, tt.after); got != tt.want {
			t.Errorf("compareTags(%q, %q) = %v, want %v", tt.before, tt.after, got, tt.want)
		}
	}
}
