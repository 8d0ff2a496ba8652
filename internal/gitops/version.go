package gitops

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// tagChange describes how the nearest tag moved across an update.
type tagChange int

const (
	tagUnknown tagChange = iota
	tagSame
	tagUpgraded
	tagDowngraded
)

// compareTags compares the tags seen before and after a pull. Tags that are
// not semantic versions yield tagUnknown.
func compareTags(before, after string) tagChange {
	bv, err := parseTag(before)
	if err != nil {
		return tagUnknown
	}
	av, err := parseTag(after)
	if err != nil {
		return tagUnknown
	}
	switch bv.Compare(av) {
	case -1:
		return tagUpgraded
	case 1:
		return tagDowngraded
	default:
		return tagSame
	}
}

func parseTag(tag string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(tag), "v"))
}
