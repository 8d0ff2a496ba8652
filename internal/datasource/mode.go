package datasource

import "fmt"

// Mode selects where a registry document is read from.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
	ModeCache  Mode = "cache"
)

// ModeNames returns the accepted mode names.
func ModeNames() []string {
	return []string{string(ModeRemote), string(ModeLocal), string(ModeCache)}
}

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRemote, ModeLocal, ModeCache:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}
