package cli

import "dbtr/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigPath string
	NameFilter string
	FailFast   bool
	NoSave     bool
	LogLevel   string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigPath: f.ConfigPath,
		NameFilter: f.NameFilter,
		FailFast:   f.FailFast,
		NoSave:     f.NoSave,
		LogLevel:   f.LogLevel,
	}
}
