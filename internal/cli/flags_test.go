package cli

import "testing"

func TestFlags_ToConfigFlags(t *testing.T) {
	flags := Flags{
		ConfigPath: "settings/appsettings.json",
		NameFilter: "Check*",
		FailFast:   true,
		NoSave:     true,
		LogLevel:   "debug",
	}

	got := flags.ToConfigFlags()

	if got.ConfigPath != flags.ConfigPath {
		t.Errorf("expected ConfigPath %q, got %q", flags.ConfigPath, got.ConfigPath)
	}
	if got.NameFilter != flags.NameFilter {
		t.Errorf("expected NameFilter %q, got %q", flags.NameFilter, got.NameFilter)
	}
	if !got.FailFast || !got.NoSave {
		t.Errorf("expected FailFast and NoSave to be set, got %+v", got)
	}
	if got.LogLevel != flags.LogLevel {
		t.Errorf("expected LogLevel %q, got %q", flags.LogLevel, got.LogLevel)
	}
}
