package cmd

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "list", "add", "log", "remind", "version"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestLogCommandFlags(t *testing.T) {
	if logCmd.Flags().Lookup("not-done") == nil {
		t.Error("log command missing --not-done flag")
	}
	if logCmd.Flags().Lookup("notes") == nil {
		t.Error("log command missing --notes flag")
	}
}
