package autostart

import "testing"

func TestCommand(t *testing.T) {
	tests := []struct {
		exe  string
		args []string
		want string
	}{
		{`C:\Program Files\FloatPad\floatpad.exe`, nil, `"C:\Program Files\FloatPad\floatpad.exe"`},
		{`C:\fp.exe`, []string{"-config", `C:\My Docs\fp.json`}, `"C:\fp.exe" -config "C:\My Docs\fp.json"`},
	}
	for _, tt := range tests {
		if got := Command(tt.exe, tt.args...); got != tt.want {
			t.Errorf("Command(%q, %q) = %s, want %s", tt.exe, tt.args, got, tt.want)
		}
	}
}
