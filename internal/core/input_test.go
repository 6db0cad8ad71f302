package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionNone)
	if !f.Empty() {
		t.Error("ActionNone should not be recorded")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionPause)
	if !f.Has(ActionJump) || !f.Has(ActionPause) || f.Has(ActionQuit) {
		t.Errorf("unexpected frame contents: %v", f.Actions)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("frame should be empty after Clear, got %v", f.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionJump:    "Jump",
		ActionPause:   "Pause",
		ActionRestart: "Restart",
		ActionHelp:    "Help",
		ActionScores:  "Scores",
		ActionQuit:    "Quit",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}

func TestRuntimeConfigTickMillis(t *testing.T) {
	tests := []struct {
		rate int
		want float64
	}{
		{60, 1000.0 / 60},
		{30, 1000.0 / 30},
		{0, 1000.0 / 60},
		{-5, 1000.0 / 60},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		c.TickRate = tt.rate
		if got := c.TickMillis(); got != tt.want {
			t.Errorf("TickMillis() at %d fps = %g, expected %g", tt.rate, got, tt.want)
		}
	}
}
