package conversation

import (
	"testing"
	"time"
)

func TestAppendOrderIsPreserved(t *testing.T) {
	c := New()
	c.AppendUser("list products")
	c.AppendAssistant("Pen - Price: $1.5 - Stock: 100")
	c.AppendUser("search pen")

	snap := c.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Len = %d, want 3", len(snap))
	}
	wantRoles := []string{RoleUser, RoleAssistant, RoleUser}
	for i, m := range snap {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, wantRoles[i])
		}
		if m.Timestamp.IsZero() {
			t.Errorf("message %d has zero timestamp", i)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.AppendUser("hello")

	snap := c.Snapshot()
	snap[0].Content = "mutated"

	if got := c.Snapshot()[0].Content; got != "hello" {
		t.Errorf("Content = %q, want %q", got, "hello")
	}
}

func TestWelcomeShownFlipsOnce(t *testing.T) {
	c := New()
	if !c.MarkWelcomeShown() {
		t.Fatal("first MarkWelcomeShown returned false")
	}
	if c.MarkWelcomeShown() {
		t.Fatal("second MarkWelcomeShown returned true")
	}
	if !c.WelcomeShown() {
		t.Fatal("WelcomeShown = false after marking")
	}
}

func TestSelectCategoryNormalizes(t *testing.T) {
	c := New()
	c.SelectCategory("  Electronics ")
	if got := c.SelectedCategory(); got != "electronics" {
		t.Errorf("SelectedCategory = %q, want %q", got, "electronics")
	}
}

func TestClearResetsEverything(t *testing.T) {
	c := New()
	c.AppendUser("hello")
	c.MarkWelcomeShown()
	c.SelectCategory("Electronics")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if c.WelcomeShown() {
		t.Error("WelcomeShown = true after Clear")
	}
	if c.SelectedCategory() != "" {
		t.Errorf("SelectedCategory = %q after Clear, want empty", c.SelectedCategory())
	}
}

func TestRestoreReplacesLog(t *testing.T) {
	c := New()
	c.AppendUser("stale")

	restored := []Message{
		{Role: RoleAssistant, Content: "welcome back", Timestamp: time.Now()},
	}
	c.Restore(restored)

	snap := c.Snapshot()
	if len(snap) != 1 || snap[0].Content != "welcome back" {
		t.Errorf("Snapshot after Restore = %+v", snap)
	}
}
