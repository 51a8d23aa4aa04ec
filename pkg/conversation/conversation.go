// Package conversation holds the ordered message log for one chat session.
package conversation

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation. Messages are immutable once
// appended; display order is append order.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// Conversation is owned by exactly one session and is not safe for
// concurrent use; the session controller serializes access.
type Conversation struct {
	messages         []Message
	welcomeShown     bool
	selectedCategory string
}

func New() *Conversation {
	return &Conversation{}
}

func (c *Conversation) AppendUser(content string) {
	c.append(RoleUser, content)
}

func (c *Conversation) AppendAssistant(content string) {
	c.append(RoleAssistant, content)
}

func (c *Conversation) append(role, content string) {
	c.messages = append(c.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Restore replaces the log with previously persisted messages.
func (c *Conversation) Restore(messages []Message) {
	c.messages = append([]Message(nil), messages...)
}

// Snapshot returns a copy of the log; callers may hold it across mutations.
func (c *Conversation) Snapshot() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// MarkWelcomeShown flips the welcome guard and reports whether this call was
// the one that flipped it. The welcome message is shown at most once per
// login session.
func (c *Conversation) MarkWelcomeShown() bool {
	if c.welcomeShown {
		return false
	}
	c.welcomeShown = true
	return true
}

func (c *Conversation) WelcomeShown() bool {
	return c.welcomeShown
}

// SelectCategory stores the category in its normalized form so later
// "show category:" references compare equal regardless of case.
func (c *Conversation) SelectCategory(category string) {
	c.selectedCategory = strings.ToLower(strings.TrimSpace(category))
}

func (c *Conversation) SelectedCategory() string {
	return c.selectedCategory
}

// Clear wipes the log and all transient state. Called on logout.
func (c *Conversation) Clear() {
	c.messages = nil
	c.welcomeShown = false
	c.selectedCategory = ""
}
