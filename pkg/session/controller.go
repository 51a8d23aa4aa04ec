// Package session orchestrates one chat session: it owns the conversation,
// runs the command interpreter, dispatches to the backend gateway, and
// drives the speech adapters.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"sales-assistant-be/pkg/command"
	"sales-assistant-be/pkg/conversation"
	"sales-assistant-be/pkg/gateway"
	"sales-assistant-be/pkg/speech"
)

var (
	// ErrBusy is returned while a previous utterance is still in flight.
	// Submissions are rejected, never queued.
	ErrBusy = errors.New("a message is already awaiting a response")

	ErrNotLoggedIn = errors.New("not logged in")
	ErrLoggedIn    = errors.New("already logged in")
)

// Gateway is the slice of the REST client the controller depends on.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*gateway.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*gateway.AuthResult, error)
	Logout(ctx context.Context) error
	SetToken(token string)

	ListProducts(ctx context.Context) ([]gateway.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]gateway.Product, error)
	SearchProduct(ctx context.Context, name string) ([]gateway.Product, error)
	Categories(ctx context.Context) ([]string, error)
	AddProduct(ctx context.Context, product gateway.Product) error
	UpdateProduct(ctx context.Context, name string, fields gateway.UpdateFields) error
	DeleteProduct(ctx context.Context, name string) error
	ReduceStock(ctx context.Context, name string, amount int) (int, error)

	SendChatMessage(ctx context.Context, text string) (string, error)
	FetchChatHistory(ctx context.Context) ([]gateway.ChatMessage, error)
	SaveChatHistory(ctx context.Context, messages []gateway.ChatMessage) error
}

type State int

const (
	StateLoggedOut State = iota
	StateLoggingIn
	StateLoggedIn
)

type Controller struct {
	mu sync.Mutex

	state      State
	busy       bool
	epoch      uint64
	username   string
	categories []string

	conv   *conversation.Conversation
	gw     Gateway
	tokens TokenStore

	recognizer     speech.Recognizer
	synthesizer    speech.Synthesizer
	speakReplies   bool
	speechErrShown bool
	listening      bool
}

func NewController(gw Gateway, tokens TokenStore, recognizer speech.Recognizer, synthesizer speech.Synthesizer, speakReplies bool) *Controller {
	return &Controller{
		state:        StateLoggedOut,
		conv:         conversation.New(),
		gw:           gw,
		tokens:       tokens,
		recognizer:   recognizer,
		synthesizer:  synthesizer,
		speakReplies: speakReplies,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// Messages returns a copy of the conversation log.
func (c *Controller) Messages() []conversation.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Snapshot()
}

// Restore re-enters a logged-in state from a persisted, unexpired token.
// Returns false when no usable token exists.
func (c *Controller) Restore(ctx context.Context) bool {
	c.mu.Lock()
	if c.state != StateLoggedOut {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	token, err := c.tokens.Load()
	if err != nil || token == "" {
		return false
	}
	username, ok := tokenUsername(token)
	if !ok {
		_ = c.tokens.Clear()
		return false
	}

	c.gw.SetToken(token)

	history, err := c.gw.FetchChatHistory(ctx)
	if err != nil {
		// Server rejected the token (revoked, or the account is gone).
		c.gw.SetToken("")
		_ = c.tokens.Clear()
		return false
	}
	categories, _ := c.gw.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateLoggedIn
	c.username = username
	c.categories = categories
	c.conv.Restore(toConversationMessages(history))
	c.conv.MarkWelcomeShown()
	return true
}

// Login authenticates and starts a fresh conversation. The returned text is
// the welcome message, already appended as the first assistant turn.
func (c *Controller) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, func(ctx context.Context) (*gateway.AuthResult, error) {
		return c.gw.Login(ctx, username, password)
	})
}

// Register creates an account and enters the session immediately.
func (c *Controller) Register(ctx context.Context, username, email, password string) (string, error) {
	return c.authenticate(ctx, func(ctx context.Context) (*gateway.AuthResult, error) {
		return c.gw.Register(ctx, username, email, password)
	})
}

func (c *Controller) authenticate(ctx context.Context, call func(context.Context) (*gateway.AuthResult, error)) (string, error) {
	c.mu.Lock()
	if c.state != StateLoggedOut {
		c.mu.Unlock()
		return "", ErrLoggedIn
	}
	c.state = StateLoggingIn
	c.mu.Unlock()

	res, err := call(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateLoggedOut
		c.mu.Unlock()
		return "", err
	}

	_ = c.tokens.Save(res.Token)
	categories, _ := c.gw.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateLoggedIn
	c.username = res.User.Username
	c.categories = categories
	c.conv.Clear()

	welcome := buildWelcome(categories)
	c.conv.MarkWelcomeShown()
	c.conv.AppendAssistant(welcome)
	return welcome, nil
}

// Logout tears the session down unconditionally, even mid-response. Any
// in-flight reply resolving later is discarded via the epoch counter.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateLoggedOut {
		c.mu.Unlock()
		return
	}
	snapshot := c.conv.Snapshot()
	c.epoch++
	c.busy = false
	c.state = StateLoggedOut
	c.username = ""
	c.categories = nil
	c.conv.Clear()
	c.mu.Unlock()

	if c.synthesizer != nil {
		c.synthesizer.Cancel()
	}
	if len(snapshot) > 0 {
		_ = c.gw.SaveChatHistory(ctx, toGatewayMessages(snapshot))
	}
	_ = c.gw.Logout(ctx)
	_ = c.tokens.Clear()
}

// SendUtterance runs one turn: append the user message, interpret it,
// execute the intent (or fall through to the chat backend), and append the
// assistant reply. Only one turn may be in flight at a time.
func (c *Controller) SendUtterance(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	c.mu.Lock()
	if c.state != StateLoggedIn {
		c.mu.Unlock()
		return "", ErrNotLoggedIn
	}
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	epoch := c.epoch
	categories := c.categories
	c.conv.AppendUser(text)
	c.mu.Unlock()

	reply, selected := c.resolve(ctx, text, categories)

	c.mu.Lock()
	if c.epoch != epoch {
		// Logged out while the call was in flight; the reply is dropped.
		c.mu.Unlock()
		return "", ErrNotLoggedIn
	}
	c.busy = false
	if selected != "" {
		c.conv.SelectCategory(selected)
	}
	c.conv.AppendAssistant(reply)
	speak := c.speakReplies && c.synthesizer != nil
	c.mu.Unlock()

	if speak {
		go func() { _ = c.synthesizer.Speak(context.Background(), reply) }()
	}
	return reply, nil
}

// resolve executes one interpreted utterance and renders the assistant text.
// The second return value is the category to remember, when the utterance
// selected one.
func (c *Controller) resolve(ctx context.Context, text string, categories []string) (reply, selected string) {
	intent := command.Interpret(text, categories)

	switch intent.Kind {
	case command.KindHint:
		return intent.Hint, ""

	case command.KindSelectCategory:
		return "Selected category: " + intent.Category, intent.Category

	case command.KindShowCategory:
		products, err := c.gw.ProductsByCategory(ctx, intent.Category)
		if err != nil {
			return renderError(err), ""
		}
		if len(products) == 0 {
			return fmt.Sprintf("No products found in category %q", intent.Category), ""
		}
		return renderProductLines(products), ""

	case command.KindListProducts:
		products, err := c.gw.ListProducts(ctx)
		if err != nil {
			return renderError(err), ""
		}
		if len(products) == 0 {
			return "No products found in inventory.", ""
		}
		return renderProductLines(products), ""

	case command.KindSearchProduct:
		products, err := c.gw.SearchProduct(ctx, intent.Name)
		if err != nil {
			return renderError(err), ""
		}
		if len(products) == 0 {
			return fmt.Sprintf("No product found with name %q", intent.Name), ""
		}
		p := products[0]
		return fmt.Sprintf("Product: %s\nPrice: $%s\nStock: %d\nCategory: %s",
			p.Name, formatPrice(p.Price), p.Stock, p.Category), ""

	case command.KindAddProduct:
		err := c.gw.AddProduct(ctx, gateway.Product{
			Name:     intent.Name,
			Price:    intent.Price,
			Category: intent.Category,
			Stock:    intent.Stock,
		})
		if err != nil {
			return renderError(err), ""
		}
		return fmt.Sprintf("Product %q added successfully!", intent.Name), ""

	case command.KindUpdateProduct:
		err := c.gw.UpdateProduct(ctx, intent.Name, gateway.UpdateFields{
			Price:    intent.Update.Price,
			Category: intent.Update.Category,
			Stock:    intent.Update.Stock,
		})
		if err != nil {
			return renderError(err), ""
		}
		return fmt.Sprintf("Product %q updated successfully!", intent.Name), ""

	case command.KindDeleteProduct:
		if err := c.gw.DeleteProduct(ctx, intent.Name); err != nil {
			return renderError(err), ""
		}
		return fmt.Sprintf("Product %q deleted successfully!", intent.Name), ""

	case command.KindReduceStock:
		stock, err := c.gw.ReduceStock(ctx, intent.Name, intent.Amount)
		if err != nil {
			return renderError(err), ""
		}
		return fmt.Sprintf("Reduced stock of %q by %d. New stock: %d", intent.Name, intent.Amount, stock), ""
	}

	answer, err := c.gw.SendChatMessage(ctx, text)
	if err != nil {
		return renderError(err), ""
	}
	return answer, ""
}

// CaptureVoice toggles voice input. The first call starts a capture and
// blocks until a final transcript arrives (returned normalized, ready for
// SendUtterance) or the capture is stopped; a call while already capturing
// stops it and returns immediately.
func (c *Controller) CaptureVoice(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		c.recognizer.Stop()
		return "", nil
	}
	if c.recognizer == nil {
		c.mu.Unlock()
		return "", speech.ErrUnsupported
	}
	c.listening = true
	c.mu.Unlock()

	transcripts, err := c.recognizer.Start(ctx)
	if err != nil {
		c.mu.Lock()
		c.listening = false
		shown := c.speechErrShown
		c.speechErrShown = true
		if errors.Is(err, speech.ErrUnsupported) && !shown {
			c.conv.AppendAssistant("Voice recognition is not supported on this system.")
		}
		c.mu.Unlock()
		return "", err
	}

	text, ok := <-transcripts

	c.mu.Lock()
	c.listening = false
	c.mu.Unlock()

	if !ok {
		return "", nil
	}
	return NormalizeTranscript(text), nil
}

func buildWelcome(categories []string) string {
	var lines []string
	for _, cat := range categories {
		lines = append(lines, "- "+cat)
	}

	return "Hello! How can I help you today? I can assist you with:\n\n" +
		"1. Viewing products\n" +
		"2. Searching for specific products\n" +
		"3. Adding new products\n" +
		"4. Updating product details\n" +
		"5. Deleting products\n\n" +
		"Available categories:\n" +
		strings.Join(lines, "\n") + "\n\n" +
		"To select a category, type: 'select category:CategoryName'\n" +
		"To view products in a category, type: 'show category:CategoryName'"
}

func renderProductLines(products []gateway.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s - Price: $%s - Stock: %d", p.Name, formatPrice(p.Price), p.Stock))
	}
	return strings.Join(lines, "\n")
}

func renderError(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Message
	}
	return "Error: Could not connect to the server"
}

// formatPrice renders prices the way the server does: no trailing zeros, so
// 1.5 reads "$1.5".
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func toConversationMessages(in []gateway.ChatMessage) []conversation.Message {
	out := make([]conversation.Message, 0, len(in))
	for _, m := range in {
		ts, _ := time.Parse(time.RFC3339, m.Timestamp)
		out = append(out, conversation.Message{Role: m.Role, Content: m.Content, Timestamp: ts})
	}
	return out
}

func toGatewayMessages(in []conversation.Message) []gateway.ChatMessage {
	out := make([]gateway.ChatMessage, 0, len(in))
	for _, m := range in {
		out = append(out, gateway.ChatMessage{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return out
}
