package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-assistant-be/pkg/gateway"
)

const (
	testWaitLong = 2 * time.Second
	testWaitTick = 5 * time.Millisecond
)

type fakeGateway struct {
	mu sync.Mutex

	products   []gateway.Product
	categories []string
	history    []gateway.ChatMessage
	chatReply  string
	loginErr   error
	chatErr    error

	calls      []string
	added      []gateway.Product
	updated    map[string]gateway.UpdateFields
	deleted    []string
	saved      []gateway.ChatMessage
	chatGate   chan struct{} // when set, SendChatMessage blocks until closed
	loggedOut  bool
	tokenValue string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		chatReply: "I can help you with that.",
		updated:   make(map[string]gateway.UpdateFields),
	}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) Login(_ context.Context, username, _ string) (*gateway.AuthResult, error) {
	f.record("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &gateway.AuthResult{User: gateway.User{Username: username}, Token: "tok"}, nil
}

func (f *fakeGateway) Register(_ context.Context, username, _, _ string) (*gateway.AuthResult, error) {
	f.record("register")
	return &gateway.AuthResult{User: gateway.User{Username: username}, Token: "tok"}, nil
}

func (f *fakeGateway) Logout(context.Context) error {
	f.record("logout")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = true
	return nil
}

func (f *fakeGateway) SetToken(token string) { f.tokenValue = token }

func (f *fakeGateway) ListProducts(context.Context) ([]gateway.Product, error) {
	f.record("list")
	return f.products, nil
}

func (f *fakeGateway) ProductsByCategory(_ context.Context, category string) ([]gateway.Product, error) {
	f.record("byCategory:" + category)
	var out []gateway.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) SearchProduct(_ context.Context, name string) ([]gateway.Product, error) {
	f.record("search:" + name)
	var out []gateway.Product
	for _, p := range f.products {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) Categories(context.Context) ([]string, error) {
	return f.categories, nil
}

func (f *fakeGateway) AddProduct(_ context.Context, product gateway.Product) error {
	f.record("add:" + product.Name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, product)
	return nil
}

func (f *fakeGateway) UpdateProduct(_ context.Context, name string, fields gateway.UpdateFields) error {
	f.record("update:" + name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[name] = fields
	return nil
}

func (f *fakeGateway) DeleteProduct(_ context.Context, name string) error {
	f.record("delete:" + name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeGateway) ReduceStock(_ context.Context, name string, amount int) (int, error) {
	f.record("reduce:" + name)
	return 100 - amount, nil
}

func (f *fakeGateway) SendChatMessage(_ context.Context, text string) (string, error) {
	f.record("chat:" + text)
	if f.chatGate != nil {
		<-f.chatGate
	}
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatReply, nil
}

func (f *fakeGateway) FetchChatHistory(context.Context) ([]gateway.ChatMessage, error) {
	return f.history, nil
}

func (f *fakeGateway) SaveChatHistory(_ context.Context, messages []gateway.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append([]gateway.ChatMessage(nil), messages...)
	return nil
}

type memoryTokenStore struct {
	token string
}

func (m *memoryTokenStore) Save(token string) error { m.token = token; return nil }
func (m *memoryTokenStore) Load() (string, error)   { return m.token, nil }
func (m *memoryTokenStore) Clear() error            { m.token = ""; return nil }

func newTestController(gw *fakeGateway) *Controller {
	return NewController(gw, &memoryTokenStore{}, nil, nil, false)
}

func loggedIn(t *testing.T, gw *fakeGateway) *Controller {
	t.Helper()
	c := newTestController(gw)
	_, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	return c
}

func TestLoginBuildsWelcomeWithCategories(t *testing.T) {
	gw := newFakeGateway()
	gw.categories = []string{"Electronics", "Office"}
	c := newTestController(gw)

	welcome, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Contains(t, welcome, "Hello! How can I help you today?")
	assert.Contains(t, welcome, "- Electronics")
	assert.Contains(t, welcome, "- Office")
	assert.Contains(t, welcome, "'select category:CategoryName'")

	assert.Equal(t, StateLoggedIn, c.State())
	assert.Equal(t, "alice", c.Username())

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, welcome, messages[0].Content)
}

func TestListProductsRendersLines(t *testing.T) {
	gw := newFakeGateway()
	gw.products = []gateway.Product{
		{Name: "Pen", Price: 1.5, Stock: 100, Category: "Office"},
	}
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "list products")
	require.NoError(t, err)
	assert.Equal(t, "Pen - Price: $1.5 - Stock: 100", reply)
}

func TestAddProductSuccess(t *testing.T) {
	gw := newFakeGateway()
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "add name:Pen price:1.5 category:Office stock:100")
	require.NoError(t, err)
	assert.Equal(t, `Product "Pen" added successfully!`, reply)

	require.Len(t, gw.added, 1)
	assert.Equal(t, gateway.Product{Name: "Pen", Price: 1.5, Category: "Office", Stock: 100}, gw.added[0])
}

func TestMalformedAddMakesNoNetworkCall(t *testing.T) {
	gw := newFakeGateway()
	c := loggedIn(t, gw)
	before := len(gw.calls)

	reply, err := c.SendUtterance(context.Background(), "add name:Pen")
	require.NoError(t, err)
	assert.Equal(t, `To add a product, use format: "add name:ProductName price:99.99 category:Category stock:10"`, reply)
	assert.Len(t, gw.calls, before, "hint responses must not hit the network")
}

func TestUnrecognizedTextFallsThroughToChat(t *testing.T) {
	gw := newFakeGateway()
	gw.chatReply = "Here is what I know."
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "tell me about shipping")
	require.NoError(t, err)
	assert.Equal(t, "Here is what I know.", reply)
	assert.Contains(t, gw.calls, "chat:tell me about shipping")
}

func TestServerErrorRenderedVerbatim(t *testing.T) {
	gw := newFakeGateway()
	gw.chatErr = &gateway.APIError{Status: 400, Message: "Message is required"}
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, "Error: Message is required", reply)
}

func TestTransportErrorRenderedAsConnectionFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.chatErr = &gateway.TransportError{Err: context.DeadlineExceeded}
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, "Error: Could not connect to the server", reply)
}

func TestSecondUtteranceWhileBusyIsRejected(t *testing.T) {
	gw := newFakeGateway()
	gw.chatGate = make(chan struct{})
	c := loggedIn(t, gw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.SendUtterance(context.Background(), "slow question")
	}()

	// Wait for the first call to reach the gateway.
	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		for _, call := range gw.calls {
			if call == "chat:slow question" {
				return true
			}
		}
		return false
	}, testWaitLong, testWaitTick)

	_, err := c.SendUtterance(context.Background(), "second question")
	assert.ErrorIs(t, err, ErrBusy)

	close(gw.chatGate)
	<-done
}

func TestLogoutDiscardsLateReply(t *testing.T) {
	gw := newFakeGateway()
	gw.chatGate = make(chan struct{})
	c := loggedIn(t, gw)

	replies := make(chan error, 1)
	go func() {
		_, err := c.SendUtterance(context.Background(), "slow question")
		replies <- err
	}()

	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return len(gw.calls) > 0 && gw.calls[len(gw.calls)-1] == "chat:slow question"
	}, testWaitLong, testWaitTick)

	c.Logout(context.Background())
	assert.Equal(t, StateLoggedOut, c.State())
	assert.Empty(t, c.Messages(), "conversation must be empty immediately after logout")

	close(gw.chatGate)
	err := <-replies
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, c.Messages(), "late reply must not reappear after logout")
}

func TestSelectThenShowCategoryUseNormalizedName(t *testing.T) {
	gw := newFakeGateway()
	gw.categories = []string{"Electronics"}
	gw.products = []gateway.Product{
		{Name: "laptop", Price: 999.99, Stock: 10, Category: "electronics"},
	}
	c := loggedIn(t, gw)

	reply, err := c.SendUtterance(context.Background(), "select category:ELECTRONICS")
	require.NoError(t, err)
	assert.Equal(t, "Selected category: electronics", reply)

	reply, err = c.SendUtterance(context.Background(), "show category:Electronics")
	require.NoError(t, err)
	assert.Equal(t, "laptop - Price: $999.99 - Stock: 10", reply)
	assert.Contains(t, gw.calls, "byCategory:electronics")
}

func TestLogoutSavesHistoryAndClearsToken(t *testing.T) {
	gw := newFakeGateway()
	tokens := &memoryTokenStore{}
	c := NewController(gw, tokens, nil, nil, false)
	_, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.token)

	_, err = c.SendUtterance(context.Background(), "hello there")
	require.NoError(t, err)

	c.Logout(context.Background())

	assert.True(t, gw.loggedOut)
	assert.Empty(t, tokens.token)
	require.NotEmpty(t, gw.saved)
	assert.Equal(t, "hello there", gw.saved[1].Content)
}

func TestSendUtteranceWhileLoggedOut(t *testing.T) {
	c := newTestController(newFakeGateway())

	_, err := c.SendUtterance(context.Background(), "list products")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
