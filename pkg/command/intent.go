// Package command parses free-text chat utterances into structured intents.
// Parsing is pure: no I/O happens here, the session layer executes intents.
package command

// Kind tags the intent variant produced for one utterance.
type Kind int

const (
	// KindNone means the utterance is not a recognized command and should be
	// forwarded to the chat backend untouched.
	KindNone Kind = iota
	KindListProducts
	KindShowCategory
	KindSelectCategory
	KindSearchProduct
	KindAddProduct
	KindUpdateProduct
	KindDeleteProduct
	KindReduceStock
	// KindHint is a locally detected validation problem. Hint carries the
	// user-facing message and no network call should be made.
	KindHint
)

// UpdateFields is a partial product update. Exactly one field is set for a
// well-formed update command.
type UpdateFields struct {
	Price    *float64
	Category *string
	Stock    *int
}

// Intent is the structured result of parsing one utterance. Fields are
// populated according to Kind; all the rest stay zero.
type Intent struct {
	Kind     Kind
	Name     string
	Category string
	Price    float64
	Stock    int
	Amount   int
	Update   UpdateFields
	Hint     string
}

func hint(text string) Intent {
	return Intent{Kind: KindHint, Hint: text}
}
