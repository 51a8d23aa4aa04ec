package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	addPattern    = regexp.MustCompile(`(?i)name:([^ ]+) price:(\d+\.?\d*) category:([^ ]+) stock:(\d+)`)
	updatePattern = regexp.MustCompile(`(?i)name:([^ ]+) (?:price:(\d+\.?\d*)|category:([^ ]+)|stock:(\d+))`)
	reducePattern = regexp.MustCompile(`(?i)name:([^ ]+) amount:(\d+)`)
)

// rules are evaluated in order; the most specific prefixes come first so
// "show category:" wins over the generic "show". Keyword matching is done on
// the folded form, captures come from the raw text so product names keep
// their case.
var rules = []func(raw, folded string, categories []string) (Intent, bool){
	selectCategoryRule,
	showCategoryRule,
	listProductsRule,
	searchRule,
	addRule,
	updateRule,
	deleteRule,
	reduceStockRule,
}

// Interpret parses one utterance against the known category set.
func Interpret(utterance string, knownCategories []string) Intent {
	raw := strings.TrimSpace(utterance)
	folded := strings.ToLower(raw)

	for _, rule := range rules {
		if intent, ok := rule(raw, folded, knownCategories); ok {
			return intent
		}
	}
	return Intent{Kind: KindNone}
}

// Normalize folds a category name to its canonical matching form. Category
// selection and display always operate on the folded form so "select
// category:X" and "show category:X" agree regardless of typed case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func selectCategoryRule(_, folded string, categories []string) (Intent, bool) {
	rest, ok := strings.CutPrefix(folded, "select category:")
	if !ok {
		return Intent{}, false
	}
	category := strings.TrimSpace(rest)

	for _, known := range categories {
		if Normalize(known) == category {
			return Intent{Kind: KindSelectCategory, Category: category}, true
		}
	}
	return hint(fmt.Sprintf("Category %q not found. Available categories:\n%s",
		category, strings.Join(categories, "\n"))), true
}

func showCategoryRule(_, folded string, _ []string) (Intent, bool) {
	rest, ok := strings.CutPrefix(folded, "show category:")
	if !ok {
		return Intent{}, false
	}
	return Intent{Kind: KindShowCategory, Category: strings.TrimSpace(rest)}, true
}

func listProductsRule(_, folded string, _ []string) (Intent, bool) {
	if folded == "list products" || folded == "show products" {
		return Intent{Kind: KindListProducts}, true
	}
	return Intent{}, false
}

func searchRule(raw, folded string, _ []string) (Intent, bool) {
	if !strings.HasPrefix(folded, "show") && !strings.HasPrefix(folded, "find") && !strings.HasPrefix(folded, "search") {
		return Intent{}, false
	}

	name := restAfterKeyword(raw)
	if name == "" {
		return hint(`Please specify a product name. For example: "show iPhone" or "find iPhone"`), true
	}
	return Intent{Kind: KindSearchProduct, Name: name}, true
}

func addRule(raw, folded string, _ []string) (Intent, bool) {
	if !strings.HasPrefix(folded, "add") {
		return Intent{}, false
	}

	match := addPattern.FindStringSubmatch(restAfterKeyword(raw))
	if match == nil {
		return hint(`To add a product, use format: "add name:ProductName price:99.99 category:Category stock:10"`), true
	}

	price, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return Intent{Kind: KindNone}, true
	}
	stock, err := strconv.Atoi(match[4])
	if err != nil {
		return Intent{Kind: KindNone}, true
	}

	return Intent{
		Kind:     KindAddProduct,
		Name:     match[1],
		Price:    price,
		Category: match[3],
		Stock:    stock,
	}, true
}

func updateRule(raw, folded string, _ []string) (Intent, bool) {
	if !strings.HasPrefix(folded, "update") {
		return Intent{}, false
	}

	match := updatePattern.FindStringSubmatch(restAfterKeyword(raw))
	if match == nil {
		return hint("To update a product, use format:\n" +
			`- "update name:ProductName price:99.99"` + "\n" +
			`- "update name:ProductName category:NewCategory"` + "\n" +
			`- "update name:ProductName stock:10"`), true
	}

	intent := Intent{Kind: KindUpdateProduct, Name: match[1]}
	switch {
	case match[2] != "":
		price, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return Intent{Kind: KindNone}, true
		}
		intent.Update.Price = &price
	case match[3] != "":
		category := match[3]
		intent.Update.Category = &category
	case match[4] != "":
		stock, err := strconv.Atoi(match[4])
		if err != nil {
			return Intent{Kind: KindNone}, true
		}
		intent.Update.Stock = &stock
	default:
		return Intent{Kind: KindNone}, true
	}
	return intent, true
}

func deleteRule(raw, folded string, _ []string) (Intent, bool) {
	if !strings.HasPrefix(folded, "delete") {
		return Intent{}, false
	}

	name := restAfterKeyword(raw)
	if name == "" {
		return hint(`Please specify a product name. For example: "delete iPhone"`), true
	}
	return Intent{Kind: KindDeleteProduct, Name: name}, true
}

func reduceStockRule(raw, folded string, _ []string) (Intent, bool) {
	if !strings.HasPrefix(folded, "reduce stock") {
		return Intent{}, false
	}

	params := strings.TrimSpace(raw[len("reduce stock"):])
	match := reducePattern.FindStringSubmatch(params)
	if match == nil {
		return hint(`To reduce stock, use format: "reduce stock name:ProductName amount:5"`), true
	}

	amount, err := strconv.Atoi(match[2])
	if err != nil {
		return Intent{Kind: KindNone}, true
	}
	return Intent{Kind: KindReduceStock, Name: match[1], Amount: amount}, true
}

// restAfterKeyword drops the leading command word and returns the remainder.
func restAfterKeyword(msg string) string {
	_, rest, found := strings.Cut(msg, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}
