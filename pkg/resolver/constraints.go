// Package resolver adapts the JSON produced by the natural language
// constraint resolver into domain.Constraints.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"basketDebate/domain"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

const (
	DefaultBudgetRub = 5000.0
	DefaultPeople    = 1
)

var validate = validator.New()

// ParseConstraints reads a resolver payload such as
//
//	{"budget_rub": 1500, "people": 2, "meal_types": ["dinner"], "exclude_tags": ["dairy"]}
//
// Missing or null budget and people fall back to the defaults. Both
// "meal_types" and "meal_type" are accepted, as a list or a single string.
func ParseConstraints(payload []byte) (domain.Constraints, error) {
	if !gjson.ValidBytes(payload) {
		return domain.Constraints{}, errors.New("constraints payload is not valid JSON")
	}
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return domain.Constraints{}, errors.New("constraints payload must be a JSON object")
	}

	c := domain.Constraints{
		BudgetRub:   DefaultBudgetRub,
		People:      DefaultPeople,
		ExcludeTags: stringList(doc.Get("exclude_tags")),
		IncludeTags: stringList(doc.Get("include_tags")),
	}

	if b := doc.Get("budget_rub"); b.Exists() && b.Type != gjson.Null {
		if b.Type != gjson.Number {
			return domain.Constraints{}, fmt.Errorf("budget_rub must be a number, got %s", b.Raw)
		}
		c.BudgetRub = b.Float()
	}

	if p := doc.Get("people"); p.Exists() && p.Type != gjson.Null {
		if p.Type != gjson.Number {
			return domain.Constraints{}, fmt.Errorf("people must be a number, got %s", p.Raw)
		}
		c.People = int(p.Int())
	}

	meals := doc.Get("meal_types")
	if !meals.Exists() || meals.Type == gjson.Null {
		meals = doc.Get("meal_type")
	}
	c.MealTypes = stringList(meals)

	if err := validate.Struct(c); err != nil {
		return domain.Constraints{}, fmt.Errorf("invalid constraints: %w", err)
	}

	return c, nil
}

// stringList accepts a JSON array of strings or a single string.
func stringList(r gjson.Result) []string {
	out := []string{}
	add := func(v gjson.Result) {
		if s := strings.TrimSpace(v.String()); s != "" && v.Type == gjson.String {
			out = append(out, s)
		}
	}

	switch {
	case r.IsArray():
		for _, v := range r.Array() {
			add(v)
		}
	case r.Type == gjson.String:
		add(r)
	}
	return out
}
