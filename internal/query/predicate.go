package query

import (
	"strings"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
)

// Op identifies a predicate node variant.
type Op string

const (
	OpAnd      Op = "and"
	OpOr       Op = "or"
	OpEquals   Op = "equals"
	OpContains Op = "contains"
	OpIn       Op = "in"
)

// Field is the closed set of tip columns a leaf predicate may reference.
type Field string

const (
	FieldID          Field = "id"
	FieldCategory    Field = "category"
	FieldCreatedBy   Field = "created_by_id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// Predicate is a tagged-variant filter tree over tips. Leaf nodes
// (Equals, Contains, In) carry a Field; branch nodes (And, Or) carry
// Children. An And with no children matches everything.
type Predicate struct {
	Op       Op
	Field    Field
	Value    any
	Values   any
	Children []Predicate
}

func And(children ...Predicate) Predicate {
	return Predicate{Op: OpAnd, Children: children}
}

func Or(children ...Predicate) Predicate {
	return Predicate{Op: OpOr, Children: children}
}

func Equals(f Field, v any) Predicate {
	return Predicate{Op: OpEquals, Field: f, Value: v}
}

// Contains matches a case-insensitive substring of the field.
func Contains(f Field, s string) Predicate {
	return Predicate{Op: OpContains, Field: f, Value: s}
}

func In(f Field, values any) Predicate {
	return Predicate{Op: OpIn, Field: f, Values: values}
}

// Build composes the search predicate. Clause order is fixed: category
// restriction, then the favorites/my-tips OR group, then the free-text
// OR group, all ANDed together. The favorites and my-tips flags only
// take effect when an acting user is present, and the favorites clause
// matches against the caller's full favorited-tip-id set supplied by the
// caller. The search clause fires when Search is non-blank, but matches
// the raw (untrimmed) string.
func Build(p Params, actingUserID *uint, favoriteTipIDs []uint) Predicate {
	var clauses []Predicate

	if len(p.Categories) > 0 {
		clauses = append(clauses, In(FieldCategory, p.Categories))
	}

	if actingUserID != nil && (p.ShowFavorites || p.ShowMyTips) {
		var group []Predicate
		if p.ShowFavorites {
			group = append(group, In(FieldID, favoriteTipIDs))
		}
		if p.ShowMyTips {
			group = append(group, Equals(FieldCreatedBy, *actingUserID))
		}
		clauses = append(clauses, Or(group...))
	}

	if strings.TrimSpace(p.Search) != "" {
		var group []Predicate
		if p.SearchIn == SearchTitle || p.SearchIn == SearchBoth {
			group = append(group, Contains(FieldTitle, p.Search))
		}
		if p.SearchIn == SearchDescription || p.SearchIn == SearchBoth {
			group = append(group, Contains(FieldDescription, p.Search))
		}
		clauses = append(clauses, Or(group...))
	}

	return And(clauses...)
}

// SQL renders the predicate as a parameterized WHERE fragment for
// postgres. ILIKE makes substring search case-insensitive. An empty
// branch node renders as a constant so the fragment is always valid.
func (p Predicate) SQL() (string, []any) {
	switch p.Op {
	case OpAnd, OpOr:
		if len(p.Children) == 0 {
			if p.Op == OpAnd {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
		var parts []string
		var args []any
		for _, c := range p.Children {
			sql, a := c.SQL()
			parts = append(parts, "("+sql+")")
			args = append(args, a...)
		}
		sep := " AND "
		if p.Op == OpOr {
			sep = " OR "
		}
		return strings.Join(parts, sep), args
	case OpEquals:
		return string(p.Field) + " = ?", []any{p.Value}
	case OpContains:
		return string(p.Field) + " ILIKE ?", []any{"%" + escapeLike(p.Value.(string)) + "%"}
	case OpIn:
		return string(p.Field) + " IN ?", []any{p.Values}
	}
	return "FALSE", nil
}

// escapeLike neutralizes LIKE metacharacters so user input matches
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Eval applies the predicate to a tip in memory, mirroring the SQL
// translation. Used to cross-check composition against small fixtures.
func (p Predicate) Eval(t model.Tip) bool {
	switch p.Op {
	case OpAnd:
		for _, c := range p.Children {
			if !c.Eval(t) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range p.Children {
			if c.Eval(t) {
				return true
			}
		}
		return false
	case OpEquals:
		return evalEquals(p.Field, p.Value, t)
	case OpContains:
		needle := strings.ToLower(p.Value.(string))
		return strings.Contains(strings.ToLower(fieldText(p.Field, t)), needle)
	case OpIn:
		return evalIn(p.Field, p.Values, t)
	}
	return false
}

func evalEquals(f Field, v any, t model.Tip) bool {
	if f == FieldCreatedBy {
		id, ok := v.(uint)
		return ok && t.CreatedByID != nil && *t.CreatedByID == id
	}
	return false
}

func evalIn(f Field, values any, t model.Tip) bool {
	switch f {
	case FieldCategory:
		cats, ok := values.([]model.Category)
		if !ok {
			return false
		}
		for _, c := range cats {
			if t.Category == c {
				return true
			}
		}
	case FieldID:
		ids, ok := values.([]uint)
		if !ok {
			return false
		}
		for _, id := range ids {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

func fieldText(f Field, t model.Tip) string {
	switch f {
	case FieldTitle:
		return t.Title
	case FieldDescription:
		return t.Description
	}
	return ""
}
