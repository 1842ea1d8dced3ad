package query

import (
	"testing"

	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uptr(v uint) *uint { return &v }

func TestBuild_NoFilters(t *testing.T) {
	pred := Build(DefaultParams(), nil, nil)

	assert.Equal(t, OpAnd, pred.Op)
	assert.Empty(t, pred.Children)

	sql, args := pred.SQL()
	assert.Equal(t, "TRUE", sql)
	assert.Empty(t, args)
}

func TestBuild_CategoriesOnly(t *testing.T) {
	p := DefaultParams()
	p.Categories = []model.Category{model.CategorySleep, model.CategoryStress}

	pred := Build(p, nil, nil)
	require.Len(t, pred.Children, 1)

	clause := pred.Children[0]
	assert.Equal(t, OpIn, clause.Op)
	assert.Equal(t, FieldCategory, clause.Field)
}

func TestBuild_FavoritesAndMyTipsFormSingleOrGroup(t *testing.T) {
	p := DefaultParams()
	p.ShowFavorites = true
	p.ShowMyTips = true

	pred := Build(p, uptr(7), []uint{1, 2})
	require.Len(t, pred.Children, 1)

	group := pred.Children[0]
	require.Equal(t, OpOr, group.Op)
	require.Len(t, group.Children, 2)
	assert.Equal(t, OpIn, group.Children[0].Op)
	assert.Equal(t, FieldID, group.Children[0].Field)
	assert.Equal(t, OpEquals, group.Children[1].Op)
	assert.Equal(t, FieldCreatedBy, group.Children[1].Field)
	assert.Equal(t, uint(7), group.Children[1].Value)
}

func TestBuild_FavoritesIgnoredWithoutActingUser(t *testing.T) {
	p := DefaultParams()
	p.ShowFavorites = true
	p.ShowMyTips = true

	pred := Build(p, nil, nil)
	assert.Empty(t, pred.Children)
}

func TestBuild_SearchScopes(t *testing.T) {
	tests := []struct {
		name    string
		scope   SearchIn
		fields  []Field
	}{
		{"both", SearchBoth, []Field{FieldTitle, FieldDescription}},
		{"title only", SearchTitle, []Field{FieldTitle}},
		{"description only", SearchDescription, []Field{FieldDescription}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.Search = "sleep"
			p.SearchIn = tt.scope

			pred := Build(p, nil, nil)
			require.Len(t, pred.Children, 1)

			group := pred.Children[0]
			require.Equal(t, OpOr, group.Op)
			require.Len(t, group.Children, len(tt.fields))
			for i, f := range tt.fields {
				assert.Equal(t, OpContains, group.Children[i].Op)
				assert.Equal(t, f, group.Children[i].Field)
			}
		})
	}
}

func TestBuild_BlankSearchProducesNoClause(t *testing.T) {
	p := DefaultParams()
	p.Search = "   \t "

	pred := Build(p, nil, nil)
	assert.Empty(t, pred.Children)
}

func TestBuild_ClauseOrderIsFixed(t *testing.T) {
	p := DefaultParams()
	p.Categories = []model.Category{model.CategoryNutrition}
	p.ShowMyTips = true
	p.Search = "water"

	pred := Build(p, uptr(3), nil)
	require.Len(t, pred.Children, 3)
	assert.Equal(t, OpIn, pred.Children[0].Op)
	assert.Equal(t, FieldCategory, pred.Children[0].Field)
	assert.Equal(t, OpOr, pred.Children[1].Op)
	assert.Equal(t, OpOr, pred.Children[2].Op)
}

func TestSQL_Rendering(t *testing.T) {
	p := DefaultParams()
	p.Categories = []model.Category{model.CategorySleep}
	p.Search = "water"
	p.SearchIn = SearchTitle

	pred := Build(p, nil, nil)
	sql, args := pred.SQL()

	assert.Equal(t, "(category IN ?) AND ((title ILIKE ?))", sql)
	require.Len(t, args, 2)
	assert.Equal(t, []model.Category{model.CategorySleep}, args[0])
	assert.Equal(t, "%water%", args[1])
}

func TestSQL_EscapesLikeMetacharacters(t *testing.T) {
	sql, args := Contains(FieldTitle, "100%_done\\").SQL()

	assert.Equal(t, "title ILIKE ?", sql)
	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_done\\%`, args[0])
}

func TestSQL_EmptyOrGroupMatchesNothing(t *testing.T) {
	sql, args := Or().SQL()
	assert.Equal(t, "FALSE", sql)
	assert.Empty(t, args)
}

func TestEval_MatchesCaseInsensitiveSubstring(t *testing.T) {
	tip := model.Tip{Title: "Stay Hydrated", Description: "Drink water daily."}

	assert.True(t, Contains(FieldTitle, "hydrated").Eval(tip))
	assert.True(t, Contains(FieldDescription, "WATER").Eval(tip))
	assert.False(t, Contains(FieldTitle, "water").Eval(tip))
}

func TestEval_TitleScopeExcludesDescriptionMatches(t *testing.T) {
	p := DefaultParams()
	p.Search = "sleep"
	p.SearchIn = SearchTitle
	pred := Build(p, nil, nil)

	titleMatch := model.Tip{Title: "Sleep Well", Description: "Rest."}
	descOnly := model.Tip{Title: "Evening Routine", Description: "Improves sleep."}

	assert.True(t, pred.Eval(titleMatch))
	assert.False(t, pred.Eval(descOnly))
}

func TestEval_CategoryAndOwnership(t *testing.T) {
	owner := uint(4)
	tip := model.Tip{ID: 10, Category: model.CategorySleep, CreatedByID: &owner}

	assert.True(t, In(FieldCategory, []model.Category{model.CategorySleep}).Eval(tip))
	assert.False(t, In(FieldCategory, []model.Category{model.CategoryStress}).Eval(tip))
	assert.True(t, Equals(FieldCreatedBy, uint(4)).Eval(tip))
	assert.False(t, Equals(FieldCreatedBy, uint(5)).Eval(tip))
	assert.True(t, In(FieldID, []uint{10, 11}).Eval(tip))
	assert.False(t, In(FieldID, []uint{}).Eval(tip))

	seeded := model.Tip{ID: 1, Category: model.CategorySleep}
	assert.False(t, Equals(FieldCreatedBy, uint(4)).Eval(seeded))
}

func TestEval_AndOrComposition(t *testing.T) {
	owner := uint(4)
	tip := model.Tip{ID: 10, Category: model.CategorySleep, Title: "Nap", CreatedByID: &owner}

	pred := And(
		In(FieldCategory, []model.Category{model.CategorySleep}),
		Or(In(FieldID, []uint{99}), Equals(FieldCreatedBy, uint(4))),
	)
	assert.True(t, pred.Eval(tip))

	pred = And(
		In(FieldCategory, []model.Category{model.CategoryStress}),
		Or(In(FieldID, []uint{10})),
	)
	assert.False(t, pred.Eval(tip))
}
