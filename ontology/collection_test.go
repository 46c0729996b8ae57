package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/token"
)

type testTag int

const (
	tagNoun testTag = iota + 1
	tagHouse
	tagPlot
)

func testCollection(t *testing.T) *Collection {
	t.Helper()
	c, err := Build(
		New("УЛИЦА", tagNoun).AddAbridge("УЛ.").WithGender(analyzer.Feminine),
		New("ДОМ", tagHouse).AddAbridge("Д.").AddVariant("ЖИЛОЙ ДОМ").AddAbridge("ЖИЛ.ДОМ"),
		New("УЧАСТОК", tagPlot).AddAbridge("УЧ-К").AddAbridge("УЧ.").AddVariant("ЗЕМЕЛЬНЫЙ УЧАСТОК"),
		New("ДОМ", tagPlot).AddVariant("ДОМ УЧ.").AddAbridge("ДОМ.УЧ."),
		New("ГЕНЕРАЛЬНЫЙ ПЛАН", tagPlot).WithAcronym("ГП").AddAbridge("Г/П"),
	)
	require.NoError(t, err)
	return c
}

func TestMatch(t *testing.T) {
	c := testCollection(t)
	testCases := []struct {
		name    string
		text    string
		canonic string
		tag     any
		end     int
		abridge bool
	}{
		{"Каноническая форма", "улица Ленина", "УЛИЦА", tagNoun, 0, false},
		{"Сокращение с точкой", "ул. Ленина", "УЛИЦА", tagNoun, 1, true},
		{"Сокращение без точки", "ул Ленина", "УЛИЦА", tagNoun, 0, true},
		{"Склонение по основе", "улицы Ленина", "УЛИЦА", tagNoun, 0, false},
		{"Сокращение с дефисом", "уч-к 5", "УЧАСТОК", tagPlot, 2, true},
		{"Самое длинное совпадение", "дом уч. 5", "ДОМ", tagPlot, 2, false},
		{"Многословный вариант", "земельный участок 12", "УЧАСТОК", tagPlot, 1, false},
		{"Сокращение из нескольких частей", "жил.дом 4", "ДОМ", tagHouse, 2, true},
		{"Акроним", "ГП-5", "ГЕНЕРАЛЬНЫЙ ПЛАН", tagPlot, 0, true},
		{"Акроним через дробь", "г/п 5", "ГЕНЕРАЛЬНЫЙ ПЛАН", tagPlot, 2, true},
		{"Равная длина - первый зарегистрированный", "дом 5", "ДОМ", tagHouse, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := token.Tokenize(tc.text, nil)
			m := c.Match(doc, 0)
			require.NotNil(t, m)
			assert.Equal(t, tc.canonic, m.Termin.Canonic)
			assert.Equal(t, tc.tag, m.Termin.Tag)
			assert.Equal(t, tc.end, m.End)
			assert.Equal(t, tc.abridge, m.Abridge)
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	c := testCollection(t)
	for _, text := range []string{"Ленина", "улитка", ", ул.", "5 домов"} {
		t.Run(text, func(t *testing.T) {
			assert.Nil(t, c.Match(token.Tokenize(text, nil), 0))
		})
	}
	assert.Nil(t, c.Match(token.Tokenize("ул", nil), 5))
}

func TestMatch_NoCrossLine(t *testing.T) {
	c := testCollection(t)
	doc := token.Tokenize("земельный\nучасток", nil)
	assert.Nil(t, c.Match(doc, 0))
}

func TestMatchAll(t *testing.T) {
	c := testCollection(t)
	doc := token.Tokenize("дом 5", nil)
	all := c.MatchAll(doc, 0)
	require.Len(t, all, 2)
	assert.Equal(t, tagHouse, all[0].Termin.Tag)
	assert.Equal(t, tagPlot, all[1].Termin.Tag)
}

func TestMatchTermin(t *testing.T) {
	c := testCollection(t)
	street := c.FindByCanonic("УЛИЦА")
	require.Len(t, street, 1)
	doc := token.Tokenize("ул. Мира", nil)
	m := c.MatchTermin(doc, 0, street[0])
	require.NotNil(t, m)
	assert.Equal(t, 1, m.End)
	assert.Nil(t, c.MatchTermin(doc, 2, street[0]))
	assert.Len(t, c.FindByCanonic("ДОМ"), 2)
	assert.Len(t, c.Termins(), 5)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(New("", tagNoun))
	assert.ErrorIs(t, err, ErrEmptyCanonic)

	_, err = Build(New("УЛИЦА", tagNoun), New("УЛИЦА", tagNoun))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = Build(New("УЛИЦА", tagNoun), New("УЛИЦА", tagHouse))
	assert.NoError(t, err)

	assert.Panics(t, func() { MustBuild(nil) })
}

func TestBuild_SharedTermins(t *testing.T) {
	house := New("ДОМ", tagHouse)
	plot := New("ДОМ", tagPlot)
	first := MustBuild(house, plot)
	second := MustBuild(plot, house)

	doc := token.Tokenize("дом 5", nil)
	assert.Equal(t, tagPlot, second.Match(doc, 0).Termin.Tag)
	assert.Equal(t, tagHouse, first.Match(doc, 0).Termin.Tag, "порядок первой коллекции не меняется")

	all := first.MatchAll(doc, 0)
	require.Len(t, all, 2)
	assert.Equal(t, tagHouse, all[0].Termin.Tag)
	all = second.MatchAll(doc, 0)
	require.Len(t, all, 2)
	assert.Equal(t, tagPlot, all[0].Termin.Tag)
}
