package token

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/steosaddress/analyzer"
)

func terms(doc *Document) []string {
	res := make([]string, 0, doc.Len())
	for i := range doc.Tokens {
		res = append(res, doc.Tokens[i].Term)
	}
	return res
}

func TestTokenize_Basic(t *testing.T) {
	doc := Tokenize("ул. Ленина, д. 5", nil)
	require.Equal(t, []string{"УЛ", ".", "ЛЕНИНА", ",", "Д", ".", "5"}, terms(doc))

	first, last := doc.At(0), doc.At(doc.Len()-1)
	assert.True(t, first.IsNewlineBefore())
	assert.True(t, last.IsNewlineAfter())
	assert.True(t, last.IsNumber())
	assert.Equal(t, 5, last.Number.Int)
	assert.True(t, doc.At(1).IsChar('.'))
	assert.False(t, doc.At(1).IsWhitespaceBefore())
	assert.True(t, doc.At(2).IsWhitespaceBefore())
	assert.True(t, doc.At(3).IsComma())
	assert.True(t, doc.At(2).Morph.IsProperName())
	assert.Nil(t, doc.At(-1))
	assert.Nil(t, doc.At(doc.Len()))
	assert.Equal(t, "Ленина, д", doc.Span(2, 4))
}

func TestTokenize_Entities(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		index  int
		kind   EntityKind
		typ    string
		entity string
	}{
		{"Город с сокращением", "г. Москва, ул. Тверская", 0, Geo, "город", "МОСКВА"},
		{"Деревня", "д. Ивановка", 0, Geo, "деревня", "ИВАНОВКА"},
		{"Известный город в косвенном падеже", "в Москве", 1, Geo, "город", "МОСКВА"},
		{"Город через дефис", "Санкт-Петербург, Невский пр.", 0, Geo, "город", "САНКТ-ПЕТЕРБУРГ"},
		{"Область после прилагательного", "Московская обл., г. Химки", 0, Geo, "область", "МОСКОВСКАЯ"},
		{"Район через дефис", "Ленинский р-н", 0, Geo, "район", "ЛЕНИНСКИЙ"},
		{"Государство", "РФ, г. Омск", 0, Geo, "государство", "РОССИЯ"},
		{"СНТ в кавычках", "СНТ «Ромашка», уч. 5", 0, Org, "снт", "РОМАШКА"},
		{"ГСК с номером", "ГСК-5 бокс 12", 0, Org, "гск", "5"},
		{"Дата в названии улицы", "ул. 8 Марта", 2, Date, "", "8 МАРТА"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := Tokenize(tc.text, nil)
			tok := doc.At(tc.index)
			require.NotNil(t, tok)
			require.True(t, tok.IsReferent(tc.kind), "термины: %v", terms(doc))
			assert.Equal(t, tc.entity, tok.Entity.Name())
			assert.Equal(t, tc.typ, tok.Entity.Type())
		})
	}
}

func TestTokenize_EntityFlags(t *testing.T) {
	doc := Tokenize("ГСК-5 бокс 12", nil)
	assert.True(t, doc.At(0).Entity.IsGsk)
	assert.Equal(t, "5", doc.At(0).Entity.Number)

	doc = Tokenize("г. Москва", nil)
	e := doc.At(0).Entity
	assert.True(t, e.IsCity)
	assert.Equal(t, "г. Москва", doc.At(0).Source)
	assert.Equal(t, "город МОСКВА", e.String())

	doc = Tokenize("ул. 8 Марта", nil)
	assert.Equal(t, 8, doc.At(2).Entity.Day)
	assert.Equal(t, 3, doc.At(2).Entity.Month)
}

func TestTokenize_NoFalseEntities(t *testing.T) {
	for _, text := range []string{
		"ул. А.С. Пушкина, д. 10",
		"д. 5, с. 2",
		"ул. Московская, д. 3",
		"ст. 12 кв. 4",
	} {
		t.Run(text, func(t *testing.T) {
			doc := Tokenize(text, nil)
			for i := range doc.Tokens {
				assert.NotEqual(t, Referent, doc.Tokens[i].Kind, "термины: %v", terms(doc))
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	doc := Tokenize("5-й переулок, линия IV", nil)
	n := doc.At(0)
	require.True(t, n.IsNumber())
	assert.True(t, n.Number.Adjective)
	assert.Equal(t, "5", n.Number.Value)
	assert.Equal(t, "5-й", n.Source)
	assert.True(t, n.Morph.IsAdjective())
	assert.True(t, n.Morph.Has(analyzer.Masculine))

	roman := doc.At(doc.Len() - 1)
	assert.True(t, roman.IsRoman())
	v, ok := roman.IntValue()
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = ParseRoman("ABC")
	assert.False(t, ok)
}

func TestTokenize_Normalization(t *testing.T) {
	// "й" из двух кодовых точек и буква Ё.
	doc := Tokenize("Зелёный переулок й", nil)
	assert.Equal(t, "ЗЕЛЕНЫЙ", doc.At(0).Term)
	assert.Equal(t, "Й", doc.At(2).Term)
	assert.Equal(t, 3, doc.Len())
}

func TestTokenize_Newlines(t *testing.T) {
	doc := Tokenize("ул. Мира\r\n\n  д. 5", nil)
	d := doc.At(3)
	require.NotNil(t, d)
	assert.Equal(t, "Д", d.Term)
	assert.Equal(t, 2, d.NewlinesBefore)
	assert.True(t, doc.At(2).IsNewlineAfter())
	assert.True(t, doc.HasNewlineInside(0, 4))
	assert.False(t, doc.HasNewlineInside(0, 2))
}

func TestDocument_BracketEnd(t *testing.T) {
	doc := Tokenize("дом (корпус 2) кв. 5", nil)
	assert.Equal(t, 4, doc.BracketEnd(1, 5))
	assert.Equal(t, -1, doc.BracketEnd(1, 2))
	assert.Equal(t, -1, doc.BracketEnd(0, 5))
	assert.Equal(t, "КОРПУС 2", doc.Terms(2, 3))
}

func TestTokenize_RandomTextIsConsistent(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 50; i++ {
		text := faker.Sentence(12) + " " + faker.Street()
		doc := Tokenize(text, nil)
		prevEnd := 0
		for j := range doc.Tokens {
			tok := &doc.Tokens[j]
			assert.Equal(t, j, tok.Index)
			assert.GreaterOrEqual(t, tok.BeginChar, prevEnd)
			assert.Greater(t, tok.EndChar, tok.BeginChar)
			prevEnd = tok.EndChar
		}
	}
}

var benchmarkResult interface{}

func BenchmarkTokenize(b *testing.B) {
	text := "г. Москва, ул. Тверская, д. 7, корп. 2, кв. 15"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchmarkResult = Tokenize(text, nil)
	}
}
