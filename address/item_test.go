package address

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBare(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		kind  ItemKind
		value string
	}{
		{"Дом", "д. 5", ItemHouse, "5"},
		{"Квартира", "кв. 12", ItemFlat, "12"},
		{"Корпус", "корп. 2", ItemCorpus, "2"},
		{"Почтовый индекс", "305000", ItemZip, "305000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t, tc.text, false)
			it := c.ClassifyBare(0, nil)
			require.NotNil(t, it)
			assert.Equal(t, tc.kind, it.Kind)
			assert.Equal(t, tc.value, it.Value)
			assert.Equal(t, 0, it.Begin)
			assert.Equal(t, c.Doc.Len()-1, it.End)
		})
	}

	t.Run("За пределами документа", func(t *testing.T) {
		c := newTestContext(t, "д. 5", false)
		assert.Nil(t, c.ClassifyBare(-1, nil))
		assert.Nil(t, c.ClassifyBare(c.Doc.Len(), nil))
		assert.Nil(t, c.ClassifyItem(c.Doc.Len(), nil))
		assert.Nil(t, c.BuildItems(c.Doc.Len()))
	})
}

func TestBuildItems(t *testing.T) {
	t.Run("Полный адрес", func(t *testing.T) {
		c := newTestContext(t, "г. Москва, ул. Тверская, д. 7, кв. 12", true)
		items := c.BuildItems(0)
		require.NotEmpty(t, items)
		kinds := kindsOf(items)
		assert.Contains(t, kinds, ItemCity)
		assert.Contains(t, kinds, ItemStreet)
		assert.Contains(t, kinds, ItemFlat)

		a := Define(items)
		require.NotNil(t, a)
		assert.Equal(t, "12", a.Flat)
		require.NotEmpty(t, a.Streets)
		assert.Contains(t, a.Streets[0].Name(), "ТВЕРСК")
	})

	t.Run("Одиночное число не начинает адрес", func(t *testing.T) {
		c := newTestContext(t, "5 7", false)
		assert.Nil(t, c.BuildItems(0))
	})

	t.Run("Повторный вызов дает тот же результат", func(t *testing.T) {
		c := newTestContext(t, "ул. Ленина, д. 5, корп. 2", false)
		first := c.BuildItems(0)
		second := c.BuildItems(0)
		assert.Equal(t, kindsOf(first), kindsOf(second))
	})
}

// --- СВОЙСТВА ---

func TestBuildItems_DepthSafety(t *testing.T) {
	text := strings.Repeat("улица дом ", 5000)
	c := newTestContext(t, text, false)
	require.Equal(t, 10000, c.Doc.Len())

	for _, start := range []int{0, 1, 5000, 9998} {
		items := c.BuildItems(start)
		assert.LessOrEqual(t, len(items), c.Options().MaxItems)
	}
	assert.Zero(t, c.fragLevel)
	assert.Zero(t, c.runLevel)
	assert.Zero(t, c.itemLevel)
	assert.Zero(t, c.pureLevel)
	assert.Zero(t, c.listLevel)
}

func randomAddressText(f *gofakeit.Faker) string {
	words := []string{"ул.", "улица", "проспект", "д.", "дом", "кв.", "корп.", "стр.", "г.", "Москва",
		"Ленина", "Мира", ",", "км", "МКАД", "пер.", "(", ")", "/", "-", "мкр.", "Северный", "уч.",
		"СНТ", "тер.", "линия", "Большая", "шоссе", "к", "с", "ж", "эт.", "пом.", "кладовка", "угол", "на", "и"}
	var b strings.Builder
	n := f.Number(1, 40)
	for j := 0; j < n; j++ {
		switch f.Number(0, 3) {
		case 0:
			b.WriteString(f.Numerify("##"))
		case 1:
			b.WriteString(f.Word())
		default:
			b.WriteString(words[f.Number(0, len(words)-1)])
		}
		b.WriteByte(' ')
	}
	// Текст нередко кончается номером: "Мира 60".
	if f.Bool() {
		b.WriteString(f.Numerify("##"))
	}
	return b.String()
}

func TestBuildItems_OrderedSpans(t *testing.T) {
	texts := []string{
		"Мира 60",
		"53 Мира 60",
		"стр. Северный 90",
		"шоссе линия км шоссе (",
		"СНТ тер. Большая линия",
		"ул. Мира ж/",
		"Ленина де",
		"д. 5 (",
		"улица Ленина 12",
	}
	f := gofakeit.New(20241016)
	for n := 0; n < 300; n++ {
		texts = append(texts, randomAddressText(f))
	}
	for _, text := range texts {
		for _, addressOnly := range []bool{false, true} {
			c := newTestContext(t, text, addressOnly)
			for i := 0; i < c.Doc.Len(); i++ {
				var items []*Item
				require.NotPanics(t, func() { items = c.BuildItems(i) }, "%q с позиции %d", text, i)
				require.LessOrEqual(t, len(items), c.Options().MaxItems, text)
				requireOrderedSpans(t, c, items, "%q с позиции %d: %v", text, i, signature(items))
			}
			requireLevelsReset(t, c, text)
		}
	}
}

func TestBuildItems_TerritoryDoesNotOverlap(t *testing.T) {
	c := newTestContext(t, "СНТ тер. Большая линия", true)
	items := c.BuildItems(0)
	require.NotEmpty(t, items)
	requireOrderedSpans(t, c, items, signature(items))
}

func TestClipOverlaps(t *testing.T) {
	alt := &Item{Kind: ItemFlat, Begin: 4, End: 5, Value: "2"}
	res := clipOverlaps([]*Item{
		{Kind: ItemStreet, Begin: 0, End: 2},
		{Kind: ItemStreet, Begin: 1, End: 4},
		{Kind: ItemHouse, Begin: 3, End: 3},
		{Kind: ItemCorpus, Begin: 3, End: 5, Value: "1", AltItem: alt},
		alt,
	})
	assert.Equal(t, []string{
		"street[0-2]",
		"street[3-4]",
		"corpus[5-5]1",
		"flat[5-5]2",
	}, signature(res))
}

func TestBuildItems_CacheDoesNotChangeResult(t *testing.T) {
	f := gofakeit.New(7)
	for n := 0; n < 60; n++ {
		text := randomAddressText(f)
		addressOnly := n%2 == 1
		cached := newTestContext(t, text, addressOnly)
		doc := cached.Doc
		plain := NewContext(doc, sharedOntology(t), nil, Options{AddressOnly: addressOnly})
		for i := 0; i < doc.Len(); i++ {
			a, b := cached.BuildItems(i), plain.BuildItems(i)
			require.Equal(t, signature(a), signature(b), text)
		}
		// Второй проход по заполненному кэшу.
		for i := 0; i < doc.Len(); i++ {
			require.Equal(t, signature(plain.BuildItems(i)), signature(cached.BuildItems(i)), text)
		}
	}
}

func TestBuildItems_RecoversAfterPanic(t *testing.T) {
	text := "ул. Мира, д. 5, кв. 3"
	c := newTestContext(t, text, false)
	broken := *sharedOntology(t)
	broken.Items, broken.Streets = nil, nil
	c.Onto = &broken

	assert.Panics(t, func() { c.BuildItems(0) })
	requireLevelsReset(t, c)

	c.Onto = sharedOntology(t)
	want := newTestContext(t, text, false).BuildItems(0)
	require.NotEmpty(t, want)
	assert.Equal(t, signature(want), signature(c.BuildItems(0)))
}

func BenchmarkBuildItems(b *testing.B) {
	c := newTestContext(b, "г. Москва, ул. Тверская, д. 7, корп. 2, кв. 12", true)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		c.Invalidate()
		itemsSink = c.BuildItems(0)
	}
}

var itemsSink []*Item

func TestCleanupPasses(t *testing.T) {
	t.Run("Километр становится номером дороги", func(t *testing.T) {
		road := &Street{}
		road.AddType("автодорога")
		road.AddName("М-4")
		res := foldKilometers([]*Item{
			{Kind: ItemStreet, Begin: 0, End: 2, Street: road},
			{Kind: ItemKilometer, Begin: 3, End: 4, Value: "105"},
		})
		require.Len(t, res, 1)
		assert.Equal(t, "105км", res[0].Street.Number)
		assert.Equal(t, 4, res[0].End)
		assert.Empty(t, road.Number, "исходная улица не меняется")
	})

	t.Run("Километр перед дорогой", func(t *testing.T) {
		road := &Street{}
		road.AddType("шоссе")
		res := foldKilometers([]*Item{
			{Kind: ItemKilometer, Begin: 0, End: 1, Value: "12"},
			{Kind: ItemStreet, Begin: 2, End: 3, Street: road},
		})
		require.Len(t, res, 1)
		assert.Equal(t, 0, res[0].Begin)
		assert.Equal(t, "12км", res[0].Street.Number)
	})

	t.Run("Число перед корпусом - дом", func(t *testing.T) {
		res := []*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemNumber, Value: "5"},
			{Kind: ItemCorpus, Value: "2"},
		}
		numberBeforeBuilding(res)
		assert.Equal(t, []ItemKind{ItemStreet, ItemHouse, ItemCorpus}, kindsOf(res))
	})

	t.Run("Буква перед городом", func(t *testing.T) {
		res := dropLetterBeforeCity([]*Item{
			{Kind: ItemBuilding, Begin: 0, End: 0, Value: "С"},
			{Kind: ItemCity},
		})
		assert.Equal(t, []ItemKind{ItemCity}, kindsOf(res))
	})

	t.Run("Часть без дома", func(t *testing.T) {
		assert.Nil(t, trimParts([]*Item{{Kind: ItemPart, Value: "1"}, {Kind: ItemFlat, Value: "2"}}))
		res := trimParts([]*Item{{Kind: ItemCity}, {Kind: ItemPart, Value: "1"}, {Kind: ItemFlat, Value: "2"}})
		assert.Equal(t, []ItemKind{ItemCity}, kindsOf(res))
		res = trimParts([]*Item{{Kind: ItemHouse, Value: "5"}, {Kind: ItemPart, Value: "1"}})
		assert.Len(t, res, 2)
	})

	t.Run("Без номера после города", func(t *testing.T) {
		res := trimParts([]*Item{{Kind: ItemCity}, {Kind: ItemNoNumber, Value: "0"}})
		assert.Equal(t, []ItemKind{ItemCity, ItemHouse}, kindsOf(res))
	})

	t.Run("Число между регионом и городом", func(t *testing.T) {
		res := dropRegionNumber([]*Item{
			{Kind: ItemRegion}, {Kind: ItemNumber, Value: "7"}, {Kind: ItemCity}, {Kind: ItemHouse, Value: "5"},
		})
		assert.Equal(t, []ItemKind{ItemRegion, ItemCity, ItemHouse}, kindsOf(res))
	})

	t.Run("Повтор типа с новой строки", func(t *testing.T) {
		assert.True(t, repeatsOnNewline([]*Item{{Kind: ItemStreet}, {Kind: ItemHouse}, {Kind: ItemStreet}}))
		assert.False(t, repeatsOnNewline([]*Item{{Kind: ItemStreet}, {Kind: ItemHouse}, {Kind: ItemFlat}}))
		assert.True(t, repeatsOnNewline([]*Item{{Kind: ItemCity}, {Kind: ItemZip}}))
	})
}
