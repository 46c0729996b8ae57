package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBare_Prefix(t *testing.T) {
	t.Run("Поглощение вперед до двоеточия", func(t *testing.T) {
		c := newTestContext(t, "адрес: ул. Мира", false)
		it := c.ClassifyBare(0, nil)
		require.NotNil(t, it)
		assert.Equal(t, ItemPrefix, it.Kind)
		assert.Equal(t, 0, it.Begin)
		assert.Equal(t, 1, it.End)
	})

	t.Run("Скобки внутри префикса", func(t *testing.T) {
		c := newTestContext(t, "адрес (для писем): д. 5", false)
		it := c.ClassifyBare(0, nil)
		require.NotNil(t, it)
		assert.Equal(t, ItemPrefix, it.Kind)
		assert.Equal(t, 5, it.End)
	})

	t.Run("Поглощение назад через союз", func(t *testing.T) {
		c := newTestContext(t, "почтовый и юридический адрес: д. 5", false)
		it := c.ClassifyBare(2, nil)
		require.NotNil(t, it)
		assert.Equal(t, ItemPrefix, it.Kind)
		assert.Equal(t, 0, it.Begin)
		assert.Equal(t, 4, it.End)
	})
}

func TestClassifyBare_Values(t *testing.T) {
	testCases := []struct {
		name  string
		text  string
		kind  ItemKind
		value string
	}{
		{"Кладовка с номером помещения", "кладовка пом. 5", ItemPantry, "5"},
		{"Этаж без номера", "этаж", ItemFloor, ""},
		{"Подъезд без номера", "подъезд", ItemPorch, ""},
		{"Номер перед этажом", "5 этаж", ItemFloor, "5"},
		{"Римский номер участка", "уч. XII", ItemPlot, "12"},
		{"Цифры, набранные буквами", "д. ЗО", ItemHouse, "30"},
		{"Латинская литера корпуса", "корп. A", ItemCorpus, "А"},
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
}

func TestBuildItems_GluedNumbers(t *testing.T) {
	c := newTestContext(t, "д.5к2с1", false)
	items := c.BuildItems(0)
	assert.Equal(t, []ItemKind{ItemHouse, ItemCorpus, ItemBuilding}, kindsOf(items))
	require.Len(t, items, 3)
	assert.Equal(t, "5", items[0].Value)
	assert.Equal(t, "2", items[1].Value)
	assert.Equal(t, "1", items[2].Value)
	requireOrderedSpans(t, c, items)
}

func TestBuildItems_Brackets(t *testing.T) {
	t.Run("Элементы в скобках", func(t *testing.T) {
		c := newTestContext(t, "д. 5 (корп. 2, кв. 3)", false)
		items := c.BuildItems(0)
		require.Equal(t, []ItemKind{ItemHouse, ItemCorpus, ItemFlat}, kindsOf(items))
		assert.Equal(t, 3, items[1].Begin)
		assert.Equal(t, c.Doc.Len()-1, items[2].End)
	})

	t.Run("Вложенный разбор ограничен", func(t *testing.T) {
		c := newTestContext(t, "д. 5 (корп. 2, кв. 3, эт. 4, под. 1)", false)
		items := c.BuildItems(0)
		assert.Equal(t, []ItemKind{ItemHouse}, kindsOf(items))
		requireLevelsReset(t, c)
	})
}

func TestBuildItems_Crossing(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"Угол", "угол ул. Мира и ул. Ленина"},
		{"На углу", "на углу ул. Мира и ул. Ленина"},
		{"На пересечении", "на пересечении ул. Мира и ул. Ленина"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t, tc.text, true)
			items := c.BuildItems(0)
			require.Equal(t, []ItemKind{ItemDetail, ItemStreet, ItemStreet}, kindsOf(items))
			assert.Equal(t, DetailCross, items[0].DetailType)
			require.NotNil(t, items[1].Street)
			require.NotNil(t, items[2].Street)
			assert.Contains(t, items[1].Street.Name(), "МИР")
			assert.Contains(t, items[2].Street.Name(), "ЛЕНИН")
		})
	}
}
