package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streetAt(t *testing.T, text string, addressOnly bool) *Item {
	t.Helper()
	c := newTestContext(t, text, addressOnly)
	return c.ClassifyItem(0, nil)
}

func TestAssembleStreet(t *testing.T) {
	t.Run("Тип и название", func(t *testing.T) {
		it := streetAt(t, "улица Ленина", false)
		require.NotNil(t, it)
		require.Equal(t, ItemStreet, it.Kind)
		require.NotNil(t, it.Street)
		assert.True(t, it.Street.HasType("улица"))
		assert.Contains(t, it.Street.Name(), "ЛЕНИН")
		assert.Equal(t, 0, it.Begin)
		assert.Equal(t, 1, it.End)
	})

	t.Run("Сокращенный тип перед номером дома", func(t *testing.T) {
		it := streetAt(t, "ул Мира 5", false)
		require.NotNil(t, it)
		require.Equal(t, ItemStreet, it.Kind)
		assert.False(t, it.Doubt)
	})

	t.Run("Сокращенный тип без продолжения", func(t *testing.T) {
		it := streetAt(t, "ул Мира", false)
		require.NotNil(t, it)
		require.Equal(t, ItemStreet, it.Kind)
		assert.True(t, it.Doubt)
	})

	t.Run("Номер перед кварталом не улица", func(t *testing.T) {
		it := streetAt(t, "2 квартал", false)
		if it != nil {
			assert.NotEqual(t, ItemStreet, it.Kind)
		}
	})
}

func TestAssembleStreet_Mkad(t *testing.T) {
	for _, text := range []string{"МКАД", "мкад"} {
		t.Run(text, func(t *testing.T) {
			it := streetAt(t, text, true)
			require.NotNil(t, it)
			require.NotNil(t, it.Street)
			assert.Equal(t, StreetRoad, it.Street.Kind)
			assert.Equal(t, "МОСКОВСКАЯ КОЛЬЦЕВАЯ", it.Street.Name())
		})
	}
}

func TestAssembleStreet_EmptyInput(t *testing.T) {
	c := newTestContext(t, "улица", false)
	assert.Nil(t, c.AssembleStreet(nil, false, false, false, nil))
	assert.Nil(t, c.SecondStreet(5, 7))
}

func TestClassifyFragments(t *testing.T) {
	c := newTestContext(t, "улица Ленина", false)
	f := c.ClassifyFragment(0, nil)
	require.NotNil(t, f)
	assert.Equal(t, FragNoun, f.Kind)
	assert.Equal(t, "УЛИЦА", f.canonic())

	frags := c.ClassifyFragments(0, c.Options().MaxStreetItems)
	require.GreaterOrEqual(t, len(frags), 2)
	for j := 1; j < len(frags); j++ {
		assert.Greater(t, frags[j].Begin, frags[j-1].End)
	}
}
