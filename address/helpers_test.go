package address

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steosofficial/steosaddress/token"
)

var (
	testOnto     *Ontology
	testOntoOnce sync.Once
)

func sharedOntology(t testing.TB) *Ontology {
	t.Helper()
	testOntoOnce.Do(func() {
		o, err := NewOntology()
		if err == nil {
			testOnto = o
		}
	})
	require.NotNil(t, testOnto, "словарь должен строиться без ошибок")
	return testOnto
}

// newTestContext - контекст разбора текста с морфологией по умолчанию.
func newTestContext(t testing.TB, text string, addressOnly bool) *Context {
	t.Helper()
	doc := token.Tokenize(text, nil)
	require.NotNil(t, doc)
	return NewContext(doc, sharedOntology(t), nil, Options{SpeedRegime: true, AddressOnly: addressOnly})
}

func kindsOf(items []*Item) []ItemKind {
	res := make([]ItemKind, 0, len(items))
	for _, it := range items {
		res = append(res, it.Kind)
	}
	return res
}

// signature - вид, диапазон и значение каждого элемента.
func signature(items []*Item) []string {
	res := make([]string, 0, len(items))
	for _, it := range items {
		res = append(res, fmt.Sprintf("%v[%d-%d]%s", it.Kind, it.Begin, it.End, it.Value))
	}
	return res
}

// requireOrderedSpans проверяет, что элементы идут по тексту без наложений:
// следующий начинается после предыдущего или вложен в него с тем же концом.
func requireOrderedSpans(t testing.TB, c *Context, items []*Item, msgAndArgs ...interface{}) {
	t.Helper()
	for j, it := range items {
		require.LessOrEqual(t, it.Begin, it.End, msgAndArgs...)
		require.GreaterOrEqual(t, it.Begin, 0, msgAndArgs...)
		require.Less(t, it.End, c.Doc.Len(), msgAndArgs...)
		if j == 0 {
			continue
		}
		prev := items[j-1]
		require.GreaterOrEqual(t, it.End, prev.End, msgAndArgs...)
		if it.Begin <= prev.End {
			require.Equal(t, prev.End, it.End, msgAndArgs...)
			require.GreaterOrEqual(t, it.Begin, prev.Begin, msgAndArgs...)
		}
	}
}

func requireLevelsReset(t testing.TB, c *Context, msgAndArgs ...interface{}) {
	t.Helper()
	require.Zero(t, c.fragLevel, msgAndArgs...)
	require.Zero(t, c.runLevel, msgAndArgs...)
	require.Zero(t, c.itemLevel, msgAndArgs...)
	require.Zero(t, c.pureLevel, msgAndArgs...)
	require.Zero(t, c.listLevel, msgAndArgs...)
}
