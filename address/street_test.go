package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreet_AddType(t *testing.T) {
	testCases := []struct {
		name string
		typ  string
		kind StreetKind
	}{
		{"Улица", "Улица", StreetUndefined},
		{"Шоссе", "шоссе", StreetRoad},
		{"Автодорога", "автодорога", StreetRoad},
		{"Железная дорога", "железная дорога", StreetRailway},
		{"Метро", "метро", StreetMetro},
		{"Микрорайон", "микрорайон", StreetArea},
		{"Территория", "территория", StreetArea},
		{"Будка", "будка", StreetSpec},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Street{}
			s.AddType(tc.typ)
			assert.Equal(t, tc.kind, s.Kind)
			assert.True(t, s.HasType(tc.typ) || s.HasType("улица"))
		})
	}

	t.Run("Вид задается первым типом", func(t *testing.T) {
		s := &Street{}
		s.AddType("шоссе")
		s.AddType("микрорайон")
		assert.Equal(t, StreetRoad, s.Kind)
		assert.Equal(t, []string{"шоссе", "микрорайон"}, s.Types)
	})

	t.Run("Повторы и пустые значения", func(t *testing.T) {
		s := &Street{}
		s.AddType("улица")
		s.AddType(" УЛИЦА ")
		s.AddType("")
		s.AddName("мира")
		s.AddName("МИРА")
		s.AddName("  ")
		assert.Equal(t, []string{"улица"}, s.Types)
		assert.Equal(t, []string{"МИРА"}, s.Names)
	})
}

func TestStreet_String(t *testing.T) {
	mkad := &Street{Number: "5км"}
	mkad.AddType("автодорога")
	mkad.AddName("МОСКОВСКАЯ КОЛЬЦЕВАЯ")

	snt := &Street{Kind: StreetOrg, Number: "2"}
	snt.AddType("снт")
	snt.AddName("ЗАРЯ")

	testCases := []struct {
		name   string
		street *Street
		want   string
	}{
		{"Тип и название", street("проспект", "МИРА"), "проспект Мира"},
		{"Без типа", &Street{Names: []string{"ЛЕНИНА"}}, "улица Ленина"},
		{"Дорога с километром", mkad, "автодорога Московская Кольцевая 5км"},
		{"Территория с номером", snt, "снт Заря-2"},
		{"Пустая", nil, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.street.String())
		})
	}
}

func TestStreet_Key(t *testing.T) {
	a := street("проспект", "МИРА")
	b := &Street{Types: []string{"проспект"}, Names: []string{"МИРА"}}
	require.NotEmpty(t, a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "prospekt mira", a.Key())
	assert.NotEqual(t, a.Key(), street("улица", "МИРА").Key())
}

func TestStreet_CanBeEqual(t *testing.T) {
	t.Run("Общее название", func(t *testing.T) {
		a := street("улица", "ЛЕНИНА")
		b := street("улица", "ЛЕНИНА")
		b.AddName("В.И.ЛЕНИНА")
		assert.True(t, a.CanBeEqual(b))
	})
	t.Run("Разные номера", func(t *testing.T) {
		a := street("линия", "")
		a.Number = "2"
		b := street("линия", "")
		b.Number = "3"
		assert.False(t, a.CanBeEqual(b))
	})
	t.Run("Разные типы", func(t *testing.T) {
		assert.False(t, street("улица", "МИРА").CanBeEqual(street("проспект", "МИРА")))
	})
	t.Run("Пустые значения", func(t *testing.T) {
		var s *Street
		assert.True(t, s.CanBeEqual(nil))
		assert.False(t, s.CanBeEqual(street("улица", "МИРА")))
	})
}

func TestStreet_SetHigherNoCycle(t *testing.T) {
	area := street("микрорайон", "СЕВЕРНЫЙ")
	st := street("улица", "МИРА")
	st.setHigher(area)
	require.Same(t, area, st.Higher)

	area.setHigher(st)
	assert.Nil(t, area.Higher)
}

func TestStreet_CloneIsDeep(t *testing.T) {
	s := street("улица", "МИРА")
	s.Higher = street("микрорайон", "СЕВЕРНЫЙ")
	c := s.clone()
	c.Names[0] = "ЛЕНИНА"
	c.Higher.Names[0] = "ЮЖНЫЙ"
	assert.Equal(t, "МИРА", s.Name())
	assert.Equal(t, "СЕВЕРНЫЙ", s.Higher.Name())
}
