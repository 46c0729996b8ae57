package address

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/steosaddress/token"
)

func street(typ, name string) *Street {
	s := &Street{}
	s.AddType(typ)
	s.AddName(name)
	return s
}

func TestDefine(t *testing.T) {
	kursk := &token.Entity{Kind: token.Geo, Types: []string{"город"}, Names: []string{"КУРСК"}, IsCity: true}
	region := &token.Entity{Kind: token.Geo, Types: []string{"область"}, Names: []string{"КУРСКАЯ"}, IsRegion: true}

	t.Run("Улица, дом и квартира", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemHouse, Value: "5", HouseType: HouseHouse},
			{Kind: ItemFlat, Value: "3"},
		})
		require.NotNil(t, a)
		require.Len(t, a.Streets, 1)
		assert.Equal(t, "МИРА", a.Streets[0].Name())
		assert.Equal(t, "5", a.House)
		assert.Equal(t, HouseHouse, a.HouseType)
		assert.Equal(t, "3", a.Flat)
		assert.Equal(t, "ул. Мира, д. 5, кв. 3", a.String())
	})

	t.Run("Число после улицы - дом", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemNumber, Value: "12"},
		})
		require.NotNil(t, a)
		assert.Equal(t, "12", a.House)
	})

	t.Run("Большое число после улицы не дом", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemNumber, Value: "1500"},
		})
		require.NotNil(t, a)
		assert.Empty(t, a.House)
	})

	t.Run("Два числа после дома - корпус и квартира", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemNumber, Value: "5"},
			{Kind: ItemNumber, Value: "2"},
			{Kind: ItemNumber, Value: "14"},
		})
		require.NotNil(t, a)
		assert.Equal(t, "5", a.House)
		assert.Equal(t, "2", a.Corpus)
		assert.Equal(t, "14", a.Flat)
	})

	t.Run("Корпус или квартира", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemHouse, Value: "5"},
			{Kind: ItemCorpusOrFlat, Value: "2"},
			{Kind: ItemFlat, Value: "7"},
		})
		require.NotNil(t, a)
		assert.Equal(t, "2", a.Corpus)
		assert.Equal(t, "7", a.Flat)

		a = Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemHouse, Value: "5"},
			{Kind: ItemCorpusOrFlat, Value: "2"},
		})
		require.NotNil(t, a)
		assert.Empty(t, a.Corpus)
		assert.Equal(t, "2", a.CorpusOrFlat)
	})

	t.Run("Город и регион", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemZip, Value: "305000"},
			{Kind: ItemRegion, Geo: region},
			{Kind: ItemCity, Geo: kursk},
			{Kind: ItemStreet, Street: street("проспект", "ДРУЖБЫ")},
			{Kind: ItemHouse, Value: "7"},
		})
		require.NotNil(t, a)
		require.Len(t, a.Geos, 2)
		assert.Equal(t, "305000", a.Zip)
		assert.Equal(t, "305000, г. Курск, Курская обл., пр-т Дружбы, д. 7", a.String())
	})

	t.Run("Повтор слота начинает другой адрес", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
			{Kind: ItemHouse, Value: "5"},
			{Kind: ItemHouse, Value: "7"},
			{Kind: ItemFlat, Value: "1"},
		})
		require.NotNil(t, a)
		assert.Equal(t, "5", a.House)
		assert.Empty(t, a.Flat)
	})

	t.Run("Дом без номера", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemCity, Geo: kursk},
			{Kind: ItemNoNumber, Value: "0"},
		})
		require.NotNil(t, a)
		assert.Equal(t, "0", a.House)
		assert.Equal(t, "г. Курск, д. б/н", a.String())
	})

	t.Run("Станция метро и пересечение", func(t *testing.T) {
		metro := &Street{}
		metro.AddType("метро")
		metro.AddName("АРБАТСКАЯ")
		a := Define([]*Item{
			{Kind: ItemStreet, Street: metro},
			{Kind: ItemDetail, DetailType: DetailCross, Begin: 1, End: 2, Value: "угол"},
			{Kind: ItemStreet, Street: street("улица", "МИРА"), Street2: street("улица", "ЛЕНИНА")},
		})
		require.NotNil(t, a)
		assert.Equal(t, "АРБАТСКАЯ", a.Metro)
		require.Len(t, a.Streets, 2)
		assert.Equal(t, DetailCross, a.Detail)
		assert.Contains(t, a.String(), "ул. Мира / ул. Ленина")
	})

	t.Run("Территория перед улицей", func(t *testing.T) {
		snt := &Street{Kind: StreetOrg}
		snt.AddType("снт")
		snt.AddName("ЗАРЯ")
		a := Define([]*Item{
			{Kind: ItemStreet, Street: street("улица", "ЦЕНТРАЛЬНАЯ"), Territory: &Item{Kind: ItemStreet, Street: snt}},
			{Kind: ItemPlot, Value: "15"},
		})
		require.NotNil(t, a)
		require.Len(t, a.Streets, 2)
		assert.Same(t, snt, a.Streets[0])
		assert.Equal(t, "15", a.Plot)
	})

	t.Run("Уточнение положения", func(t *testing.T) {
		a := Define([]*Item{
			{Kind: ItemCity, Geo: kursk, DetailType: DetailNorth, DetailMeters: 500},
			{Kind: ItemStreet, Street: street("улица", "МИРА")},
		})
		require.NotNil(t, a)
		assert.Equal(t, DetailNorth, a.Detail)
		assert.Equal(t, 500, a.DetailMeters)
	})
}

func TestDefine_NoAnchor(t *testing.T) {
	testCases := []struct {
		name  string
		items []*Item
	}{
		{"Пустой список", nil},
		{"Одно число", []*Item{{Kind: ItemNumber, Value: "5"}}},
		{"Индекс и уточнение", []*Item{{Kind: ItemZip, Value: "305000"}, {Kind: ItemDetail, DetailType: DetailNear}}},
		{"Сомнительная улица", []*Item{{Kind: ItemStreet, Street: street("улица", "МИРА"), Doubt: true}}},
		{"Один дом", []*Item{{Kind: ItemHouse, Value: "5"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Define(tc.items))
		})
	}
}

func TestDefine_DoubtfulStreetWithHouse(t *testing.T) {
	a := Define([]*Item{
		{Kind: ItemStreet, Street: street("улица", "МИРА"), Doubt: true},
		{Kind: ItemHouse, Value: "5"},
	})
	require.NotNil(t, a)
	assert.Equal(t, "5", a.House)
}

func TestDefine_HouseAndFlatWithoutStreet(t *testing.T) {
	a := Define([]*Item{
		{Kind: ItemHouse, Value: "5"},
		{Kind: ItemFlat, Value: "3"},
	})
	require.NotNil(t, a)
	assert.Equal(t, "д. 5, кв. 3", a.String())
}

func TestAddress_JSON(t *testing.T) {
	a := &Address{Streets: []*Street{street("улица", "МИРА")}, House: "5", HouseType: HouseEstate}
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "5", raw["house"])
	assert.Equal(t, "estate", raw["house_type"])
	assert.NotContains(t, raw, "flat")
	assert.Equal(t, "вл. 5", (&Address{House: "5", HouseType: HouseEstate}).String())
}

func TestAddress_StringNil(t *testing.T) {
	var a *Address
	assert.Empty(t, a.String())
}
