// Пакет address - ядро распознавателя почтовых адресов: классификатор фрагментов
// названия улицы, сборщик улицы, классификатор элементов адреса и построитель
// последовательности элементов. Все разборщики работают над одним Context на документ
// и возвращают nil, когда ничего не распознано.
package address

// FragmentKind - тип фрагмента названия улицы.
type FragmentKind uint8

const (
	FragUndefined FragmentKind = iota
	// FragNoun - тип улицы: "улица", "пр-т", "шоссе".
	FragNoun
	// FragName - имя собственное: "Ленина", "Тверская".
	FragName
	// FragNumber - номер: "5-я", "2", "М-4", "105 км".
	FragNumber
	// FragStdAdjective - стандартное прилагательное: "Большой", "Нижняя".
	FragStdAdjective
	// FragStdName - стандартное название: "Мира", "8 Марта".
	FragStdName
	// FragStdPartOfName - часть названия: "Маршала", "Академика".
	FragStdPartOfName
	// FragAge - юбилей: "50 лет Октября".
	FragAge
	// FragFix - устойчивое сочетание: "МКАД", "Садовое кольцо", организация-территория.
	FragFix
)

var fragmentKindNames = [...]string{"undefined", "noun", "name", "number", "stdadjective", "stdname",
	"stdpartofname", "age", "fix"}

func (k FragmentKind) String() string {
	if int(k) < len(fragmentKindNames) {
		return fragmentKindNames[k]
	}
	return "undefined"
}

// isNameLike - фрагмент может служить названием улицы.
func (k FragmentKind) isNameLike() bool {
	switch k {
	case FragName, FragStdName, FragFix, FragStdAdjective, FragStdPartOfName, FragAge:
		return true
	}
	return false
}

// ItemKind - тип элемента адреса.
type ItemKind uint8

const (
	ItemUndefined ItemKind = iota
	ItemPrefix
	ItemStreet
	ItemHouse
	ItemBuilding
	ItemCorpus
	ItemFloor
	ItemPorch
	ItemFlat
	ItemCorpusOrFlat
	ItemOffice
	ItemRoom
	ItemPlot
	ItemField
	ItemGenplan
	ItemPavilion
	ItemBlock
	ItemBox
	ItemPantry
	ItemWell
	ItemCarplace
	ItemPart
	ItemSpace
	ItemCity
	ItemRegion
	ItemCountry
	ItemNumber
	ItemNoNumber
	ItemKilometer
	ItemZip
	ItemPostOfficeBox
	ItemDeliveryArea
	ItemCSP
	ItemDetail
)

var itemKindNames = [...]string{"undefined", "prefix", "street", "house", "building", "corpus", "floor",
	"porch", "flat", "corpusorflat", "office", "room", "plot", "field", "genplan", "pavilion", "block",
	"box", "pantry", "well", "carplace", "part", "space", "city", "region", "country", "number",
	"nonumber", "kilometer", "zip", "postofficebox", "deliveryarea", "csp", "detail"}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "undefined"
}

// MarshalText - имя типа в JSON.
func (k ItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// isHouseLike - дом и его ближайшие аналоги.
func (k ItemKind) isHouseLike() bool {
	switch k {
	case ItemHouse, ItemPlot, ItemBox, ItemBuilding, ItemCorpus:
		return true
	}
	return false
}

// HouseType - уточнение типа дома.
type HouseType uint8

const (
	HouseUndefined HouseType = iota
	HouseHouse
	HouseEstate      // владение
	HouseHouseEstate // домовладение
	HouseSpecial     // АЗС, КТП и подобные объекты
)

func (h HouseType) String() string {
	switch h {
	case HouseHouse:
		return "house"
	case HouseEstate:
		return "estate"
	case HouseHouseEstate:
		return "houseestate"
	case HouseSpecial:
		return "special"
	}
	return "undefined"
}

// MarshalText - имя в JSON.
func (h HouseType) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// BuildingType - уточнение типа строения.
type BuildingType uint8

const (
	BuildingUndefined BuildingType = iota
	BuildingBuilding
	BuildingConstruction // сооружение
	BuildingLiter        // литера
)

func (b BuildingType) String() string {
	switch b {
	case BuildingBuilding:
		return "building"
	case BuildingConstruction:
		return "construction"
	case BuildingLiter:
		return "liter"
	}
	return "undefined"
}

// MarshalText - имя в JSON.
func (b BuildingType) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// DetailType - уточнение положения относительно объекта.
type DetailType uint8

const (
	DetailUndefined DetailType = iota
	DetailCross
	DetailNear
	DetailNorth
	DetailEast
	DetailSouth
	DetailWest
	DetailNorthEast
	DetailNorthWest
	DetailSouthEast
	DetailSouthWest
	DetailCentral
	DetailLeft
	DetailRight
	DetailRange
)

var detailTypeNames = [...]string{"undefined", "cross", "near", "north", "east", "south", "west",
	"northeast", "northwest", "southeast", "southwest", "central", "left", "right", "range"}

func (d DetailType) String() string {
	if int(d) < len(detailTypeNames) {
		return detailTypeNames[d]
	}
	return "undefined"
}

// MarshalText - имя в JSON.
func (d DetailType) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// StreetKind - вид улицы.
type StreetKind uint8

const (
	StreetUndefined StreetKind = iota
	StreetRoad
	StreetRailway
	StreetArea
	StreetOrg
	StreetSpec
	StreetMetro
)

var streetKindNames = [...]string{"undefined", "road", "railway", "area", "org", "special", "metro"}

func (k StreetKind) String() string {
	if int(k) < len(streetKindNames) {
		return streetKindNames[k]
	}
	return "undefined"
}

// MarshalText - имя в JSON.
func (k StreetKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
