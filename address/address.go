package address

import (
	"strconv"
	"strings"

	"github.com/steosofficial/steosaddress/token"
)

// --- АДРЕС ---

// Address - адрес, собранный из последовательности элементов.
// Пустые поля не заполнены; значение "0" означает "без номера".
type Address struct {
	Streets []*Street       `json:"streets,omitempty"`
	Geos    []*token.Entity `json:"geos,omitempty"`

	House        string       `json:"house,omitempty"`
	HouseType    HouseType    `json:"house_type,omitempty"`
	Building     string       `json:"building,omitempty"`
	BuildingType BuildingType `json:"building_type,omitempty"`
	Corpus       string       `json:"corpus,omitempty"`
	// CorpusOrFlat - "д. 5, к. 3": корпус или квартира, различить нельзя.
	CorpusOrFlat string `json:"corpus_or_flat,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Porch        string `json:"porch,omitempty"`
	Flat         string `json:"flat,omitempty"`
	Pavilion     string `json:"pavilion,omitempty"`
	Office       string `json:"office,omitempty"`
	Room         string `json:"room,omitempty"`
	Plot         string `json:"plot,omitempty"`
	Field        string `json:"field,omitempty"`
	Genplan      string `json:"genplan,omitempty"`
	Block        string `json:"block,omitempty"`
	Box          string `json:"box,omitempty"`
	Well         string `json:"well,omitempty"`
	Carplace     string `json:"carplace,omitempty"`
	Part         string `json:"part,omitempty"`
	Pantry       string `json:"pantry,omitempty"`
	Space        string `json:"space,omitempty"`

	Metro         string `json:"metro,omitempty"`
	Kilometer     string `json:"kilometer,omitempty"`
	Zip           string `json:"zip,omitempty"`
	PostOfficeBox string `json:"post_office_box,omitempty"`
	CSP           string `json:"csp,omitempty"`
	DeliveryArea  string `json:"delivery_area,omitempty"`

	Detail       DetailType `json:"detail,omitempty"`
	DetailParam  string     `json:"detail_param,omitempty"`
	DetailMeters int        `json:"detail_meters,omitempty"`
}

// maxHouseNumber - число больше этого после улицы не считается номером дома.
const maxHouseNumber = 500

// Define сворачивает последовательность элементов в адрес. Возвращает nil, если в
// последовательности нет опорного элемента: улицы, населенного пункта или абонентского
// ящика. Одиночные числа, индексы, уточнения и сомнительная улица опорой не являются.
func Define(items []*Item) *Address {
	if !anchored(items) {
		return nil
	}
	d := &definer{items: items, addr: &Address{}}
	for d.i = 0; d.i < len(items); d.i++ {
		if !d.take(items[d.i]) {
			break
		}
	}
	a := d.addr
	if a.empty() {
		return nil
	}
	return a
}

// anchored - есть ли в списке элемент, на который опирается адрес.
func anchored(items []*Item) bool {
	if len(items) == 0 {
		return false
	}
	houses := 0
	for j, it := range items {
		switch it.Kind {
		case ItemCity, ItemRegion, ItemCountry, ItemPostOfficeBox, ItemCSP, ItemDeliveryArea:
			return true
		case ItemStreet:
			if it.Street == nil {
				// "г. Курск, -, д. 5": улица не указана, но место под нее есть.
				if j > 0 {
					return true
				}
				continue
			}
			if !it.Doubt || j+1 < len(items) && items[j+1].isHouseLike() {
				return true
			}
		case ItemHouse, ItemPlot, ItemBuilding, ItemCorpus, ItemFlat, ItemGenplan, ItemBox:
			if !it.Doubt {
				houses++
			}
		}
	}
	// "д. 5, кв. 3" без улицы - адрес внутри уже известного места.
	return houses > 1
}

// definer - состояние свертки: текущая позиция и собранный адрес.
type definer struct {
	items []*Item
	i     int
	addr  *Address
}

func (d *definer) prev() *Item {
	if d.i == 0 {
		return nil
	}
	return d.items[d.i-1]
}

func (d *definer) next() *Item {
	if d.i+1 >= len(d.items) {
		return nil
	}
	return d.items[d.i+1]
}

// set записывает значение в слот. Повторное заполнение слота означает начало
// следующего адреса: свертка останавливается.
func set(slot *string, v string) bool {
	if *slot != "" {
		return false
	}
	if v == "" {
		v = "0"
	}
	*slot = v
	return true
}

func (d *definer) take(it *Item) bool {
	a := d.addr
	if it.DetailType != DetailUndefined && a.Detail == DetailUndefined && !it.is(ItemDetail) {
		d.detail(it)
	}
	switch it.Kind {
	case ItemPrefix:
		return true
	case ItemStreet:
		return d.street(it)
	case ItemCity, ItemRegion, ItemCountry:
		if it.Geo == nil {
			return true
		}
		for _, g := range a.Geos {
			if g.Equal(it.Geo) {
				return true
			}
		}
		// Второй город после улицы - другой адрес.
		if it.Geo.IsCity && len(a.Streets) > 0 && hasCity(a.Geos) {
			return false
		}
		a.Geos = append(a.Geos, it.Geo)
		return true
	case ItemHouse, ItemNoNumber:
		if it.is(ItemNoNumber) && a.House != "" {
			return true
		}
		if !set(&a.House, it.Value) {
			return false
		}
		if it.HouseType != HouseUndefined {
			a.HouseType = it.HouseType
		}
		return true
	case ItemBuilding:
		if !set(&a.Building, it.Value) {
			return false
		}
		a.BuildingType = it.BuildingType
		return true
	case ItemCorpus:
		return set(&a.Corpus, it.Value)
	case ItemCorpusOrFlat:
		return d.corpusOrFlat(it)
	case ItemFloor:
		return set(&a.Floor, it.Value)
	case ItemPorch:
		return set(&a.Porch, it.Value)
	case ItemFlat:
		return set(&a.Flat, it.Value)
	case ItemPavilion:
		return set(&a.Pavilion, it.Value)
	case ItemOffice:
		return set(&a.Office, it.Value)
	case ItemRoom:
		return set(&a.Room, it.Value)
	case ItemPlot:
		return set(&a.Plot, it.Value)
	case ItemField:
		return set(&a.Field, it.Value)
	case ItemGenplan:
		return set(&a.Genplan, it.Value)
	case ItemBlock:
		return set(&a.Block, it.Value)
	case ItemBox:
		return set(&a.Box, it.Value)
	case ItemWell:
		return set(&a.Well, it.Value)
	case ItemCarplace:
		return set(&a.Carplace, it.Value)
	case ItemPart:
		return set(&a.Part, it.Value)
	case ItemPantry:
		return set(&a.Pantry, it.Value)
	case ItemSpace:
		return set(&a.Space, it.Value)
	case ItemKilometer:
		return set(&a.Kilometer, it.Value)
	case ItemZip:
		return set(&a.Zip, it.Value)
	case ItemPostOfficeBox:
		return set(&a.PostOfficeBox, it.Value)
	case ItemCSP:
		return set(&a.CSP, it.Value)
	case ItemDeliveryArea:
		return set(&a.DeliveryArea, it.Value)
	case ItemDetail:
		// Одиночная косая черта между улицами уже учтена как пересечение.
		if it.DetailType == DetailCross && it.Begin == it.End && it.Value == "" {
			return true
		}
		if it.DetailType == DetailNear && d.next() == nil {
			return false
		}
		d.detail(it)
		return true
	case ItemNumber:
		return d.number(it)
	}
	return true
}

func (d *definer) detail(it *Item) {
	a := d.addr
	if a.Detail == DetailUndefined {
		a.Detail = it.DetailType
	}
	if a.DetailMeters == 0 {
		a.DetailMeters = it.DetailMeters
	}
	if a.DetailParam == "" {
		a.DetailParam = it.DetailParam
	}
}

func hasCity(geos []*token.Entity) bool {
	for _, g := range geos {
		if g.IsCity {
			return true
		}
	}
	return false
}

func (d *definer) street(it *Item) bool {
	a := d.addr
	if it.Street == nil {
		return true
	}
	if it.Street.Kind == StreetMetro {
		if a.Metro != "" {
			return false
		}
		a.Metro = it.Street.Name()
		return true
	}
	// Третья улица - уже другой адрес.
	if len(a.Streets) > 1 {
		return false
	}
	if len(a.Streets) > 0 && (a.House != "" || a.Plot != "") {
		return false
	}
	if it.Territory != nil && it.Territory.Street != nil && len(a.Streets) == 0 {
		a.Streets = append(a.Streets, it.Territory.Street)
	}
	a.Streets = append(a.Streets, it.Street)
	if it.Street2 != nil {
		a.Streets = append(a.Streets, it.Street2)
		if a.Detail == DetailUndefined {
			a.Detail = DetailCross
		}
	}
	return true
}

// corpusOrFlat - "к. 3": корпус, если дальше есть квартира или помещение,
// квартира, если корпус уже указан.
func (d *definer) corpusOrFlat(it *Item) bool {
	a := d.addr
	for _, nx := range d.items[d.i+1:] {
		if nx.is(ItemFlat, ItemCorpusOrFlat, ItemOffice, ItemFloor, ItemPorch, ItemPavilion, ItemRoom) ||
			nx.is(ItemNumber) && isDigitStart(nx.Value) {
			if a.Corpus == "" {
				return set(&a.Corpus, it.Value)
			}
			break
		}
	}
	if a.Corpus != "" {
		return set(&a.Flat, it.Value)
	}
	return set(&a.CorpusOrFlat, it.Value)
}

// number - число без типа. После улицы это дом, после дома - квартира, после
// этажа - тоже квартира.
func (d *definer) number(it *Item) bool {
	a := d.addr
	prev := d.prev()
	if !isDigitStart(it.Value) {
		return true
	}
	switch {
	case prev.is(ItemStreet) && a.House == "" && a.Plot == "":
		if v, err := strconv.Atoi(strings.TrimRightFunc(it.Value, notDigit)); err == nil && v > maxHouseNumber && !it.genplan {
			return false
		}
		a.House = it.Value
		if it.genplan && a.Genplan == "" {
			a.Genplan = "0"
		}
		return true
	case prev.is(ItemFloor) && a.Flat == "":
		a.Flat = it.Value
		return true
	case prev.is(ItemNumber, ItemHouse, ItemBuilding, ItemCorpus):
		if a.Flat != "" {
			return false
		}
		if a.House == "" && a.Building == "" && a.Corpus == "" {
			return false
		}
		// "ул. Мира 5 2 14": корпус и квартира.
		if nx := d.next(); nx.is(ItemNumber, ItemFlat) && a.Corpus == "" {
			a.Corpus = it.Value
			return true
		}
		a.Flat = it.Value
		return true
	case prev.is(ItemSpace) && a.Space == "":
		a.Space = it.Value
		return true
	case a.House == "" && a.Plot == "" && a.Building == "" && (it.genplan || prev.is(ItemCity) && len(a.Streets) == 0):
		a.House = it.Value
		return true
	}
	return true
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

func (a *Address) empty() bool {
	return len(a.Streets) == 0 && len(a.Geos) == 0 && a.House == "" && a.Building == "" &&
		a.Corpus == "" && a.Flat == "" && a.Plot == "" && a.PostOfficeBox == "" && a.CSP == "" &&
		a.DeliveryArea == "" && a.Metro == "" && a.Box == "" && a.Genplan == "" && a.Field == ""
}

// --- КРАТКАЯ ЗАПИСЬ ---

var geoAbbr = map[string]string{
	"город": "г.", "поселок": "пос.", "поселок городского типа": "пгт", "рабочий поселок": "рп",
	"село": "с.", "деревня": "д.", "станица": "ст-ца", "хутор": "х.",
	"область": "обл.", "район": "р-н", "республика": "респ.",
}

var streetAbbr = map[string]string{
	"улица": "ул.", "проспект": "пр-т", "переулок": "пер.", "шоссе": "ш.", "площадь": "пл.",
	"бульвар": "б-р", "набережная": "наб.", "проезд": "пр-д", "микрорайон": "мкр.",
	"квартал": "кв-л", "тупик": "туп.", "тракт": "тракт", "аллея": "ал.", "линия": "линия",
}

// String - краткая запись: "г. Курск, ул. Мира, д. 5, корп. 2, кв. 3".
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	var parts []string
	add := func(prefix, v string) {
		if v == "" {
			return
		}
		if v == "0" {
			v = "б/н"
		}
		parts = append(parts, prefix+v)
	}
	add("", a.Zip)
	for j := len(a.Geos) - 1; j >= 0; j-- {
		parts = append(parts, geoShort(a.Geos[j]))
	}
	if a.Metro != "" {
		parts = append(parts, "м. "+titleCaser.String(a.Metro))
	}
	for j, s := range a.Streets {
		if j > 0 && a.Detail == DetailCross {
			parts[len(parts)-1] += " / " + streetShort(s)
			continue
		}
		parts = append(parts, streetShort(s))
	}
	add("", kmShort(a.Kilometer))
	add(houseAbbr(a.HouseType), a.House)
	add("корп. ", a.Corpus)
	add(buildingAbbr(a.BuildingType), a.Building)
	add("к. ", a.CorpusOrFlat)
	add("уч. ", a.Plot)
	add("поле ", a.Field)
	add("ГП-", a.Genplan)
	add("под. ", a.Porch)
	add("эт. ", a.Floor)
	add("кв. ", a.Flat)
	add("пав. ", a.Pavilion)
	add("оф. ", a.Office)
	add("ком. ", a.Room)
	add("блок ", a.Block)
	add("бокс ", a.Box)
	add("скв. ", a.Well)
	add("маш. ", a.Carplace)
	add("часть ", a.Part)
	add("кладовая ", a.Pantry)
	add("пом. ", a.Space)
	add("а/я ", a.PostOfficeBox)
	add("ГСП-", a.CSP)
	add("доставочный участок ", a.DeliveryArea)
	return strings.Join(parts, ", ")
}

func kmShort(v string) string {
	if v == "" {
		return ""
	}
	return v + " км"
}

func houseAbbr(h HouseType) string {
	switch h {
	case HouseEstate:
		return "вл. "
	case HouseHouseEstate:
		return "домовл. "
	case HouseSpecial:
		return ""
	}
	return "д. "
}

func buildingAbbr(b BuildingType) string {
	switch b {
	case BuildingConstruction:
		return "соор. "
	case BuildingLiter:
		return "лит. "
	}
	return "стр. "
}

func geoShort(g *token.Entity) string {
	name := titleCaser.String(g.Name())
	typ := g.Type()
	if typ == "" {
		return name
	}
	if ab, ok := geoAbbr[typ]; ok {
		typ = ab
	}
	// "Курская обл.", но "г. Курск".
	if g.IsRegion {
		return name + " " + typ
	}
	return typ + " " + name
}

// streetShort - улица в краткой записи. Дороги, территории и станции пишутся
// полной формой.
func streetShort(s *Street) string {
	switch s.Kind {
	case StreetRoad, StreetRailway, StreetOrg, StreetArea, StreetSpec:
		return s.String()
	}
	typ := "ул."
	if len(s.Types) > 0 {
		typ = s.Types[0]
		if ab, ok := streetAbbr[typ]; ok {
			typ = ab
		}
	}
	var b strings.Builder
	b.WriteString(typ)
	if name := s.Name(); name != "" {
		b.WriteString(" " + titleCaser.String(name))
	}
	if s.Number != "" {
		b.WriteString(" " + s.Number)
	}
	return b.String()
}
