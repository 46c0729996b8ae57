package address

import (
	"strconv"
	"strings"

	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// Item - элемент адреса: дом, корпус, квартира, улица, населенный пункт и т.д.
// Как и фрагмент, возвращенный элемент не меняется: правки делаются над копией.
type Item struct {
	Kind ItemKind `json:"kind"`
	// Begin, End - индексы токенов документа, включительно.
	Begin int `json:"begin"`
	End   int `json:"end"`

	Value string `json:"value,omitempty"`

	HouseType    HouseType    `json:"house_type,omitempty"`
	BuildingType BuildingType `json:"building_type,omitempty"`

	DetailType   DetailType `json:"detail_type,omitempty"`
	DetailMeters int        `json:"detail_meters,omitempty"`
	DetailParam  string     `json:"detail_param,omitempty"`

	// Street - улица для элемента STREET.
	Street *Street `json:"street,omitempty"`
	// Street2 - вторая улица через косую черту или пересечение: "ул. Мира / ул. Ленина".
	Street2 *Street `json:"street2,omitempty"`
	// Geo - населенный пункт или регион для CITY/REGION/COUNTRY.
	Geo *token.Entity `json:"geo,omitempty"`

	// Doubt - элемент правдоподобен, но не подтвержден контекстом.
	Doubt bool `json:"doubt,omitempty"`
	// Territory - территория в скобках после улицы: "ул. Мира (СНТ Заря)".
	Territory *Item `json:"territory,omitempty"`
	// AltItem - второе прочтение (тип "К." как корпус или квартира).
	AltItem *Item `json:"-"`

	Termin *ontology.Termin `json:"-"`
	// forced - термин сам по себе является помещением ("подвал").
	forced bool
	// genplan - номер по генплану ("ГП-5").
	genplan bool
}

func (it *Item) clone() *Item {
	if it == nil {
		return nil
	}
	res := *it
	res.Street = it.Street.clone()
	res.Street2 = it.Street2.clone()
	res.Territory = it.Territory.clone()
	res.AltItem = it.AltItem.clone()
	return &res
}

func (it *Item) withSpan(begin, end int) *Item {
	res := it.clone()
	res.Begin, res.End = begin, end
	return res
}

func (it *Item) String() string {
	if it == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(it.Kind.String())
	if it.Value != "" {
		b.WriteString(" " + it.Value)
	}
	switch {
	case it.Street != nil:
		b.WriteString(" " + it.Street.String())
	case it.Geo != nil:
		b.WriteString(" " + it.Geo.String())
	}
	if it.DetailType != DetailUndefined {
		b.WriteString(" " + it.DetailType.String())
		if it.DetailMeters > 0 {
			b.WriteString(" " + strconv.Itoa(it.DetailMeters) + "м")
		}
	}
	if it.Doubt {
		b.WriteString(" (?)")
	}
	return b.String()
}

func (it *Item) is(kinds ...ItemKind) bool {
	if it == nil {
		return false
	}
	for _, k := range kinds {
		if it.Kind == k {
			return true
		}
	}
	return false
}

// isHouseLike - дом, корпус, строение или участок.
func (it *Item) isHouseLike() bool { return it != nil && it.Kind.isHouseLike() }

// isStreetRoad - элемент - улица-дорога.
func (it *Item) isStreetRoad() bool {
	return it.is(ItemStreet) && it.Street != nil && it.Street.Kind == StreetRoad
}

// isTerritory - элемент - СНТ, ГСК или иная территория.
func (it *Item) isTerritory() bool {
	return it.is(ItemStreet) && it.Street != nil && (it.Street.Kind == StreetArea || it.Street.Kind == StreetOrg)
}
