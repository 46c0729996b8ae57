package token

import "strings"

// EntityKind - вид ранее выделенной сущности.
type EntityKind uint8

const (
	Geo EntityKind = iota + 1
	Org
	Date
)

func (k EntityKind) String() string {
	switch k {
	case Geo:
		return "geo"
	case Org:
		return "org"
	case Date:
		return "date"
	}
	return "undefined"
}

// Entity - географический объект, организация или дата.
type Entity struct {
	Kind  EntityKind `json:"kind"`
	Types []string   `json:"types,omitempty"` // "город", "область", "снт"
	Names []string   `json:"names,omitempty"` // Верхний регистр.

	IsCity   bool `json:"is_city,omitempty"`
	IsRegion bool `json:"is_region,omitempty"`
	IsState  bool `json:"is_state,omitempty"`

	// IsGsk - гаражный или иной кооператив, который сам служит адресным объектом.
	IsGsk  bool   `json:"is_gsk,omitempty"`
	Number string `json:"number,omitempty"`

	Day   int `json:"day,omitempty"`
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// Name - основное имя.
func (e *Entity) Name() string {
	if e == nil || len(e.Names) == 0 {
		return ""
	}
	return e.Names[0]
}

// Type - основной тип.
func (e *Entity) Type() string {
	if e == nil || len(e.Types) == 0 {
		return ""
	}
	return e.Types[0]
}

// HasType - есть ли среди типов typ.
func (e *Entity) HasType(typ string) bool {
	if e == nil {
		return false
	}
	for _, t := range e.Types {
		if t == typ {
			return true
		}
	}
	return false
}

func (e *Entity) String() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if t := e.Type(); t != "" {
		b.WriteString(t)
	}
	if n := e.Name(); n != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n)
	}
	if e.Number != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.Number)
	}
	return b.String()
}

// Equal - сравнение сущностей по виду, основному типу и имени.
func (e *Entity) Equal(o *Entity) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Kind == o.Kind && e.Type() == o.Type() && e.Name() == o.Name() && e.Number == o.Number
}
