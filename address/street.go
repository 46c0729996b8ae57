package address

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/steosofficial/steosaddress/token"
)

// Street - собранная улица: типы, варианты названия, номер и вид.
type Street struct {
	// Types - типы в нижнем регистре ("улица", "проспект"); синонимы идут подряд.
	Types []string `json:"types,omitempty"`
	// Names - варианты названия в верхнем регистре: первый основной, остальные
	// альтернативы по падежу и словарю.
	Names  []string   `json:"names,omitempty"`
	Number string     `json:"number,omitempty"`
	Kind   StreetKind `json:"kind"`
	Misc   []string   `json:"misc,omitempty"`
	// Org - организация, на территории которой улица (СНТ, ГСК).
	Org *token.Entity `json:"org,omitempty"`
	// Higher - объемлющая улица или территория ("мкр. Северный, ул. Мира").
	Higher *Street `json:"higher,omitempty"`
	// Geo - населенный пункт, внутри которого дорога или территория.
	Geo *token.Entity `json:"geo,omitempty"`
}

func (s *Street) clone() *Street {
	if s == nil {
		return nil
	}
	res := *s
	res.Types = append([]string(nil), s.Types...)
	res.Names = append([]string(nil), s.Names...)
	res.Misc = append([]string(nil), s.Misc...)
	res.Higher = s.Higher.clone()
	return &res
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// AddType добавляет тип и, если вид еще не задан, выводит его из типа.
func (s *Street) AddType(typ string) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return
	}
	s.Types = appendUnique(s.Types, typ)
	if s.Kind != StreetUndefined {
		return
	}
	up := strings.ToUpper(typ)
	switch {
	case typ == "железная дорога":
		s.Kind = StreetRailway
	case strings.Contains(typ, "дорога") || typ == "шоссе":
		s.Kind = StreetRoad
	case strings.Contains(typ, "метро"):
		s.Kind = StreetMetro
	case typ == "территория" || isRegionCanonic(up):
		s.Kind = StreetArea
	case specTails[up]:
		s.Kind = StreetSpec
	}
}

// AddName добавляет вариант названия.
func (s *Street) AddName(name string) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name != "" {
		s.Names = appendUnique(s.Names, name)
	}
}

// AddMisc добавляет уточнение ("Маршала", "реки").
func (s *Street) AddMisc(v string) {
	if v = strings.TrimSpace(v); v != "" {
		s.Misc = appendUnique(s.Misc, v)
	}
}

// Name - основное название.
func (s *Street) Name() string {
	if s == nil || len(s.Names) == 0 {
		return ""
	}
	return s.Names[0]
}

// HasType - есть ли тип typ (в нижнем регистре).
func (s *Street) HasType(typ string) bool {
	if s == nil {
		return false
	}
	for _, t := range s.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// setHigher устанавливает объемлющую улицу, не допуская циклов.
func (s *Street) setHigher(h *Street) {
	for d := h; d != nil; d = d.Higher {
		if d == s || d.String() == s.String() {
			return
		}
	}
	s.Higher = h
}

var titleCaser = cases.Title(language.Russian)

// String - краткая запись: "проспект Мира", "автодорога М-4 105км".
func (s *Street) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	name := s.Name()
	if len(s.Types) == 0 {
		b.WriteString("улица")
	}
	for _, t := range s.Types {
		if name != "" && strings.Contains(name, strings.ToUpper(t)) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(t)
	}
	num := s.Number
	territory := s.Kind == StreetOrg || s.Kind == StreetArea
	if num != "" && !strings.Contains(num, "км") && !territory {
		b.WriteString(" " + num)
	}
	for _, m := range s.Misc {
		if name != "" && strings.Contains(name, strings.ToUpper(m)) {
			continue
		}
		b.WriteString(" " + titleCaser.String(m))
		break
	}
	if name != "" {
		b.WriteString(" " + titleCaser.String(name))
	}
	switch {
	case num != "" && (strings.Contains(num, "км") || strings.Contains(num, ":")):
		b.WriteString(" " + num)
	case num != "" && territory:
		b.WriteString("-" + num)
	}
	return strings.TrimSpace(b.String())
}

// Key - ключ для сравнения улиц: транслитерация в нижнем регистре без пробелов
// по краям. "Проспект Мира" и "ПРОСПЕКТ МИРА" дают один ключ.
func (s *Street) Key() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(strings.ToLower(unidecode.Unidecode(s.String())))
}

// CanBeEqual - две записи могут обозначать одну улицу: вид совпадает, есть общий
// тип и общее название, номера равны.
func (s *Street) CanBeEqual(o *Street) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Kind != o.Kind || s.Number != o.Number {
		return false
	}
	if len(s.Types) > 0 && len(o.Types) > 0 && !intersects(s.Types, o.Types) {
		return false
	}
	if (len(s.Names) > 0 || len(o.Names) > 0) && !intersects(s.Names, o.Names) {
		return false
	}
	if s.Higher != nil && o.Higher != nil {
		return s.Higher.CanBeEqual(o.Higher)
	}
	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
