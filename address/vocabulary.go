package address

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/ontology"
)

// Ontology - словари распознавателя: фрагменты названий улиц и элементы адреса.
// Строится один раз и дальше только читается, поэтому разделяется между горутинами.
type Ontology struct {
	Streets *ontology.Collection
	Items   *ontology.Collection

	road     *ontology.Termin
	metro    *ontology.Termin
	prospect *ontology.Termin
	mkad     *ontology.Termin
	owner    *ontology.Termin
	plot     *ontology.Termin
}

// itemSub - вторичный тег элемента адреса.
type itemSub struct {
	house    HouseType
	building BuildingType
	detail   DetailType
	// forced - слово само по себе означает помещение или часть ("подвал", "северная часть").
	forced bool
}

// NewOntology строит оба словаря. Ошибка означает некорректную регистрацию терминов.
func NewOntology() (*Ontology, error) {
	o := &Ontology{}
	streets, err := ontology.Build(o.streetTermins()...)
	if err != nil {
		return nil, fmt.Errorf("словарь улиц: %w", err)
	}
	items, err := ontology.Build(o.itemTermins()...)
	if err != nil {
		return nil, fmt.Errorf("словарь элементов адреса: %w", err)
	}
	o.Streets, o.Items = streets, items
	return o, nil
}

// MustOntology - NewOntology, паникующий при ошибке.
func MustOntology() *Ontology {
	o, err := NewOntology()
	if err != nil {
		panic(err)
	}
	return o
}

// --- УЛИЦЫ ---

func noun(canonic string, coef int, gender analyzer.Morph, abridges ...string) *ontology.Termin {
	t := ontology.New(canonic, FragNoun).WithTag2(coef).WithGender(gender)
	for _, a := range abridges {
		t.AddAbridge(a)
	}
	return t
}

func variants(t *ontology.Termin, vs ...string) *ontology.Termin {
	for _, v := range vs {
		t.AddVariant(v)
	}
	return t
}

const (
	masc = analyzer.Masculine
	fem  = analyzer.Feminine
	neut = analyzer.Neuter
)

func (o *Ontology) streetTermins() []*ontology.Termin {
	var res []*ontology.Termin
	add := func(ts ...*ontology.Termin) { res = append(res, ts...) }

	add(variants(noun("УЛИЦА", 0, fem, "УЛ.", "УЛЮ"), "УЛИЦЯ"))
	add(noun("ВУЛИЦЯ", 0, fem, "ВУЛ.").WithLang(ontology.Ua))
	add(noun("STREET", 0, 0, "ST."))
	add(noun("ПЛОЩАДЬ", 1, fem, "ПЛ.", "ПЛОЩ.", "ПЛ-ДЬ"))
	add(noun("ПЛОЩА", 1, fem, "ПЛ.", "ПЛОЩ.").WithLang(ontology.Ua))
	add(noun("МАЙДАН", 0, masc))
	add(noun("SQUARE", 0, 0, "SQ."))
	add(noun("ПРОЕЗД", 1, masc, "ПР.", "П-Д", "ПР-Д", "ПР-ЗД"))
	add(noun("ПРОЕЗД", 1, masc, "ПР.", "П-Д", "ПР-Д", "ПР-ЗД").WithLang(ontology.Ua))
	add(noun("ЛИНИЯ", 2, fem, "ЛИН."))
	add(noun("ЛІНІЯ", 2, fem, "ЛІН.").WithLang(ontology.Ua))
	add(noun("РЯД", 2, masc))
	add(noun("ОЧЕРЕДЬ", 2, fem))
	add(noun("ПАНЕЛЬ", 2, fem))
	add(noun("БЛОК", 2, masc))
	add(variants(noun("КУСТ", 2, masc), "КУСТ ГАЗОВЫХ СКВАЖИН", "КУСТОВАЯ ПЛОЩАДКА СКВАЖИН", "КУСТ СКВАЖИН"))

	o.prospect = noun("ПРОСПЕКТ", 0, masc, "ПРОС.", "ПРКТ", "ПРОСП.", "ПР-Т", "ПР-КТ", "П-Т", "П-КТ", "ПР Т")
	add(o.prospect)
	add(noun("ПРОСПЕКТ", 0, masc, "ПРОС.", "ПРОСП.", "ПР-Т", "ПР-КТ").WithLang(ontology.Ua))
	add(variants(noun("ПЕРЕУЛОК", 0, masc, "ПЕР.", "ПЕР-К", "П-К"), "ПРЕУЛОК"))
	add(noun("ПРОУЛОК", 0, masc, "ПРОУЛ."))
	add(noun("ПРОВУЛОК", 0, masc, "ПРОВ.").WithLang(ontology.Ua))
	add(noun("LANE", 0, 0, "LN."))
	add(noun("ТУПИК", 1, masc, "ТУП.", "Т."))
	add(noun("БУЛЬВАР", 0, masc, "БУЛЬВ.", "БУЛ.", "Б-Р", "Б-РЕ"))
	add(noun("BOULEVARD", 0, 0, "BLVD"))
	add(noun("СКВЕР", 1, masc))
	add(noun("НАБЕРЕЖНАЯ", 0, fem, "НАБ.", "НАБЕР."))
	add(noun("НАБЕРЕЖНА", 0, fem, "НАБ.", "НАБЕР.").WithLang(ontology.Ua))
	add(noun("АЛЛЕЯ", 0, fem, "АЛ."))
	add(noun("АЛЕЯ", 0, fem, "АЛ.").WithLang(ontology.Ua))
	add(noun("ALLEY", 0, 0, "ALY."))
	add(variants(noun("АВЕНЮ", 0, neut), "АВЕНЬЮ"))
	add(variants(noun("ПРОСЕКА", 1, fem), "ПРОСЕК"))
	add(noun("ПРОСІКА", 1, fem).WithLang(ontology.Ua))
	add(noun("ТРАКТ", 1, masc))
	add(noun("ШОССЕ", 1, neut, "Ш."))
	add(noun("ШОСЕ", 1, neut, "Ш.").WithLang(ontology.Ua))
	add(noun("ROAD", 1, 0, "RD."))
	add(variants(noun("МИКРОРАЙОН", 0, masc, "МКР.", "МИКР-Н", "МИКР.", "МКР-Н", "МКР-ОН", "МКРН.", "М-Н", "М-ОН",
		"М.Р-Н", "МИКР-ОН", "М/Р"), "МИКРОН", "МІКРОРАЙОН"))
	add(noun("КВАРТАЛ", 2, masc, "КВАРТ.", "КВ-Л", "КВ."))
	add(noun("КАДАСТРОВЫЙ КВАРТАЛ", 2, masc, "КАД.КВАРТ.", "КАД.КВ-Л", "КАД.КВ.", "КАД.КВАРТАЛ"))
	add(variants(noun("ТОРФЯНОЙ УЧАСТОК", 2, masc, "ТОРФ.УЧАСТОК"), "ТОРФУЧАСТОК", "ТОРФОУЧАСТОК"))
	add(noun("МОСТ", 2, masc))
	add(noun("МІСТ", 2, masc).WithLang(ontology.Ua))
	add(noun("PLAZA", 1, 0, "PLZ"))

	o.metro = variants(noun("СТАНЦИЯ МЕТРО", 0, fem, "СТ.МЕТРО", "СТ.М.", "МЕТРО"), "СТАНЦІЯ МЕТРО").WithCanonic("МЕТРО")
	add(o.metro)

	o.road = variants(noun("АВТОДОРОГА", 0, fem, "А/Д", "ФЕДЕР.ТРАССА", "ФЕД.ТРАССА"),
		"ФЕДЕРАЛЬНАЯ АВТОДОРОГА", "АВТОМОБИЛЬНАЯ ДОРОГА", "АВТОТРАССА", "ФЕДЕРАЛЬНАЯ ТРАССА", "ФЕДЕР ТРАССА",
		"АВТОМАГИСТРАЛЬ", "ГОСТРАССА", "ГОС.ТРАССА").WithAcronym("ФАД")
	add(o.road)
	add(variants(noun("ДОРОГА", 1, fem, "ДОР."), "ТРАССА", "МАГИСТРАЛЬ").WithCanonic("АВТОДОРОГА"))
	add(variants(noun("АВТОДОРОГА", 0, fem), "ФЕДЕРАЛЬНА АВТОДОРОГА", "АВТОМОБІЛЬНА ДОРОГА", "АВТОТРАСА",
		"ФЕДЕРАЛЬНА ТРАСА", "АВТОМАГІСТРАЛЬ").WithLang(ontology.Ua))
	add(variants(noun("ДОРОГА", 1, fem), "ТРАСА", "МАГІСТРАЛЬ").WithLang(ontology.Ua).WithCanonic("АВТОДОРОГА"))
	add(variants(noun("ПОЧТОВОЕ ОТДЕЛЕНИЕ", 0, neut, "П.О.", "ПОЧТ.ОТД.", "ПОЧТОВ.ОТД.", "ПОЧТОВОЕ ОТД.", "П/О"),
		"ОТДЕЛЕНИЕ ПОЧТОВОЙ СВЯЗИ", "ПОЧТАМТ", "ГЛАВПОЧТАМТ").WithAcronym("ОПС"))
	add(variants(noun("БУДКА", 0, fem, "Ж/Д БУДКА"), "ЖЕЛЕЗНОДОРОЖНАЯ БУДКА"))
	add(variants(noun("КАЗАРМА", 0, fem, "Ж/Д КАЗАРМА"), "ЖЕЛЕЗНОДОРОЖНАЯ КАЗАРМА"))
	add(noun("СТОЯНКА", 0, fem))
	add(noun("ПУНКТ", 0, masc))
	add(variants(noun("РАЗЪЕЗД", 0, masc, "РЗД", "Ж/Д РАЗЪЕЗД"), "ЖЕЛЕЗНОДОРОЖНЫЙ РАЗЪЕЗД"))
	add(noun("ЗАЕЗД", 0, masc))
	add(noun("ПЕРЕЕЗД", 0, masc))

	// Устойчивые сочетания.
	o.mkad = variants(ontology.New("МОСКОВСКАЯ КОЛЬЦЕВАЯ АВТОМОБИЛЬНАЯ ДОРОГА", FragFix).WithTag2(0).WithGender(fem),
		"МОСКОВСКАЯ КОЛЬЦЕВАЯ АВТОДОРОГА").WithAcronym("МКАД")
	add(o.mkad)
	for _, s := range []string{"САДОВОЕ КОЛЬЦО", "БУЛЬВАРНОЕ КОЛЬЦО", "ТРАНСПОРТНОЕ КОЛЬЦО", "ЛЕНИНСКИЕ ГОРЫ"} {
		add(ontology.New(s, FragFix).WithTag2(0))
	}

	// Стандартные прилагательные.
	stdAdj := func(canonic string, lang ontology.Lang, forms ...string) {
		t := ontology.New(canonic, FragStdAdjective).WithTag2(0).WithLang(lang)
		for _, f := range forms {
			if strings.HasSuffix(f, ".") || f == "N" || f == "№" {
				t.AddAbridge(f)
			} else {
				t.AddVariant(f)
			}
		}
		add(t)
	}
	stdAdj("БОЛЬШОЙ", ontology.Ru, "БОЛ.", "Б.")
	stdAdj("ВЕЛИКИЙ", ontology.Ru, "ВЕЛ.", "В.")
	stdAdj("МАЛЫЙ", ontology.Ru, "МАЛ.", "М.", "МАЛИЙ")
	stdAdj("СРЕДНИЙ", ontology.Ru, "СРЕД.", "СР.", "С.")
	stdAdj("СЕРЕДНІЙ", ontology.Ua, "СЕРЕД.", "СЕР.", "С.")
	stdAdj("ВЕРХНИЙ", ontology.Ru, "ВЕРХН.", "ВЕРХ.", "ВЕР.", "В.", "ВЕРХНІЙ")
	stdAdj("НИЖНИЙ", ontology.Ru, "НИЖН.", "НИЖ.", "Н.", "НИЖНІЙ")
	stdAdj("СТАРЫЙ", ontology.Ru, "СТАР.", "СТ.", "СТАРИЙ")
	stdAdj("НОВЫЙ", ontology.Ru, "НОВ.", "Н.", "НОВИЙ")
	stdAdj("КРАСНЫЙ", ontology.Ru, "КРАСН.", "КР.", "КРАС.", "ЧЕРВОНИЙ")
	stdAdj("НОМЕР", ontology.Ru, "N", "№", "НОМ.")

	// Стандартные названия: через ";" перечислены варианты, с точкой - сокращения.
	for _, s := range []string{"ПРОЕКТИРУЕМЫЙ", "ЮНЫХ ЛЕНИНЦЕВ;ЮН. ЛЕНИНЦЕВ", "МАРКСА И ЭНГЕЛЬСА;КАРЛА МАРКСА И ФРИДРИХА ЭНГЕЛЬСА",
		"БАКИНСКИХ КОМИССАРОВ;БАК.КОМИССАРОВ;Б.КОМИССАРОВ", "САККО И ВАНЦЕТТИ", "СЕРП И МОЛОТ", "ЗАВОДА СЕРП И МОЛОТ",
		"ШАРЛЯ ДЕ ГОЛЛЯ;ДЕ ГОЛЛЯ", "МИНИНА И ПОЖАРСКОГО", "ХО ШИ МИНА;ХОШИМИНА",
		"ЗОИ И АЛЕКСАНДРА КОСМОДЕМЬЯНСКИХ;З.И А.КОСМОДЕМЬЯНСКИХ;З.А.КОСМОДЕМЬЯНСКИХ", "АРМАНД;ИНЕССЫ АРМАНД",
		"МИРА", "СВОБОДЫ", "РИМСКОГО-КОРСАКОВА", "ПЕТРА И ПАВЛА",
		"МАРТА", "МАЯ", "ОКТЯБРЯ", "НОЯБРЯ", "БЕРЕЗНЯ", "ТРАВНЯ", "ЖОВТНЯ", "ЛИСТОПАДА",
		"ДОРОЖКА", "ЛУЧ", "НАДЕЛ", "ПОЛЕ", "СКЛОН"} {
		forms := strings.Split(s, ";")
		t := ontology.New(forms[0], FragStdName).WithTag2(0)
		for _, f := range forms[1:] {
			if strings.Contains(f, ".") {
				t.AddAbridge(f)
			} else {
				t.AddVariant(f)
			}
		}
		add(t)
	}

	// Части названий: "Маршала Жукова", "Академика Королева".
	for _, s := range []string{"МАРШАЛА", "ГЕНЕРАЛА", "ГЕНЕРАЛ-МАЙОРА", "ГЕНЕРАЛ-ЛЕЙТЕНАНТА", "ГЕНЕРАЛ-ПОЛКОВНИКА",
		"АДМИРАЛА", "КОНТРАДМИРАЛА", "КОСМОНАВТА", "ЛЕТЧИКА", "ПОГРАНИЧНИКА", "ПУТЕШЕСТВЕННИКА", "ПАРТИЗАНА",
		"АТАМАНА", "ТАНКИСТА", "АВИАКОНСТРУКТОРА", "АРХИТЕКТОРА", "ГЛАВНОГО АРХИТЕКТОРА", "СКУЛЬПТОРА",
		"ХУДОЖНИКА", "КОНСТРУКТОРА", "ГЛАВНОГО КОНСТРУКТОРА", "АКАДЕМИКА", "ПРОФЕССОРА", "КОМПОЗИТОРА",
		"ПИСАТЕЛЯ", "ПОЭТА", "ДИРИЖЕРА", "ГЕРОЯ", "БРАТЬЕВ", "ЛЕЙТЕНАНТА", "СТАРШЕГО ЛЕЙТЕНАНТА", "КАПИТАНА",
		"КАПИТАНА-ЛЕЙТЕНАНТА", "МАЙОРА", "ПОДПОЛКОВНИКА", "ПОЛКОВНИКА", "СЕРЖАНТА", "МЛАДШЕГО СЕРЖАНТА",
		"СТАРШЕГО СЕРЖАНТА", "ЕФРЕЙТОРА", "СТАРШИНЫ", "ПРАПОРЩИКА", "СТАРШЕГО ПРАПОРЩИКА", "ПОЛИТРУКА",
		"ПОЛИЦИИ", "МИЛИЦИИ", "ГВАРДИИ", "АРМИИ", "МИТРОПОЛИТА", "ПАТРИАРХА", "ИЕРЕЯ", "ПРОТОИЕРЕЯ",
		"МОНАХА", "СВЯТОГО", "СВЯТИТЕЛЯ"} {
		t := ontology.New(s, FragStdPartOfName).WithTag2(0)
		switch s {
		case "СВЯТОГО", "СВЯТИТЕЛЯ":
			t.AddAbridge("СВ.").AddAbridge("СВЯТ.")
		case "ПРОФЕССОРА":
			t.AddVariant("ПРОФЕСОРА").AddAbridge("ПРОФ.")
		default:
			if a := partAbridge(s); a != "" {
				t.AddAbridge(a)
			}
		}
		add(t)
	}
	for _, s := range []string{"АДМІРАЛА", "КОНТРАДМІРАЛА", "ЛЬОТЧИКА", "ПРИКОРДОННИКА", "МАНДРІВНИКА",
		"ХУДОЖНИКА", "АКАДЕМІКА", "ПРОФЕСОРА", "КОМПОЗИТОРА", "ПИСЬМЕННИКА", "ПОЕТА", "ДИРИГЕНТА", "ГЕРОЯ",
		"БРАТІВ", "ЛЕЙТЕНАНТА", "КАПІТАНА", "МАЙОРА", "ПІДПОЛКОВНИКА", "ПОЛКОВНИКА", "СЕРЖАНТА",
		"МИТРОПОЛИТА", "ПАТРІАРХА", "СВЯТОГО"} {
		add(ontology.New(s, FragStdPartOfName).WithTag2(0).WithLang(ontology.Ua))
	}
	return res
}

// partAbridge строит сокращение однословной части названия: согласные до второй
// гласной основы и точка ("МАРШ.", "ГЕН.", "АКАД.").
func partAbridge(word string) string {
	if strings.ContainsAny(word, " -") {
		return ""
	}
	runes := []rune(word)
	seen := 0
	start := 0
	if strings.ContainsRune(vowelLetters, runes[0]) {
		start = 1
	}
	for i := start; i < len(runes); i++ {
		if !strings.ContainsRune(vowelLetters, runes[i]) {
			continue
		}
		seen++
		if seen == 2 {
			if i < 3 || i >= len(runes)-1 {
				return ""
			}
			return string(runes[:i]) + "."
		}
	}
	return ""
}

const vowelLetters = "АЕЁИОУЫЭЮЯІЇЄ"

// --- ЭЛЕМЕНТЫ АДРЕСА ---

func item(canonic string, kind ItemKind, sub itemSub, forms ...string) *ontology.Termin {
	t := ontology.New(canonic, kind).WithTag2(sub)
	for _, f := range forms {
		if isAbridgeForm(f) {
			t.AddAbridge(f)
		} else {
			t.AddVariant(f)
		}
	}
	return t
}

// isAbridgeForm - форма записана с точкой, дефисом внутри или косой чертой, либо это аббревиатура.
func isAbridgeForm(f string) bool {
	if strings.ContainsAny(f, "./№") || f == "N" {
		return true
	}
	if i := strings.IndexByte(f, '-'); i > 0 && utf8.RuneCountInString(f) <= 8 {
		return true
	}
	return false
}

func (o *Ontology) itemTermins() []*ontology.Termin {
	var res []*ontology.Termin
	add := func(ts ...*ontology.Termin) { res = append(res, ts...) }
	none := itemSub{}

	add(item("ДОМ", ItemHouse, itemSub{house: HouseHouse}, "Д.", "КОТТЕДЖ", "КОТ.", "ДАЧА", "ЖИЛОЙ ДОМ", "ЖИЛ.ДОМ",
		"ДО ДОМА", "ДОМ ОФИЦЕРСКОГО СОСТАВА", "ДОС"))
	add(item("БУДИНОК", ItemHouse, itemSub{house: HouseHouse}, "Б.", "КОТЕДЖ", "БУД.").WithLang(ontology.Ua))
	o.owner = item("ВЛАДЕНИЕ", ItemHouse, itemSub{house: HouseEstate}, "ВЛАД.", "ВЛД.", "ВЛ.")
	add(o.owner)
	add(item("ДОМОВЛАДЕНИЕ", ItemHouse, itemSub{house: HouseHouseEstate}, "ДВЛД.", "ДМВЛД.", "ДОМОВЛ", "ДОМОВА", "ДОМОВЛАД"))
	add(item("ПОДЪЕЗД ДОМА", ItemHouse, itemSub{house: HouseHouse}))
	add(item("ЭТАЖ", ItemFloor, none, "ЭТ."))
	add(item("ПОДЪЕЗД", ItemPorch, none, "ПОД."))
	add(item("КОРПУС", ItemCorpus, none, "КОРП.", "КОР.", "Д.КОРП."))
	add(item("К", ItemCorpusOrFlat, none, "К."))
	add(item("СТРОЕНИЕ", ItemBuilding, itemSub{building: BuildingBuilding}, "СТРОЕН.", "СТР.", "СТ.", "ПОМ.СТР.", "Д.СТР."))
	add(item("СООРУЖЕНИЕ", ItemBuilding, itemSub{building: BuildingConstruction}, "СООР.", "СООРУЖ.", "СООРУЖЕН.",
		"БАШНЯ", "ЗДАНИЕ", "ЗД.").WithAcronym("РК"))
	add(item("ЛИТЕРА", ItemBuilding, itemSub{building: BuildingLiter}, "ЛИТ.", "ЛИТЕР"))
	o.plot = item("УЧАСТОК", ItemPlot, none, "УЧАСТ.", "УЧ.", "УЧ-К", "ДОМ УЧ.", "ДОМ.УЧ.", "У-К", "ЗЕМЕЛЬНЫЙ УЧАСТОК",
		"ЗЕМ.УЧ.", "ЗЕМ.УЧ-К", "З/У", "ЧАСТЬ ВЫДЕЛА", "ВЫДЕЛ", "НАДЕЛ", "КОНТУР", "ВЫД.").WithAcronym("ЗУ")
	add(o.plot)
	add(item("ПОЛЕ", ItemField, none))
	add(item("ГЕНЕРАЛЬНЫЙ ПЛАН", ItemGenplan, none, "ГЕНПЛАН", "ГЕН.ПЛАН", "Г/П", "Г.П.", "ПО ГП").WithAcronym("ГП"))
	add(item("КВАРТИРА", ItemFlat, none, "КВАРТ.", "КВАР.", "КВ.", "KB.", "КВ-РА", "КВ.КОМ", "КВ.ОБЩ", "КВ.Ч.").AddAbridge("КВЮ"))
	add(item("ОФИС", ItemOffice, none, "ОФ."))
	add(item("ОФІС", ItemOffice, none, "ОФ.").WithLang(ontology.Ua))
	add(item("ПАВИЛЬОН", ItemPavilion, none, "ПАВ.", "ТОРГОВЫЙ ПАВИЛЬОН"))
	add(item("ПАВІЛЬЙОН", ItemPavilion, none, "ПАВ.", "ТОРГОВИЙ ПАВІЛЬЙОН").WithLang(ontology.Ua))
	add(item("КЛАДОВКА", ItemPantry, none, "КЛАД.", "КЛАДОВАЯ", "КЛАДОВОЕ ПОМЕЩЕНИЕ"))
	add(item("СЕКЦИЯ", ItemBlock, none, "БЛОК", "БЛОК БОКС", "БЛ.", "БЛОК ГАРАЖЕЙ", "ГАРАЖНЫЙ БЛОК"))
	add(item("БОКС", ItemBox, none, "ГАРАЖ", "ГАР.", "ГАРАЖНАЯ ЯЧЕЙКА", "Г-Ж", "ПОДЪЕЗД", "ИНДИВИДУАЛЬНЫЙ ГАРАЖ",
		"ГАРАЖНЫЙ БОКС", "ГБ.", "Г.Б.", "ЭЛЛИНГ", "ЭЛИНГ").AddAbridge("ГАРАЖ-БОКС"))
	add(item("ЧАСТЬ", ItemPart, none, "Ч."))
	add(item("СКВАЖИНА", ItemWell, none, "СКВАЖ.", "СКВАЖИНА ГАЗОКОНДЕНСАТНАЯ ЭКСПЛУАТАЦИОННАЯ"))
	add(item("ПОМЕЩЕНИЕ", ItemSpace, none, "ПОМ.", "ПОМЕЩ.", "НЕЖИЛОЕ ПОМЕЩЕНИЕ", "Н.П.").AddAbridge("НП"))
	add(item("ПОДВАЛ", ItemSpace, itemSub{forced: true}, "ПОДВАЛЬНОЕ ПОМЕЩЕНИЕ", "ПОДВ.ПОМ.", "ПОДВАЛ.ПОМ.", "ПОДВ.", "ПОГРЕБ"))
	add(item("МАСТЕРСКАЯ", ItemSpace, itemSub{forced: true}))
	for _, s := range []string{"АПТЕКА", "МАНСАРДА", "АТЕЛЬЕ", "ЧЕРДАК", "КРЫША", "ОТЕЛЬ", "ГОСТИНИЦА", "САРАЙ",
		"ПАРИКМАХЕРСКАЯ", "СТОЛОВАЯ", "КАФЕ"} {
		add(item(s, ItemSpace, itemSub{forced: true}))
	}
	add(item("МАГАЗИН", ItemSpace, itemSub{forced: true}, "МАГ.", "МАГ-Н"))
	add(item("МАШИНОМЕСТО", ItemCarplace, none, "М/М", "МАШ.МЕСТО", "М.МЕСТО", "МАШ.М.", "ПАРКОВОЧНОЕ МЕСТО").
		AddVariant("МАШИНО-МЕСТО").AddAbridge("ММ").AddAbridge("MM"))
	add(item("КОМНАТА", ItemRoom, none, "КОМ.", "КОМН."))
	add(item("КАБИНЕТ", ItemOffice, none, "КАБ."))
	add(item("НОМЕР", ItemNumber, none, "НОМ.", "№", "N"))
	add(item("БЕЗ НОМЕРА", ItemNoNumber, none, "НЕ ОПРЕДЕЛЕНО", "НЕОПРЕДЕЛЕНО", "НЕ ЗАДАН", "Б.Н.").WithAcronym("Б/Н"))
	add(item("АБОНЕНТСКИЙ ЯЩИК", ItemPostOfficeBox, none, "А.Я.", "ПОЧТОВЫЙ ЯЩИК", "П.Я.", "А/Я"))
	add(item("ГОРОДСКАЯ СЛУЖЕБНАЯ ПОЧТА", ItemCSP, none).WithAcronym("ГСП"))
	add(item("ДОСТАВОЧНЫЙ УЧАСТОК", ItemDeliveryArea, none, "ДОСТ.УЧАСТОК", "ДОСТ.УЧ.", "ДОСТ.УЧ-К"))
	add(item("АДРЕС", ItemPrefix, none, "ЮРИДИЧЕСКИЙ АДРЕС", "ФАКТИЧЕСКИЙ АДРЕС", "ЮР.АДРЕС", "ПОЧТ.АДРЕС", "ФАКТ.АДРЕС",
		"П.АДРЕС", "ЮРИДИЧЕСКИЙ/ФАКТИЧЕСКИЙ АДРЕС", "ЮРИДИЧЕСКИЙ И ФАКТИЧЕСКИЙ АДРЕС", "ПОЧТОВЫЙ АДРЕС",
		"АДРЕС ПРОЖИВАНИЯ", "МЕСТО НАХОЖДЕНИЯ", "МЕСТОНАХОЖДЕНИЕ", "МЕСТОПОЛОЖЕНИЕ"))
	add(item("АДРЕСА", ItemPrefix, none, "ЮРИДИЧНА АДРЕСА", "ФАКТИЧНА АДРЕСА", "ПОШТОВА АДРЕСА", "АДРЕСА ПРОЖИВАННЯ",
		"МІСЦЕ ПЕРЕБУВАННЯ", "ПРОПИСКА").WithLang(ontology.Ua))
	add(item("КИЛОМЕТР", ItemKilometer, none, "КИЛОМ.", "КМ."))

	// Уточнения положения.
	detail := func(canonic string, d DetailType, part bool, forms ...string) {
		add(item(canonic, ItemDetail, itemSub{detail: d, forced: part}, forms...))
	}
	detail("ПЕРЕСЕЧЕНИЕ", DetailCross, false, "НА ПЕРЕСЕЧЕНИИ", "ПЕРЕКРЕСТОК", "УГОЛ", "НА УГЛУ", "УГЛУ", "НА ПЕРЕКРЕСТКЕ")
	detail("НА ТЕРРИТОРИИ", DetailNear, false)
	detail("СЕРЕДИНА", DetailNear, false)
	detail("ПРИМЫКАТЬ", DetailNear, false)
	detail("ГРАНИЧИТЬ", DetailNear, false)
	detail("ВБЛИЗИ", DetailNear, false, "У", "ВБЛ.", "В БЛИЗИ", "ВОЗЛЕ", "ОКОЛО", "НЕДАЛЕКО ОТ", "РЯДОМ С")
	detail("РАЙОН", DetailNear, false, "Р-Н")
	detail("В РАЙОНЕ", DetailNear, false, "В Р-НЕ")
	for _, s := range []string{"ПРИМЕРНО", "ПОРЯДКА", "ПРИБЛИЗИТЕЛЬНО", "ОРИЕНТИР", "НАПРАВЛЕНИЕ"} {
		detail(s, DetailUndefined, false)
	}
	for _, d := range []struct {
		words []string
		typ   DetailType
	}{
		{[]string{"СЕВЕРНЕЕ", "СЕВЕР"}, DetailNorth},
		{[]string{"ЮЖНЕЕ", "ЮГ"}, DetailSouth},
		{[]string{"ЗАПАДНЕЕ", "ЗАПАД"}, DetailWest},
		{[]string{"ВОСТОЧНЕЕ", "ВОСТОК"}, DetailEast},
		{[]string{"СЕВЕРО-ЗАПАДНЕЕ", "СЕВЕРО-ЗАПАД"}, DetailNorthWest},
		{[]string{"СЕВЕРО-ВОСТОЧНЕЕ", "СЕВЕРО-ВОСТОК"}, DetailNorthEast},
		{[]string{"ЮГО-ЗАПАДНЕЕ", "ЮГО-ЗАПАД"}, DetailSouthWest},
		{[]string{"ЮГО-ВОСТОЧНЕЕ", "ЮГО-ВОСТОК"}, DetailSouthEast},
	} {
		for _, w := range d.words {
			add(ontology.New(w, ItemDetail).WithTag2(itemSub{detail: d.typ}))
		}
	}
	detail("ЦЕНТРАЛЬНАЯ ЧАСТЬ", DetailCentral, true, "ЦЕНТР.ЧАСТЬ")
	detail("СЕВЕРНАЯ ЧАСТЬ", DetailNorth, true, "СЕВ.ЧАСТЬ", "СЕВЕРН.ЧАСТЬ")
	detail("СЕВЕРО-ВОСТОЧНАЯ ЧАСТЬ", DetailNorthEast, true, "СЕВЕРОВОСТОЧНАЯ ЧАСТЬ")
	detail("СЕВЕРО-ЗАПАДНАЯ ЧАСТЬ", DetailNorthWest, true, "СЕВЕРОЗАПАДНАЯ ЧАСТЬ")
	detail("ЮЖНАЯ ЧАСТЬ", DetailSouth, true, "ЮЖН.ЧАСТЬ", "ЮЖ.ЧАСТЬ")
	detail("ЮГО-ВОСТОЧНАЯ ЧАСТЬ", DetailSouthEast, true, "ЮГОВОСТОЧНАЯ ЧАСТЬ")
	detail("ЮГО-ЗАПАДНАЯ ЧАСТЬ", DetailSouthWest, true, "ЮГОЗАПАДНАЯ ЧАСТЬ")
	detail("ЗАПАДНАЯ ЧАСТЬ", DetailWest, true, "ЗАП.ЧАСТЬ", "ЗАПАД.ЧАСТЬ", "ЗАПАДН.ЧАСТЬ")
	detail("ВОСТОЧНАЯ ЧАСТЬ", DetailEast, true, "ВОСТ.ЧАСТЬ", "ВОСТОЧ.ЧАСТЬ", "ВОСТОЧН.ЧАСТЬ")
	add(item("ПРАВАЯ ЧАСТЬ", ItemDetail, itemSub{detail: DetailRight, forced: true}, "ПРАВ.ЧАСТЬ", "ПРАВАЯ СТОРОНА", "ПРАВ.СТОРОНА").
		AddVariant("СПРАВА"))
	add(item("ЛЕВАЯ ЧАСТЬ", ItemDetail, itemSub{detail: DetailLeft, forced: true}, "ЛЕВ.ЧАСТЬ", "ЛЕВАЯ СТОРОНА", "ЛЕВ.СТОРОНА").
		AddVariant("СЛЕВА"))

	// Объекты инфраструктуры, которые служат домом: "АЗС-3", "КТП 12".
	for _, s := range []struct{ canonic, acr string }{
		{"АВТОЗАПРАВОЧНАЯ СТАНЦИЯ", "АЗС"},
		{"АВТОНОМНАЯ ТЕПЛОВАЯ СТАНЦИЯ", "АТС"},
		{"ДОРОЖНО РЕМОНТНЫЙ ПУНКТ", "ДРП"},
		{"УСТАНОВКА КОМПЛЕКСНОЙ ПОДГОТОВКИ ГАЗА", "УКПГ"},
		{"УСТАНОВКА ПРЕДВАРИТЕЛЬНОЙ ПОДГОТОВКИ ГАЗА", "УППГ"},
		{"ЦЕНТРАЛЬНЫЙ ПУНКТ СБОРА НЕФТИ", "ЦПС"},
		{"КОМПЛЕКТНАЯ ТРАНСФОРМАТОРНАЯ ПОДСТАНЦИЯ", "КТП"},
		{"ТРАНСФОРМАТОРНАЯ ПОДСТАНЦИЯ", "ТП"},
		{"ДИСПЕТЧЕРСКАЯ НЕФТЕПРОВОДНАЯ СЛУЖБА", "ДНС"},
		{"КУСТОВАЯ НАСОСНАЯ СТАНЦИЯ", "КНС"},
		{"ЦЕНТРАЛЬНЫЙ РАСПРЕДЕЛИТЕЛЬНЫЙ ПУНКТ", "ЦРП"},
	} {
		t := ontology.New(s.canonic, ItemHouse).WithTag2(itemSub{house: HouseSpecial}).WithAcronym(s.acr)
		if s.acr == "АЗС" {
			t.AddVariant("АВТО ЗАПРАВОЧНАЯ СТАНЦИЯ")
		}
		if s.acr == "ЦРП" {
			t.AddVariant("ЦРП ТП")
		}
		add(t)
	}
	return res
}

// --- ПРОВЕРКИ ТЕРМИНОВ ---

// isRoadCanonic - каноническая форма обозначает дорогу.
func isRoadCanonic(canonic string) bool {
	switch canonic {
	case "АВТОДОРОГА", "ШОССЕ", "ТРАКТ", "АВТОШЛЯХ", "ШОСЕ":
		return true
	}
	return false
}

// regionTails - окончания названий территорий, а не улиц: "Северный массив", "Военный городок".
var regionTails = []string{"ГОРОДОК", "РАЙОН", "МАССИВ", "МАСИВ", "КОМПЛЕКС", "ЗОНА", "КВАРТАЛ", "ОТДЕЛЕНИЕ",
	"ПАРК", "МЕСТНОСТЬ", "РАЗЪЕЗД", "УРОЧИЩЕ", "САД", "МЕСТОРОЖДЕНИЕ"}

// isRegionCanonic - каноническая форма обозначает территорию ("МИКРОРАЙОН", "КАДАСТРОВЫЙ КВАРТАЛ").
func isRegionCanonic(canonic string) bool {
	for _, tail := range regionTails {
		if strings.HasSuffix(canonic, tail) {
			return true
		}
	}
	return false
}

// specTails - железнодорожные объекты.
var specTails = map[string]bool{"БУДКА": true, "КАЗАРМА": true}

// stdAdjectives - прилагательные, которые в названии улицы сами по себе служат именем.
var stdAdjectives = map[string]bool{"КРАСНЫЙ": true, "СОВЕТСКИЙ": true, "ЛЕНИНСКИЙ": true}

func fragKindOf(t *ontology.Termin) FragmentKind {
	if k, ok := t.Tag.(FragmentKind); ok {
		return k
	}
	return FragUndefined
}

func doubtCoefOf(t *ontology.Termin) int {
	if c, ok := t.Tag2.(int); ok {
		return c
	}
	return 0
}

func itemKindOf(t *ontology.Termin) ItemKind {
	if k, ok := t.Tag.(ItemKind); ok {
		return k
	}
	return ItemUndefined
}

func itemSubOf(t *ontology.Termin) itemSub {
	if s, ok := t.Tag2.(itemSub); ok {
		return s
	}
	return itemSub{}
}
