package address

import (
	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/token"
)

// --- ПОТОЛКИ ВЛОЖЕННОСТИ ---

// Значения подобраны эмпирически и требуют сверки с корпусом реальных адресов.
const (
	// maxFragmentLevel - вложенность разбора одного фрагмента названия улицы.
	maxFragmentLevel = 3
	// maxRunLevel - вложенность построения цепочки фрагментов.
	maxRunLevel = 2
	// maxItemLevel - вложенность разбора элемента адреса с учетом улиц.
	maxItemLevel = 1
	// maxPureLevel - вложенность "чистого" разбора элемента адреса.
	maxPureLevel = 2
	// maxListLevel - построение последовательности не вкладывается само в себя.
	maxListLevel = 0
	// maxNameRun - больше подряд идущих имен в цепочке не бывает.
	maxNameRun = 4
	// DefaultMaxItems - предел числа элементов в последовательности.
	DefaultMaxItems = 64
	// DefaultMaxStreetItems - предел числа фрагментов в цепочке улицы.
	DefaultMaxStreetItems = 10
)

// Options - параметры разбора одного документа.
type Options struct {
	// SpeedRegime включает кэш результатов по позиции токена.
	SpeedRegime bool
	// AddressOnly - весь текст является адресом (поле формы, строка реестра).
	AddressOnly    bool
	MaxItems       int
	MaxStreetItems int
}

// Context - состояние разбора одного документа: счетчики вложенности и кэш.
// Не предназначен для конкурентного использования; Ontology и Morph разделяются.
type Context struct {
	Doc   *token.Document
	Onto  *Ontology
	Morph analyzer.Morphology

	opts Options

	fragLevel int
	runLevel  int
	itemLevel int
	pureLevel int
	listLevel int

	fragCache  map[int]*Fragment
	itemCache  map[int]*Item
	bareCache  map[int]*Item
	cacheValid bool
}

// NewContext создает контекст документа. Nil-морфология заменяется анализатором по умолчанию.
func NewContext(doc *token.Document, onto *Ontology, morph analyzer.Morphology, opts Options) *Context {
	if morph == nil {
		morph = analyzer.Default()
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.MaxStreetItems <= 0 {
		opts.MaxStreetItems = DefaultMaxStreetItems
	}
	c := &Context{Doc: doc, Onto: onto, Morph: morph, opts: opts}
	c.Invalidate()
	return c
}

// Options возвращает параметры разбора.
func (c *Context) Options() Options { return c.opts }

// SetAddressOnly переключает режим "весь текст - адрес". Кэш при этом сбрасывается:
// результаты разбора зависят от режима.
func (c *Context) SetAddressOnly(v bool) {
	if c.opts.AddressOnly != v {
		c.opts.AddressOnly = v
		c.Invalidate()
	}
}

// Invalidate сбрасывает кэш.
func (c *Context) Invalidate() {
	c.fragCache = make(map[int]*Fragment)
	c.itemCache = make(map[int]*Item)
	c.bareCache = make(map[int]*Item)
	c.cacheValid = c.opts.SpeedRegime
}

func enter(level *int, ceiling int) bool {
	if *level > ceiling {
		return false
	}
	*level++
	return true
}

func leave(level *int) { *level-- }

// --- ТОКЕНЫ ---

func (c *Context) tok(i int) *token.Token { return c.Doc.At(i) }

// addressMode - весь документ является адресом.
func (c *Context) addressMode() bool { return c.opts.AddressOnly }

// skipCommas возвращает первую позицию не раньше i, не являющуюся запятой.
func (c *Context) skipComma(i int) int {
	if c.tok(i).IsComma() {
		return i + 1
	}
	return i
}

// geoBefore - непосредственно перед позицией i (через знаки препинания и предлоги)
// стоит географический объект.
func (c *Context) geoBefore(i int) bool {
	return c.geoEntityBefore(i) != nil
}

func (c *Context) geoEntityBefore(i int) *token.Entity {
	for j, n := i-1, 0; j >= 0 && n < 4; j, n = j-1, n+1 {
		t := c.tok(j)
		if t.IsReferent(token.Geo) {
			return t.Entity
		}
		if t.IsCharOf(",.;:") || t.IsPreposition() {
			if t.NewlinesAfter > 1 {
				return nil
			}
			continue
		}
		return nil
	}
	return nil
}

// prevIsPreposition - перед позицией i стоит словарный предлог.
func (c *Context) prevIsPreposition(i int) bool {
	return c.tok(i - 1).DictionaryClass().IsPreposition()
}

// hasNewlineBetween - перевод строки между токенами b и e (перед e включительно).
func (c *Context) hasNewlineBetween(b, e int) bool { return c.Doc.HasNewlineInside(b, e) }
