// Пакет analyzer предоставляет морфологический разбор слов для распознавателя адресов.
// Основной источник - скомпилированный DAWG-словарь (см. dictionary.go), при его отсутствии
// используется встроенный угадыватель по окончаниям (см. guesser.go).
//
// Analyzer безопасен для конкурентного использования.
package analyzer

import (
	"errors"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EnvDictPath - имя переменной окружения морфологического словаря.
const EnvDictPath = "STEOSMORPHY_DICT_PATH"

// maxCacheSize - после этого числа слов кэш разборов сбрасывается.
const maxCacheSize = 100000

// Morphology - то, что распознавателю адресов нужно от морфологии.
type Morphology interface {
	// Analyze возвращает варианты разбора слова (в любом регистре).
	Analyze(word string) []WordForm
	// Nominative ставит прилагательное в именительный падеж указанного рода и числа.
	// Для слов, не являющихся прилагательными, возвращает слово в верхнем регистре.
	Nominative(word string, gender Morph, plural bool) string
}

// Analyzer - морфологический анализатор со словарем или без него.
type Analyzer struct {
	dict   *Dictionary
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string][]WordForm
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *Analyzer
)

// Default возвращает общий анализатор без словаря.
func Default() *Analyzer {
	defaultOnce.Do(func() {
		defaultAnalyzer = &Analyzer{logger: zap.NewNop(), cache: make(map[string][]WordForm)}
	})
	return defaultAnalyzer
}

// New создает анализатор. Пустой путь берется из EnvDictPath.
// Отсутствие словаря ошибкой не считается: анализатор переходит на угадыватель.
// Поврежденный словарь - ошибка.
func New(dictPath string, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{logger: logger, cache: make(map[string][]WordForm)}
	if dictPath == "" {
		dictPath = os.Getenv(EnvDictPath)
	}
	if dictPath == "" {
		logger.Warn("путь к словарю не задан, используется угадыватель", zap.String("env", EnvDictPath))
		return a, nil
	}
	dict, err := OpenDictionary(dictPath, logger)
	if err != nil {
		if errors.Is(err, ErrBadDictionary) {
			return nil, err
		}
		logger.Warn("словарь недоступен, используется угадыватель", zap.String("path", dictPath), zap.Error(err))
		return a, nil
	}
	a.dict = dict
	return a, nil
}

// HasDictionary сообщает, загружен ли словарь.
func (a *Analyzer) HasDictionary() bool { return a.dict != nil }

// Close освобождает словарь.
func (a *Analyzer) Close() error {
	if a.dict == nil {
		return nil
	}
	return a.dict.Close()
}

// Analyze возвращает варианты разбора. Результат кэшируется, вызывающий не должен его менять.
func (a *Analyzer) Analyze(word string) []WordForm {
	term := normalizeTerm(word)
	if term == "" {
		return nil
	}
	a.mu.RLock()
	forms, ok := a.cache[term]
	a.mu.RUnlock()
	if ok {
		return forms
	}

	forms = a.analyze(term)

	a.mu.Lock()
	if len(a.cache) >= maxCacheSize {
		a.cache = make(map[string][]WordForm)
	}
	a.cache[term] = forms
	a.mu.Unlock()
	return forms
}

func (a *Analyzer) analyze(term string) []WordForm {
	if m, ok := closedClasses[term]; ok {
		return []WordForm{{Lemma: term, Morph: m, InDictionary: true}}
	}
	if a.dict != nil {
		if forms := a.dict.Lookup(term); len(forms) > 0 {
			return forms
		}
		if forms := a.dict.Predict(term); len(forms) > 0 {
			return forms
		}
	}
	return guess(term)
}

// Nominative проецирует прилагательное в именительный падеж.
func (a *Analyzer) Nominative(word string, gender Morph, plural bool) string {
	term := normalizeTerm(word)
	if gender == 0 {
		gender = Masculine
	}
	if a.dict != nil {
		if form := a.dictionaryNominative(term, gender, plural); form != "" {
			return form
		}
	}
	if form := nominativeGuess(term, gender, plural); form != "" {
		return form
	}
	return term
}

func (a *Analyzer) dictionaryNominative(term string, gender Morph, plural bool) string {
	var isAdj bool
	for _, f := range a.dict.Lookup(term) {
		if f.Morph.IsAdjective() {
			isAdj = true
			break
		}
	}
	if !isAdj {
		return ""
	}
	number := Singular
	if plural {
		number = Plural
	}
	best := ""
	for form, m := range a.dict.Inflect(term) {
		if !m.IsAdjective() || !m.IsNominative() || !m.Has(number) {
			continue
		}
		if !plural && !m.Has(gender) {
			continue
		}
		// Полная форма длиннее краткой, из нескольких полных берем лексикографически первую.
		if len(form) > len(best) || len(form) == len(best) && form < best {
			best = form
		}
	}
	return best
}

// normalizeTerm приводит слово к верхнему регистру и заменяет Ё на Е.
func normalizeTerm(word string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(word)), "Ё", "Е")
}
