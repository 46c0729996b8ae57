package analyzer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findForm ищет вариант разбора с нужной леммой и признаками.
func findForm(forms []WordForm, lemma string, mask Morph) *WordForm {
	for i := range forms {
		if forms[i].Lemma == lemma && forms[i].Morph&mask == mask {
			return &forms[i]
		}
	}
	return nil
}

// --- УГАДЫВАТЕЛЬ ---

func TestAnalyze_Guesser(t *testing.T) {
	a := Default()
	testCases := []struct {
		name  string
		word  string
		lemma string
		mask  Morph
	}{
		{"Предлог (в)", "в", "В", Preposition},
		{"Союз (и)", "И", "И", Conjunction},
		{"Существительное на -а (улица)", "улица", "УЛИЦА", Noun | Nominative | Feminine | Singular},
		{"Фамилия в родительном (Ленина)", "Ленина", "ЛЕНИН", Noun | ProperName | Genitive | Masculine},
		{"Фамилия в именительном (Гагарин)", "ГАГАРИН", "ГАГАРИН", Noun | ProperName | Nominative},
		{"Прилагательное женского рода (Центральная)", "Центральная", "ЦЕНТРАЛЬНЫЙ", Adjective | Nominative | Feminine},
		{"Прилагательное в родительном (Ленинского)", "ЛЕНИНСКОГО", "ЛЕНИНСКИЙ", Adjective | Genitive | Masculine},
		{"Мягкая основа (Средняя)", "средняя", "СРЕДНИЙ", Adjective | Nominative | Feminine},
		{"Лексикон по основе (Победы)", "Победы", "ПОБЕДА", Noun | Genitive | Feminine},
		{"Лексикон по основе (Мира)", "мира", "МИР", Noun | Genitive | Masculine},
		{"Буква Ё (Зелёная)", "Зелёная", "ЗЕЛЕНЫЙ", Adjective | Feminine},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			forms := a.Analyze(tc.word)
			require.NotEmpty(t, forms)
			assert.NotNil(t, findForm(forms, tc.lemma, tc.mask), "разборы: %+v", forms)
		})
	}
}

func TestAnalyze_VerbalNounIsNotAdjective(t *testing.T) {
	a := Default()
	for _, w := range []string{"строение", "ЗДАНИЕ", "Владение"} {
		t.Run(w, func(t *testing.T) {
			m := Union(a.Analyze(w))
			assert.True(t, m.IsNoun())
			assert.False(t, m.IsAdjective())
		})
	}
}

func TestAnalyze_LexiconMarksDictionary(t *testing.T) {
	a := Default()
	assert.True(t, DictionaryClass(a.Analyze("ПОБЕДЫ")).IsNoun())
	assert.Zero(t, DictionaryClass(a.Analyze("ЛЕНИНА")))
}

func TestNominative(t *testing.T) {
	a := Default()
	testCases := []struct {
		name   string
		word   string
		gender Morph
		plural bool
		want   string
	}{
		{"Мужской из родительного", "Ленинского", Masculine, false, "ЛЕНИНСКИЙ"},
		{"Женский из косвенного", "Центральной", Feminine, false, "ЦЕНТРАЛЬНАЯ"},
		{"Смена рода", "Центральная", Masculine, false, "ЦЕНТРАЛЬНЫЙ"},
		{"Мягкая основа", "Средней", Feminine, false, "СРЕДНЯЯ"},
		{"Ударное окончание", "Тверской", Masculine, false, "ТВЕРСКОЙ"},
		{"Ударное окончание в женском роде", "Тверской", Feminine, false, "ТВЕРСКАЯ"},
		{"Средний род", "Садовая", Neuter, false, "САДОВОЕ"},
		{"Множественное число", "Садовая", Masculine, true, "САДОВЫЕ"},
		{"Не прилагательное", "Мира", Feminine, false, "МИРА"},
		{"Род не задан", "Лесной", 0, false, "ЛЕСНОЙ"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Nominative(tc.word, tc.gender, tc.plural))
		})
	}
}

func TestParseTags(t *testing.T) {
	m := ParseTags("Существительное,Мужской,Единственное число,Родительный,Неизвестный")
	assert.True(t, m.IsNoun())
	assert.True(t, m.IsGenitive())
	assert.Equal(t, Masculine, m.Gender())
	assert.Equal(t, Singular, m.Number())
	assert.Equal(t, "Существительное,Мужской,Единственное число,Родительный", m.String())
	assert.Equal(t, AllCases, ParseTags("Несклоняемый").Case())
}

func TestAnalyze_Concurrent(t *testing.T) {
	a := Default()
	words := []string{"улица", "Ленина", "Победы", "Центральная", "дом"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				assert.NotEmpty(t, a.Analyze(w))
			}
		}()
	}
	wg.Wait()
}

// --- СЛОВАРЬ ---

// rawBytes возвращает байтовое представление среза в памяти, как его пишет компилятор словаря.
func rawBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// writeTestDictionary собирает словарь из одного слова "дом".
func writeTestDictionary(t *testing.T, path string) {
	t.Helper()
	nodes := []flatNode{
		{EdgesIdx: 0, EdgesLen: 1},
		{EdgesIdx: 1, EdgesLen: 1},
		{EdgesIdx: 2, EdgesLen: 1},
		{PayloadIdx: 0, PayloadLen: 1, IsFinal: true},
	}
	edges := []flatEdge{{Char: 'д', NodeID: 1}, {Char: 'о', NodeID: 2}, {Char: 'м', NodeID: 3}}
	payloads := []morphInfo{{LemmaID: 0, TagsID: 0, ParadigmID: 1}}

	var gobBuf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&gobBuf).Encode(complexData{
		LemmaPool:         []string{"дом"},
		TagsPool:          []string{"Существительное,Мужской,Единственное число,Именительный"},
		Paradigms:         map[uint32][]paradigmStem{1: {{Stem: "д", NodeID: 1}}},
		ParadigmToLemmaID: map[uint32]uint32{1: 0},
	}))
	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	_, err := gz.Write(gobBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	align := func(n int64) int64 { return (n + 7) &^ 7 }
	var body bytes.Buffer
	offset := int64(256)
	place := func(b []byte) int64 {
		at := offset
		body.Write(b)
		pad := align(int64(len(b))) - int64(len(b))
		body.Write(make([]byte, pad))
		offset += int64(len(b)) + pad
		return at
	}

	var h fileHeader
	copy(h.Magic[:], dictMagic)
	h.ComplexDataLength = int64(gzBuf.Len())
	h.ComplexDataOffset = place(gzBuf.Bytes())
	h.NodesCount = int64(len(nodes))
	h.NodesOffset = place(rawBytes(nodes))
	h.EdgesCount = int64(len(edges))
	h.EdgesOffset = place(rawBytes(edges))
	h.PayloadsCount = int64(len(payloads))
	h.PayloadsOffset = place(rawBytes(payloads))

	var file bytes.Buffer
	require.NoError(t, binary.Write(&file, binary.LittleEndian, h))
	file.Write(make([]byte, 256-file.Len()))
	file.Write(body.Bytes())
	require.NoError(t, os.WriteFile(path, file.Bytes(), 0o644))
}

func TestDictionary_Lookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morph.dawg")
	writeTestDictionary(t, path)

	d, err := OpenDictionary(path, nil)
	require.NoError(t, err)
	defer d.Close()

	forms := d.Lookup("ДОМ")
	require.Len(t, forms, 1)
	assert.Equal(t, "ДОМ", forms[0].Lemma)
	assert.True(t, forms[0].InDictionary)
	assert.True(t, forms[0].Morph.IsNoun())
	assert.True(t, forms[0].Morph.IsNominative())

	assert.Nil(t, d.Lookup("до"), "незаконченное слово")
	assert.Nil(t, d.Lookup("кот"))
	assert.Nil(t, d.Predict("кот"), "пустой граф предсказаний")

	inflected := d.Inflect("дом")
	require.Contains(t, inflected, "ДОМ")
	assert.True(t, inflected["ДОМ"].IsNoun())
}

func TestDictionary_MergesParts(t *testing.T) {
	dir := t.TempDir()
	whole := filepath.Join(dir, "whole.dawg")
	writeTestDictionary(t, whole)
	data, err := os.ReadFile(whole)
	require.NoError(t, err)
	half := len(data) / 2
	require.NoError(t, os.WriteFile(filepath.Join(dir, "morph_aa"), data[:half], 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "morph_ab"), data[half:], 0o644))

	d, err := OpenDictionary(filepath.Join(dir, "morph.dawg"), nil)
	require.NoError(t, err)
	defer d.Close()
	assert.Len(t, d.Lookup("дом"), 1)
}

func TestNew_Fallbacks(t *testing.T) {
	t.Run("Словарь отсутствует", func(t *testing.T) {
		a, err := New(filepath.Join(t.TempDir(), "нет.dawg"), nil)
		require.NoError(t, err)
		assert.False(t, a.HasDictionary())
		assert.NotEmpty(t, a.Analyze("улица"))
	})
	t.Run("Чужой формат", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.dawg")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'X'}, 512), 0o644))
		_, err := New(path, nil)
		assert.ErrorIs(t, err, ErrBadDictionary)
	})
	t.Run("Словарь загружен", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "morph.dawg")
		writeTestDictionary(t, path)
		a, err := New(path, nil)
		require.NoError(t, err)
		defer a.Close()
		assert.True(t, a.HasDictionary())
		assert.True(t, a.Analyze("Дом")[0].InDictionary)
		// Несловарное слово уходит в угадыватель.
		assert.NotNil(t, findForm(a.Analyze("Ленина"), "ЛЕНИН", ProperName))
	})
}

var benchmarkResult interface{}

func BenchmarkAnalyze(b *testing.B) {
	a := Default()
	words := []string{"улица", "Ленина", "Победы", "Центральная", "проспект", "Тверской"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchmarkResult = a.Analyze(words[i%len(words)])
	}
}
