// dictionary.go содержит загрузчик скомпилированного морфологического словаря (DAWG).
// Файл отображается в память через mmap: узлы, ребра и полезная нагрузка не копируются
// в кучу Go, в память целиком загружается только сжатый gob-блок со строковыми пулами.
package analyzer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"
)

// ErrBadDictionary - файл словаря поврежден или имеет чужой формат.
var ErrBadDictionary = errors.New("некорректный файл словаря")

// dictMagic - сигнатура поддерживаемого формата.
const dictMagic = "DAW7"

// --- ФОРМАТ ФАЙЛА ---

// morphInfo - индексы леммы, набора тегов и парадигмы одной словоформы.
type morphInfo struct {
	LemmaID,
	TagsID,
	ParadigmID uint32
}

// predictInfo - правило предсказания для несловарных слов.
type predictInfo struct {
	Frequency  uint16 // Сколько раз правило встретилось в словаре.
	ParadigmID uint32 // Парадигма-образец.
	FormIdx    uint32 // Номер формы-образца в отсортированной парадигме.
	TagsID     uint32 // Теги формы-образца.
}

// flatNode - узел графа в том виде, в котором он лежит на диске.
type flatNode struct {
	PayloadIdx, EdgesIdx uint32
	PayloadLen, EdgesLen uint16
	IsFinal              bool
}

// flatEdge - ребро графа.
type flatEdge struct {
	Char   rune
	NodeID uint32
}

// paradigmStem - основа парадигмы и узел, в котором она заканчивается.
type paradigmStem struct {
	Stem   string
	NodeID uint32
}

// fileHeader - карта файла: смещения и размеры всех массивов.
type fileHeader struct {
	Magic                 [4]byte
	ComplexDataOffset     int64
	ComplexDataLength     int64
	NodesOffset           int64
	NodesCount            int64
	EdgesOffset           int64
	EdgesCount            int64
	PayloadsOffset        int64
	PayloadsCount         int64
	PredictNodesOffset    int64
	PredictNodesCount     int64
	PredictEdgesOffset    int64
	PredictEdgesCount     int64
	PredictPayloadsOffset int64
	PredictPayloadsCount  int64
}

// complexData - gob-часть файла. Имена полей совпадают с форматом компилятора словаря.
type complexData struct {
	LemmaPool         []string
	TagsPool          []string
	Paradigms         map[uint32][]paradigmStem
	ParadigmToLemmaID map[uint32]uint32
}

// Dictionary - словарь, отображенный в память.
type Dictionary struct {
	lemmaPool         []string
	tagsPool          []Morph
	paradigms         map[uint32][]paradigmStem
	paradigmToLemmaID map[uint32]uint32

	nodes    []flatNode
	edges    []flatEdge
	payloads []morphInfo

	predictNodes    []flatNode
	predictEdges    []flatEdge
	predictPayloads []predictInfo

	// Держим ссылку на отображение, пока словарь жив.
	mmapFile mmap.MMap
}

// --- ЗАГРУЗКА ---

// OpenDictionary открывает словарь по пути. Если файла нет, но рядом лежат его части
// (morph_aa, morph_ab, ...), они сначала склеиваются в один файл.
func OpenDictionary(path string, logger *zap.Logger) (*Dictionary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_"
		if err := mergeParts(filepath.Dir(path), prefix, path, logger); err != nil {
			return nil, fmt.Errorf("словарь '%s' не найден: %w", path, err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия словаря: %w", err)
	}
	defer file.Close()

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка mmap.Map: %w", err)
	}

	d, err := decodeDictionary(mapped)
	if err != nil {
		_ = mapped.Unmap()
		return nil, err
	}
	logger.Info("словарь загружен",
		zap.String("path", path),
		zap.Int("lemmas", len(d.lemmaPool)),
		zap.Int("nodes", len(d.nodes)))
	return d, nil
}

func decodeDictionary(mapped mmap.MMap) (*Dictionary, error) {
	var header fileHeader
	headerSize := int(unsafe.Sizeof(header))
	if len(mapped) < headerSize {
		return nil, fmt.Errorf("%w: файл слишком мал для заголовка", ErrBadDictionary)
	}
	if err := binary.Read(bytes.NewReader(mapped[:headerSize]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовка: %w", err)
	}
	if string(header.Magic[:]) != dictMagic {
		return nil, fmt.Errorf("%w: неверная сигнатура %q", ErrBadDictionary, header.Magic[:])
	}

	block, err := section(mapped, header.ComplexDataOffset, header.ComplexDataLength)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания gzip.Reader: %w", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки данных: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия gzip.Reader: %w", err)
	}
	var cd complexData
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&cd); err != nil {
		return nil, fmt.Errorf("ошибка gob-декодирования: %w", err)
	}

	d := &Dictionary{
		lemmaPool:         cd.LemmaPool,
		tagsPool:          make([]Morph, len(cd.TagsPool)),
		paradigms:         cd.Paradigms,
		paradigmToLemmaID: cd.ParadigmToLemmaID,
		mmapFile:          mapped,
	}
	// Теги разбираем один раз при загрузке, дальше работаем только с битами.
	for i, tags := range cd.TagsPool {
		d.tagsPool[i] = ParseTags(tags)
	}

	if d.nodes, err = view[flatNode](mapped, header.NodesOffset, header.NodesCount); err != nil {
		return nil, err
	}
	if d.edges, err = view[flatEdge](mapped, header.EdgesOffset, header.EdgesCount); err != nil {
		return nil, err
	}
	if d.payloads, err = view[morphInfo](mapped, header.PayloadsOffset, header.PayloadsCount); err != nil {
		return nil, err
	}
	if d.predictNodes, err = view[flatNode](mapped, header.PredictNodesOffset, header.PredictNodesCount); err != nil {
		return nil, err
	}
	if d.predictEdges, err = view[flatEdge](mapped, header.PredictEdgesOffset, header.PredictEdgesCount); err != nil {
		return nil, err
	}
	if d.predictPayloads, err = view[predictInfo](mapped, header.PredictPayloadsOffset, header.PredictPayloadsCount); err != nil {
		return nil, err
	}
	if len(d.nodes) == 0 {
		return nil, fmt.Errorf("%w: пустой граф", ErrBadDictionary)
	}
	return d, nil
}

func section(b []byte, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(b)) {
		return nil, fmt.Errorf("%w: секция [%d:%d] за пределами файла", ErrBadDictionary, offset, offset+length)
	}
	return b[offset : offset+length], nil
}

// view создает срез над областью mmap без копирования.
func view[T any](b []byte, offset, count int64) ([]T, error) {
	var zero T
	size := int64(unsafe.Sizeof(zero))
	raw, err := section(b, offset, count*size)
	if err != nil || count == 0 {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), count), nil
}

// mergeParts склеивает части словаря в один файл в лексикографическом порядке имен.
func mergeParts(dir, prefix, outputPath string, logger *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
	}
	var parts []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			parts = append(parts, filepath.Join(dir, e.Name()))
		}
	}
	if len(parts) == 0 {
		return fmt.Errorf("не найдено файлов с префиксом '%s' в каталоге '%s'", prefix, dir)
	}
	sort.Strings(parts)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", outputPath, err)
	}
	defer out.Close()
	for _, part := range parts {
		in, err := os.Open(part)
		if err != nil {
			return fmt.Errorf("ошибка открытия части %s: %w", part, err)
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return fmt.Errorf("ошибка копирования %s: %w", part, err)
		}
	}
	logger.Info("части словаря объединены", zap.String("path", outputPath), zap.Int("parts", len(parts)))
	return nil
}

// Close освобождает отображение файла.
func (d *Dictionary) Close() error {
	if d == nil || d.mmapFile == nil {
		return nil
	}
	err := d.mmapFile.Unmap()
	d.mmapFile = nil
	return err
}

// --- ПОИСК ---

// Lookup ищет слово в основном графе. Слово передается в любом регистре.
func (d *Dictionary) Lookup(word string) []WordForm {
	node, ok := d.walk(strings.ToLower(word), d.nodes, d.edges)
	if !ok || !d.nodes[node].IsFinal {
		return nil
	}
	n := d.nodes[node]
	res := make([]WordForm, 0, n.PayloadLen)
	for _, info := range d.payloads[n.PayloadIdx : n.PayloadIdx+uint32(n.PayloadLen)] {
		res = append(res, WordForm{
			Lemma:        normalizeTerm(d.lemmaPool[info.LemmaID]),
			Morph:        d.tagsPool[info.TagsID],
			InDictionary: true,
		})
	}
	return res
}

// Predict угадывает разбор несловарного слова по самому длинному известному суффиксу.
func (d *Dictionary) Predict(word string) []WordForm {
	lower := strings.ToLower(word)
	best, suffixLen := d.bestPrediction(lower)
	if best == nil {
		return nil
	}
	lemma := lower
	forms := d.paradigmForms(best.ParadigmID)
	if lemmaID, ok := d.paradigmToLemmaID[best.ParadigmID]; ok && int(best.FormIdx) < len(forms) {
		// Пропорциональная замена: слово/образец = лемма/лемма образца.
		sample := forms[int(best.FormIdx)]
		common := string([]rune(lower)[len([]rune(lower))-suffixLen:])
		samplePrefix := strings.TrimSuffix(sample, common)
		sampleLemma := d.lemmaPool[lemmaID]
		if strings.HasSuffix(sample, common) && strings.HasPrefix(sampleLemma, samplePrefix) {
			lemma = strings.TrimSuffix(lower, common) + strings.TrimPrefix(sampleLemma, samplePrefix)
		}
	}
	return []WordForm{{Lemma: normalizeTerm(lemma), Morph: d.tagsPool[best.TagsID]}}
}

// Inflect возвращает все словоформы слова вместе с их признаками.
func (d *Dictionary) Inflect(word string) map[string]Morph {
	lower := strings.ToLower(word)
	node, ok := d.walk(lower, d.nodes, d.edges)
	if !ok {
		return nil
	}
	n := d.nodes[node]
	paradigms := make(map[uint32]struct{})
	for _, info := range d.payloads[n.PayloadIdx : n.PayloadIdx+uint32(n.PayloadLen)] {
		paradigms[info.ParadigmID] = struct{}{}
	}
	res := make(map[string]Morph)
	for pID := range paradigms {
		for _, stem := range d.paradigms[pID] {
			tags := make(map[string]uint32)
			d.generate(stem.NodeID, []rune(stem.Stem), pID, tags)
			for form, tagsID := range tags {
				res[normalizeTerm(form)] |= d.tagsPool[tagsID]
			}
		}
	}
	return res
}

func (d *Dictionary) bestPrediction(word string) (*predictInfo, int) {
	runes := []rune(word)
	var best *predictInfo
	bestLen := 0
	// Суффиксы от длинного к короткому: первое найденное правило самое специфичное,
	// среди правил одной длины побеждает самое частое.
	for suffixLen := 5; suffixLen >= 1 && best == nil; suffixLen-- {
		if suffixLen > len(runes) {
			continue
		}
		node, ok := d.walk(string(runes[len(runes)-suffixLen:]), d.predictNodes, d.predictEdges)
		if !ok || !d.predictNodes[node].IsFinal {
			continue
		}
		n := d.predictNodes[node]
		for i, p := range d.predictPayloads[n.PayloadIdx : n.PayloadIdx+uint32(n.PayloadLen)] {
			if best == nil || p.Frequency > best.Frequency {
				cand := d.predictPayloads[n.PayloadIdx+uint32(i)]
				best = &cand
				bestLen = suffixLen
			}
		}
	}
	return best, bestLen
}

// paradigmForms - канонически отсортированные формы парадигмы, чтобы FormIdx
// всегда указывал на одно и то же слово.
func (d *Dictionary) paradigmForms(pID uint32) []string {
	set := make(map[string]uint32)
	for _, stem := range d.paradigms[pID] {
		d.generate(stem.NodeID, []rune(stem.Stem), pID, set)
	}
	forms := make([]string, 0, len(set))
	for f := range set {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	return forms
}

// walk проходит граф по символам слова.
func (d *Dictionary) walk(s string, nodes []flatNode, edges []flatEdge) (uint32, bool) {
	if len(nodes) == 0 {
		return 0, false
	}
	cur := uint32(0)
	for _, ch := range s {
		next, ok := child(cur, ch, nodes, edges)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// child ищет ребро бинарным поиском: ребра узла лежат непрерывным отсортированным блоком.
func child(node uint32, ch rune, nodes []flatNode, edges []flatEdge) (uint32, bool) {
	n := nodes[node]
	if n.EdgesLen == 0 {
		return 0, false
	}
	block := edges[n.EdgesIdx : n.EdgesIdx+uint32(n.EdgesLen)]
	i := sort.Search(len(block), func(i int) bool { return block[i].Char >= ch })
	if i < len(block) && block[i].Char == ch {
		return block[i].NodeID, true
	}
	return 0, false
}

// generate обходит граф в глубину от узла основы и собирает формы парадигмы.
func (d *Dictionary) generate(node uint32, prefix []rune, paradigm uint32, out map[string]uint32) {
	var dfs func(uint32, []rune)
	dfs = func(cur uint32, suffix []rune) {
		n := d.nodes[cur]
		if n.IsFinal {
			for _, info := range d.payloads[n.PayloadIdx : n.PayloadIdx+uint32(n.PayloadLen)] {
				if info.ParadigmID == paradigm {
					out[string(prefix)+string(suffix)] = info.TagsID
				}
			}
		}
		for _, e := range d.edges[n.EdgesIdx : n.EdgesIdx+uint32(n.EdgesLen)] {
			dfs(e.NodeID, append(suffix, e.Char))
		}
	}
	dfs(node, nil)
}
