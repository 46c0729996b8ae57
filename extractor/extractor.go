// Пакет extractor - выделение адреса из строки: токенизация, построение
// последовательности элементов и свертка в адрес.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/steosofficial/steosaddress/address"
	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/config"
	"github.com/steosofficial/steosaddress/token"
)

var (
	// ErrEmptyText - на вход подана пустая строка.
	ErrEmptyText = errors.New("пустой текст")
	// ErrCharset - кодировка не поддерживается.
	ErrCharset = errors.New("неизвестная кодировка")
)

// Result - результат разбора одной строки. Address == nil - адрес не найден.
type Result struct {
	ID      uuid.UUID        `json:"id"`
	Text    string           `json:"text"`
	Address *address.Address `json:"address,omitempty"`
	Items   []*address.Item  `json:"items,omitempty"`
}

// Processor извлекает адреса. Словарь улиц строится один раз и разделяется
// между горутинами; состояние разбора создается на каждую строку.
type Processor struct {
	opts   config.Options
	onto   *address.Ontology
	morph  analyzer.Morphology
	own    *analyzer.Analyzer
	logger *zap.Logger
}

// New создает процессор. morph == nil - анализатор строится по opts.DictPath.
func New(opts config.Options, morph analyzer.Morphology, logger *zap.Logger) (*Processor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	onto, err := address.NewOntology()
	if err != nil {
		return nil, fmt.Errorf("построение словаря: %w", err)
	}
	p := &Processor{opts: opts, onto: onto, morph: morph, logger: logger}
	if morph == nil {
		a, err := analyzer.New(opts.DictPath, logger)
		if err != nil {
			return nil, fmt.Errorf("загрузка морфологии: %w", err)
		}
		p.morph, p.own = a, a
	}
	logger.Info("процессор адресов готов",
		zap.Bool("speed_regime", opts.SpeedRegime),
		zap.Int("max_items", opts.MaxItems),
		zap.Int("workers", opts.WorkerCount()))
	return p, nil
}

// Close освобождает словарь морфологии, если процессор загрузил его сам.
func (p *Processor) Close() error {
	if p.own == nil {
		return nil
	}
	return p.own.Close()
}

func (p *Processor) contextOptions() address.Options {
	return address.Options{
		SpeedRegime:    p.opts.SpeedRegime,
		AddressOnly:    true,
		MaxItems:       p.opts.MaxItems,
		MaxStreetItems: p.opts.MaxStreetItems,
	}
}

// Extract разбирает строку, целиком являющуюся адресом.
func (p *Processor) Extract(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{ID: uuid.New(), Text: text}
	tokens := p.locate(res)
	if res.Address == nil {
		p.logger.Debug("адрес не найден", zap.String("id", res.ID.String()), zap.Int("tokens", tokens))
	} else {
		p.logger.Debug("адрес выделен",
			zap.String("id", res.ID.String()),
			zap.String("address", res.Address.String()),
			zap.Int("items", len(res.Items)))
	}
	return res, nil
}

// locate ищет в строке первую последовательность с опорой и заполняет res.
// Сбой разбора ограничен строкой: адрес считается не найденным.
func (p *Processor) locate(res *Result) (tokens int) {
	defer func() {
		if r := recover(); r != nil {
			res.Items, res.Address = nil, nil
			p.logger.Error("сбой разбора строки",
				zap.String("id", res.ID.String()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	doc := token.Tokenize(res.Text, p.morph)
	tokens = doc.Len()
	c := address.NewContext(doc, p.onto, p.morph, p.contextOptions())
	for i := 0; i < doc.Len(); i++ {
		items := c.BuildItems(i)
		if items == nil {
			continue
		}
		if a := address.Define(items); a != nil {
			res.Items, res.Address = items, a
			break
		}
		// Последовательность без опоры: продолжаем после нее.
		i = items[len(items)-1].End
	}
	return tokens
}

// ExtractBytes декодирует данные ("utf-8" или "windows-1251") и разбирает их.
func (p *Processor) ExtractBytes(ctx context.Context, data []byte, charset string) (*Result, error) {
	text, err := decode(data, charset)
	if err != nil {
		return nil, err
	}
	return p.Extract(ctx, text)
}

func decode(data []byte, charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: данные не в UTF-8", ErrCharset)
		}
		return string(data), nil
	case "windows-1251", "cp1251", "win1251":
		r := transform.NewReader(bytes.NewReader(data), charmap.Windows1251.NewDecoder())
		out, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("декодирование windows-1251: %w", err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("%w: %q", ErrCharset, charset)
}
