package extractor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"

	"github.com/steosofficial/steosaddress/address"
	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/config"
)

func newTestProcessor(t testing.TB, mutate func(*config.Options)) *Processor {
	t.Helper()
	opts := config.Default()
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts, analyzer.Default(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, p.Close()) })
	return p
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := config.Default()
	opts.MaxItems = 0
	_, err := New(opts, analyzer.Default(), nil)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestExtract(t *testing.T) {
	p := newTestProcessor(t, nil)
	ctx := context.Background()

	t.Run("Пустой текст", func(t *testing.T) {
		for _, text := range []string{"", "   ", "\n\t"} {
			_, err := p.Extract(ctx, text)
			assert.ErrorIs(t, err, ErrEmptyText)
		}
	})

	t.Run("Полный адрес", func(t *testing.T) {
		res, err := p.Extract(ctx, "г. Москва, ул. Тверская, д. 7, кв. 12")
		require.NoError(t, err)
		require.NotNil(t, res)
		require.NotNil(t, res.Address)
		assert.NotEmpty(t, res.Items)
		assert.Equal(t, "12", res.Address.Flat)
		assert.NotEqual(t, res.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("Текст без адреса", func(t *testing.T) {
		res, err := p.Extract(ctx, "12 34")
		require.NoError(t, err)
		assert.Nil(t, res.Address)
		assert.Equal(t, "12 34", res.Text)
	})

	t.Run("Отмененный контекст", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := p.Extract(cctx, "ул. Мира, д. 5")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExtractBytes(t *testing.T) {
	p := newTestProcessor(t, nil)
	ctx := context.Background()
	text := "ул. Мира, д. 5"

	t.Run("Windows-1251", func(t *testing.T) {
		data, err := charmap.Windows1251.NewEncoder().Bytes([]byte(text))
		require.NoError(t, err)
		res, err := p.ExtractBytes(ctx, data, "cp1251")
		require.NoError(t, err)
		assert.Equal(t, text, res.Text)
	})

	t.Run("UTF-8 по умолчанию", func(t *testing.T) {
		res, err := p.ExtractBytes(ctx, []byte(text), "")
		require.NoError(t, err)
		assert.Equal(t, text, res.Text)
	})

	t.Run("Неизвестная кодировка", func(t *testing.T) {
		_, err := p.ExtractBytes(ctx, []byte(text), "koi8-r")
		assert.ErrorIs(t, err, ErrCharset)
	})

	t.Run("Не UTF-8", func(t *testing.T) {
		_, err := p.ExtractBytes(ctx, []byte{0xff, 0xfe, 0xfd}, "utf-8")
		assert.ErrorIs(t, err, ErrCharset)
	})
}

func TestBatchExtract(t *testing.T) {
	p := newTestProcessor(t, func(o *config.Options) { o.Workers = 4 })
	ctx := context.Background()

	f := gofakeit.New(42)
	texts := make([]string, 300)
	for i := range texts {
		switch i % 3 {
		case 0:
			texts[i] = fmt.Sprintf("ул. %s, д. %d", f.LastName(), f.Number(1, 200))
		case 1:
			texts[i] = f.Sentence(5)
		default:
			texts[i] = ""
		}
	}

	results := p.BatchExtract(ctx, texts)
	require.Len(t, results, len(texts))
	for i, r := range results {
		if texts[i] == "" {
			assert.Nil(t, r, "пустая строка %d", i)
			continue
		}
		require.NotNil(t, r, "строка %d", i)
		assert.Equal(t, texts[i], r.Text, "порядок результатов")
	}

	t.Run("Пустой пакет", func(t *testing.T) {
		assert.Empty(t, p.BatchExtract(ctx, nil))
	})

	t.Run("Отмененный контекст", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		res := p.BatchExtract(cctx, texts)
		require.Len(t, res, len(texts))
		for _, r := range res {
			assert.Nil(t, r)
		}
	})
}

// failingMorph - морфология, которая падает на слове "сбой".
type failingMorph struct{ analyzer.Morphology }

func (m failingMorph) Analyze(word string) []analyzer.WordForm {
	if strings.EqualFold(word, "СБОЙ") {
		panic("морфология: сбой")
	}
	return m.Morphology.Analyze(word)
}

func TestExtract_TrailingNumber(t *testing.T) {
	p := newTestProcessor(t, nil)
	ctx := context.Background()
	for _, text := range []string{"Мира 60", "53 Мира 60", "стр. Северный 90", "шоссе линия км шоссе (", "ул. Мира ж/", "д. 5 ("} {
		t.Run(text, func(t *testing.T) {
			var res *Result
			var err error
			require.NotPanics(t, func() { res, err = p.Extract(ctx, text) })
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, text, res.Text)
		})
	}
}

func TestExtract_RecoversFromPanic(t *testing.T) {
	p, err := New(config.Default(), failingMorph{analyzer.Default()}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, p.Close()) })
	ctx := context.Background()

	t.Run("Сбой ограничен строкой", func(t *testing.T) {
		res, err := p.Extract(ctx, "ул. Мира, сбой")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Nil(t, res.Address)
		assert.Nil(t, res.Items)
	})

	t.Run("Следующая строка разбирается", func(t *testing.T) {
		res, err := p.Extract(ctx, "г. Москва, ул. Тверская, д. 7, кв. 12")
		require.NoError(t, err)
		require.NotNil(t, res.Address)
		assert.Equal(t, "12", res.Address.Flat)
	})

	t.Run("Пакет не теряет остальные строки", func(t *testing.T) {
		texts := []string{"ул. Мира, д. 5, кв. 3", "сбой", "д. 7, кв. 1"}
		results := p.BatchExtract(ctx, texts)
		require.Len(t, results, len(texts))
		for i, r := range results {
			require.NotNil(t, r, "строка %d", i)
			assert.Equal(t, texts[i], r.Text)
		}
		assert.Nil(t, results[1].Address)
		require.NotNil(t, results[0].Address)
		assert.Equal(t, "3", results[0].Address.Flat)
		require.NotNil(t, results[2].Address)
		assert.Equal(t, "1", results[2].Address.Flat)
	})
}

func TestDedup(t *testing.T) {
	mira := func() *address.Address {
		s := &address.Street{}
		s.AddType("улица")
		s.AddName("МИРА")
		return &address.Address{Streets: []*address.Street{s}, House: "5"}
	}
	lenina := &address.Address{House: "7", Flat: "1"}

	results := []*Result{
		{Text: "ул. Мира, д. 5", Address: mira()},
		{Text: "нет адреса"},
		nil,
		{Text: "УЛ. МИРА Д.5", Address: mira()},
		{Text: "д. 7, кв. 1", Address: lenina},
	}
	got := Dedup(results)
	require.Len(t, got, 2)
	assert.Equal(t, "ул. Мира, д. 5", got[0].Text)
	assert.Equal(t, "д. 7, кв. 1", got[1].Text)

	assert.Equal(t, "ul. mira, d. 5", Key(results[0]))
	assert.Empty(t, Key(results[1]))
	assert.Empty(t, Key(nil))
}

func BenchmarkExtract(b *testing.B) {
	p := newTestProcessor(b, nil)
	ctx := context.Background()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		resultSink, _ = p.Extract(ctx, "г. Москва, ул. Тверская, д. 7, корп. 2, кв. 12")
	}
}

var resultSink *Result
