package extractor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mozillazg/go-unidecode"
	"go.uber.org/zap"
)

// batchChunkSize - число строк в одном пакете воркера.
const batchChunkSize = 64

type chunk struct {
	offset int
	texts  []string
}

// BatchExtract разбирает строки пулом воркеров. Порядок результатов совпадает с
// порядком строк; для пустых строк и строк, не разобранных из-за отмены контекста,
// результат nil.
func (p *Processor) BatchExtract(ctx context.Context, texts []string) []*Result {
	results := make([]*Result, len(texts))
	if len(texts) == 0 {
		return results
	}
	started := time.Now()
	numWorkers := p.opts.WorkerCount()

	chunksCh := make(chan chunk, numWorkers)
	var wg sync.WaitGroup

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for ch := range chunksCh {
				for j, text := range ch.texts {
					res, err := p.Extract(ctx, text)
					if err != nil {
						if !errors.Is(err, ErrEmptyText) {
							p.logger.Debug("строка пропущена", zap.Int("index", ch.offset+j), zap.Error(err))
						}
						continue
					}
					// Каждый индекс пишет ровно один воркер.
					results[ch.offset+j] = res
				}
			}
		}()
	}

	// Диспетчер нарезает строки на пакеты; при отмене контекста новые пакеты не отправляются.
dispatch:
	for i := 0; i < len(texts); i += batchChunkSize {
		end := i + batchChunkSize
		if end > len(texts) {
			end = len(texts)
		}
		select {
		case chunksCh <- chunk{offset: i, texts: texts[i:end]}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(chunksCh)
	wg.Wait()

	found := 0
	for _, r := range results {
		if r != nil && r.Address != nil {
			found++
		}
	}
	p.logger.Info("пакет разобран",
		zap.Int("texts", len(texts)),
		zap.Int("addresses", found),
		zap.Int("workers", numWorkers),
		zap.Duration("elapsed", time.Since(started)))
	return results
}

// Key - ключ адреса для сравнения: транслитерация краткой записи в нижнем регистре.
// "ул. Мира, д. 5" и "УЛ. МИРА, Д. 5" дают один ключ.
func Key(r *Result) string {
	if r == nil || r.Address == nil {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(unidecode.Unidecode(r.Address.String()))), " ")
}

// Dedup оставляет первый результат для каждого адреса. Результаты без адреса
// отбрасываются.
func Dedup(results []*Result) []*Result {
	seen := make(map[string]struct{}, len(results))
	res := make([]*Result, 0, len(results))
	for _, r := range results {
		k := Key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		res = append(res, r)
	}
	return res
}
