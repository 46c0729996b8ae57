package main

// #include <stdlib.h>
import "C"

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/steosofficial/steosaddress/config"
	"github.com/steosofficial/steosaddress/extractor"
)

var (
	mu        sync.RWMutex
	processor *extractor.Processor
)

type errorResult struct {
	Error string `json:"error"`
}

//export CreateExtractor
func CreateExtractor() C.int {
	opts, err := config.FromEnv()
	if err != nil {
		return 1
	}
	logger, err := opts.NewLogger()
	if err != nil {
		logger = zap.NewNop()
	}
	p, err := extractor.New(opts, nil, logger)
	if err != nil {
		logger.Error("процессор адресов не создан", zap.Error(err))
		return 1
	}
	mu.Lock()
	old := processor
	processor = p
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return 0
}

//export ExtractAddress
func ExtractAddress(text *C.char) (out *C.char) {
	defer func() {
		if r := recover(); r != nil {
			out = marshal(errorResult{Error: fmt.Sprint("сбой разбора: ", r)})
		}
	}()
	mu.RLock()
	p := processor
	mu.RUnlock()
	if p == nil {
		return marshal(errorResult{Error: "процессор не создан"})
	}
	res, err := p.Extract(context.Background(), C.GoString(text))
	if err != nil {
		return marshal(errorResult{Error: err.Error()})
	}
	return marshal(res)
}

func marshal(v any) *C.char {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(errorResult{Error: err.Error()})
	}
	return C.CString(string(data))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseExtractor
func ReleaseExtractor() {
	mu.Lock()
	p := processor
	processor = nil
	mu.Unlock()
	if p != nil {
		_ = p.Close()
	}
}

func main() {}
