// Пакет config - параметры извлечения адресов: из значений по умолчанию, JSON-файла и окружения.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid - недопустимые значения параметров.
var ErrInvalid = errors.New("некорректная конфигурация")

const (
	EnvSpeedRegime = "STEOSADDRESS_SPEED_REGIME"
	EnvMaxItems    = "STEOSADDRESS_MAX_ITEMS"
	EnvDictPath    = "STEOSADDRESS_DICT_PATH"
	EnvLogLevel    = "STEOSADDRESS_LOG_LEVEL"
	EnvWorkers     = "STEOSADDRESS_WORKERS"

	// envMorphDictPath - переменная словаря морфологии, используется, если своя не задана.
	envMorphDictPath = "STEOSMORPHY_DICT_PATH"
)

const (
	DefaultMaxItems       = 64
	DefaultMaxStreetItems = 10
	maxItemsLimit         = 1024
)

// Options - параметры процессора.
type Options struct {
	// SpeedRegime включает кэш разбора по позиции токена.
	SpeedRegime bool `json:"speed_regime"`
	// MaxItems - предел числа элементов адреса в одной последовательности.
	MaxItems int `json:"max_items"`
	// MaxStreetItems - предел числа фрагментов в названии улицы.
	MaxStreetItems int `json:"max_street_items"`
	// DictPath - путь к словарю морфологии; пустой путь - встроенный угадыватель.
	DictPath string `json:"dict_path"`
	LogLevel string `json:"log_level"`
	// Workers - число воркеров пакетной обработки, 0 - по числу CPU.
	Workers int `json:"workers"`
}

// Default возвращает параметры по умолчанию.
func Default() Options {
	return Options{
		SpeedRegime:    true,
		MaxItems:       DefaultMaxItems,
		MaxStreetItems: DefaultMaxStreetItems,
		LogLevel:       "info",
	}
}

// FromEnv возвращает параметры по умолчанию, переопределенные переменными окружения.
func FromEnv() (Options, error) {
	o := Default()
	o.applyEnv()
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Load читает JSON-файл поверх значений по умолчанию, затем применяет окружение.
func Load(path string) (Options, error) {
	o := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	o.applyEnv()
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o *Options) applyEnv() {
	o.SpeedRegime = getEnvBool(EnvSpeedRegime, o.SpeedRegime)
	o.MaxItems = getEnvInt(EnvMaxItems, o.MaxItems)
	o.DictPath = getEnv(EnvDictPath, getEnv(envMorphDictPath, o.DictPath))
	o.LogLevel = getEnv(EnvLogLevel, o.LogLevel)
	o.Workers = getEnvInt(EnvWorkers, o.Workers)
}

// Validate проверяет значения. Все ошибки собираются в одну.
func (o Options) Validate() error {
	var problems []string
	if o.MaxItems < 1 || o.MaxItems > maxItemsLimit {
		problems = append(problems, fmt.Sprintf("max_items должен быть от 1 до %d, получено %d", maxItemsLimit, o.MaxItems))
	}
	if o.MaxStreetItems < 2 {
		problems = append(problems, fmt.Sprintf("max_street_items должен быть не меньше 2, получено %d", o.MaxStreetItems))
	}
	if o.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers не может быть отрицательным: %d", o.Workers))
	}
	if _, err := parseLevel(o.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// WorkerCount - фактическое число воркеров.
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// NewLogger строит production-логгер zap с уровнем из параметров.
func (o Options) NewLogger() (*zap.Logger, error) {
	level, err := parseLevel(o.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("неизвестный уровень логирования %q (debug, info, warn, error)", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
