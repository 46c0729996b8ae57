package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSpeedRegime, EnvMaxItems, EnvDictPath, EnvLogLevel, EnvWorkers, envMorphDictPath} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	o := Default()
	assert.True(t, o.SpeedRegime)
	assert.Equal(t, DefaultMaxItems, o.MaxItems)
	assert.NoError(t, o.Validate())
	assert.Equal(t, runtime.NumCPU(), o.WorkerCount())
}

func TestFromEnv(t *testing.T) {
	t.Run("Переменные окружения переопределяют значения", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvSpeedRegime, "false")
		t.Setenv(EnvMaxItems, "12")
		t.Setenv(EnvWorkers, "3")
		t.Setenv(EnvLogLevel, "debug")
		o, err := FromEnv()
		require.NoError(t, err)
		assert.False(t, o.SpeedRegime)
		assert.Equal(t, 12, o.MaxItems)
		assert.Equal(t, 3, o.WorkerCount())
		assert.Equal(t, "debug", o.LogLevel)
	})

	t.Run("Путь к словарю берется из переменной морфологии", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(envMorphDictPath, "/data/morph.dawg")
		o, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "/data/morph.dawg", o.DictPath)

		t.Setenv(EnvDictPath, "/data/address.dawg")
		o, err = FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "/data/address.dawg", o.DictPath)
	})

	t.Run("Нечисловое значение игнорируется", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvMaxItems, "много")
		o, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxItems, o.MaxItems)
	})

	t.Run("Недопустимое значение", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvMaxItems, "0")
		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"speed_regime": false, "max_items": 20, "log_level": "warn"}`), 0o644))

	o, err := Load(path)
	require.NoError(t, err)
	assert.False(t, o.SpeedRegime)
	assert.Equal(t, 20, o.MaxItems)
	assert.Equal(t, DefaultMaxStreetItems, o.MaxStreetItems)

	t.Setenv(EnvMaxItems, "30")
	o, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, o.MaxItems)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"max_items": "x"}`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Options)
	}{
		{"Слишком много элементов", func(o *Options) { o.MaxItems = maxItemsLimit + 1 }},
		{"Мало фрагментов улицы", func(o *Options) { o.MaxStreetItems = 1 }},
		{"Отрицательное число воркеров", func(o *Options) { o.Workers = -1 }},
		{"Неизвестный уровень логирования", func(o *Options) { o.LogLevel = "trace" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := Default()
			tc.modify(&o)
			assert.ErrorIs(t, o.Validate(), ErrInvalid)
		})
	}
}

func TestNewLogger(t *testing.T) {
	o := Default()
	o.LogLevel = "error"
	logger, err := o.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	o.LogLevel = "verbose"
	_, err = o.NewLogger()
	assert.ErrorIs(t, err, ErrInvalid)
}
