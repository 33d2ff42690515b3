package config_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reymi-tech/multitenant/pkg/config"
)

// Each test uses its own config type: loaded configs are cached per type for
// the process lifetime, so sharing a type across tests would leak state.

func TestLoad(t *testing.T) {
	t.Run("parses env into struct", func(t *testing.T) {
		type parseEnv struct {
			Strategy string        `env:"TEST_LOAD_STRATEGY" envDefault:"header"`
			Timeout  time.Duration `env:"TEST_LOAD_TIMEOUT" envDefault:"5s"`
		}

		t.Setenv("TEST_LOAD_STRATEGY", "subdomain")

		var cfg parseEnv
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "subdomain", cfg.Strategy)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("defaults apply when unset", func(t *testing.T) {
		type defaultsEnv struct {
			HeaderName string `env:"TEST_LOAD_HEADER" envDefault:"x-tenant-id"`
		}

		var cfg defaultsEnv
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "x-tenant-id", cfg.HeaderName)
	})

	t.Run("required variable missing fails", func(t *testing.T) {
		type requiredEnv struct {
			URL string `env:"TEST_LOAD_REQUIRED_URL,required"`
		}

		var cfg requiredEnv
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		type nilEnv struct{}

		var cfg *nilEnv
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("same type is cached", func(t *testing.T) {
		type cachedEnv struct {
			Value string `env:"TEST_LOAD_CACHED" envDefault:"first"`
		}

		t.Setenv("TEST_LOAD_CACHED", "first")

		var a cachedEnv
		require.NoError(t, config.Load(&a))

		// Environment changes after the first load are not observed.
		t.Setenv("TEST_LOAD_CACHED", "second")

		var b cachedEnv
		require.NoError(t, config.Load(&b))
		assert.Equal(t, "first", b.Value)
	})

	t.Run("concurrent loads agree", func(t *testing.T) {
		type concurrentEnv struct {
			Value string `env:"TEST_LOAD_CONCURRENT" envDefault:"x"`
		}

		var wg sync.WaitGroup
		results := make([]concurrentEnv, 10)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = config.Load(&results[i])
			}()
		}
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, "x", r.Value)
		}
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type mustEnv struct {
			URL string `env:"TEST_MUSTLOAD_URL,required"`
		}

		assert.Panics(t, func() {
			var cfg mustEnv
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns on success", func(t *testing.T) {
		type mustOKEnv struct {
			Value string `env:"TEST_MUSTLOAD_OK" envDefault:"ok"`
		}

		var cfg mustOKEnv
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "ok", cfg.Value)
	})
}
