package config

import (
	"testing"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/require"
)

func defaultsKoanf(t *testing.T) *koanf.Koanf {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()))
	return k
}
