package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestNormalizePeersDedupesAndFlattens(t *testing.T) {
	got := NormalizePeers("10.0.0.1:8333, 10.0.0.2:8333", "10.0.0.1:8333", "  ", "10.0.0.3:8333")
	require.Equal(t, []string{"10.0.0.1:8333", "10.0.0.2:8333", "10.0.0.3:8333"}, got)
}

func TestValidateConfigRejectsBadBindAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BindAddr = "not-an-address"
	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigRejectsBadPeerAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Peers = []string{"no-port-here"}
	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigRejectsUnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigRejectsMaxPeersOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPeers = 0
	require.Error(t, ValidateConfig(cfg))

	cfg.MaxPeers = 5000
	require.Error(t, ValidateConfig(cfg))
}
