// Package node wires the chain index, the on-disk store, and the peer
// connections together into the single validation loop spec.md §5
// describes. It owns no global state: everything a component needs —
// the logger, the data directory, the chain parameters — is passed in
// explicitly (spec.md §9's "no global mutable state" redesign note).
package node

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

// Config is the node's full set of runtime parameters, following the
// teacher's node/config.go layout: a flat, JSON-tagged struct with
// package-level defaults and an explicit Validate step rather than
// validation folded into field setters.
type Config struct {
	Network  string   `json:"network"`
	DataDir  string   `json:"data_dir"`
	BindAddr string   `json:"bind_addr"`
	LogLevel string   `json:"log_level"`
	Peers    []string `json:"peers"`
	MaxPeers int      `json:"max_peers"`

	// RebuildUTXOs forces a full replay of every stored block against a
	// fresh UTXO set on startup, bypassing the persisted tip height.
	RebuildUTXOs bool `json:"rebuild_utxos"`
}

var allowedLogLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultDataDir is $HOME/.rubin, falling back to a relative path if
// the home directory can't be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".rubin"
	}
	return filepath.Join(home, ".rubin")
}

// DefaultConfig returns the mainnet defaults spec.md §6 assumes.
func DefaultConfig() Config {
	return Config{
		Network:  "mainnet",
		DataDir:  DefaultDataDir(),
		BindAddr: "0.0.0.0:8333",
		Peers:    nil,
		LogLevel: "info",
		MaxPeers: 64,
	}
}

// NormalizePeers flattens and dedupes one or more comma-separated peer
// address lists, preserving first-seen order.
func NormalizePeers(raw ...string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, token := range raw {
		for _, p := range strings.Split(token, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig rejects a Config that would leave the node unable to
// start: a missing data directory, an unparseable bind address, or an
// unrecognized log level.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Network) == "" {
		return errors.New("network is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	if err := validateAddr(cfg.BindAddr); err != nil {
		return fmt.Errorf("invalid bind_addr: %w", err)
	}
	for _, peer := range cfg.Peers {
		if err := validatePeerAddr(peer); err != nil {
			return fmt.Errorf("invalid peer %q: %w", peer, err)
		}
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.MaxPeers <= 0 {
		return errors.New("max_peers must be > 0")
	}
	if cfg.MaxPeers > 4096 {
		return errors.New("max_peers must be <= 4096")
	}
	return nil
}

func validateAddr(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("empty address")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if strings.TrimSpace(port) == "" {
		return errors.New("missing port")
	}
	if strings.Contains(host, " ") {
		return errors.New("invalid host")
	}
	return nil
}

func validatePeerAddr(addr string) error {
	if err := validateAddr(addr); err != nil {
		return err
	}
	host, _, _ := net.SplitHostPort(addr)
	if strings.TrimSpace(host) == "" {
		return errors.New("missing host")
	}
	return nil
}
