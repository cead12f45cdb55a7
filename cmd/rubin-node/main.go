// Command rubin-node runs the validating full node: it connects to the
// peer addresses given on the command line, requests headers from the
// local tip, validates every header and block a peer supplies, and
// serves the interactive commands spec.md §6 names over stdin/stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/jrick/logrotate/rotator"

	"github.com/rubin-chain/corenode/chain"
	"github.com/rubin-chain/corenode/logctx"
	"github.com/rubin-chain/corenode/node"
	"github.com/rubin-chain/corenode/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := node.DefaultConfig()

	fs := flag.NewFlagSet("rubin-node", flag.ContinueOnError)
	network := fs.String("network", cfg.Network, "network to validate against (mainnet only, for now)")
	dataDir := fs.String("datadir", cfg.DataDir, "directory for the header/block/UTXO store")
	bindAddr := fs.String("bind", cfg.BindAddr, "local address to accept inbound peer connections on (unused: inbound listening is an external collaborator)")
	logLevel := fs.String("log-level", cfg.LogLevel, "TRACE, DEBUG, INFO, WARN, or ERROR")
	maxPeers := fs.Int("max-peers", cfg.MaxPeers, "maximum simultaneous peer connections")
	rebuildUTXOs := fs.Bool("rebuild-utxos", false, "replay every stored block and rebuild the UTXO set from scratch, then exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	cfg.Network = *network
	cfg.DataDir = *dataDir
	cfg.BindAddr = *bindAddr
	cfg.LogLevel = *logLevel
	cfg.MaxPeers = *maxPeers
	cfg.RebuildUTXOs = *rebuildUTXOs
	cfg.Peers = node.NormalizePeers(fs.Args()...)

	if err := node.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "rubin-node: invalid configuration: %v\n", err)
		return 2
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "rubin-node: creating data directory: %v\n", err)
		return 1
	}

	logWriter, closeLog, err := openLogRotator(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rubin-node: opening log file: %v\n", err)
		return 1
	}
	defer closeLog()
	log := logctx.New(io.MultiWriter(os.Stdout, logWriter), "NODE", cfg.LogLevel)

	params := &chain.MainNetParams

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Errorf("open store: %v", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	bdb, err := node.LoadChain(db, params)
	if err != nil {
		log.Errorf("load chain: %v", err)
		return 1
	}
	log.Infof("loaded chain at height %d", bdb.Height())

	if cfg.RebuildUTXOs {
		if err := node.RebuildUTXOSet(db, bdb, params, log); err != nil {
			log.Errorf("rebuild-utxos: %v", err)
			return 1
		}
		log.Infof("rebuild-utxos: done, tip height %d", bdb.Height())
		return 0
	}

	n := node.NewWithChain(cfg, bdb, params, db, log)

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("received shutdown signal")
		close(stop)
	}()

	for _, addr := range cfg.Peers {
		go dialAndRun(addr, n, log, stop)
	}

	go runREPL(n, log, stop)

	n.Run(stop)
	return 0
}

func dialAndRun(addr string, n *node.Node, log *logctx.Logger, stop <-chan struct{}) {
	session, err := node.Dial(addr, n, log)
	if err != nil {
		log.Warnf("peer %s: %v", addr, err)
		return
	}
	if err := session.Run(stop); err != nil {
		log.Warnf("peer %s: disconnected: %v", addr, err)
	}
}

// replCommand splits one REPL input line into a command name and its
// arguments, using go-flags' positional-argument parser for the
// subcommand-shaped commands (`count mempool`, `header <id>`) spec.md
// §6 names, per SPEC_FULL.md's CLI layering decision.
type replCommand struct {
	Positional struct {
		Name string   `positional-arg-name:"command"`
		Args []string `positional-arg-name:"args"`
	} `positional-args:"yes"`
}

func runREPL(n *node.Node, log *logctx.Logger, stop <-chan struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-stop:
			return
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var parsed replCommand
		tokens := strings.Fields(line)
		if _, err := flags.ParseArgs(&parsed, tokens); err != nil {
			fmt.Println(err)
			continue
		}
		if parsed.Positional.Name == "" {
			continue
		}
		result := n.Command(parsed.Positional.Name, parsed.Positional.Args...)
		if result.Err != nil {
			fmt.Println(result.Err)
		} else {
			fmt.Println(result.Output)
		}
		if parsed.Positional.Name == "exit" {
			return
		}
	}
}

func openLogRotator(dataDir string) (io.Writer, func(), error) {
	r, err := rotator.New(dataDir+"/debug.log", 10*1024, false, 3)
	if err != nil {
		return nil, nil, err
	}
	return r, func() { _ = r.Close() }, nil
}
