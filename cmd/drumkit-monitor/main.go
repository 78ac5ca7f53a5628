// ABOUTME: Entry point for the drumkit relay monitor
// ABOUTME: Connects to a note relay, directly or via mDNS, and prints note events
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/drumkit-go/internal/client"
	"github.com/harperreed/drumkit-go/internal/discovery"
	"github.com/harperreed/drumkit-go/internal/logging"
	"github.com/harperreed/drumkit-go/internal/protocol"
)

var (
	addr     = flag.String("addr", "", "Relay address host:port (skip mDNS)")
	name     = flag.String("name", "", "Monitor name sent to the relay (default: hostname-drumkit-monitor)")
	timeout  = flag.Duration("timeout", 10*time.Second, "How long to browse mDNS for a relay")
	logLevel = flag.String("log-level", "warn", "Log level: none, error, warn, info, debug")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "drumkit-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if _, err := logging.Configure(logging.Options{Level: *logLevel}); err != nil {
		return err
	}

	monitorName := *name
	if monitorName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		monitorName = fmt.Sprintf("%s-drumkit-monitor", hostname)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	relayAddr := *addr
	if relayAddr == "" {
		found, err := discover(ctx, *timeout)
		if err != nil {
			return err
		}
		relayAddr = found
	}

	c := client.NewClient(client.Config{ServerAddr: relayAddr, Name: monitorName})
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Close()

	hello := c.Hello()
	fmt.Printf("connected to %s (%s)\n", hello.Name, relayAddr)
	for _, v := range hello.Voices {
		fmt.Printf("  note %3d  %s\n", v.Note, v.Name)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-c.Events:
			if !ok {
				return fmt.Errorf("relay closed the connection")
			}
			printEvent(ev)
		}
	}
}

// discover browses mDNS until the first relay answers
func discover(ctx context.Context, timeout time.Duration) (string, error) {
	slog.Info("browsing for relays", "timeout", timeout)

	disc := discovery.NewManager(discovery.Config{})
	disc.Browse()
	defer disc.Stop()

	select {
	case relay := <-disc.Relays():
		slog.Info("discovered relay", "name", relay.Name, "addr", relay.Addr())
		return relay.Addr(), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("no relay found after %s", timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func printEvent(ev client.Event) {
	ts := time.Duration(ev.TimeUs) * time.Microsecond
	switch ev.Type {
	case protocol.TypeNoteOn:
		fmt.Printf("%12s  on   %3d %-8s vel %3d\n", ts, ev.Note, ev.Name, ev.Velocity)
	case protocol.TypeNoteOff:
		fmt.Printf("%12s  off  %3d %-8s\n", ts, ev.Note, ev.Name)
	}
}
