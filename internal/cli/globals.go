// Package cli implements the passworld command line client.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dtroode/passworld/internal/client"
	"github.com/dtroode/passworld/internal/config"
)

// Globals holds flags shared by every command.
type Globals struct {
	APIURL   string
	PIN      string
	Session  bool
	GateCode string

	Out io.Writer
	Err io.Writer
	// ReadPIN asks for the PIN when -pin is not given.
	ReadPIN func() (string, error)
}

// NewGlobals returns Globals writing to stdout and stderr and prompting on the terminal.
func NewGlobals(cfg *config.Client) *Globals {
	return &Globals{
		APIURL:   cfg.APIURL,
		GateCode: cfg.PIN,
		Out:      os.Stdout,
		Err:      os.Stderr,
		ReadPIN:  promptPIN,
	}
}

// SetFlags registers the global flags on f.
func (g *Globals) SetFlags(f *flag.FlagSet) {
	f.StringVar(&g.APIURL, "api", g.APIURL, "base URL of the passworld API")
	f.StringVar(&g.PIN, "pin", g.PIN, "PIN unlocking the vault; prompted for when empty")
	f.BoolVar(&g.Session, "session", g.Session, "open a server session with the PIN before any call")
}

func (g *Globals) errorf(format string, args ...any) {
	fmt.Fprintf(g.Err, format+"\n", args...)
}

// unlock builds an API client and an unlocked view over it.
func (g *Globals) unlock(ctx context.Context) (*client.Client, *client.View, error) {
	pin := g.PIN
	if pin == "" {
		if g.ReadPIN == nil {
			return nil, nil, errors.New("no PIN given")
		}
		var err error
		if pin, err = g.ReadPIN(); err != nil {
			return nil, nil, fmt.Errorf("failed to read PIN: %w", err)
		}
	}

	api := client.New(g.APIURL)
	var opts []client.ViewOption
	if g.Session {
		opts = append(opts, client.WithServerSession())
	}
	view := client.NewView(api, g.GateCode, opts...)
	if err := view.Unlock(ctx, pin); err != nil {
		return nil, nil, err
	}
	return api, view, nil
}

func promptPIN() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, use -pin")
	}
	fmt.Fprint(os.Stderr, "PIN: ")
	pin, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pin), nil
}
