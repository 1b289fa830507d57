package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/dtroode/passworld/internal/client"
)

// Commands returns every command bound to g.
func Commands(g *Globals) []subcommands.Command {
	return []subcommands.Command{
		&listCmd{g: g},
		&saveCmd{g: g},
		&deleteCmd{g: g},
		&backupCmd{g: g},
		&restoreCmd{g: g},
	}
}

type listCmd struct {
	g     *Globals
	plain bool
	show  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list saved passwords" }
func (*listCmd) Usage() string {
	return `passworld list [-plain] [-show]

  Prints every saved password as a table. Passwords are masked unless -show is given.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of styled output")
	f.BoolVar(&c.show, "show", false, "show passwords in clear text")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, view, err := c.g.unlock(ctx)
	if err != nil {
		c.g.errorf("Error unlocking vault: %v", err)
		return subcommands.ExitFailure
	}

	if err := printMarkdown(c.g.Out, CredentialsMarkdown(view.Credentials(), c.show), c.plain); err != nil {
		c.g.errorf("Error printing passwords: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type saveCmd struct {
	g    *Globals
	form client.Credential
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save a new password or update an existing one" }
func (*saveCmd) Usage() string {
	return `passworld save [-id <id>] -site <site> -username <username> -password <password>

  Creates a password, or replaces the one with -id. Every field needs at least 3 characters.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.ID, "id", "", "id of the password to update")
	f.StringVar(&c.form.Site, "site", "", "website URL")
	f.StringVar(&c.form.Username, "username", "", "username")
	f.StringVar(&c.form.Password, "password", "", "password")
}

func (c *saveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, view, err := c.g.unlock(ctx)
	if err != nil {
		c.g.errorf("Error unlocking vault: %v", err)
		return subcommands.ExitFailure
	}

	saved, err := view.Save(ctx, c.form)
	if err != nil {
		c.g.errorf("Error saving password: %v", err)
		if errors.Is(err, client.ErrFieldTooShort) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	if c.form.ID != "" {
		fmt.Fprintf(c.g.Out, "Updated %s\n", saved.ID)
	} else {
		fmt.Fprintf(c.g.Out, "Saved %s\n", saved.ID)
	}
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	g  *Globals
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a saved password" }
func (*deleteCmd) Usage() string {
	return `passworld delete -id <id>
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the password to delete")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		c.g.errorf("Error: -id is required")
		return subcommands.ExitUsageError
	}

	_, view, err := c.g.unlock(ctx)
	if err != nil {
		c.g.errorf("Error unlocking vault: %v", err)
		return subcommands.ExitFailure
	}

	if err := view.Delete(ctx, c.id); err != nil {
		c.g.errorf("Error deleting password: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.g.Out, "Deleted %s\n", c.id)
	return subcommands.ExitSuccess
}

type backupCmd struct {
	g *Globals
}

func (*backupCmd) Name() string             { return "backup" }
func (*backupCmd) Synopsis() string         { return "upload a snapshot of the vault" }
func (*backupCmd) Usage() string            { return "passworld backup\n" }
func (*backupCmd) SetFlags(_ *flag.FlagSet) {}

func (c *backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	api, _, err := c.g.unlock(ctx)
	if err != nil {
		c.g.errorf("Error unlocking vault: %v", err)
		return subcommands.ExitFailure
	}

	b, err := api.Backup(ctx)
	if err != nil {
		c.g.errorf("Error backing up: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.g.Out, "Backed up %d passwords to %s\n", b.Count, b.Key)
	return subcommands.ExitSuccess
}

type restoreCmd struct {
	g   *Globals
	key string
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore passwords from a snapshot" }
func (*restoreCmd) Usage() string {
	return `passworld restore -key <backups/...json>

  Upserts every password of the snapshot. Passwords not in the snapshot are kept.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "snapshot key printed by backup")
}

func (c *restoreCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" {
		c.g.errorf("Error: -key is required")
		return subcommands.ExitUsageError
	}

	api, _, err := c.g.unlock(ctx)
	if err != nil {
		c.g.errorf("Error unlocking vault: %v", err)
		return subcommands.ExitFailure
	}

	n, err := api.Restore(ctx, c.key)
	if err != nil {
		c.g.errorf("Error restoring: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.g.Out, "Restored %d passwords\n", n)
	return subcommands.ExitSuccess
}
