package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"

	"github.com/dtroode/passworld/internal/client"
)

const mask = "••••••••"

// CredentialsMarkdown renders credentials as a markdown table. Passwords are masked unless show is set.
func CredentialsMarkdown(credentials []client.Credential, show bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Saved passwords (%d)", len(credentials)))
	if len(credentials) == 0 {
		doc.PlainText("No passwords yet.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"ID", "Site", "Username", "Password"},
		Rows:   make([][]string, 0, len(credentials)),
	}
	for _, c := range credentials {
		password := mask
		if show {
			password = c.Password
		}
		table.Rows = append(table.Rows, []string{c.ID, escapeCell(c.Site), escapeCell(c.Username), escapeCell(password)})
	}
	doc.Table(table)

	return doc.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// printMarkdown writes doc to w, styled for the terminal unless plain is set.
func printMarkdown(w io.Writer, doc string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
