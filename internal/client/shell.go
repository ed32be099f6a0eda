// Package client implements the interactive shell used to manage accounts
// from a terminal.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/models"
)

// Store is the subset of the account store the shell drives.
type Store interface {
	Accounts() []models.Account
	Count() int
	Get(id string) (models.Account, error)
	Add(ctx context.Context) (models.Account, error)
	Remove(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, patch models.AccountPatch) (bool, error)
}

const helpText = "Available commands: help, add, list, count, get <id>, edit <id>, delete <id>, validate <id>, exit"

// Run reads commands from in until "exit" or end of input.
func Run(ctx context.Context, store Store, in io.Reader, out io.Writer) {
	p := NewPrompter(in, out)

	for {
		line, ok := p.Line("accounts> ")
		if !ok {
			fmt.Fprintln(out)
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Fprintln(out, helpText)
		case "add":
			acc, err := store.Add(ctx)
			switch {
			case err != nil && acc.ID == "":
				fmt.Fprintln(out, "add failed:", err)
			case err != nil:
				fmt.Fprintf(out, "Account %s added in memory but not saved: %v\n", acc.ID, err)
			default:
				fmt.Fprintf(out, "Account %s added\n", acc.ID)
			}
		case "list":
			list(out, store.Accounts())
		case "count":
			fmt.Fprintln(out, store.Count())
		case "get":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: get <id>")
				continue
			}
			acc, err := store.Get(args[1])
			if err != nil {
				fmt.Fprintln(out, "Account not found")
				continue
			}
			b, _ := json.MarshalIndent(acc, "", "  ")
			fmt.Fprintln(out, string(b))
		case "edit":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: edit <id>")
				continue
			}
			acc, err := store.Get(args[1])
			if err != nil {
				fmt.Fprintln(out, "Account not found")
				continue
			}
			patch := p.PromptEditAccount(acc)
			found, err := store.Update(ctx, acc.ID, patch)
			switch {
			case err != nil:
				fmt.Fprintln(out, "update failed:", err)
			case found:
				fmt.Fprintln(out, "Account updated")
			default:
				fmt.Fprintln(out, "Account not found")
			}
		case "delete":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: delete <id>")
				continue
			}
			found, err := store.Remove(ctx, args[1])
			switch {
			case err != nil:
				fmt.Fprintln(out, "delete failed:", err)
			case found:
				fmt.Fprintln(out, "Account deleted")
			default:
				fmt.Fprintln(out, "Account not found")
			}
		case "validate":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: validate <id>")
				continue
			}
			acc, err := store.Get(args[1])
			if err != nil {
				fmt.Fprintln(out, "Account not found")
				continue
			}
			fmt.Fprintln(out, describeValidation(accounts.ValidateFields(acc)))
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func list(out io.Writer, accs []models.Account) {
	fmt.Fprintf(out, "Stored accounts (%d):\n", len(accs))
	for _, a := range accs {
		valid := "valid"
		if !accounts.Validate(a) {
			valid = "invalid"
		}
		fmt.Fprintf(out, "ID: %s\nType: %s\nLogin: %s\nTags: %s\nStatus: %s\n---\n",
			a.ID, a.RecordType, a.Login, accounts.FormatTags(a.Tags), valid)
	}
}

func describeValidation(errs models.ValidationErrors) string {
	if !errs.Any() {
		return "Account is valid"
	}
	var fields []string
	if errs.Login {
		fields = append(fields, "login")
	}
	if errs.Password {
		fields = append(fields, "password")
	}
	return "Account is invalid: " + strings.Join(fields, ", ")
}
