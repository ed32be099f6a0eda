package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/models"
)

// clearValue entered for the password sets it to null.
const clearValue = "-"

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter returns a Prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Line prints prompt and returns the next trimmed input line. ok is false
// once input is exhausted.
func (p *Prompter) Line(prompt string) (line string, ok bool) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

// PromptEditAccount asks for each editable field of acc. An empty answer
// keeps the current value; "-" as the password clears it.
func (p *Prompter) PromptEditAccount(acc models.Account) models.AccountPatch {
	var patch models.AccountPatch

	if login, ok := p.Line(fmt.Sprintf("Login [%s]: ", acc.Login)); ok && login != "" {
		patch.Login = models.Some(login)
	}

	if pw, ok := p.Line("Password (empty keeps, '-' clears): "); ok && pw != "" {
		if pw == clearValue {
			patch.Password = models.Some[*string](nil)
		} else {
			patch.Password = models.Some(models.StringPtr(pw))
		}
	}

	prompt := fmt.Sprintf("Record type (%s/%s/%s) [%s]: ",
		models.RecordTypeLDAP, models.RecordTypeLocal, models.RecordTypeLocalized, acc.RecordType)
	if rt, ok := p.Line(prompt); ok && rt != "" {
		if t := models.RecordType(rt); t.Known() {
			patch.RecordType = models.Some(t)
		} else {
			fmt.Fprintf(p.out, "Unknown record type %q, keeping %s\n", rt, acc.RecordType)
		}
	}

	if tags, ok := p.Line(fmt.Sprintf("Tags (a; b; c) [%s]: ", accounts.FormatTags(acc.Tags))); ok && tags != "" {
		patch.Tags = models.Some(accounts.ParseTags(tags))
	}

	return patch
}
