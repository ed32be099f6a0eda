// Package models defines the core data structures for accounts and tags.
package models

import (
	"bytes"
	"encoding/json"
)

// RecordType classifies how an account authenticates.
type RecordType string

const (
	// RecordTypeLDAP marks an account authenticated against a directory.
	RecordTypeLDAP RecordType = "LDAP"
	// RecordTypeLocal marks a locally authenticated account.
	RecordTypeLocal RecordType = "Local"
	// RecordTypeLocalized is the localized spelling of RecordTypeLocal.
	// It is the value written for newly created accounts.
	RecordTypeLocalized RecordType = "Локальная"
)

// IsLocal reports whether t is either spelling of the local record type.
func (t RecordType) IsLocal() bool {
	return t == RecordTypeLocal || t == RecordTypeLocalized
}

// Known reports whether t is one of the enumerated record types.
func (t RecordType) Known() bool {
	return t == RecordTypeLDAP || t.IsLocal()
}

// Tag is a short text label attached to an account.
type Tag struct {
	// Text is the label itself.
	Text string `json:"text"`
}

// Account is a stored credential entry.
type Account struct {
	// ID is assigned at creation and never changes afterwards.
	ID string `json:"id"`
	// Tags keeps insertion order.
	Tags []Tag `json:"tags"`
	// RecordType selects LDAP or local authentication.
	RecordType RecordType `json:"recordType"`
	// Login must be non-blank for the account to be valid.
	Login string `json:"login"`
	// Password is nil when absent. Required only for local accounts.
	Password *string `json:"password"`
}

// Clone returns a deep copy of a.
func (a Account) Clone() Account {
	out := a
	if a.Tags != nil {
		out.Tags = make([]Tag, len(a.Tags))
		copy(out.Tags, a.Tags)
	}
	if a.Password != nil {
		p := *a.Password
		out.Password = &p
	}
	return out
}

// ValidationErrors reports which fields of an account failed validation.
type ValidationErrors struct {
	Login    bool `json:"login,omitempty"`
	Password bool `json:"password,omitempty"`
}

// Any reports whether at least one field failed.
func (e ValidationErrors) Any() bool {
	return e.Login || e.Password
}

// Field is an optional patch value. Set distinguishes an omitted field
// from one explicitly given, including an explicit JSON null.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field as set and decodes the value.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON encodes the value, or null when the field is unset.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// AccountPatch lists the fields an update may overwrite. The account ID is
// not patchable.
type AccountPatch struct {
	Tags       Field[[]Tag]      `json:"tags"`
	RecordType Field[RecordType] `json:"recordType"`
	Login      Field[string]     `json:"login"`
	Password   Field[*string]    `json:"password"`
}

// Apply merges the set fields of p into a.
func (p AccountPatch) Apply(a *Account) {
	if p.Tags.Set {
		a.Tags = append([]Tag(nil), p.Tags.Value...)
		if a.Tags == nil {
			a.Tags = []Tag{}
		}
	}
	if p.RecordType.Set {
		a.RecordType = p.RecordType.Value
	}
	if p.Login.Set {
		a.Login = p.Login.Value
	}
	if p.Password.Set {
		if p.Password.Value == nil {
			a.Password = nil
		} else {
			v := *p.Password.Value
			a.Password = &v
		}
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
