package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordType(t *testing.T) {
	assert.True(t, RecordTypeLocal.IsLocal())
	assert.True(t, RecordTypeLocalized.IsLocal())
	assert.False(t, RecordTypeLDAP.IsLocal())

	assert.True(t, RecordTypeLDAP.Known())
	assert.False(t, RecordType("Kerberos").Known())
}

func TestAccountPatch_UnmarshalTriState(t *testing.T) {
	var p AccountPatch
	require.NoError(t, json.Unmarshal([]byte(`{"login":"x","password":null}`), &p))

	assert.True(t, p.Login.Set)
	assert.Equal(t, "x", p.Login.Value)
	assert.True(t, p.Password.Set)
	assert.Nil(t, p.Password.Value)
	assert.False(t, p.Tags.Set)
	assert.False(t, p.RecordType.Set)
}

func TestAccountPatch_IgnoresID(t *testing.T) {
	var p AccountPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"hijack","login":"x"}`), &p))

	a := Account{ID: "orig", Tags: []Tag{}}
	p.Apply(&a)
	assert.Equal(t, "orig", a.ID)
	assert.Equal(t, "x", a.Login)
}

func TestAccountPatch_Apply(t *testing.T) {
	a := Account{ID: "1", Tags: []Tag{{Text: "old"}}, RecordType: RecordTypeLocal, Login: "u", Password: StringPtr("p")}

	tags := []Tag{{Text: "new"}}
	AccountPatch{Tags: Some(tags), RecordType: Some(RecordTypeLDAP)}.Apply(&a)
	tags[0].Text = "changed after apply"

	assert.Equal(t, []Tag{{Text: "new"}}, a.Tags)
	assert.Equal(t, RecordTypeLDAP, a.RecordType)
	assert.Equal(t, "u", a.Login)
	assert.Equal(t, "p", *a.Password)

	AccountPatch{Tags: Some[[]Tag](nil)}.Apply(&a)
	assert.Equal(t, []Tag{}, a.Tags)
}

func TestAccount_Clone(t *testing.T) {
	a := Account{ID: "1", Tags: []Tag{{Text: "a"}}, Password: StringPtr("p")}
	c := a.Clone()
	c.Tags[0].Text = "b"
	*c.Password = "q"

	assert.Equal(t, "a", a.Tags[0].Text)
	assert.Equal(t, "p", *a.Password)
}

func TestAccount_PasswordNullJSON(t *testing.T) {
	b, err := json.Marshal(Account{ID: "1", Tags: []Tag{}, RecordType: RecordTypeLDAP, Login: "u"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","tags":[],"recordType":"LDAP","login":"u","password":null}`, string(b))
}
