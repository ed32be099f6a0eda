package accounts

import (
	"testing"

	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccounts() []models.Account {
	return []models.Account{
		{ID: "1", Tags: []models.Tag{{Text: "a"}}, RecordType: models.RecordTypeLocalized, Login: "root", Password: models.StringPtr("pw")},
		{ID: "2", Tags: []models.Tag{}, RecordType: models.RecordTypeLDAP, Login: "jdoe", Password: nil},
	}
}

func TestJSONCodec_Layout(t *testing.T) {
	data, err := JSONCodec{}.Marshal(sampleAccounts())
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"id":"1","tags":[{"text":"a"}],"recordType":"Локальная","login":"root","password":"pw"},
		{"id":"2","tags":[],"recordType":"LDAP","login":"jdoe","password":null}
	]`, string(data))
}

func TestJSONCodec_EmptyIsArray(t *testing.T) {
	data, err := JSONCodec{}.Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCodecs_Decode(t *testing.T) {
	for _, name := range []string{"json", "cbor"} {
		t.Run(name, func(t *testing.T) {
			c, err := CodecByName(name)
			require.NoError(t, err)

			data, err := c.Marshal(sampleAccounts())
			require.NoError(t, err)
			got, err := c.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, sampleAccounts(), got)

			_, err = c.Unmarshal([]byte("\xff{garbage"))
			assert.Error(t, err)
		})
	}
}

func TestCodecByName_Unknown(t *testing.T) {
	_, err := CodecByName("xml")
	assert.EqualError(t, err, `unknown codec "xml"`)
}
