package accounts

import (
	"encoding/json"

	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/fxamacker/cbor/v2"
)

// Codec converts the whole account collection to and from its stored form.
type Codec interface {
	Marshal(accounts []models.Account) ([]byte, error)
	Unmarshal(data []byte) ([]models.Account, error)
}

// JSONCodec stores the collection as a JSON array.
type JSONCodec struct{}

func (JSONCodec) Marshal(accounts []models.Account) ([]byte, error) {
	if accounts == nil {
		accounts = []models.Account{}
	}
	return json.Marshal(accounts)
}

func (JSONCodec) Unmarshal(data []byte) ([]models.Account, error) {
	var out []models.Account
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CBORCodec stores the collection as a CBOR array. Field names follow the
// json struct tags.
type CBORCodec struct{}

func (CBORCodec) Marshal(accounts []models.Account) ([]byte, error) {
	if accounts == nil {
		accounts = []models.Account{}
	}
	return cbor.Marshal(accounts)
}

func (CBORCodec) Unmarshal(data []byte) ([]models.Account, error) {
	var out []models.Account
	if err := cbor.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CodecByName maps a configured codec name to a Codec.
// An empty name selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	default:
		return nil, &UnknownSchemeError{Kind: "codec", Name: name}
	}
}
