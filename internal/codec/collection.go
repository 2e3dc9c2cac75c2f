package codec

import "github.com/openvenue/mintgate/internal/domain"

const collectionRecordVersion = 1

type attributeV1 struct {
	Key   string `cbor:"k"`
	Value string `cbor:"v"`
}

type collectionRecordV1 struct {
	Name            string        `cbor:"name"`
	URI             string        `cbor:"uri"`
	UpdateAuthority string        `cbor:"update_authority"`
	NumMinted       uint32        `cbor:"num_minted"`
	Attributes      []attributeV1 `cbor:"attributes,omitempty"`
}

// EncodeCollectionRecord serializes a collection record at the current
// version.
func EncodeCollectionRecord(record domain.CollectionRecord) ([]byte, error) {
	body := collectionRecordV1{
		Name:            record.Name,
		URI:             record.URI,
		UpdateAuthority: record.UpdateAuthority,
		NumMinted:       record.NumMinted,
		Attributes:      attributesToV1(record.Attributes),
	}
	return encodeEnvelope(collectionRecordVersion, body)
}

// DecodeCollectionRecord deserializes a collection's raw stored record into
// its typed form.
func DecodeCollectionRecord(data []byte) (domain.CollectionRecord, error) {
	var body collectionRecordV1
	if err := decodeEnvelope(data, collectionRecordVersion, &body); err != nil {
		return domain.CollectionRecord{}, err
	}
	return domain.CollectionRecord{
		Name:            body.Name,
		URI:             body.URI,
		UpdateAuthority: body.UpdateAuthority,
		NumMinted:       body.NumMinted,
		Attributes:      attributesFromV1(body.Attributes),
	}, nil
}

func attributesToV1(attrs []domain.Attribute) []attributeV1 {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attributeV1, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attributeV1{Key: a.Key, Value: a.Value})
	}
	return out
}

func attributesFromV1(attrs []attributeV1) []domain.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]domain.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, domain.Attribute{Key: a.Key, Value: a.Value})
	}
	return out
}
