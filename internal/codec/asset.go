package codec

import "github.com/openvenue/mintgate/internal/domain"

const assetRecordVersion = 1

type delegateV1 struct {
	Kind   string `cbor:"kind"`
	Frozen bool   `cbor:"frozen,omitempty"`
}

type appDataV1 struct {
	DataAuthority string `cbor:"data_authority"`
	Schema        string `cbor:"schema"`
}

type assetRecordV1 struct {
	Name       string        `cbor:"name"`
	URI        string        `cbor:"uri"`
	Owner      string        `cbor:"owner"`
	Attributes []attributeV1 `cbor:"attributes,omitempty"`
	Delegates  []delegateV1  `cbor:"delegates,omitempty"`
	AppData    []appDataV1   `cbor:"app_data,omitempty"`
}

// EncodeAssetRecord serializes a ticket asset's stored record at the
// current version.
func EncodeAssetRecord(ticket domain.Ticket) ([]byte, error) {
	body := assetRecordV1{
		Name:       ticket.Name,
		URI:        ticket.URI,
		Owner:      ticket.Owner,
		Attributes: attributesToV1(ticket.Attributes),
	}
	for _, d := range ticket.Delegates {
		body.Delegates = append(body.Delegates, delegateV1{Kind: string(d.Kind), Frozen: d.Frozen})
	}
	for _, reg := range ticket.AppData {
		body.AppData = append(body.AppData, appDataV1{DataAuthority: reg.DataAuthority, Schema: string(reg.Schema)})
	}
	return encodeEnvelope(assetRecordVersion, body)
}

// DecodeAssetRecord deserializes a ticket asset's raw stored record. The
// returned ticket carries only record-resident fields; identity columns
// (ID, collection, creation time) come from the ledger row.
func DecodeAssetRecord(data []byte) (domain.Ticket, error) {
	var body assetRecordV1
	if err := decodeEnvelope(data, assetRecordVersion, &body); err != nil {
		return domain.Ticket{}, err
	}
	ticket := domain.Ticket{
		Name:       body.Name,
		URI:        body.URI,
		Owner:      body.Owner,
		Attributes: attributesFromV1(body.Attributes),
	}
	for _, d := range body.Delegates {
		ticket.Delegates = append(ticket.Delegates, domain.Delegate{Kind: domain.DelegateKind(d.Kind), Frozen: d.Frozen})
	}
	for _, reg := range body.AppData {
		ticket.AppData = append(ticket.AppData, domain.AppDataRegistration{DataAuthority: reg.DataAuthority, Schema: domain.AppDataSchema(reg.Schema)})
	}
	return ticket, nil
}
