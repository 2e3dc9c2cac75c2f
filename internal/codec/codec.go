// Package codec encodes and decodes the CBOR records the ledger stores
// opaquely: collection records and ticket asset records. Encoding is Core
// Deterministic (RFC 8949 §4.2) so the same logical record always produces
// identical bytes; records carry an explicit version tag so the layout can
// evolve without ad-hoc byte slicing at call sites.
package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var ErrUnsupportedRecordVersion = errors.New("unsupported record version")

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// envelope wraps every stored record with a version tag and a raw body so
// the version can be inspected before the body layout is committed to.
type envelope struct {
	Version uint8           `cbor:"v"`
	Body    cbor.RawMessage `cbor:"b"`
}

func encodeEnvelope(version uint8, body any) ([]byte, error) {
	raw, err := encMode.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode record body: %w", err)
	}
	data, err := encMode.Marshal(envelope{Version: version, Body: raw})
	if err != nil {
		return nil, fmt.Errorf("encode record envelope: %w", err)
	}
	return data, nil
}

func decodeEnvelope(data []byte, version uint8, body any) error {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode record envelope: %w", err)
	}
	if env.Version != version {
		return fmt.Errorf("%w: %d", ErrUnsupportedRecordVersion, env.Version)
	}
	if err := decMode.Unmarshal(env.Body, body); err != nil {
		return fmt.Errorf("decode record body: %w", err)
	}
	return nil
}
