// ABOUTME: Base64 payload decoder
// ABOUTME: Decodes the base64 audio text returned by the speech API
package decode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode reports a malformed base64 payload
var ErrDecode = errors.New("decode: malformed base64 payload")

// DecodePayload decodes standard padded base64 into the raw bytes it carries.
// Surrounding whitespace is ignored.
func DecodePayload(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}
