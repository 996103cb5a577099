package envelope

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/mr-tron/base58"
)

// multibase prefix for base58btc
const multibaseBase58BTC = 'z'

var (
	errNoMaterial       = errors.New("no material")
	errAmbiguous        = errors.New("more than one material encoding")
	errUnknownMultibase = errors.New("unsupported multibase prefix")
)

// encodedMaterial holds the alternative encodings of one key or signature
type encodedMaterial struct {
	base58    string
	hex       string
	base64    string
	multibase string
}

func (m encodedMaterial) decode() ([]byte, error) {
	set := 0
	for _, v := range []string{m.base58, m.hex, m.base64, m.multibase} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, errNoMaterial
	case set > 1:
		return nil, errAmbiguous
	}

	switch {
	case m.base58 != "":
		return base58.Decode(m.base58)
	case m.hex != "":
		return hex.DecodeString(m.hex)
	case m.base64 != "":
		return decodeBase64(m.base64)
	default:
		return decodeMultibase(m.multibase)
	}
}

// decodeBase64 accepts padded and unpadded standard or URL alphabets
func decodeBase64(s string) ([]byte, error) {
	if strings.ContainsAny(s, "-_") {
		return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func decodeMultibase(s string) ([]byte, error) {
	if s[0] != multibaseBase58BTC {
		return nil, errUnknownMultibase
	}
	return base58.Decode(s[1:])
}
