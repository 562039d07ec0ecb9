package wayforpay

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/base64"
	"sort"
	"strings"
)

const signatureSeparator = ";"

// SignatureBase joins every field value except the signature itself,
// ordered by key name.
func SignatureBase(p Payload) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k == FieldMerchantSignature {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = formatValue(p[k])
	}
	return strings.Join(values, signatureSeparator)
}

// Sign computes base64(HMAC-MD5(secret, base)). MD5 is what the provider
// signs with and cannot be swapped out.
func Sign(p Payload, secret string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(SignatureBase(p)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify compares byte-for-byte in constant time.
func Verify(p Payload, signature, secret string) bool {
	expected := Sign(p, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
