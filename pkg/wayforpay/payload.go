package wayforpay

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

const (
	FieldMerchantSignature = "merchantSignature"
	FieldTransactionStatus = "transactionStatus"
	FieldClientEmail       = "clientEmail"
	FieldCustomerName      = "customerName"
	FieldOrderReference    = "orderReference"
)

const StatusApproved = "Approved"

var (
	ErrInvalidPayload  = errors.New("payload must be a JSON object")
	errTrailingContent = errors.New("unexpected content after payload")
)

// payloadAPI keeps numbers as their literal text so integers and floats
// can be told apart when the signature base is built.
var payloadAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// Payload is a service-url notification as sent by WayForPay.
//
// Values are string, json.Number, bool, nil, []any or Object.
type Payload map[string]any

// Member is one key of a nested JSON object.
type Member struct {
	Key   string
	Value any
}

// Object is a nested JSON object in document order.
type Object []Member

func (o Object) MarshalJSON() ([]byte, error) {
	stream := payloadAPI.BorrowStream(nil)
	defer payloadAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, m := range o {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(m.Key)
		stream.WriteVal(m.Value)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func ParsePayload(body []byte) (Payload, error) {
	iter := jsoniter.ParseBytes(payloadAPI, body)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, ErrInvalidPayload
	}

	p := Payload{}
	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		p[key] = readValue(it)
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue {
		return nil, errTrailingContent
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	return p, nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.ArrayValue:
		arr := []any{}
		for iter.ReadArray() {
			arr = append(arr, readValue(iter))
		}
		return arr
	case jsoniter.ObjectValue:
		obj := Object{}
		index := map[string]int{}
		iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			v := readValue(it)
			// a repeated key keeps its first position and its last value
			if i, ok := index[key]; ok {
				obj[i].Value = v
				return true
			}
			index[key] = len(obj)
			obj = append(obj, Member{Key: key, Value: v})
			return true
		})
		return obj
	default:
		iter.ReportError("readValue", "expected a JSON value")
		return nil
	}
}

func (p Payload) Marshal() ([]byte, error) {
	return payloadAPI.Marshal(p)
}

// String returns the canonical text of a field, or "" when it is absent.
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return formatValue(v)
}

// Signature returns the merchant signature. Null, "", false, zero and
// empty arrays or objects count as missing.
func (p Payload) Signature() (string, bool) {
	v, ok := p[FieldMerchantSignature]
	if !ok || isFalsy(v) {
		return "", false
	}
	return formatValue(v), true
}

// Redacted returns a shallow copy safe for logging.
func (p Payload) Redacted() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	if _, ok := out[FieldMerchantSignature]; ok {
		out[FieldMerchantSignature] = "[redacted]"
	}
	return out
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case json.Number:
		f, _ := strconv.ParseFloat(val.String(), 64)
		return f == 0
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case []any:
		return len(val) == 0
	case Object:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
