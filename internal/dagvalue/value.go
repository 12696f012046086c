package dagvalue

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Kind discriminates the cases of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindList
	KindJson
	KindChannel
)

// Value is the tagged union of dataflow values that flow along DAG edges.
type Value struct {
	kind    Kind
	integer int32
	float   float64
	text    string
	list    []Value
	json    any
	channel *channelState
}

// channelState backs a one-shot, single-consumer Channel value. Consume may
// be called at most once; subsequent calls report the channel as already
// consumed rather than blocking again.
type channelState struct {
	recv     <-chan Value
	consumed bool
}

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: KindNull} }

// NewInteger wraps a 32-bit signed integer.
func NewInteger(v int32) Value { return Value{kind: KindInteger, integer: v} }

// NewFloat wraps a 64-bit float.
func NewFloat(v float64) Value { return Value{kind: KindFloat, float: v} }

// NewText wraps a Unicode string.
func NewText(v string) Value { return Value{kind: KindText, text: v} }

// NewList wraps an ordered sequence of Values.
func NewList(items []Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// NewJson wraps an arbitrary structured document (nil, bool, number, string,
// []any, or map[string]any, per encoding/json's decode shape).
func NewJson(doc any) Value { return Value{kind: KindJson, json: doc} }

// NewChannel wraps a receive-only channel as a one-shot Value.
func NewChannel(recv <-chan Value) Value {
	return Value{kind: KindChannel, channel: &channelState{recv: recv}}
}

// Kind reports the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// AsInteger down-casts to Integer.
func (v Value) AsInteger() (int32, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.integer, true
}

// AsFloat down-casts to Float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.float, true
}

// AsText down-casts to Text.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsList down-casts to List.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsJson down-casts to Json.
func (v Value) AsJson() (any, bool) {
	if v.kind != KindJson {
		return nil, false
	}
	return v.json, true
}

// Consume claims the channel's single delivered Value. It reports false if
// the Value is not a Channel, the channel was already consumed, or the
// channel closed without a send.
func (v Value) Consume() (Value, bool) {
	if v.kind != KindChannel || v.channel == nil || v.channel.consumed {
		return Value{}, false
	}
	v.channel.consumed = true
	out, ok := <-v.channel.recv
	return out, ok
}

// IsConsumed reports whether a Channel value has already been consumed.
// Non-Channel values report false.
func (v Value) IsConsumed() bool {
	return v.kind == KindChannel && v.channel != nil && v.channel.consumed
}

// TypeOf computes the Type of a Value. An empty List has no element to
// infer a type from; it types as List(Integer), the convention that
// untyped empty lists default to the narrowest concrete element type.
func TypeOf(v Value) Type {
	switch v.kind {
	case KindNull:
		return Null
	case KindInteger:
		return Integer
	case KindFloat:
		return Float
	case KindText:
		return Text
	case KindJson:
		return Json
	case KindChannel:
		return Channel(Null)
	case KindList:
		if len(v.list) == 0 {
			return List(Integer)
		}
		return List(TypeOf(v.list[0]))
	default:
		return Null
	}
}

// Equal implements structural value equality: bit-pattern equality for
// Float (so identical-bits NaN compares equal), and "both consumed"
// equality for Channel.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindInteger:
		return a.integer == b.integer
	case KindFloat:
		return math.Float64bits(a.float) == math.Float64bits(b.float)
	case KindText:
		return a.text == b.text
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindJson:
		return canonicalJSONString(a.json) == canonicalJSONString(b.json)
	case KindChannel:
		return a.IsConsumed() && b.IsConsumed()
	default:
		return false
	}
}

// opaqueChannelHash is the fixed constant every Channel value hashes to,
// since its live receiver carries no stable content to hash.
const opaqueChannelHash uint64 = 0x6368616e6e656c // "channel"

// Hash computes a fingerprint-stable hash for a Value, tag-discriminated and
// recursive over List, with Json canonicalized by sorted object keys before
// hashing its text form.
func Hash(v Value) uint64 {
	d := xxhash.New()
	hashInto(d, v)
	return d.Sum64()
}

func hashInto(d *xxhash.Digest, v Value) {
	switch v.kind {
	case KindNull:
		_, _ = d.WriteString("Null")
	case KindInteger:
		_, _ = d.WriteString("Integer")
		var buf [4]byte
		putUint32(buf[:], uint32(v.integer))
		_, _ = d.Write(buf[:])
	case KindFloat:
		_, _ = d.WriteString("Float")
		var buf [8]byte
		putUint64(buf[:], math.Float64bits(v.float))
		_, _ = d.Write(buf[:])
	case KindText:
		_, _ = d.WriteString("Text")
		_, _ = d.WriteString(v.text)
	case KindList:
		_, _ = d.WriteString("List")
		for _, item := range v.list {
			hashInto(d, item)
		}
	case KindJson:
		_, _ = d.WriteString("Json")
		_, _ = d.WriteString(canonicalJSONString(v.json))
	case KindChannel:
		_, _ = d.WriteString("OneConsumerChannel")
		var buf [8]byte
		putUint64(buf[:], opaqueChannelHash)
		_, _ = d.Write(buf[:])
	}
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// canonicalJSONString renders a decoded JSON document with object keys
// sorted, so that {"a":1,"b":2} and {"b":2,"a":1} hash and compare equal.
func canonicalJSONString(doc any) string {
	canon := canonicalize(doc)
	out, err := json.Marshal(canon)
	if err != nil {
		return ""
	}
	return string(out)
}

func canonicalize(doc any) any {
	switch t := doc.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]keyValue, 0, len(keys))
		for _, k := range keys {
			out = append(out, keyValue{Key: k, Value: canonicalize(t[k])})
		}
		return orderedObject(out)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = canonicalize(item)
		}
		return out
	default:
		return t
	}
}

// keyValue and orderedObject let us marshal a map in sorted-key order
// without relying on encoding/json's native map ordering (which is already
// sorted for map[string]any, but we keep this explicit and independent of
// that implementation detail for stability).
type keyValue struct {
	Key   string
	Value any
}

type orderedObject []keyValue

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, kv := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		keyJSON, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, keyJSON...)
		buf = append(buf, ':')
		buf = append(buf, valJSON...)
	}
	buf = append(buf, '}')
	return buf, nil
}
