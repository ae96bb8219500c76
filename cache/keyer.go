package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/jonwraymond/funcwrap/wrap"
)

// KeyPrefix starts every key produced by DefaultKeyer.
const KeyPrefix = "memo:"

// maxDepth bounds nesting so self-referencing containers fail instead of
// recursing forever.
const maxDepth = 64

var jsonMarshalerType = reflect.TypeFor[json.Marshaler]()

// Keyer generates deterministic cache keys from call arguments.
//
// Contract:
// - Determinism: same inputs must produce same key, regardless of map iteration order.
// - Injectivity: argument tuples that differ in a value or a dynamic type produce different keys.
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: arguments that cannot be keyed yield a wrap.KindType error wrapping ErrUnhashable.
type Keyer interface {
	Key(args wrap.Args) (string, error)
}

// DefaultKeyer generates SHA-256 based keys over a canonical, type-tagged
// encoding of the arguments. Every scalar carries its dynamic type, so 1,
// 1.0 and "1" key differently, as do []byte("hi") and "aGk=". Structs are
// keyed by all of their fields, exported or not.
//
// Pointers, funcs, channels and unsafe pointers cannot be keyed: their
// identity is not part of their encoded value.
type DefaultKeyer struct {
	policy KeyPolicy
}

// NewDefaultKeyer creates a keyer for the given policy.
func NewDefaultKeyer(policy KeyPolicy) *DefaultKeyer {
	return &DefaultKeyer{policy: policy}
}

// Policy returns the keyer's policy.
func (k *DefaultKeyer) Policy() KeyPolicy { return k.policy }

// Key generates a deterministic key.
// Format: memo:<hex SHA-256 of canonical encoding>
func (k *DefaultKeyer) Key(args wrap.Args) (string, error) {
	var input any = positionalInput(args)
	if k.policy.IncludesKeywords() {
		input = map[string]any{
			"positional": positionalInput(args),
			"keyword":    keywordInput(args),
		}
	}

	canonical, err := canonicalize(input)
	if err != nil {
		return "", wrap.WrapKind(wrap.KindType, "cache.Key", fmt.Errorf("%w: %w", ErrUnhashable, err))
	}

	hash := sha256.Sum256(canonical)
	return KeyPrefix + hex.EncodeToString(hash[:]), nil
}

func positionalInput(args wrap.Args) []any {
	if args.Positional == nil {
		return []any{}
	}
	return args.Positional
}

func keywordInput(args wrap.Args) map[string]any {
	if args.Keyword == nil {
		return map[string]any{}
	}
	return args.Keyword
}

// canonicalize produces a deterministic JSON-shaped representation of v.
// Map entries are sorted by their encoded key.
func canonicalize(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value, depth int) error {
	if depth > maxDepth {
		return errors.New("arguments nested too deeply")
	}
	if !v.IsValid() {
		buf.WriteString("null")
		return nil
	}

	t := v.Type()
	if v.Kind() != reflect.Interface && t.Implements(jsonMarshalerType) && v.CanInterface() {
		if v.Kind() == reflect.Pointer {
			return fmt.Errorf("unsupported pointer type %s", t)
		}
		raw, err := json.Marshal(v.Interface())
		if err != nil {
			return err
		}
		return writeTagged(buf, t, raw)
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return encodeValue(buf, v.Elem(), depth+1)
	case reflect.Bool:
		return writeTagged(buf, t, strconv.AppendBool(nil, v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return writeTagged(buf, t, strconv.AppendInt(nil, v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return writeTagged(buf, t, strconv.AppendUint(nil, v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return writeTagged(buf, t, strconv.AppendQuote(nil, strconv.FormatFloat(v.Float(), 'g', -1, 64)))
	case reflect.Complex64, reflect.Complex128:
		return writeTagged(buf, t, strconv.AppendQuote(nil, strconv.FormatComplex(v.Complex(), 'g', -1, 128)))
	case reflect.String:
		raw, err := json.Marshal(v.String())
		if err != nil {
			return err
		}
		return writeTagged(buf, t, raw)
	case reflect.Slice, reflect.Array:
		return encodeSequence(buf, v, depth)
	case reflect.Map:
		return encodeMap(buf, v, depth)
	case reflect.Struct:
		return encodeStruct(buf, v, depth)
	default:
		return fmt.Errorf("unsupported %s value of type %s", v.Kind(), t)
	}
}

func writeTagged(buf *bytes.Buffer, t reflect.Type, raw []byte) error {
	tag, err := json.Marshal(t.String())
	if err != nil {
		return err
	}
	buf.WriteString(`{"t":`)
	buf.Write(tag)
	buf.WriteString(`,"v":`)
	buf.Write(raw)
	buf.WriteByte('}')
	return nil
}

func encodeSequence(buf *bytes.Buffer, v reflect.Value, depth int) error {
	var inner bytes.Buffer
	inner.WriteByte('[')
	for i := range v.Len() {
		if i > 0 {
			inner.WriteByte(',')
		}
		if err := encodeValue(&inner, v.Index(i), depth+1); err != nil {
			return err
		}
	}
	inner.WriteByte(']')
	return writeTagged(buf, v.Type(), inner.Bytes())
}

type mapEntry struct {
	key, value []byte
}

func encodeMap(buf *bytes.Buffer, v reflect.Value, depth int) error {
	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var k, val bytes.Buffer
		if err := encodeValue(&k, iter.Key(), depth+1); err != nil {
			return err
		}
		if err := encodeValue(&val, iter.Value(), depth+1); err != nil {
			return err
		}
		entries = append(entries, mapEntry{key: k.Bytes(), value: val.Bytes()})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int {
		return bytes.Compare(a.key, b.key)
	})

	var inner bytes.Buffer
	inner.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			inner.WriteByte(',')
		}
		inner.WriteByte('[')
		inner.Write(e.key)
		inner.WriteByte(',')
		inner.Write(e.value)
		inner.WriteByte(']')
	}
	inner.WriteByte(']')
	return writeTagged(buf, v.Type(), inner.Bytes())
}

func encodeStruct(buf *bytes.Buffer, v reflect.Value, depth int) error {
	t := v.Type()
	var inner bytes.Buffer
	inner.WriteByte('{')
	for i := range t.NumField() {
		if i > 0 {
			inner.WriteByte(',')
		}
		name, err := json.Marshal(t.Field(i).Name)
		if err != nil {
			return err
		}
		inner.Write(name)
		inner.WriteByte(':')
		if err := encodeValue(&inner, v.Field(i), depth+1); err != nil {
			return err
		}
	}
	inner.WriteByte('}')
	return writeTagged(buf, t, inner.Bytes())
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
