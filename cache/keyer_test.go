package cache

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonwraymond/funcwrap/wrap"
)

func mustKey(t *testing.T, k Keyer, args wrap.Args) string {
	t.Helper()
	key, err := k.Key(args)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	return key
}

func TestKeyer_DeterministicForMaps(t *testing.T) {
	keyer := NewDefaultKeyer(KeyPositional)

	map1 := map[string]any{"b": 2, "a": 1, "c": map[string]any{"z": 26, "y": 25}}
	map2 := map[string]any{"c": map[string]any{"y": 25, "z": 26}, "a": 1, "b": 2}

	key1 := mustKey(t, keyer, wrap.Positional(map1))
	key2 := mustKey(t, keyer, wrap.Positional(map2))
	if key1 != key2 {
		t.Errorf("keys should be equal for same content:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_PositionalOrderMatters(t *testing.T) {
	keyer := NewDefaultKeyer(KeyPositional)

	if mustKey(t, keyer, wrap.Positional("a", "b")) == mustKey(t, keyer, wrap.Positional("b", "a")) {
		t.Error("keys should differ for different argument order")
	}
	if mustKey(t, keyer, wrap.Positional([]any{1, 2})) == mustKey(t, keyer, wrap.Positional([]any{2, 1})) {
		t.Error("keys should differ for different slice order")
	}
}

type point struct {
	x, y int
}

type label string

func TestKeyer_DistinctTuplesKeyDifferently(t *testing.T) {
	keyer := NewDefaultKeyer(KeyPositional)

	tests := []struct {
		name string
		a, b wrap.Args
	}{
		{"int and string", wrap.Positional(1), wrap.Positional("1")},
		{"int and float", wrap.Positional(1), wrap.Positional(1.0)},
		{"int widths", wrap.Positional(1), wrap.Positional(int64(1))},
		{"no arguments and nil", wrap.Positional(), wrap.Positional(nil)},
		{"unexported fields", wrap.Positional(point{1, 1}), wrap.Positional(point{2, 2})},
		{"bytes and base64 string", wrap.Positional([]byte("hi")), wrap.Positional("aGk=")},
		{"named string type", wrap.Positional(label("a")), wrap.Positional("a")},
		{"slice element types", wrap.Positional([]any{1}), wrap.Positional([]any{1.0})},
		{"map value types", wrap.Positional(map[string]any{"a": 1}), wrap.Positional(map[string]any{"a": "1"})},
		{"non-string map keys", wrap.Positional(map[int]string{1: "a"}), wrap.Positional(map[string]string{"1": "a"})},
		{"struct in slice", wrap.Positional([]point{{1, 2}}), wrap.Positional([]point{{2, 1}})},
		{"tuple split", wrap.Positional("ab", "c"), wrap.Positional("a", "bc")},
		{"multi-element tuple", wrap.Positional("shulyak", "dmitry", 30), wrap.Positional("shulyak", "dmitry", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mustKey(t, keyer, tt.a) == mustKey(t, keyer, tt.b) {
				t.Errorf("%v and %v should key differently", tt.a.Positional, tt.b.Positional)
			}
		})
	}
}

func TestKeyer_EqualValuesShareKey(t *testing.T) {
	keyer := NewDefaultKeyer(KeyPositional)

	tests := []struct {
		name string
		a, b wrap.Args
	}{
		{"struct", wrap.Positional(point{1, 2}), wrap.Positional(point{1, 2})},
		{"typed map", wrap.Positional(map[int]string{1: "a", 2: "b"}), wrap.Positional(map[int]string{2: "b", 1: "a"})},
		{"tuple", wrap.Positional("shulyak", "dmitry", 30), wrap.Positional("shulyak", "dmitry", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mustKey(t, keyer, tt.a) != mustKey(t, keyer, tt.b) {
				t.Errorf("%v and %v should share a key", tt.a.Positional, tt.b.Positional)
			}
		})
	}
}

func TestKeyer_Policies(t *testing.T) {
	a := wrap.Positional("ivanov").With("greeting", "hi")
	b := wrap.Positional("ivanov").With("greeting", "hello")
	c := wrap.Positional("ivanov")

	positional := NewDefaultKeyer(KeyPositional)
	if mustKey(t, positional, a) != mustKey(t, positional, b) || mustKey(t, positional, a) != mustKey(t, positional, c) {
		t.Error("positional policy should ignore keyword arguments")
	}

	full := NewDefaultKeyer(KeyFullSignature)
	if mustKey(t, full, a) == mustKey(t, full, b) {
		t.Error("full signature policy should distinguish keyword values")
	}
	if mustKey(t, full, c) != mustKey(t, full, wrap.Args{Positional: []any{"ivanov"}, Keyword: map[string]any{}}) {
		t.Error("nil and empty keyword maps should key the same")
	}
}

func TestKeyer_KeyFormat(t *testing.T) {
	key := mustKey(t, NewDefaultKeyer(KeyPositional), wrap.Positional("shulyak"))

	if !strings.HasPrefix(key, KeyPrefix) {
		t.Fatalf("key should have prefix %q, got %q", KeyPrefix, key)
	}
	hash := strings.TrimPrefix(key, KeyPrefix)
	if len(hash) != 64 {
		t.Errorf("hash should be 64 characters, got %d: %q", len(hash), hash)
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("hash should be lowercase hex, got %q in %q", string(c), hash)
			break
		}
	}
}

func TestKeyer_Unhashable(t *testing.T) {
	tests := []struct {
		name string
		args wrap.Args
	}{
		{"func", wrap.Positional(func() {})},
		{"channel", wrap.Positional(make(chan int))},
		{"nested func", wrap.Positional(map[string]any{"cb": func() {}})},
		{"pointer", wrap.Positional(&point{1, 2})},
		{"nil pointer", wrap.Positional((*point)(nil))},
		{"self-referencing slice", wrap.Positional(selfReferencing())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultKeyer(KeyPositional).Key(tt.args)
			if !errors.Is(err, ErrUnhashable) {
				t.Fatalf("expected ErrUnhashable, got %v", err)
			}
			if wrap.KindOf(err) != wrap.KindType {
				t.Errorf("expected type kind, got %v", wrap.KindOf(err))
			}
		})
	}
}

func selfReferencing() []any {
	s := make([]any, 1)
	s[0] = s
	return s
}

func TestKeyer_UnhashableKeywordIgnoredByPositionalPolicy(t *testing.T) {
	args := wrap.Positional("x").With("cb", func() {})

	if _, err := NewDefaultKeyer(KeyPositional).Key(args); err != nil {
		t.Errorf("positional policy should not inspect keywords, got %v", err)
	}
	if _, err := NewDefaultKeyer(KeyFullSignature).Key(args); !errors.Is(err, ErrUnhashable) {
		t.Errorf("full signature policy should reject the keyword, got %v", err)
	}
}
