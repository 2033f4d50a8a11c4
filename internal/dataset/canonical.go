package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for dataset values: object
// keys sorted by UTF-16 code units, strings NFC-normalized, no HTML
// escaping, integers only. This is the only serialization used for
// fingerprints and golden comparison; any two equal datasets marshal
// to identical bytes.
//
// Floats and nulls are rejected: they have no place in the pipeline
// and admitting them would undermine byte-level determinism.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// Fingerprint returns the hex SHA-256 of a value's canonical JSON.
func Fingerprint(v any) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// marshalCanonicalString NFC-normalizes at the serialization boundary
// and encodes without HTML escaping (<, >, & stay literal).
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// UTF-16 code unit order, not UTF-8 byte order. They differ for
	// keys outside the BMP; sorting must be stable across both.
	slices.SortFunc(keys, compareUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func compareUTF16(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	default:
		return 0
	}
}

// CanonicalMap renders the base dataset as a plain map for canonical
// marshaling.
func (b *Base) CanonicalMap() map[string]any {
	rows := make([]any, len(b.Rows))
	for i, r := range b.Rows {
		rows[i] = map[string]any{
			"index":   r.Index,
			"chi":     r.Chi,
			"theta":   r.Theta,
			"lambda":  r.Lambda,
			"epsilon": r.Epsilon,
		}
	}
	return map[string]any{
		"n":     b.N,
		"space": b.Space.canonicalMap(),
		"rows":  rows,
	}
}

// CanonicalMap renders the transformed dataset as a plain map for
// canonical marshaling. The run token is deliberately excluded: two
// runs over the same inputs must fingerprint identically.
func (tr *Transformed) CanonicalMap() map[string]any {
	rows := make([]any, len(tr.Rows))
	for i, r := range tr.Rows {
		rows[i] = map[string]any{
			"index":   r.Index,
			"chi":     r.Chi,
			"theta":   r.Theta,
			"lambda":  r.Lambda,
			"epsilon": r.Epsilon,
			"table":   r.Table,
		}
	}
	params := make(map[string]any, len(tr.Params))
	for k, v := range tr.Params {
		params[k] = v
	}
	return map[string]any{
		"n":      tr.N,
		"space":  tr.Space.canonicalMap(),
		"table":  tr.Table,
		"params": params,
		"rows":   rows,
	}
}

func (s Space) canonicalMap() map[string]any {
	return map[string]any{
		"chi_size":        s.ChiSize,
		"theta_size":      s.ThetaSize,
		"lambda_size":     s.LambdaSize,
		"epsilon_catalog": s.EpsilonCatalog,
	}
}
