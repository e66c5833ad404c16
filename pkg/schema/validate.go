package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"google.golang.org/genai"
)

// ValidationError はスキーマ違反の箇所と理由を保持します。
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "schema violation: " + e.Reason
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Path, e.Reason)
}

// Decode はモデルの生テキストを検証し、LayoutData に変換します。
// スキーマで拘束された出力であっても、ここでは信頼できない入力として扱います。
func Decode(raw []byte) (domain.LayoutData, error) {
	body := stripFence(raw)
	if len(body) == 0 {
		return domain.LayoutData{}, errors.New("response text is empty")
	}

	if err := Validate(body); err != nil {
		return domain.LayoutData{}, err
	}

	var data domain.LayoutData
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return domain.LayoutData{}, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	if err := data.Validate(); err != nil {
		return domain.LayoutData{}, err
	}
	return data, nil
}

// Validate は JSON テキストが LayoutSchema に適合するかを検証します。
func Validate(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &ValidationError{Reason: "trailing data after JSON value"}
	}
	return ValidateValue(LayoutSchema(), v)
}

// ValidateValue は UseNumber でデコードされた値 v を s に照らして検証します。
// Properties に宣言されていないキーは許可しません。
func ValidateValue(s *genai.Schema, v any) error {
	return validate(s, v, "")
}

func validate(s *genai.Schema, v any, path string) error {
	if v == nil {
		if s.Nullable != nil && *s.Nullable {
			return nil
		}
		return &ValidationError{Path: path, Reason: "value is null"}
	}

	switch s.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return typeError(path, "object", v)
		}
		return validateObject(s, obj, path)

	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return typeError(path, "array", v)
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := validate(s.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case genai.TypeString:
		if _, ok := v.(string); !ok {
			return typeError(path, "string", v)
		}
		return nil

	case genai.TypeInteger:
		n, ok := v.(json.Number)
		if !ok {
			return typeError(path, "integer", v)
		}
		if _, err := n.Int64(); err != nil {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("%s is not an integer", n)}
		}
		return nil

	case genai.TypeNumber:
		n, ok := v.(json.Number)
		if !ok {
			return typeError(path, "number", v)
		}
		if _, err := n.Float64(); err != nil {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("%s is not a number", n)}
		}
		return nil

	case genai.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return typeError(path, "boolean", v)
		}
		return nil
	}

	return nil
}

func validateObject(s *genai.Schema, obj map[string]any, path string) error {
	for _, key := range s.Required {
		if _, ok := obj[key]; !ok {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("missing required field %q", key)}
		}
	}

	// マップの走査順に依存しないようキーを整列してから検証する
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := s.Properties[k]
		if !ok {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("unexpected field %q", k)}
		}
		if err := validate(prop, obj[k], joinPath(path, k)); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func typeError(path, want string, v any) error {
	return &ValidationError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, jsonKind(v))}
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// stripFence は前後の空白と、モデルが付けてしまった ```json フェンスを取り除きます。
func stripFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return nil
	}
	lines = lines[1:]
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "```" {
		lines = slices.Delete(lines, last, last+1)
	}
	return []byte(strings.TrimSpace(strings.Join(lines, "\n")))
}
