package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonType is the object form of a descriptor. Leaves marshal as a bare kind
// name ("u64") and are accepted in either form.
type jsonType struct {
	Kind     string      `json:"kind"`
	Name     string      `json:"name,omitempty"`
	Elem     *Type       `json:"elem,omitempty"`
	Members  []*Type     `json:"members,omitempty"`
	Fields   []jsonField `json:"fields,omitempty"`
	Variants []jsonField `json:"variants,omitempty"`
	Generics []*Type     `json:"generics,omitempty"`
	Len      uint64      `json:"len,omitempty"`
}

type jsonField struct {
	Type *Type  `json:"type,omitempty"`
	Name string `json:"name"`
}

func (t *Type) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	if _, ok := primitives[t.Kind]; ok {
		return json.Marshal(t.Kind.String())
	}

	out := jsonType{Kind: t.Kind.String(), Name: t.Name, Generics: t.Generics}
	switch t.Kind {
	case KindStringArray:
		out.Len = t.Len
	case KindArray:
		out.Elem, out.Len = t.Elem, t.Len
	case KindVector:
		out.Elem = t.Elem
	case KindTuple:
		out.Members = make([]*Type, len(t.Fields))
		for i, f := range t.Fields {
			out.Members[i] = f.Type
		}
	case KindStruct:
		out.Fields = toJSONFields(t.Fields, false)
	case KindEnum:
		out.Variants = toJSONFields(t.Variants.All(), true)
	default:
		return nil, fmt.Errorf("cannot marshal type of kind %d", t.Kind)
	}
	return json.Marshal(out)
}

func toJSONFields(fields []Field, omitUnit bool) []jsonField {
	out := make([]jsonField, len(fields))
	for i, f := range fields {
		out[i] = jsonField{Name: f.Name, Type: f.Type}
		if omitUnit && f.Type != nil && f.Type.Kind == KindUnit {
			out[i].Type = nil
		}
	}
	return out
}

func (t *Type) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		return t.setLeaf(name)
	}

	var in jsonType
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, ok := ParseKind(in.Kind)
	if !ok {
		return fmt.Errorf("unknown type kind %q", in.Kind)
	}

	*t = Type{Kind: kind, Name: in.Name, Generics: in.Generics}
	switch kind {
	case KindStringArray:
		t.Len = in.Len
	case KindArray:
		t.Elem, t.Len = in.Elem, in.Len
	case KindVector:
		t.Elem = in.Elem
	case KindTuple:
		t.Fields = make([]Field, len(in.Members))
		for i, m := range in.Members {
			t.Fields[i] = Field{Type: m}
		}
	case KindStruct:
		t.Fields = fromJSONFields(in.Fields, false)
	case KindEnum:
		t.Variants = &EnumVariants{variants: fromJSONFields(in.Variants, true)}
	}
	return nil
}

func fromJSONFields(in []jsonField, defaultUnit bool) []Field {
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = Field{Name: f.Name, Type: f.Type}
		if defaultUnit && out[i].Type == nil {
			out[i].Type = Unit
		}
	}
	return out
}

func (t *Type) setLeaf(name string) error {
	kind, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown type kind %q", name)
	}
	leaf, ok := primitives[kind]
	if !ok {
		return fmt.Errorf("type kind %q needs parameters", name)
	}
	*t = *leaf
	return nil
}
