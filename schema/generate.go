package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Generate derives a schema from the type of v. Struct fields become
// properties in declaration order and honor these tags:
//
//	json:"name,omitempty"   property name; omitempty makes it optional
//	description:"..."       property description
//	enum:"a,b,c"            allowed string values
//	required:"true|false"   overrides the omitempty rule
//	nullable:"true"         marks the value nullable
//
// Pointers are nullable. Channels, funcs and maps are rejected.
func Generate(v any) (*Schema, error) {
	if v == nil {
		return nil, errors.New("cannot generate schema for nil value")
	}
	p, err := propertyOf(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	s := &Schema{Type: p.Type}
	if p.Type == Object {
		s.Properties = p.Properties
		s.Required = p.Required
		s.AdditionalProperties = p.AdditionalProperties
		s.PropertyOrder = p.PropertyOrder
	}
	return s, nil
}

func propertyOf(t reflect.Type) (*Property, error) {
	if t.Kind() == reflect.Ptr {
		p, err := propertyOf(t.Elem())
		if err != nil {
			return nil, err
		}
		p.Nullable = boolPtr(true)
		return p, nil
	}
	if primitive, ok := primitiveType(t.Kind()); ok {
		return &Property{Type: primitive}, nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		items, err := propertyOf(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("invalid element type %s: %w", t.Elem(), err)
		}
		return &Property{Type: Array, Items: items}, nil
	case reflect.Struct:
		return objectOf(t)
	case reflect.Interface:
		return &Property{}, nil
	}
	return nil, fmt.Errorf("unsupported type: %s", t.Kind())
}

func primitiveType(k reflect.Kind) (SchemaType, bool) {
	switch k {
	case reflect.String:
		return String, true
	case reflect.Bool:
		return Boolean, true
	case reflect.Float32, reflect.Float64:
		return Number, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, true
	}
	return "", false
}

func objectOf(t reflect.Type) (*Property, error) {
	obj := &Property{
		Type:                 Object,
		Properties:           map[string]*Property{},
		AdditionalProperties: boolPtr(false),
	}
	for i := range t.NumField() {
		field := t.Field(i)
		tags, ok := readTags(field)
		if !ok {
			continue
		}
		p, err := propertyOf(field.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to reflect field %s: %w", field.Name, err)
		}
		tags.apply(p)
		obj.Properties[tags.name] = p
		obj.PropertyOrder = append(obj.PropertyOrder, tags.name)
		if tags.required {
			obj.Required = append(obj.Required, tags.name)
		}
	}
	return obj, nil
}

// fieldTags is what Generate reads from one struct field.
type fieldTags struct {
	name        string
	required    bool
	description string
	enum        []string
	nullable    *bool
}

// readTags returns false for fields that are not part of the JSON form.
func readTags(field reflect.StructField) (fieldTags, bool) {
	if !field.IsExported() {
		return fieldTags{}, false
	}
	name, opts, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" && opts == "" {
		return fieldTags{}, false
	}
	if name == "" {
		name = field.Name
	}
	tags := fieldTags{
		name:        name,
		required:    !hasOption(opts, "omitempty"),
		description: field.Tag.Get("description"),
	}
	if enum := field.Tag.Get("enum"); enum != "" {
		tags.enum = strings.Split(enum, ",")
	}
	if b, err := strconv.ParseBool(field.Tag.Get("required")); err == nil {
		tags.required = b
	}
	if b, err := strconv.ParseBool(field.Tag.Get("nullable")); err == nil {
		tags.nullable = &b
	}
	return tags, true
}

func (f fieldTags) apply(p *Property) {
	if f.description != "" {
		p.Description = f.description
	}
	if f.enum != nil {
		p.Enum = f.enum
	}
	if f.nullable != nil {
		p.Nullable = f.nullable
	}
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool {
	return &b
}
