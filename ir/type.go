package ir

import "fmt"

type Type int

const (
	InvalidType Type = iota
	NullType
	FalseType
	TrueType
	NumberType
	StringType
	RawType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		InvalidType: "Invalid",
		NullType:    "Null",
		FalseType:   "False",
		TrueType:    "True",
		NumberType:  "Number",
		StringType:  "String",
		RawType:     "Raw",
		ArrayType:   "Array",
		ObjectType:  "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"False":  FalseType,
		"True":   TrueType,
		"Number": NumberType,
		"String": StringType,
		"Raw":    RawType,
		"Array":  ArrayType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// Types returns every constructible type.
func Types() []Type {
	return []Type{
		NullType,
		FalseType,
		TrueType,
		NumberType,
		StringType,
		RawType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

func (t Type) IsBool() bool { return t == FalseType || t == TrueType }

// hasText reports whether nodes of this type carry a text payload.
func (t Type) hasText() bool { return t == StringType || t == RawType }
