package codec

// Encode encodes values as call arguments at offset 0 with DefaultConfig.
func Encode(values ...Value) ([]byte, error) {
	return NewEncoder(DefaultConfig()).Encode(values...)
}

// EncodePacked encodes a single value in packed mode with DefaultConfig.
func EncodePacked(v Value) ([]byte, error) {
	return NewEncoder(DefaultConfig()).EncodePacked(v)
}

// Decode decodes one value of type t with DefaultConfig.
func Decode(t *Type, data []byte) (Value, error) {
	return NewDecoder(DefaultConfig()).Decode(t, data)
}

// DecodeMultiple decodes consecutive arguments with DefaultConfig.
func DecodeMultiple(types []*Type, data []byte) ([]Value, error) {
	return NewDecoder(DefaultConfig()).DecodeMultiple(types, data)
}
