package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

// readJSON returns arg itself when it looks like JSON and the file contents otherwise.
func readJSON(arg string) ([]byte, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return nil, errors.InvalidInput(errors.PhaseCLI, "empty JSON argument")
	}
	switch trimmed[0] {
	case '[', '{', '"':
		return []byte(trimmed), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCLI, errors.KindNotFound, err, "read "+arg)
	}
	return data, nil
}

// parseTypes accepts a JSON array of descriptors or a single descriptor.
func parseTypes(data []byte) ([]*codec.Type, error) {
	data = bytes.TrimSpace(data)
	var types []*codec.Type
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &types); err != nil {
			return nil, errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse types")
		}
	} else {
		var t codec.Type
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse type")
		}
		types = []*codec.Type{&t}
	}
	return types, nil
}

// parseValues decodes a JSON array with one entry per type.
func parseValues(types []*codec.Type, data []byte) ([]codec.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse values")
	}
	if len(raw) != len(types) {
		return nil, errors.New(errors.PhaseCLI, errors.KindInvalidInput).
			Detail("%d values for %d types", len(raw), len(types)).
			Build()
	}

	values := make([]codec.Value, len(types))
	for i, t := range types {
		v, err := codec.FromNative(t, raw[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func loadTypes(arg string) ([]*codec.Type, error) {
	data, err := readJSON(arg)
	if err != nil {
		return nil, err
	}
	return parseTypes(data)
}

func loadValues(types []*codec.Type, arg string) ([]codec.Value, error) {
	data, err := readJSON(arg)
	if err != nil {
		return nil, err
	}
	return parseValues(types, data)
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse hex")
	}
	return b, nil
}
