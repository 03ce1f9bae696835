package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

const vectorArgsHex = "0x" +
	"0000000000000001" +
	"0000000000000020" +
	"0000000000000003" +
	"0000000000000003" +
	"0708090000000000"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode",
		"--types", `["u8", {"kind":"vector","elem":"u8"}]`,
		"--values", `[1, [7, 8, 9]]`)
	require.NoError(t, err)
	assert.Equal(t, vectorArgsHex+"\n", out)
}

func TestEncodeCommandFromFiles(t *testing.T) {
	dir := t.TempDir()
	typesPath := filepath.Join(dir, "types.json")
	valuesPath := filepath.Join(dir, "values.json")
	require.NoError(t, os.WriteFile(typesPath, []byte(`["u64"]`), 0o600))
	require.NoError(t, os.WriteFile(valuesPath, []byte(`[18446744073709551615]`), 0o600))

	out, err := run(t, "encode", "--types", typesPath, "--values", valuesPath)
	require.NoError(t, err)
	assert.Equal(t, "0xffffffffffffffff\n", out)
}

func TestEncodeCommandPackedAndSelector(t *testing.T) {
	out, err := run(t, "encode", "--types", `["u8"]`, "--values", `[7]`, "--packed")
	require.NoError(t, err)
	assert.Equal(t, "0x07\n", out)

	out, err = run(t, "encode", "--types", `["u64"]`, "--values", `[1]`, "--selector", "f")
	require.NoError(t, err)
	sel := codec.FunctionSelector("f", []*codec.Type{codec.TypeU64})
	assert.Equal(t, "0x"+hex.EncodeToString(sel[:])+"0000000000000001\n", out)
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode",
		"--types", `["u8", {"kind":"vector","elem":"u8"}]`,
		"--hex", vectorArgsHex)
	require.NoError(t, err)
	assert.Contains(t, out, "[7, 8, 9]")
	assert.Contains(t, out, "  1,")
}

func TestSelectorCommand(t *testing.T) {
	out, err := run(t, "selector", "--name", "transfer", "--types", `["u64", "b256"]`)
	require.NoError(t, err)

	sel := codec.SelectorFromSignature("transfer(u64,b256)")
	assert.Equal(t, "transfer(u64,b256)\n0x"+hex.EncodeToString(sel[:])+"\n", out)
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", "--types", `[{"kind":"array","elem":"u8","len":3}]`)
	require.NoError(t, err)
	assert.Contains(t, out, "(composite)")
	assert.Contains(t, out, "signature: a[u8;3]")
	assert.Contains(t, out, "inline: 3 bytes (padded 8, packed 3)")
	assert.Contains(t, out, "dynamic: false")
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "inspect", "--types", `["u8"]`)
	require.True(t, errors.IsKind(err, errors.KindInvalidInput), "got %v", err)

	_, err = run(t, "encode", "--types", `["u8"]`, "--values", `[1, 2]`)
	require.True(t, errors.IsKind(err, errors.KindInvalidInput), "got %v", err)

	_, err = run(t, "encode", "--types", `["u8"]`, "--values", `[300]`)
	require.True(t, errors.IsKind(err, errors.KindOverflow), "got %v", err)

	_, err = run(t, "decode", "--types", `["u32"]`, "--hex", "0x000001")
	require.True(t, errors.IsKind(err, errors.KindInsufficientBytes), "got %v", err)

	_, err = run(t, "encode", "--types", filepath.Join(t.TempDir(), "nope.json"), "--values", `[]`)
	require.True(t, errors.IsKind(err, errors.KindNotFound), "got %v", err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 0\n"), 0o600))

	_, err := run(t, "--config", path, "encode",
		"--types", `[{"kind":"tuple","members":["u8"]}]`,
		"--values", `[[1]]`)
	require.True(t, errors.IsKind(err, errors.KindDepthExceeded), "got %v", err)
}

func TestInteractiveModelEvaluate(t *testing.T) {
	m := newInteractiveModel(codec.DefaultConfig())
	m.types.SetValue(`["u8", {"kind":"vector","elem":"u8"}]`)
	m.values.SetValue(`[1, [7, 8, 9]]`)
	m.evaluate()

	require.NoError(t, m.err)
	assert.Equal(t, vectorArgsHex, m.encoded)
	assert.Equal(t, []string{"1", "[7, 8, 9]"}, m.debug)
	assert.Contains(t, m.View(), vectorArgsHex)

	m.name.SetValue("f")
	m.evaluate()
	assert.Equal(t, "f(u8,s<u8>(s<u8>(rawptr,u64),u64))", m.signature)

	m.values.SetValue(`[1]`)
	m.evaluate()
	assert.Error(t, m.err)
	assert.Empty(t, m.encoded)
}
