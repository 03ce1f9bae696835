package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/vm-abi/codec"
	"github.com/wippyai/vm-abi/errors"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		typesArg, valuesArg, selector string
		packed                        bool
		base                          uint64
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode JSON values as call arguments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := loadTypes(typesArg)
			if err != nil {
				return err
			}
			values, err := loadValues(types, valuesArg)
			if err != nil {
				return err
			}

			enc := codec.NewEncoder(a.cfg, codec.WithBase(base))
			var out []byte
			if packed {
				if len(values) != 1 {
					return errors.InvalidInput(errors.PhaseCLI, "--packed encodes exactly one value")
				}
				out, err = enc.EncodePacked(values[0])
			} else {
				out, err = enc.EncodeArgs(types, values)
			}
			if err != nil {
				return err
			}
			if selector != "" {
				out = codec.CallData(codec.FunctionSelector(selector, types), out)
			}
			a.log.Debug("encoded", zap.Int("values", len(values)), zap.Int("bytes", len(out)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "0x"+hex.EncodeToString(out))
			return err
		},
	}
	cmd.Flags().StringVar(&typesArg, "types", "", "type descriptors (JSON or file)")
	cmd.Flags().StringVar(&valuesArg, "values", "", "values, one per type (JSON array or file)")
	cmd.Flags().StringVar(&selector, "selector", "", "prefix the output with the selector of this function name")
	cmd.Flags().BoolVar(&packed, "packed", false, "encode a single value in packed mode")
	cmd.Flags().Uint64Var(&base, "base", 0, "absolute offset of the encoded buffer")
	_ = cmd.MarkFlagRequired("types")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		typesArg, hexArg string
		packed           bool
		base             uint64
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode hex data into JSON values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := loadTypes(typesArg)
			if err != nil {
				return err
			}
			data, err := parseHex(hexArg)
			if err != nil {
				return err
			}

			dec := codec.NewDecoder(a.cfg, codec.WithBase(base))
			var values []codec.Value
			if packed {
				if len(types) != 1 {
					return errors.InvalidInput(errors.PhaseCLI, "--packed decodes exactly one value")
				}
				v, err := dec.DecodePacked(types[0], data)
				if err != nil {
					return err
				}
				values = []codec.Value{v}
			} else {
				if values, err = dec.DecodeMultiple(types, data); err != nil {
					return err
				}
			}
			return printValues(cmd.OutOrStdout(), types, values)
		},
	}
	cmd.Flags().StringVar(&typesArg, "types", "", "type descriptors (JSON or file)")
	cmd.Flags().StringVar(&hexArg, "hex", "", "encoded data as hex")
	cmd.Flags().BoolVar(&packed, "packed", false, "decode a single packed value")
	cmd.Flags().Uint64Var(&base, "base", 0, "absolute offset the data was encoded at")
	_ = cmd.MarkFlagRequired("types")
	_ = cmd.MarkFlagRequired("hex")
	return cmd
}

func printValues(w io.Writer, types []*codec.Type, values []codec.Value) error {
	natives := make([]any, len(values))
	debug := make([]string, len(values))
	for i, v := range values {
		n, err := codec.ToNative(types[i], v)
		if err != nil {
			return err
		}
		natives[i] = n
		if debug[i], err = codec.Debug(types[i], v); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(natives, "", "  ")
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidData, err, "render values")
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", out, strings.Join(debug, "\n"))
	return err
}

func newSelectorCmd(*app) *cobra.Command {
	var name, typesArg string
	cmd := &cobra.Command{
		Use:   "selector",
		Short: "Print a function signature and its selector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var types []*codec.Type
			if typesArg != "" {
				var err error
				if types, err = loadTypes(typesArg); err != nil {
					return err
				}
			}
			sel := codec.FunctionSelector(name, types)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n0x%s\n", codec.Signature(name, types), hex.EncodeToString(sel[:]))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "function name")
	cmd.Flags().StringVar(&typesArg, "types", "", "input type descriptors (JSON or file)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newInspectCmd(*app) *cobra.Command {
	var typesArg string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the signature and widths of type descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := loadTypes(typesArg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, t := range types {
				if err := inspect(w, i, t); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typesArg, "types", "", "type descriptors (JSON or file)")
	_ = cmd.MarkFlagRequired("types")
	return cmd
}

// maxTypeDepth matches the codec's hard bound on descriptor nesting.
const maxTypeDepth = 1 << 10

func inspect(w io.Writer, i int, t *codec.Type) error {
	if err := t.Validate(maxTypeDepth); err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "invalid type descriptor")
	}
	raw, err := t.RawWidth(false, false)
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidData, err, "compute width")
	}
	member, err := t.MemberWidth(false)
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidData, err, "compute width")
	}
	packed, err := t.RawWidth(true, false)
	if err != nil {
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidData, err, "compute width")
	}

	class := "composite"
	if t.Kind.IsPrimitive() {
		class = "primitive"
	} else if !t.Kind.IsComposite() {
		class = "buffer"
	}
	_, err = fmt.Fprintf(w, "arg[%d] %s (%s)\n  signature: %s\n  inline: %d bytes (padded %d, packed %d)\n  dynamic: %t\n",
		i, t.DisplayName(), class, t.String(), raw, member, packed, t.Kind.IsDynamic())
	return err
}
