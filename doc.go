// Package vmabi is a client-side codec for the binary ABI of a word-oriented
// blockchain VM.
//
// It converts typed values into the byte layout the VM expects for call
// arguments and configurable constants, and decodes return values and logs
// back into typed values.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	vmabi/               Root package (documentation only)
//	├── codec/           Type descriptors, values, encoder, resolver and decoder
//	│   └── internal/    Width arithmetic, descriptor model and width cache
//	├── witabi/          WIT type definitions converted to codec descriptors
//	├── errors/          Structured error types for debugging
//	├── cmd/vmabi/       Command line tool with an interactive mode
//	└── examples/        Runnable usage examples
//
// # Quick Start
//
// Encode call arguments and decode them back:
//
//	point := codec.NewStruct("Point",
//	    codec.Field{Name: "x", Type: codec.TypeU64},
//	    codec.Field{Name: "y", Type: codec.TypeU64},
//	)
//
//	data, err := codec.Encode(codec.Struct{codec.U64(1), codec.U64(2)})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := codec.Decode(point, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, _ := codec.Debug(point, v)
//	fmt.Println(text) // "Point { x: 1, y: 2 }"
//
// # Wire Format
//
// Everything is laid out in 8-byte big-endian words. Strings, byte buffers,
// slices and vectors are written as a header holding a pointer and a length;
// their contents follow all inline data and the pointer is the absolute offset
// of the contents. Enums are a discriminant word followed by the payload,
// left-padded to the width of the widest variant.
//
// # Limits
//
// Every Encoder and Decoder is bound by a codec.Config that caps nesting
// depth, the number of visited values and enum widths, so hostile input is
// rejected with an error before it can exhaust memory.
//
// # Thread Safety
//
// Encoder, Decoder and LogDecoder are safe for concurrent use. Configurables
// is not and should be owned by a single goroutine.
package vmabi
