// Package witabi derives codec type descriptors from WIT types.
//
// It lets tooling that already holds a parsed WIT world describe contract
// arguments without writing descriptors by hand. The mapping is:
//
//	WIT                 Descriptor
//	─────────────────────────────────────────────
//	bool, u8..u64       Bool, U8..U64
//	string              String
//	list<u8>            Bytes
//	list<T>             Vec<T>
//	tuple<A, B>         (A, B)
//	record              struct with the record's fields
//	variant             enum; cases without payload carry ()
//	enum                enum of () variants
//	option<T>           enum Option { None, Some(T) }
//	result<T, E>        enum Result { Ok(T), Err(E) }
//
// Signed integers, floats, char, flags and resource handles have no
// representation in the VM ABI and are rejected.
package witabi
