// Package jsoncompat hides the JSON implementation behind a build tag. Sonic
// is used by default, build with -tags stdjson for encoding/json.
package jsoncompat

type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}
