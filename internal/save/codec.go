package save

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Persistence errors. A *DecodeError matches ErrDecode, and a version
// mismatch matches both ErrDecode and ErrVersion.
var (
	ErrNotFound = errors.New("save: no saved game")
	ErrDecode   = errors.New("save: cannot decode snapshot")
	ErrVersion  = errors.New("save: incompatible snapshot version")
)

// DecodeError reports which stage of decoding rejected a blob.
type DecodeError struct {
	Stage string // base64, zstd, json, version, schema, fields
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at %s stage: %v", ErrDecode, e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

func errUnknown(what, value string) error {
	return fmt.Errorf("unknown %s %q", what, value)
}

//go:embed schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// codecs builds the shared zstd encoder and decoder on first use. Both are
// safe for concurrent EncodeAll/DecodeAll calls.
func codecs() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			codecErr = fmt.Errorf("zstd writer: %w", codecErr)
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if codecErr != nil {
			codecErr = fmt.Errorf("zstd reader: %w", codecErr)
		}
	})
	return encoder, decoder, codecErr
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("snapshot.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// Encode serializes a snapshot as JSON, compresses it with zstd and returns
// the result as base64 text.
func Encode(s Snapshot) (string, error) {
	raw, err := json.Marshal(s.wire())
	if err != nil {
		return "", fmt.Errorf("save: cannot encode snapshot: %w", err)
	}
	enc, _, err := codecs()
	if err != nil {
		return "", fmt.Errorf("save: cannot encode snapshot: %w", err)
	}
	packed := enc.EncodeAll(raw, make([]byte, 0, len(raw)))
	return base64.StdEncoding.EncodeToString(packed), nil
}

// Decode reverses Encode. Malformed input and unsupported versions fail with
// a *DecodeError.
func Decode(blob string) (Snapshot, error) {
	packed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return Snapshot{}, &DecodeError{Stage: "base64", Err: err}
	}
	_, dec, err := codecs()
	if err != nil {
		return Snapshot{}, &DecodeError{Stage: "zstd", Err: err}
	}
	raw, err := dec.DecodeAll(packed, nil)
	if err != nil {
		return Snapshot{}, &DecodeError{Stage: "zstd", Err: err}
	}

	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return Snapshot{}, &DecodeError{Stage: "json", Err: err}
	}
	if header.Version != Version {
		return Snapshot{}, &DecodeError{
			Stage: "version",
			Err:   fmt.Errorf("%w: got %d, want %d", ErrVersion, header.Version, Version),
		}
	}

	if err := validate(raw); err != nil {
		return Snapshot{}, &DecodeError{Stage: "schema", Err: err}
	}

	var w snapshotV1
	if err := json.Unmarshal(raw, &w); err != nil {
		return Snapshot{}, &DecodeError{Stage: "json", Err: err}
	}
	return w.snapshot()
}

func validate(raw []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return sch.Validate(doc)
}
