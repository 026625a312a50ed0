package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is written.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w %q (want text, json, yaml or msgpack)", ErrUnknownFormat, s)
	}
}

// Codec is an interface for encoding and decoding report documents.
// It keeps the structured formats interchangeable for the command.
type Codec interface {
	// Marshal encodes the given value into a byte slice.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes the given byte slice into the provided value.
	Unmarshal(data []byte, v any) error
}

// CodecFor returns the codec of a structured format. Text has no codec.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatMsgpack:
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w %q has no codec", ErrUnknownFormat, f)
	}
}

type jsonCodec struct{}

// Marshal keeps values such as "<MISSING>" or "a&b" readable instead of
// escaping them for HTML.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (jsonCodec) Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(b []byte, v any) error {
	return yaml.Unmarshal(b, v)
}

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (msgpackCodec) Unmarshal(b []byte, v any) error {
	return msgpack.Unmarshal(b, v)
}

// Document is the structured form of a [Report].
type Document struct {
	LeftLabel   string  `json:"leftLabel" yaml:"leftLabel" msgpack:"leftLabel"`
	RightLabel  string  `json:"rightLabel" yaml:"rightLabel" msgpack:"rightLabel"`
	Identical   bool    `json:"identical" yaml:"identical" msgpack:"identical"`
	Count       int     `json:"count" yaml:"count" msgpack:"count"`
	Differences []Entry `json:"differences" yaml:"differences" msgpack:"differences"`
}

// Entry is one difference; a nil side means the key is absent there.
type Entry struct {
	Key    string  `json:"key" yaml:"key" msgpack:"key"`
	Left   *string `json:"left" yaml:"left" msgpack:"left"`
	Right  *string `json:"right" yaml:"right" msgpack:"right"`
	Change string  `json:"change" yaml:"change" msgpack:"change"`
}

func (r Report) Document() Document {
	doc := Document{
		LeftLabel:   r.LeftLabel,
		RightLabel:  r.RightLabel,
		Identical:   r.Identical(),
		Count:       len(r.Differences),
		Differences: make([]Entry, 0, len(r.Differences)),
	}
	for _, d := range r.Differences {
		entry := Entry{Key: d.Key, Change: d.Change().String()}
		if v, ok := d.Left.Get(); ok {
			entry.Left = &v
		}
		if v, ok := d.Right.Get(); ok {
			entry.Right = &v
		}
		doc.Differences = append(doc.Differences, entry)
	}
	return doc
}

// Encode writes the document of r to w.
func Encode(w io.Writer, r Report, codec Codec) error {
	b, err := codec.Marshal(r.Document())
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = w.Write(b)
	return err
}
