package loader

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML decodes TOML data into v, rejecting unknown keys.
func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	perr := &ParseError{
		Path:    source,
		Message: err.Error(),
		Err:     err,
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		perr.Line, perr.Column = decErr.Position()
		return perr
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		perr.Line, perr.Column = first.Position()
		perr.Message = "unknown key " + joinKey(first.Key())
	}
	return perr
}

func joinKey(key []string) string {
	var b bytes.Buffer
	for i, k := range key {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}
