package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// decodeYAML decodes YAML data into v, rejecting unknown keys.
// An empty document leaves v untouched.
func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	perr := &ParseError{
		Path:    source,
		Message: err.Error(),
		Err:     err,
	}
	// yaml.v3 reports positions only inside the message text.
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
	}
	return perr
}
