package schema

import (
	"bytes"
	"encoding/json"
	"io"
)

func jsonschemaReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
