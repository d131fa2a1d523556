package tool

import (
	"bytes"
	"encoding/json"
)

// envelope is the JSON shape every tool outcome is reported to the model in.
// Exactly one of the fields is set.
type envelope struct {
	Result *string `json:"result,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// Success wraps a tool's output as {"result": output}.
func Success(output string) string {
	return encode(envelope{Result: &output})
}

// Failure wraps a tool failure as {"error": message}.
func Failure(err error) string {
	msg := err.Error()
	return encode(envelope{Error: &msg})
}

func encode(e envelope) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// A struct of two string pointers always encodes.
	_ = enc.Encode(e)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
