package toolmanager

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cyclone1070/well/internal/tool"
	"github.com/mitchellh/mapstructure"
)

// decodeArguments fills target from the raw JSON arguments of a call after
// checking that every required field of the declaration is present.
func decodeArguments(decl tool.Declaration, raw string, target any) error {
	var args map[string]any
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return fmt.Errorf("malformed JSON: %w", err)
		}
	}

	if decl.Parameters != nil {
		for _, field := range decl.Parameters.Required {
			if v, ok := args[field]; !ok || v == nil {
				return fmt.Errorf("%w: %s", tool.ErrMissingField, field)
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}
