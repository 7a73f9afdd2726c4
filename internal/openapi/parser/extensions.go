package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

const (
	extensionNamespace = "x-modelgen"

	extID       = extensionNamespace + "-id"
	extAlias    = extensionNamespace + "-alias"
	extParent   = extensionNamespace + "-parent"
	extTrait    = extensionNamespace + "-trait"
	extGroup    = extensionNamespace + "-group"
	extShape    = extensionNamespace + "-shape"
	extDataType = extensionNamespace + "-data-type"
	extConfig   = extensionNamespace + "-config"
)

const componentRefPrefix = "#/components/schemas/"

// refName returns the component key a $ref points at.
func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func stringExtension(ext map[string]any, key string) string {
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func boolExtension(ext map[string]any, key string) bool {
	switch v := ext[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}

// intExtension reads an integer extension. Decoded documents carry numbers as
// float64.
func intExtension(ext map[string]any, key string) (int, bool, error) {
	value, ok := ext[key]
	if !ok || value == nil {
		return 0, false, nil
	}
	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, errors.Newf("%s: %v is not an integer", key, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false, errors.Wrapf(err, "%s", key)
		}
		return int(parsed), true, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, errors.Wrapf(err, "%s", key)
		}
		return parsed, true, nil
	default:
		return 0, false, errors.Newf("%s: unsupported value %T", key, value)
	}
}

// configExtension flattens the configuration extension into a string bag.
// Structured values are stored as JSON, matching how content pickers persist
// their settings.
func configExtension(ext map[string]any) (map[string]string, error) {
	value, ok := ext[extConfig]
	if !ok || value == nil {
		return nil, nil
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, errors.Newf("%s: expected an object, got %T", extConfig, value)
	}
	out := make(map[string]string, len(raw))
	for key, entry := range raw {
		switch v := entry.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, errors.Wrapf(err, "%s.%s", extConfig, key)
			}
			out[key] = string(encoded)
		}
	}
	return out, nil
}

// shapeExtension decodes an explicit value shape.
func shapeExtension(ext map[string]any) (schema.ValueShape, bool, error) {
	value, ok := ext[extShape]
	if !ok || value == nil {
		return schema.ValueShape{}, false, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return schema.ValueShape{}, false, errors.Wrap(err, extShape)
	}
	var shape schema.ValueShape
	if err := json.Unmarshal(encoded, &shape); err != nil {
		return schema.ValueShape{}, false, errors.Wrap(err, extShape)
	}
	shape, err = schema.NormalizeShape(shape)
	if err != nil {
		return schema.ValueShape{}, false, errors.Wrap(err, extShape)
	}
	return shape, true, nil
}
