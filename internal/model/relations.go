package model

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

const (
	filterConfigKey       = "filter"
	contentTypesConfigKey = "contentTypes"
)

type contentTypeReference struct {
	Alias string `json:"ncAlias"`
}

// relationTarget picks the single content type alias a content reference is
// narrowed to. An empty result means the reference stays generic.
func relationTarget(config map[string]string) (string, error) {
	if len(config) == 0 {
		return "", nil
	}

	if filter, ok := config[filterConfigKey]; ok {
		return singleAlias(filter), nil
	}

	payload, ok := config[contentTypesConfigKey]
	if !ok || strings.TrimSpace(payload) == "" {
		return "", nil
	}

	refs, err := parseContentTypeReferences(payload)
	if err != nil {
		return "", err
	}
	if len(refs) != 1 {
		return "", nil
	}
	return singleAlias(refs[0].Alias), nil
}

func parseContentTypeReferences(payload string) ([]contentTypeReference, error) {
	trimmed := strings.TrimSpace(payload)

	var refs []contentTypeReference
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &refs); err != nil {
			return nil, errors.Wrapf(errors.Mark(err, schema.ErrConfigurationParse), "%s payload", contentTypesConfigKey)
		}
		return refs, nil
	}

	var single contentTypeReference
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, schema.ErrConfigurationParse), "%s payload", contentTypesConfigKey)
	}
	return []contentTypeReference{single}, nil
}

func singleAlias(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, ",") {
		return ""
	}
	return value
}

// substituteRelation replaces the content placeholder in expr with the
// capitalized target. Everything else in expr is left as is.
func substituteRelation(expr, target string) string {
	if target == "" {
		return expr
	}
	return strings.ReplaceAll(expr, ContentPlaceholder, Capitalize(target))
}
