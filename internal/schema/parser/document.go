package parser

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

type documentFile struct {
	ContentTypes []contentTypeFile `json:"contentTypes" yaml:"contentTypes"`
	DataTypes    []dataTypeFile    `json:"dataTypes" yaml:"dataTypes"`
}

type contentTypeFile struct {
	ID           int         `json:"id" yaml:"id"`
	Alias        string      `json:"alias" yaml:"alias"`
	Name         string      `json:"name" yaml:"name"`
	ParentID     *int        `json:"parentId" yaml:"parentId"`
	Groups       []groupFile `json:"groups" yaml:"groups"`
	Compositions []int       `json:"compositions" yaml:"compositions"`
}

type groupFile struct {
	ID         int            `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Properties []propertyFile `json:"properties" yaml:"properties"`
}

type propertyFile struct {
	Alias      string             `json:"alias" yaml:"alias"`
	Name       string             `json:"name" yaml:"name"`
	Mandatory  bool               `json:"mandatory" yaml:"mandatory"`
	DataTypeID int                `json:"dataTypeId" yaml:"dataTypeId"`
	Shape      *schema.ValueShape `json:"shape" yaml:"shape"`
}

type dataTypeFile struct {
	ID     int               `json:"id" yaml:"id"`
	Config map[string]string `json:"config" yaml:"config"`
}

// parseDocument accepts JSON first and falls back to YAML.
func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, errors.Newf("catalog parser: document %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, errors.Wrapf(err, "catalog parser: parse %s: invalid JSON or YAML", source)
	}
	return doc, nil
}

// DetectCatalog reports whether raw looks like a catalog document.
func DetectCatalog(raw []byte) bool {
	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		probe = nil
		if err := yaml.Unmarshal(raw, &probe); err != nil {
			return false
		}
	}
	_, ok := probe["contentTypes"]
	return ok
}
