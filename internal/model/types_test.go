package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompositionsPreserveInsertionOrder(t *testing.T) {
	var set Compositions
	set.Merge(&GeneratedModel{ClassName: "B", InterfaceName: "IB"})
	set.Merge(&GeneratedModel{ClassName: "A", InterfaceName: "IA"})
	stored := set.Merge(&GeneratedModel{ClassName: "B", Properties: []ResolvedProperty{{Name: "X"}}})

	if set.Len() != 2 {
		t.Fatalf("expected two entries, got %d", set.Len())
	}
	if stored.InterfaceName != "IB" || len(stored.Properties) != 1 {
		t.Fatalf("expected merge into the existing entry, got %+v", stored)
	}

	model := &GeneratedModel{Compositions: set}
	if diff := cmp.Diff([]string{"IB", "IA"}, model.InheritedInterfaceNames()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratedModelJSON(t *testing.T) {
	model := &GeneratedModel{ClassName: "Page"}
	model.Compositions.Merge(&GeneratedModel{ClassName: "Seo", InterfaceName: "ISeo"})

	raw, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded GeneratedModel
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"ISeo"}, decoded.InheritedInterfaceNames()); diff != "" {
		t.Fatalf("compositions lost (-want +got):\n%s", diff)
	}
}
