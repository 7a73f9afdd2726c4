package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
)

const indent = "    "

type blockKind string

const (
	blockClass     blockKind = "class"
	blockInterface blockKind = "interface"
)

// Print walks a model tree and returns its token stream. Parents are printed
// before their children. The parentless top of the chain prints its
// composition interfaces first and folds their properties into its own class
// block. The model is not modified.
func Print(m *model.GeneratedModel) Tokens {
	p := &printer{}
	p.model(m)
	return p.tokens
}

// Render returns the plain text of Print(m).
func Render(m *model.GeneratedModel) string {
	return Print(m).String()
}

type printer struct {
	tokens Tokens
}

func (p *printer) model(m *model.GeneratedModel) {
	if m == nil {
		return
	}

	if m.ParentClass != nil {
		p.model(m.ParentClass)
		p.block(blockClass, m.ClassName, []string{m.ParentClass.ClassName}, m.Properties)
		return
	}

	properties := append([]model.ResolvedProperty(nil), m.Properties...)
	for _, composition := range m.Compositions.All() {
		p.block(blockInterface, composition.InterfaceName, nil, composition.Properties)
		properties = append(properties, composition.Properties...)
	}
	p.block(blockClass, m.ClassName, m.InheritedInterfaceNames(), properties)
}

func (p *printer) block(kind blockKind, name string, inherits []string, properties []model.ResolvedProperty) {
	p.emit(CategoryKeyword, "public")
	p.space()
	p.emit(CategoryKeyword, string(kind))
	p.space()
	p.emit(CategoryType, name)
	if len(inherits) > 0 {
		p.emit(CategoryStandard, " : ")
		p.emit(CategoryType, strings.Join(inherits, ", "))
	}
	p.newline()
	p.emit(CategoryStandard, "{")
	p.newline()

	for _, property := range mandatoryFirst(properties) {
		annotated := kind == blockClass && property.Mandatory
		if annotated {
			p.emit(CategoryWhitespace, indent)
			p.emit(CategoryStandard, "[")
			p.emit(CategoryType, "Required")
			p.emit(CategoryStandard, "]")
			p.newline()
		}
		p.property(property)
		if annotated {
			p.newline()
		}
	}

	p.emit(CategoryStandard, "}")
	p.newline()
	p.newline()
}

func (p *printer) property(property model.ResolvedProperty) {
	p.emit(CategoryWhitespace, indent)
	p.emit(CategoryKeyword, "public")
	p.space()
	p.tokens = append(p.tokens, TypeTokens(property.Type)...)
	p.space()
	p.emit(CategoryStandard, property.Name)
	p.space()
	p.emit(CategoryStandard, "{")
	p.space()
	p.emit(CategoryKeyword, "get")
	p.emit(CategoryStandard, ";")
	p.space()
	p.emit(CategoryKeyword, "set")
	p.emit(CategoryStandard, ";")
	p.space()
	p.emit(CategoryStandard, "}")
	p.newline()
}

func (p *printer) emit(category Category, text string) {
	if text == "" {
		return
	}
	p.tokens = append(p.tokens, Token{Category: category, Text: text})
}

func (p *printer) space() {
	p.emit(CategoryWhitespace, " ")
}

func (p *printer) newline() {
	p.emit(CategoryWhitespace, "\n")
}

// TypeTokens splits a type expression so its outermost angle brackets are
// punctuation. The remaining text is a keyword when the whole expression is
// a keyword alias, otherwise a type.
func TypeTokens(expr string) Tokens {
	category := CategoryType
	if model.IsAliasType(expr) {
		category = CategoryKeyword
	}

	open := strings.Index(expr, "<")
	closing := strings.LastIndex(expr, ">")
	if open < 0 || closing < open {
		return Tokens{{Category: category, Text: expr}}
	}

	out := make(Tokens, 0, 5)
	add := func(c Category, text string) {
		if text != "" {
			out = append(out, Token{Category: c, Text: text})
		}
	}
	add(category, expr[:open])
	add(CategoryStandard, "<")
	add(category, expr[open+1:closing])
	add(CategoryStandard, ">")
	add(category, expr[closing+1:])
	return out
}

func mandatoryFirst(properties []model.ResolvedProperty) []model.ResolvedProperty {
	out := append([]model.ResolvedProperty(nil), properties...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mandatory && !out[j].Mandatory
	})
	return out
}
