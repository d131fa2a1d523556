package outline

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// language pairs a grammar with the queries that pull out definitions and
// references. Every capture in either query contributes one name.
type language struct {
	grammar *sitter.Language
	defs    string
	refs    string
}

const pythonDefs = `
(class_definition name: (identifier) @name)
(function_definition name: (identifier) @name)
`

const pythonRefs = `
(identifier) @name
`

const typescriptDefs = `
(function_signature name: (identifier) @name)
(function_declaration name: (identifier) @name)
(method_signature name: (property_identifier) @name)
(abstract_method_signature name: (property_identifier) @name)
(abstract_class_declaration name: (type_identifier) @name)
(class_declaration name: (type_identifier) @name)
(module name: (identifier) @name)
(interface_declaration name: (type_identifier) @name)
`

const typescriptRefs = `
(type_annotation (type_identifier) @name)
(new_expression constructor: (identifier) @name)
`

const rustDefs = `
(struct_item name: (type_identifier) @name)
(enum_item name: (type_identifier) @name)
(union_item name: (type_identifier) @name)
(type_item name: (type_identifier) @name)
(function_item name: (identifier) @name)
(trait_item name: (type_identifier) @name)
(mod_item name: (identifier) @name)
(macro_definition name: (identifier) @name)
`

const rustRefs = `
(call_expression function: (identifier) @name)
(call_expression function: (field_expression field: (field_identifier) @name))
(macro_invocation macro: (identifier) @name)
`

const goDefs = `
(function_declaration name: (identifier) @name)
(method_declaration name: (field_identifier) @name)
(type_spec name: (type_identifier) @name)
`

const goRefs = `
(call_expression function: (identifier) @name)
(call_expression function: (selector_expression field: (field_identifier) @name))
`

// languageFor picks the grammar by file extension. ok is false for files
// that have no outline support.
func languageFor(path string) (language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return language{grammar: python.GetLanguage(), defs: pythonDefs, refs: pythonRefs}, true
	case ".ts", ".js", ".mjs", ".cjs":
		return language{grammar: typescript.GetLanguage(), defs: typescriptDefs, refs: typescriptRefs}, true
	case ".tsx", ".jsx":
		return language{grammar: tsx.GetLanguage(), defs: typescriptDefs, refs: typescriptRefs}, true
	case ".rs":
		return language{grammar: rust.GetLanguage(), defs: rustDefs, refs: rustRefs}, true
	case ".go":
		return language{grammar: golang.GetLanguage(), defs: goDefs, refs: goRefs}, true
	default:
		return language{}, false
	}
}
