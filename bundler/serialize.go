package bundler

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"
)

const (
	// DefaultPrefix is the indentation placed before the
	// statement to match the script it is pasted into.
	DefaultPrefix = "        "

	// DefaultVarName is the assigned constant name.
	DefaultVarName = "embeddedPages"

	literalIndent   = "    "
	statementFormat = "{prefix}const {name} = {literal};\n"
)

// Options controls the statement wrapped around the
// literal.
type Options struct {
	Prefix  string
	VarName string
}

// DefaultOptions returns the reference prefix and name.
func DefaultOptions() Options {
	return Options{
		Prefix:  DefaultPrefix,
		VarName: DefaultVarName,
	}
}

// Serialize renders cm with DefaultOptions.
func Serialize(cm *ContentMap) (string, error) {
	return SerializeWith(cm, DefaultOptions())
}

// SerializeWith renders cm as
// "<prefix>const <name> = <literal>;\n" where literal is
// the JSON object of cm indented four spaces per level.
func SerializeWith(cm *ContentMap, opts Options) (string, error) {
	const errCtx = "serializing content map"

	literal, err := Literal(cm)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return fasttemplate.ExecuteStringStd(
		statementFormat, "{", "}",
		map[string]interface{}{
			"prefix":  opts.Prefix,
			"name":    opts.VarName,
			"literal": literal,
		},
	), nil
}

// Literal returns the indented JSON object for cm.
func Literal(cm *ContentMap) (string, error) {
	const errCtx = "encoding literal"

	compact, err := cm.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	var out bytes.Buffer

	if err := json.Indent(
		&out, compact, "", literalIndent,
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out.String(), nil
}
