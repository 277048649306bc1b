package bundler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/pagebundle/bundler"
	"github.com/byte4ever/pagebundle/registry"
)

const statementHead = "        const embeddedPages = "

// parseLiteral strips the statement around the literal and
// decodes it.
func parseLiteral(
	tb testing.TB,
	out string,
) map[string]string {
	tb.Helper()

	require.True(tb, strings.HasPrefix(out, statementHead))
	require.True(tb, strings.HasSuffix(out, ";\n"))

	literal := strings.TrimSuffix(
		strings.TrimPrefix(out, statementHead), ";\n",
	)

	var got map[string]string
	require.NoError(tb, json.Unmarshal([]byte(literal), &got))

	return got
}

// contentMapOf writes pages into a temp dir and bundles
// them in the given order.
func contentMapOf(
	tb testing.TB,
	pages [][2]string,
) *bundler.ContentMap {
	tb.Helper()

	dir := tb.TempDir()
	reg := make(registry.Registry, 0, len(pages))

	for idx, pg := range pages {
		name := filepath.Join("p", strings.Repeat("x", idx+1)+".md")
		writeTemp(tb, dir, name, pg[1])
		reg = append(reg, registry.Page{ID: pg[0], File: name})
	}

	logger, _ := captureLogger(tb)

	return bundler.BuildContentMap(reg, dir, logger)
}

func TestSerialize_golden_example(t *testing.T) {
	t.Parallel()

	reg := registry.Registry{
		{ID: "home", File: "README.md"},
		{ID: "missing", File: "nope.md"},
	}

	logger, _ := captureLogger(t)

	cm := bundler.BuildContentMap(
		reg, filepath.Join("testdata", "guide"), logger,
	)

	got, err := bundler.Serialize(cm)
	require.NoError(t, err)

	want, err := os.ReadFile( //nolint:gosec // test file
		filepath.Join("testdata", "example.golden"),
	)
	require.NoError(t, err)

	assert.Equal(t, string(want), got)
}

func TestSerialize_round_trip(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"home", "# Home\n\nWelcome.\n"},
		{"quote", `say "hi" \o/` + "\n"},
		{"unicode", "café ☕ 日本語 \U0001F600\n"},
		{"ctrl", "tab\there\x01\x1f\r\n"},
		{"empty", ""},
	})

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	got := parseLiteral(t, out)

	require.Len(t, got, cm.Len())

	for _, en := range cm.Entries() {
		assert.Equal(t, en.Content, got[en.ID], en.ID)
	}
}

func TestSerialize_escapes_specials(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"x", "a\"b\\c\nd é"},
	})

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	assert.Contains(t, out, `"x": "a\"b\\c\nd é"`)
	assert.Equal(t, "a\"b\\c\nd é", parseLiteral(t, out)["x"])
}

func TestSerialize_does_not_escape_html(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"html", "<br> & <b>"},
	})

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	assert.Contains(t, out, `"html": "<br> & <b>"`)
	assert.NotContains(t, out, `\u003c`)
	assert.NotContains(t, out, `\u0026`)
	assert.Equal(t, "<br> & <b>", parseLiteral(t, out)["html"])
}

func TestContentMap_marshal_json_keeps_html(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"a&b", "x<y>z\u2028"},
	})

	got, err := cm.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, `{"a&b":"x<y>z\u2028"}`, string(got))
}

func TestSerialize_keeps_registry_order(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"zeta", "z"},
		{"alpha", "a"},
		{"mid", "m"},
	})

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	zi := strings.Index(out, `"zeta"`)
	ai := strings.Index(out, `"alpha"`)
	mi := strings.Index(out, `"mid"`)

	assert.Less(t, zi, ai)
	assert.Less(t, ai, mi)
}

func TestSerialize_layout(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"a", "1"},
		{"b", "2"},
	})

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	assert.Equal(
		t,
		"        const embeddedPages = {\n"+
			"    \"a\": \"1\",\n"+
			"    \"b\": \"2\"\n"+
			"};\n",
		out,
	)
}

func TestSerialize_empty_map(t *testing.T) {
	t.Parallel()

	cm := bundler.BuildContentMap(nil, t.TempDir(), nil)

	out, err := bundler.Serialize(cm)
	require.NoError(t, err)

	assert.Equal(t, "        const embeddedPages = {};\n", out)
}

func TestSerialize_idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeTemp(t, dir, "README.md", "Hello \"world\"\n")

	reg := registry.Registry{
		{ID: "home", File: "README.md"},
		{ID: "gone", File: "gone.md"},
	}

	logger, _ := captureLogger(t)

	first, err := bundler.Serialize(
		bundler.BuildContentMap(reg, dir, logger),
	)
	require.NoError(t, err)

	second, err := bundler.Serialize(
		bundler.BuildContentMap(reg, dir, logger),
	)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSerializeWith_custom_options(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{{"a", "1"}})

	out, err := bundler.SerializeWith(cm, bundler.Options{
		Prefix:  "",
		VarName: "docs",
	})
	require.NoError(t, err)

	assert.Equal(t, "const docs = {\n    \"a\": \"1\"\n};\n", out)
}

func TestLiteral_is_valid_json(t *testing.T) {
	t.Parallel()

	cm := contentMapOf(t, [][2]string{
		{"a", "line\nline"},
		{"b", "  "},
	})

	literal, err := bundler.Literal(cm)
	require.NoError(t, err)

	assert.True(t, json.Valid([]byte(literal)))
}

func FuzzSerialize_round_trip(f *testing.F) {
	f.Add("home", "Hello\n")
	f.Add("k", `"\`)
	f.Add("ключ", "значение\t\x00")
	f.Add("a{b}", "{prefix}{name}{literal}")
	f.Add("", "")

	f.Fuzz(func(t *testing.T, id string, content string) {
		if id == "" ||
			!utf8.ValidString(id) ||
			!utf8.ValidString(content) {
			return
		}

		dir := t.TempDir()

		if err := os.WriteFile(
			filepath.Join(dir, "page.md"),
			[]byte(content),
			0o600,
		); err != nil {
			return
		}

		logger, _ := captureLogger(t)

		cm := bundler.BuildContentMap(
			registry.Registry{{ID: id, File: "page.md"}},
			dir,
			logger,
		)

		out, err := bundler.Serialize(cm)
		require.NoError(t, err)

		got := parseLiteral(t, out)
		assert.Equal(t, map[string]string{id: content}, got)
	})
}
