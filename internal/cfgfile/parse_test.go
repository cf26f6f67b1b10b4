package cfgfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	t.Parallel()

	data := `# leading comment
; another comment
[SERVICE]
Host = example.org
port=8080
empty =
note = keep#this # but not this

[LOGGING]
log_level = INFO
paths = /var/log/a
    /var/log/b
	/var/log/c
`

	doc, err := Parse("app.cfg", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, "app.cfg", doc.Path())
	assert.Equal(t, []string{"SERVICE", "LOGGING"}, doc.Sections())
	assert.Equal(t, []string{"host", "port", "empty", "note"}, doc.Keys("SERVICE"))

	v, ok := doc.Get("SERVICE", "host")
	assert.True(t, ok)
	assert.Equal(t, "example.org", v)

	v, ok = doc.Get("SERVICE", "HOST")
	assert.True(t, ok, "keys are case-insensitive")
	assert.Equal(t, "example.org", v)

	v, ok = doc.Get("SERVICE", "port")
	assert.True(t, ok)
	assert.Equal(t, "8080", v)

	v, ok = doc.Get("SERVICE", "empty")
	assert.True(t, ok, "key with no value is present")
	assert.Equal(t, "", v)

	v, _ = doc.Get("SERVICE", "note")
	assert.Equal(t, "keep#this", v)

	v, _ = doc.Get("LOGGING", "paths")
	assert.Equal(t, "/var/log/a\n/var/log/b\n/var/log/c", v)

	assert.False(t, doc.HasSection("service"), "section names are case-sensitive")
	assert.False(t, doc.HasKey("SERVICE", "missing"))
	assert.Nil(t, doc.Keys("missing"))
}

func TestParse_BlankLineEndsContinuation(t *testing.T) {
	t.Parallel()

	data := "[a]\nk = one\n\n  two = 2\n"
	doc, err := Parse("x.cfg", []byte(data))
	require.NoError(t, err)

	v, _ := doc.Get("a", "k")
	assert.Equal(t, "one", v)
	v, ok := doc.Get("a", "two")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestParse_IndentedKeys(t *testing.T) {
	t.Parallel()

	data := "[S]\n    a = 1\n    b = 2\n      more\n\tc = 3\n"
	doc, err := Parse("x.cfg", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys("S"))

	v, _ := doc.Get("S", "a")
	assert.Equal(t, "1", v)
	v, _ = doc.Get("S", "b")
	assert.Equal(t, "2\nmore", v, "deeper indent continues the key")
	v, ok := doc.Get("S", "c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestParse_CRLFAndBOM(t *testing.T) {
	t.Parallel()

	data := "\ufeff[a]\r\nk = v\r\n"
	doc, err := Parse("x.cfg", []byte(data))
	require.NoError(t, err)

	v, ok := doc.Get("a", "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	doc, err := Parse("x.cfg", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Sections())
	assert.Empty(t, doc.Map())
}

func TestParse_Map(t *testing.T) {
	t.Parallel()

	doc, err := Parse("x.cfg", []byte("[a]\nk = v\n[b]\n"))
	require.NoError(t, err)

	m := doc.Map()
	assert.Equal(t, map[string]map[string]string{
		"a": {"k": "v"},
		"b": {},
	}, m)

	m["a"]["k"] = "changed"
	v, _ := doc.Get("a", "k")
	assert.Equal(t, "v", v, "Map returns a copy")
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "line without equals",
			data:     "[a]\nk = v\njustakey\n",
			wantLine: 3,
			wantMsg:  "expected",
		},
		{
			name:     "key before section",
			data:     "k = v\n[a]\n",
			wantLine: 1,
			wantMsg:  "before any section",
		},
		{
			name:     "duplicate section",
			data:     "[a]\n[b]\n[a]\n",
			wantLine: 3,
			wantMsg:  "duplicate section",
		},
		{
			name:     "duplicate key",
			data:     "[a]\nk = 1\nK = 2\n",
			wantLine: 3,
			wantMsg:  "duplicate key",
		},
		{
			name:     "unterminated header",
			data:     "[a\n",
			wantLine: 1,
			wantMsg:  "unterminated section header",
		},
		{
			name:     "empty section name",
			data:     "[ ]\n",
			wantLine: 1,
			wantMsg:  "empty section name",
		},
		{
			name:     "missing key",
			data:     "[a]\n = v\n",
			wantLine: 2,
			wantMsg:  "missing key",
		},
		{
			name:     "colon is not a delimiter",
			data:     "[a]\nk: v\n",
			wantLine: 2,
			wantMsg:  "expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse("bad.cfg", []byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrParse)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "bad.cfg", pe.Path)
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.Contains(t, pe.Msg, tt.wantMsg)
			assert.Contains(t, err.Error(), fmt.Sprintf("bad.cfg:%d", tt.wantLine))
		})
	}
}

func TestParse_Interpolation(t *testing.T) {
	t.Parallel()

	data := `[paths]
root = /srv
data = ${root}/data
cache = ${data}/cache

[app]
dir = ${paths:cache}/app
price = $$5
mixed = ${paths:root}$${literal}
`

	doc, err := Parse("x.cfg", []byte(data))
	require.NoError(t, err)

	tests := []struct {
		section, key, want string
	}{
		{"paths", "data", "/srv/data"},
		{"paths", "cache", "/srv/data/cache"},
		{"app", "dir", "/srv/data/cache/app"},
		{"app", "price", "$5"},
		{"app", "mixed", "/srv${literal}"},
	}
	for _, tt := range tests {
		v, ok := doc.Get(tt.section, tt.key)
		assert.True(t, ok, "%s.%s", tt.section, tt.key)
		assert.Equal(t, tt.want, v, "%s.%s", tt.section, tt.key)
	}
}

func TestParse_InterpolationForwardReference(t *testing.T) {
	t.Parallel()

	data := "[a]\nfirst = ${b:later}!\n[b]\nlater = ok\n"
	doc, err := Parse("x.cfg", []byte(data))
	require.NoError(t, err)

	v, _ := doc.Get("a", "first")
	assert.Equal(t, "ok!", v)
}

func TestParse_InterpolationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		wantCycle bool
		wantMsg   string
	}{
		{
			name:    "missing option",
			data:    "[a]\nk = ${nope}\n",
			wantMsg: "missing option",
		},
		{
			name:    "missing section",
			data:    "[a]\nk = ${zzz:nope}\n",
			wantMsg: "missing section",
		},
		{
			name:    "bare dollar",
			data:    "[a]\nk = 5$\n",
			wantMsg: "must be followed by",
		},
		{
			name:    "dollar followed by other",
			data:    "[a]\nk = $x\n",
			wantMsg: "must be followed by",
		},
		{
			name:    "unterminated reference",
			data:    "[a]\nk = ${open\n",
			wantMsg: "unterminated reference",
		},
		{
			name:    "too many colons",
			data:    "[a]\nk = ${a:b:c}\n",
			wantMsg: "more than one",
		},
		{
			name:      "self reference",
			data:      "[a]\nk = ${k}\n",
			wantCycle: true,
			wantMsg:   "a:k -> a:k",
		},
		{
			name:      "two key cycle across sections",
			data:      "[a]\nx = ${b:y}\n[b]\ny = ${a:x}\n",
			wantCycle: true,
			wantMsg:   "a:x -> b:y -> a:x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("x.cfg", []byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.Equal(t, tt.wantCycle, errors.Is(err, ErrInterpolationCycle))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// chain builds keys k0..k(n-1) where each key references the next.
func chain(n int) string {
	var b strings.Builder
	b.WriteString("[c]\n")
	for i := 0; i < n-1; i++ {
		fmt.Fprintf(&b, "k%d = ${k%d}\n", i, i+1)
	}
	fmt.Fprintf(&b, "k%d = end\n", n-1)
	return b.String()
}

func TestParse_InterpolationDepth(t *testing.T) {
	t.Parallel()

	doc, err := Parse("x.cfg", []byte(chain(maxInterpolationDepth+1)))
	require.NoError(t, err)
	v, _ := doc.Get("c", "k0")
	assert.Equal(t, "end", v)

	_, err = Parse("x.cfg", []byte(chain(maxInterpolationDepth+2)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrInterpolationCycle)
	assert.Contains(t, err.Error(), "nested deeper")
}
