package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/engine/parser"
)

const multiplier = `pragma circom 2.1.6;
pragma custom_templates;

include "circomlib/circuits/bitify.circom";
include "./utils.circom";

/* block
   comment */
function square(x) {
    return x * x; // { unbalanced in a comment
}

template Multiplier(n, m) {
    signal input a[n][m + 1];
    signal input b;
    signal output {binary} c, d[2 ** n];
    signal tmp <== a[0][0] * b;

    for (var i = 0; i < n; i++) {
        if (i > 0) {
            signal inner[i];
        }
    }
    c <== tmp;
}

template parallel Other() {
    signal input x;
}

component main {public [b]} = Multiplier(3, square(2));
`

func TestParse_Multiplier(t *testing.T) {
	data, err := parser.ParseText(multiplier, "/p/circuits/mul.circom")
	require.NoError(t, err)

	assert.Equal(t, "2.1.6", data.PragmaVersion)
	assert.Equal(t, []string{"circomlib/circuits/bitify.circom", "./utils.circom"}, data.Imports)
	require.Len(t, data.Templates, 2)

	tmpl := data.Templates["Multiplier"]
	assert.Equal(t, []string{"n", "m"}, tmpl.Params)

	names := make([]string, 0, len(tmpl.Signals))
	for _, s := range tmpl.Signals {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "tmp", "inner"}, names)

	a, _ := tmpl.Signal("a")
	assert.Equal(t, domain.SignalInput, a.Kind)
	require.Len(t, a.Dimensions, 2)
	assert.Equal(t, "n", a.Dimensions[0].String())
	assert.Equal(t, "m + 1", a.Dimensions[1].String())

	c, _ := tmpl.Signal("c")
	assert.Equal(t, domain.SignalOutput, c.Kind)
	assert.Empty(t, c.Dimensions)

	d, _ := tmpl.Signal("d")
	assert.Equal(t, domain.SignalOutput, d.Kind)
	assert.Equal(t, "2 ** n", d.Dimensions[0].String())

	tmp, _ := tmpl.Signal("tmp")
	assert.Equal(t, domain.SignalIntermediate, tmp.Kind)

	require.NotNil(t, data.Main)
	assert.Equal(t, "Multiplier", data.Main.Template)
	assert.Equal(t, []string{"b"}, data.Main.PublicInputs)
	require.Len(t, data.Main.Args, 2)
	assert.Equal(t, "3", data.Main.Args[0].String())
	assert.Equal(t, domain.OpCall, data.Main.Args[1].Op)
	assert.Equal(t, "square(2)", data.Main.Args[1].String())
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "1 + (2 * 3)"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - 2 - 3", "(1 - 2) - 3"},
		{"2 ** 3 ** 2", "2 ** (3 ** 2)"},
		{"-n ** 2", "-(n ** 2)"},
		{"a << 1 + 2", "a << (1 + 2)"},
		{"a < b == c", "(a < b) == c"},
		{"a & b ^ c | d", "((a & b) ^ c) | d"},
		{"a || b && c", "a || (b && c)"},
		{"a ? b : c ? d : e", "a ? b : (c ? d : e)"},
		{"x[i + 1][0]", "x[i + 1][0]"},
		{"bus.field", "bus.field"},
		{"[1, 2, n]", "[1, 2, n]"},
		{"n \\ 2 % 3", "(n \\ 2) % 3"},
		{"0xff + 1", "0xff + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			src := "template T(n) { signal input s[" + tt.src + "]; }"
			data, err := parser.ParseText(src, "/p/t.circom")
			require.NoError(t, err)
			assert.Equal(t, tt.want, data.Templates["T"].Signals[0].Dimensions[0].String())
		})
	}
}

func TestParse_MainWithoutPublic(t *testing.T) {
	data, err := parser.ParseText("template A() {}\ncomponent main = A();\n", "/p/a.circom")
	require.NoError(t, err)
	require.NotNil(t, data.Main)
	assert.Empty(t, data.Main.PublicInputs)
	assert.Empty(t, data.Main.Args)
	assert.Empty(t, data.PragmaVersion)
}

func TestParse_BusIsSkipped(t *testing.T) {
	src := "pragma circom 2.2.0;\nbus Point() { signal x; signal y; }\ntemplate A() { signal input i; }\n"
	data, err := parser.ParseText(src, "/p/a.circom")
	require.NoError(t, err)
	assert.Len(t, data.Templates, 1)
	assert.Len(t, data.Templates["A"].Signals, 1)
}

func TestParse_Statements(t *testing.T) {
	src := `pragma circom 2.2.0;

bus Point(n) {
    signal x[n];
    Point(1) inner;
}

function bits(n) {
    var r = 0;
    while (r < n) {
        r += 1;
    }
    return r;
}

template Body(n) {
    signal input in[n];
    signal output out;
    var acc[2] = [0, 1], k;
    component gates[n];
    component single = parallel Other();

    for (var i = 0; i < n; i++) {
        acc[0] += in[i] * 2;
        gates[i] = Other();
        gates[i].x <== in[i];
        if (i == 0) k = 1; else if (i < 3) { k = 2; } else k <<= 1;
    }
    log("acc", acc[0], n);
    assert(n > 0);
    Point(2) output {tag} p;
    signal pair[2];
    (pair[0], pair[1]) <== Pair()(a <== in[0], b <== in[1]);
    _ <== Other()(in[0]);
    out <-- acc[0] \ 2;
    out * 2 === acc[0];
    in[0] ==> single.x;
    ;
}
`
	data, err := parser.ParseText(src, "/p/body.circom")
	require.NoError(t, err)

	tmpl := data.Templates["Body"]
	names := make([]string, 0, len(tmpl.Signals))
	for _, s := range tmpl.Signals {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"in", "out", "pair"}, names)
	assert.Len(t, data.Templates, 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     error
		position string
	}{
		{"duplicate template", "template A() {}\ntemplate A() {}\n", domain.ErrDuplicateTemplate, "/p/e.circom:2:10"},
		{"missing semicolon", "include \"a.circom\"\ntemplate A() {}", domain.ErrSyntax, "/p/e.circom:2:1"},
		{"unterminated body", "template A() { signal input a;", domain.ErrSyntax, "/p/e.circom:1:31"},
		{"bad dimension", "template A() { signal input a[+]; }", domain.ErrSyntax, "/p/e.circom:1:32"},
		{"unterminated string", "include \"a.circom;\n", domain.ErrSyntax, "/p/e.circom:1:9"},
		{"stray character", "template A() { @ }", domain.ErrSyntax, "/p/e.circom:1:16"},
		{"duplicate main", "component main = A();\ncomponent main = A();\n", domain.ErrSyntax, "/p/e.circom:2:11"},
		{"top level garbage", "signal x;", domain.ErrSyntax, "/p/e.circom:1:1"},
		{"constraint without value", "template A() { signal input a; a <== ; }", domain.ErrSyntax, "/p/e.circom:1:38"},
		{"stray closer", "template A() { ) ( ; }", domain.ErrSyntax, "/p/e.circom:1:16"},
		{"incomplete var initializer", "template A() { var x = 1 +; }", domain.ErrSyntax, "/p/e.circom:1:27"},
		{"bare expression", "template A() { signal a; a; }", domain.ErrSyntax, "/p/e.circom:1:27"},
		{"missing for step", "template A() { for (var i = 0; i < 2;) {} }", domain.ErrSyntax, "/p/e.circom:1:38"},
		{"malformed function body", "function f(x) { return x +; }", domain.ErrSyntax, "/p/e.circom:1:27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseText(tt.src, "/p/e.circom")
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.KindParse, domain.KindOf(err))

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, tt.position, zErr.Metadata()["position"])
		})
	}
}

func TestParser_CachesByContentHash(t *testing.T) {
	p := parser.New()

	first, err := p.Parse("template A() {}", "/p/a.circom", "h1")
	require.NoError(t, err)
	second, err := p.Parse("template A() {}", "/p/copy.circom", "h1")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), p.Parses())

	_, err = p.Parse("template B() {}", "/p/a.circom", "h2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Parses())

	cached, ok := p.Cached("h2")
	require.True(t, ok)
	assert.Contains(t, cached.Templates, "B")

	remembered := &domain.ParsedFileData{Templates: map[string]domain.Template{}}
	p.Remember("h3", remembered)
	got, err := p.Parse("ignored", "/p/c.circom", "h3")
	require.NoError(t, err)
	assert.Same(t, remembered, got)
}
