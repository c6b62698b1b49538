package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/internal/testutil"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(trace2go.Teardown)
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"build", "tokenize", "info", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %q", name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("dictionary"))
}

func TestRequireConfig(t *testing.T) {
	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })
	activeCfg = nil
	_, err := requireConfig()
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "jmorph "+jmorph.Version+"\n", out)
}

func TestBuildAndInfo(t *testing.T) {
	lexicon := testutil.WriteFile(t, "lexicon.txt", []byte(testutil.Lexicon))
	dict := filepath.Join(t.TempDir(), "out.jmd")
	out, err := run(t, "", "build", lexicon, "-o", dict, "--description", "from the command line")
	require.NoError(t, err)
	assert.Contains(t, out, "13 words")
	//
	out, err = run(t, "", "info", "-d", dict)
	require.NoError(t, err)
	assert.Contains(t, out, "description: from the command line")
	assert.Contains(t, out, "words:       13")
	assert.Contains(t, out, "matrix:      1×1")
	//
	_, err = run(t, "", "build", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	bad := testutil.WriteFile(t, "bad.txt", []byte("私; 0; 0\n"))
	_, err = run(t, "", "build", bad, "-o", filepath.Join(t.TempDir(), "bad.jmd"))
	assert.Error(t, err)
}

func TestTokenizeArgs(t *testing.T) {
	dict := testutil.BuildDictionary(t)
	out, err := run(t, "", "tokenize", "-d", dict, "-m", "C", testutil.Sentence, "行った")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "国家公務員\t名詞,固有名詞,一般,*,*,*\t国家公務員\t国家公務員\tコッカコウムイン", lines[2])
	assert.Equal(t, "EOS", lines[4])
	assert.Equal(t, "行っ\t動詞,非自立可能,*,*,五段-カ行,連用形-促音便\t行っ\t行く\tイッ", lines[5])
	assert.Equal(t, "EOS", lines[7])
}

func TestTokenizeStdinJSON(t *testing.T) {
	dict := testutil.BuildDictionary(t)
	out, err := run(t, "bananaです\n", "tokenize", "-d", dict, "--json")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var rec struct {
		Surface string  `json:"surface"`
		Reading *string `json:"reading"`
		POS     string  `json:"pos"`
		Begin   int     `json:"begin"`
		End     int     `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "banana", rec.Surface)
	require.NotNil(t, rec.Reading)
	assert.Equal(t, "", *rec.Reading)
	assert.Equal(t, `["名詞","普通名詞","一般","*","*","*"]`, rec.POS)
	assert.Equal(t, [2]int{0, 6}, [2]int{rec.Begin, rec.End})
}

func TestTokenizeOOVMarker(t *testing.T) {
	dict := testutil.BuildDictionary(t)
	out, err := run(t, "", "tokenize", "-d", dict, "--oov", "猫です")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "猫\t"))
	assert.Contains(t, strings.SplitN(out, "\n", 2)[0], "(OOV)")
}

func TestTokenizeFailures(t *testing.T) {
	_, err := run(t, "", "tokenize", "-d", filepath.Join(t.TempDir(), "missing.jmd"), "私")
	assert.Error(t, err)
	_, err = run(t, "", "tokenize", "-d", testutil.BuildDictionary(t), "-m", "Z", "私")
	assert.Error(t, err)
}

func TestTokenizeTable(t *testing.T) {
	t.Setenv("LC_ALL", "ja_JP.UTF-8")
	dict := testutil.BuildDictionary(t)
	out, err := run(t, "", "tokenize", "-d", dict, "-m", "C", "--table", testutil.Sentence)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "私"+strings.Repeat(" ", 10)+"代名詞"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "国家公務員  名詞-固有名詞-一般"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], "コッカコウムイン"))
	assert.Equal(t, "EOS", lines[4])
	//
	_, err = run(t, "", "tokenize", "-d", filepath.Join(t.TempDir(), "missing.jmd"), "--table", "--json", "私")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be", "rejected before the dictionary is opened")
}
