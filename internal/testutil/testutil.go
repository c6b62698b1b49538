/*
Package testutil provides a small dictionary for tests.

The fixture lexicon has a single connection class, so the best path is the one
with the lowest sum of word costs. Compounds are cheaper than their parts,
thus the long unit wins in split mode C.
*/
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/jmorph/dic"
	"github.com/stretchr/testify/require"
)

// Lexicon is the source of the fixture dictionary.
const Lexicon = `# jmorph test lexicon
@description jmorph test dictionary
@matrix 1 1
@conn 0 0 0
@pos 名詞,普通名詞,一般,*,*,*

# surface; left; right; cost; pos; reading; normalized; dictform; a-split; b-split
私; 0; 0; 3000; 代名詞,*,*,*,*,*; ワタシ
は; 0; 0; 3000; 助詞,係助詞,*,*,*,*; ハ
国家; 0; 0; 2000; 名詞,普通名詞,一般,*,*,*; コッカ
公務; 0; 0; 2000; 名詞,普通名詞,一般,*,*,*; コウム
員; 0; 0; 2000; 接尾辞,名詞的,一般,*,*,*; イン
公務員; 0; 0; 2500; 名詞,普通名詞,一般,*,*,*; コウムイン; *; *; 公務/員
国家公務員; 0; 0; 3000; 名詞,固有名詞,一般,*,*,*; コッカコウムイン; *; *; 国家/公務/員; 国家/公務員
です; 0; 0; 3000; 助動詞,*,*,*,助動詞-デス,終止形-一般; デス
行く; 0; 0; 3000; 動詞,非自立可能,*,*,五段-カ行,終止形-一般; イク
行っ; 0; 0; 3000; 動詞,非自立可能,*,*,五段-カ行,連用形-促音便; イッ; *; 行く
た; 0; 0; 3000; 助動詞,*,*,*,助動詞-タ,終止形-一般; タ
附属; 0; 0; 3000; 名詞,普通名詞,一般,*,*,*; フゾク; 付属
ガス; 0; 0; 3000; 名詞,普通名詞,一般,*,*,*; ガス
`

// Sentence is analyzed in tests of split modes.
const Sentence = "私は国家公務員です"

// Created is the creation time written to fixture dictionaries.
var Created = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

// BuildImage builds the fixture dictionary into memory.
func BuildImage(t testing.TB) []byte {
	t.Helper()
	b := dic.NewBuilder()
	b.SetCreated(Created)
	require.NoError(t, dic.ParseLexicon(strings.NewReader(Lexicon), b))
	image, err := b.Build()
	require.NoError(t, err)
	return image
}

// BuildDictionary writes the fixture dictionary to a temporary directory and
// returns its path. The file is removed when the test ends.
func BuildDictionary(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.jmd")
	require.NoError(t, os.WriteFile(path, BuildImage(t), 0o600))
	return path
}

// OpenDictionary opens a freshly built fixture dictionary. It is closed when
// the test ends unless it has been closed before.
func OpenDictionary(t testing.TB) *dic.Dictionary {
	t.Helper()
	dict, err := dic.Open(BuildDictionary(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dict.Close() })
	return dict
}

// WriteFile writes arbitrary content to a file in a temporary directory.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}
