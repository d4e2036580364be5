//go:build go1.18

package css_lexer

import (
	"testing"

	"github.com/gosass/selector/internal/logger"
	"github.com/gosass/selector/internal/test"
)

func FuzzTokenizeCSS(f *testing.F) {
	f.Add([]byte(`.a .b > .c + .d ~ .e`))
	f.Add([]byte(`&.foo, .bar &`))
	f.Add([]byte(`:not(.a):is(.b, .c)`))
	f.Add([]byte(`[data-x~="y" i]`))
	f.Add([]byte(`::before`))
	f.Add([]byte(`"unclosed string`))
	f.Add([]byte(`'unclosed string`))
	f.Add([]byte(`/* unclosed comment`))
	f.Add([]byte(`\61\62\63`))
	f.Add([]byte(`#hash.class:nth-child(2n+1)`))

	f.Fuzz(func(t *testing.T, data []byte) {
		log := logger.NewDeferLog()
		source := test.SourceForTest(string(data))
		Tokenize(log, source)
	})
}
