package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRoundTrip(t *testing.T) {
	original := CodeSnapshot{
		HTML:       "<main>\n  <h1>Title</h1>\n</main>",
		CSS:        "h1 { color: teal; }",
		JavaScript: "document.querySelector('h1').textContent = 'Hi';",
	}

	doc := Combine(original, TitleGenerated)
	got := Split(doc)

	assert.Equal(t, original, got.CodeSnapshot)
	assert.Equal(t, doc, got.Combined)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want CodeSnapshot
	}{
		{
			name: "no body",
			doc:  "<style>p{}</style><p>x</p><script>go()</script>",
			want: CodeSnapshot{HTML: "<p>x</p>", CSS: "p{}", JavaScript: "go()"},
		},
		{
			name: "attributes on tags",
			doc:  `<html><head><style media="screen">a{}</style></head><body class="x"><a>l</a><script type="module">m()</script></body></html>`,
			want: CodeSnapshot{HTML: "<a>l</a>", CSS: "a{}", JavaScript: "m()"},
		},
		{
			name: "first blocks win",
			doc:  "<body><style>one{}</style><style>two{}</style><i></i></body>",
			want: CodeSnapshot{HTML: "<i></i>", CSS: "one{}"},
		},
		{
			name: "plain markup",
			doc:  "  <div>only</div>  ",
			want: CodeSnapshot{HTML: "<div>only</div>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.doc).CodeSnapshot)
		})
	}
}
