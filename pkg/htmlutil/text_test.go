package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  ရွှေ   မြေ ", "ရွှေ မြေ"},
		{"paragraphs", "<p>First</p><p>Second <b>bold</b></p>", "First\nSecond bold"},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"entities", "<p>Tom &amp; Jerry&nbsp;&lt;3</p>", "Tom & Jerry <3"},
		{"script", "<p>keep</p><script>alert(1)</script><style>p{}</style>", "keep"},
		{"lists", "<ul><li>a</li><li>b</li></ul>", "a\nb"},
		{"unclosed", "<p>dangling <i>italic", "dangling italic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			assert.Equal(tt, tc.want, Text(tc.in))
		})
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Words("<p></p>"))
	assert.Equal(t, 4, Words("<h1>Chapter one</h1><p>It began.</p>"))
}
