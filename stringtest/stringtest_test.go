package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/asciivid/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty string": {
			input: "",
			want:  "",
		},
		"single line": {
			input: "\n@@\n",
			want:  "@@",
		},
		"common indent spaces": {
			input: `
    .:-
    =+*
    #%@`,
			want: ".:-\n=+*\n#%@",
		},
		"common indent tabs": {
			input: "\n\t..\n\t@@",
			want:  "..\n@@",
		},
		"leading glyph spaces kept": {
			input: `
    @@@@
      @@
    @@@@`,
			want: "@@@@\n  @@\n@@@@",
		},
		"whitespace-only lines": {
			input: "\n    ab\n    \n    cd",
			want:  "ab\n\ncd",
		},
		"multiple leading newlines minus one": {
			input: "\n\nab",
			want:  "\nab",
		},
		"multiple trailing newlines minus one": {
			input: "ab\n\n",
			want:  "ab\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	assert.Nil(t, stringtest.Rows(""))
	assert.Equal(t, []string{"ab", "cd"}, stringtest.Rows("\n\t\tab\n\t\tcd\n"))
}

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		input []string
	}{
		"empty input": {
			input: nil,
			want:  "",
		},
		"single string": {
			input: []string{"hello"},
			want:  "hello",
		},
		"with empty string": {
			input: []string{"a", "", "c"},
			want:  "a\n\nc",
		},
		"already contains newlines": {
			input: []string{"a\nb", "c"},
			want:  "a\nb\nc",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.JoinLF(tc.input...))
		})
	}
}
