package llm

import (
	"testing"
	"unicode/utf8"
)

func TestEnsureUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "valid ascii", in: "hello\nworld", want: "hello\nworld"},
		{name: "valid multibyte", in: "변경 ✓", want: "변경 ✓"},
		{name: "euc-kr line", in: "\xc7\xd1\xb1\xdb", want: "한글"},
		{name: "only bad line is touched", in: "ok\n\xc7\xd1\xb1\xdb\nstill ok", want: "ok\n한글\nstill ok"},
		{name: "garbage replaced", in: "a\xffb", want: "a�b"},
		{name: "literal replacement char kept", in: "\xef\xbf\xbd\xff", want: "��"},
		{name: "euc-kr after literal replacement char", in: "�\n\xc7\xd1", want: "�\n한"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureUTF8(tt.in)
			if got != tt.want {
				t.Errorf("EnsureUTF8(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result is not valid UTF-8: %q", got)
			}
		})
	}
}
