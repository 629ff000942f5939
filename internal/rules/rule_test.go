package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorp74/recal/internal/model"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.Rule
		ok   bool
	}{
		{
			name: "rule with plain description",
			line: "7/4;Independence Day",
			want: model.Rule{Text: "7/4", Description: "Independence Day"},
			ok:   true,
		},
		{
			name: "full metadata block",
			line: "04-07-1990;[bday,green,black,🎂]Alice's Birthday",
			want: model.Rule{
				Text:        "04-07-1990",
				Description: "Alice's Birthday",
				Category:    "bday",
				FgColor:     "green",
				BgColor:     "black",
			},
			ok: true,
		},
		{
			name: "empty metadata fields stay unset",
			line: "12/25;[,red,]Christmas",
			want: model.Rule{Text: "12/25", Description: "Christmas", FgColor: "red"},
			ok:   true,
		},
		{
			name: "metadata with spaces trimmed",
			line: "E-2; [ anni , yellow ] Good Friday",
			want: model.Rule{
				Text:        "E-2",
				Description: "Good Friday",
				Category:    "anni",
				FgColor:     "yellow",
			},
			ok: true,
		},
		{
			name: "unterminated bracket becomes description",
			line: "5/1#1;[bday,green Labor Day",
			want: model.Rule{Text: "5/1#1", Description: "[bday,green Labor Day"},
			ok:   true,
		},
		{
			name: "no semicolon splits on whitespace",
			line: "1/1 New Year",
			want: model.Rule{Text: "1/1 New Year", Description: "New Year"},
			ok:   true,
		},
		{
			name: "bare rule without description",
			line: "E",
			want: model.Rule{Text: "E"},
			ok:   true,
		},
		{name: "comment", line: "# a comment", ok: false},
		{name: "blank", line: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	lines := []string{
		"# holidays",
		"",
		"7/4;Independence Day",
		"12/25;[hol]Christmas",
	}
	rs := ParseLines(lines)
	require.Len(t, rs, 2)
	assert.Equal(t, "7/4", rs[0].Text)
	assert.Equal(t, "hol", rs[1].Category)
}
