package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorResolution(t *testing.T) {
	assert.Equal(t, "\x1b[32m", Foreground("green"))
	assert.Equal(t, "\x1b[32m", Foreground("GREEN"))
	assert.Equal(t, "\x1b[41m", Background("red"))
	assert.Equal(t, "", Foreground("chartreuse"))
	assert.Equal(t, "", Background(""))
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{
			name: "plain day",
			cell: Cell{},
			want: "",
		},
		{
			name: "weekend",
			cell: Cell{Weekend: true},
			want: WeekendFg,
		},
		{
			name: "weekend with event adds bold",
			cell: Cell{Weekend: true, Event: true},
			want: WeekendFg + Bold,
		},
		{
			name: "weekend keeps red even for colored event",
			cell: Cell{Weekend: true, Event: true, Fg: Foreground("green")},
			want: WeekendFg + Bold,
		},
		{
			name: "event without colors inverts",
			cell: Cell{Event: true},
			want: Invert,
		},
		{
			name: "event with custom colors",
			cell: Cell{Event: true, Fg: Foreground("green"), Bg: Background("black")},
			want: Background("black") + Foreground("green") + Bold,
		},
		{
			name: "event with only foreground",
			cell: Cell{Event: true, Fg: Foreground("cyan")},
			want: Foreground("cyan") + Bold,
		},
		{
			name: "today overrides everything with defaults",
			cell: Cell{Weekend: true, Event: true, Today: true},
			want: TodayBg + TodayFg,
		},
		{
			name: "today keeps custom colors",
			cell: Cell{Today: true, Event: true, Fg: Foreground("white"), Bg: Background("blue")},
			want: Background("blue") + Foreground("white"),
		},
		{
			name: "today on a plain day",
			cell: Cell{Today: true},
			want: TodayBg + TodayFg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.cell))
		})
	}
}
