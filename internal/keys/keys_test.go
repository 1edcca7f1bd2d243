package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		spec string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
	}{
		{"d", tcell.KeyRune, 'd', 0},
		{"D", tcell.KeyRune, 'd', 0},
		{"Shift+A", tcell.KeyRune, 'a', 0},
		{"?", tcell.KeyRune, '?', 0},
		{"/", tcell.KeyRune, '/', 0},
		{"+", tcell.KeyRune, '+', 0},
		{"Space", tcell.KeyRune, ' ', 0},
		{"Ctrl+R", tcell.KeyRune, 'r', tcell.ModCtrl},
		{"Alt+1", tcell.KeyRune, '1', tcell.ModAlt},
		{"Opt+1", tcell.KeyRune, '1', tcell.ModAlt},
		{"F5", tcell.KeyF5, 0, 0},
		{"Shift+F12", tcell.KeyF12, 0, tcell.ModShift},
		{"Shift+Tab", tcell.KeyBacktab, 0, 0},
		{"Delete", tcell.KeyDelete, 0, 0},
		{"esc", tcell.KeyEsc, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			key, r, mod, err := Parse(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.r, r)
			assert.Equal(t, tc.mod, mod)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, spec := range []string{"", "  ", "Hyper+a", "F13", "F0", "Ctrl+", "abc"} {
		t.Run(spec, func(t *testing.T) {
			assert.Error(t, Validate(spec))
		})
	}
}

func TestCanonicalIDCaseInsensitive(t *testing.T) {
	assert.Equal(t, CanonicalID(tcell.KeyRune, 'a', 0), CanonicalID(tcell.KeyRune, 'A', tcell.ModShift))
	assert.NotEqual(t, CanonicalID(tcell.KeyRune, 'a', 0), CanonicalID(tcell.KeyRune, 'a', tcell.ModCtrl))
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved(tcell.KeyUp, 0, 0))
	assert.True(t, IsReserved(tcell.KeyRune, 'J', 0))
	assert.True(t, IsReserved(tcell.KeyRune, 'c', tcell.ModCtrl))
	assert.False(t, IsReserved(tcell.KeyRune, 'd', 0))
	assert.False(t, IsReserved(tcell.KeyUp, 0, tcell.ModAlt))
}

func TestNormalizeEvent(t *testing.T) {
	key, r, mod := NormalizeEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	assert.Equal(t, tcell.KeyRune, key)
	assert.Equal(t, 'r', r)
	assert.Equal(t, tcell.ModCtrl, mod)

	key, r, mod = NormalizeEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModShift))
	assert.Equal(t, tcell.KeyBacktab, key)
	assert.Zero(t, r)
	assert.Zero(t, mod)

	key, r, mod = NormalizeEvent(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift))
	assert.Equal(t, tcell.KeyRune, key)
	assert.Equal(t, 'a', r)
	assert.Zero(t, mod)

	key, _, mod = NormalizeEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, tcell.KeyEnter, key)
	assert.Zero(t, mod)
}

func TestBinding_Matches(t *testing.T) {
	tests := []struct {
		spec  string
		ev    *tcell.EventKey
		match bool
	}{
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), true},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), true},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModAlt), false},
		{"?", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModShift), true},
		{"Space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true},
		{"Ctrl+R", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), true},
		{"F5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), true},
		{"F5", tcell.NewEventKey(tcell.KeyF6, 0, tcell.ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.match, MustBinding(tt.spec).Matches(tt.ev))
		})
	}

	assert.False(t, MustBinding("d").Matches(nil))
}

func TestBinding_Label(t *testing.T) {
	assert.Equal(t, "Space", MustBinding("space").Label())
	assert.Equal(t, "Ctrl+r", MustBinding("Ctrl+R").Label())
	assert.Equal(t, "F5", MustBinding("f5").Label())
	assert.Equal(t, "?", MustBinding("?").Label())
	assert.Equal(t, "Esc", MustBinding("Escape").Label())
}

func TestMustBinding_Panics(t *testing.T) {
	assert.Panics(t, func() { MustBinding("Hyper+x") })
}
