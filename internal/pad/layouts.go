package pad

// Built-in layout names.
const (
	NameNumpad   = "numpad"
	NameKeyboard = "keyboard"
	NameMedia    = "media"
)

func press(key string) Action      { return Action{Kind: Press, Keys: []string{key}} }
func text(s string) Action         { return Action{Kind: Text, Text: s} }
func letter(c string) Action       { return Action{Kind: Letter, Text: c} }
func hotkey(keys ...string) Action { return Action{Kind: Hotkey, Keys: keys} }
func hold(a Action) *Action        { return &a }
func k(label string, row, col int, a Action) Key {
	return Key{Label: label, Row: row, Col: col, Span: 1, Action: a}
}

// Numpad is the default layout: a media row over a phone-style keypad.
var Numpad = Layout{
	Name:      NameNumpad,
	Columns:   3,
	Rows:      5,
	ScrollRow: 0,
	Keys: []Key{
		k("🔉", 0, 0, press("volumedown")),
		k("⏯", 0, 1, press("playpause")),
		k("🔊", 0, 2, press("volumeup")),
		k("7", 1, 0, press("7")),
		k("8", 1, 1, press("8")),
		k("9", 1, 2, press("9")),
		k("4", 2, 0, press("4")),
		k("5", 2, 1, press("5")),
		k("6", 2, 2, press("6")),
		k("1", 3, 0, press("1")),
		k("2", 3, 1, press("2")),
		k("3", 3, 2, press("3")),
		{Label: "⌫", Row: 4, Col: 0, Span: 1, Action: press("backspace"), Repeat: true},
		k("0", 4, 1, press("0")),
		{Label: "⏎", Row: 4, Col: 2, Span: 1, Action: press("enter"), Hold: hold(hotkey("shift", "enter"))},
	},
}

// Keyboard is a compact alphabetic layout with one-shot shift and caps lock.
var Keyboard = Layout{
	Name:      NameKeyboard,
	Columns:   5,
	Rows:      8,
	ScrollRow: -1,
	Keys:      keyboardKeys(),
}

func keyboardKeys() []Key {
	var keys []Key
	for i, c := range "abcdefghijklmnopqrstuvwxyz" {
		s := string(c)
		key := k(s, i/5, i%5, letter(s))
		key.Hold = hold(text(string(c - 'a' + 'A')))
		keys = append(keys, key)
	}
	for i, p := range []string{",", ".", "?", "!", "@"} {
		keys = append(keys, k(p, 6, i, text(p)))
	}
	keys = append(keys,
		k("⇧", 7, 0, Action{Kind: Shift}),
		k("Caps", 7, 1, Action{Kind: Caps}),
		k("Space", 7, 2, press("space")),
		Key{Label: "⌫", Row: 7, Col: 3, Span: 1, Action: press("backspace"), Repeat: true},
		Key{Label: "⏎", Row: 7, Col: 4, Span: 1, Action: press("enter"), Hold: hold(hotkey("shift", "enter"))},
	)
	return keys
}

// Media holds transport and volume controls.
var Media = Layout{
	Name:      NameMedia,
	Columns:   4,
	Rows:      2,
	ScrollRow: 1,
	Keys: []Key{
		k("⏮", 0, 0, press("prevtrack")),
		k("⏯", 0, 1, press("playpause")),
		k("⏭", 0, 2, press("nexttrack")),
		k("🔇", 0, 3, press("volumemute")),
		{Label: "🔉", Row: 1, Col: 0, Span: 2, Action: press("volumedown"), Repeat: true},
		{Label: "🔊", Row: 1, Col: 2, Span: 2, Action: press("volumeup"), Repeat: true},
	},
}

// TitleButtons sit at the right end of the title strip, right to left.
var TitleButtons = []Key{
	{Label: "✕", Action: Action{Kind: Dock}},
	{Label: "☺", Action: Action{Kind: Emoji}},
	{Label: "⌨", Action: Action{Kind: Cycle}},
}

var layouts = []Layout{Numpad, Keyboard, Media}

// ByName returns the named layout.
func ByName(name string) (Layout, bool) {
	for _, l := range layouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// Names lists the built-in layouts in cycle order.
func Names() []string {
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	return names
}

// Next returns the layout after name in cycle order. Unknown names start
// the cycle over.
func Next(name string) string {
	for i, l := range layouts {
		if l.Name == name {
			return layouts[(i+1)%len(layouts)].Name
		}
	}
	return layouts[0].Name
}
