package panel

import (
	"floatpad/internal/config"
	"floatpad/internal/pad"
	"floatpad/internal/window"
)

// ContextMenu builds the right-click menu from the current preferences.
func (c *Controller) ContextMenu() []window.MenuItem {
	p := c.store.Preferences()

	timers := []window.MenuItem{
		c.timerItem("5 Seconds", 5, p.Timeout),
		c.timerItem("10 Seconds", 10, p.Timeout),
		c.timerItem("Never", config.NeverTimeout, p.Timeout),
	}

	var layouts []window.MenuItem
	for _, name := range pad.Names() {
		layouts = append(layouts, window.MenuItem{
			Label:   name,
			Checked: name == c.layout.Name,
			Do:      func() { c.SetLayout(name) },
		})
	}

	return []window.MenuItem{
		{Label: "Auto-Dock on Typing", Checked: p.HideOnType, Do: func() { c.SetHideOnType(!p.HideOnType) }},
		{Label: "Auto-Dock Timer", Items: timers},
		{Label: "Layout", Items: layouts},
		{},
		{Label: "Toggle Glass/Solid (F5)", Do: c.ToggleGlass},
		{Label: "Hide to Tray", Do: c.Hide},
		{Label: "Reset Size", Do: c.ResetSize},
		{},
		{Label: "Quit", Do: func() {
			if c.quit != nil {
				c.quit()
			}
		}},
	}
}

func (c *Controller) timerItem(label string, seconds, current int) window.MenuItem {
	return window.MenuItem{
		Label:   label,
		Checked: seconds == current,
		Do:      func() { c.SetTimeout(seconds) },
	}
}
