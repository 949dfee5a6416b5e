package viewer

import "fmt"

// windowTitle formats the title bar. remaining is the countdown in seconds;
// countdown false hides it.
func windowTitle(base, model string, remaining int, countdown bool) string {
	t := base
	if model != "" {
		t = fmt.Sprintf("%s - %s", base, model)
	}
	if countdown {
		t = fmt.Sprintf("%s (closing in %ds, Space keeps open)", t, remaining)
	}
	return t
}
