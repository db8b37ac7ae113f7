package ui

// splashDoneMsg ends the startup splash
type splashDoneMsg struct{}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
