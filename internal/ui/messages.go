package ui

// actionDoneMsg reports the side effects of a committed action
type actionDoneMsg struct {
	text string
	err  error
}

// helpPagerMsg is returned once the key reference pager exits
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
