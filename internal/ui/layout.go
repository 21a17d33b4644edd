package ui

// Pane sizing.
const (
	// LayoutMinWidth is the narrowest terminal the two-column layout supports.
	LayoutMinWidth = 60

	// LayoutHistoryShare is the percentage of width given to the history column.
	LayoutHistoryShare = 45

	// chromeHeight covers the header and footer bars.
	chromeHeight = 2

	// paneChrome covers a pane's border and title line.
	paneChrome = 3

	// paneInset covers a pane's border and horizontal padding.
	paneInset = 4
)

// layout holds the outer dimensions of each pane and the body height of
// the scrollable ones.
type layout struct {
	leftWidth  int
	rightWidth int

	resultHeight  int
	historyHeight int
	detailHeight  int
}

func computeLayout(width, height int) layout {
	width = max(width, LayoutMinWidth)

	right := width * LayoutHistoryShare / 100
	left := width - right - 1

	body := max(height-chromeHeight, 2*paneChrome+2)

	// Left column: input pane (one body line) stacked on the result pane.
	result := max(body-(paneChrome+1)-paneChrome, 1)

	// Right column: history over detail, split evenly.
	history := max((body-2*paneChrome)/2, 1)
	detail := max(body-2*paneChrome-history, 1)

	return layout{
		leftWidth:     left,
		rightWidth:    right,
		resultHeight:  result,
		historyHeight: history,
		detailHeight:  detail,
	}
}

func (l layout) innerWidth(outer int) int {
	return max(outer-paneInset, 1)
}
