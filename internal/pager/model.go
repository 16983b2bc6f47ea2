package pager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	footerHeight = 2
	// maxBatch caps how many queued blocks one update absorbs.
	maxBatch = 256
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type blocksMsg [][]string

type feedClosedMsg struct{}

// Model implements the Bubble Tea pager over a growing Document. Document
// lines are soft-wrapped into rows as they arrive; the viewport only ever
// holds the rows currently on screen.
type Model struct {
	doc    Document
	blocks <-chan []string

	rows     []string
	rowStart []int // first row of each document line
	offset   int

	viewport viewport.Model
	spinner  spinner.Model
	input    textinput.Model
	help     help.Model
	keys     keyMap

	width  int
	height int

	streaming bool
	follow    bool

	searching      bool
	searchBackward bool
	query          string
	matchLine      int
	notice         string
	noticeIsError  bool
}

// NewModel constructs a pager reading blocks until the channel is closed.
func NewModel(blocks <-chan []string, follow bool) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = noticeStyle

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)

	return &Model{
		blocks:    blocks,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		input:     input,
		help:      help.New(),
		keys:      defaultKeyMap(),
		streaming: true,
		follow:    follow,
		matchLine: -1,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spinner.Tick)
}

// listen waits for the next block, then drains whatever else is already
// queued so a fast producer does not cost one re-render per block.
func (m *Model) listen() tea.Cmd {
	if m.blocks == nil {
		return nil
	}
	ch := m.blocks
	return func() tea.Msg {
		first, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		batch := [][]string{first}
		for len(batch) < maxBatch {
			select {
			case block, ok := <-ch:
				if !ok {
					// The closed channel is seen again by the next listen.
					return blocksMsg(batch)
				}
				batch = append(batch, block)
			default:
				return blocksMsg(batch)
			}
		}
		return blocksMsg(batch)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case blocksMsg:
		m.appendBlocks(msg)
		return m, m.listen()
	case feedClosedMsg:
		m.streaming = false
		return m, nil
	case spinner.TickMsg:
		if !m.streaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := maxInt(1, m.viewport.Height)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.setOffset(m.offset - 1)
	case key.Matches(msg, m.keys.Down):
		m.setOffset(m.offset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.setOffset(m.offset - page)
	case key.Matches(msg, m.keys.PageDown):
		m.setOffset(m.offset + page)
	case key.Matches(msg, m.keys.HalfUp):
		m.setOffset(m.offset - maxInt(1, page/2))
	case key.Matches(msg, m.keys.HalfDown):
		m.setOffset(m.offset + maxInt(1, page/2))
	case key.Matches(msg, m.keys.Top):
		m.setOffset(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setOffset(m.maxOffset())
	case key.Matches(msg, m.keys.Search):
		return m.startSearch(false)
	case key.Matches(msg, m.keys.SearchBack):
		return m.startSearch(true)
	case key.Matches(msg, m.keys.Next):
		m.findMatch(m.searchBackward)
	case key.Matches(msg, m.keys.Prev):
		m.findMatch(!m.searchBackward)
	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		if m.follow {
			m.setOffset(m.maxOffset())
		}
	}
	return m, nil
}

func (m *Model) startSearch(backward bool) (tea.Model, tea.Cmd) {
	m.searching = true
	m.searchBackward = backward
	m.input.Prompt = "/"
	if backward {
		m.input.Prompt = "?"
	}
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		if q := m.input.Value(); q != "" {
			m.query = q
			m.matchLine = -1
		}
		m.findMatch(m.searchBackward)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// findMatch moves the view to the next line containing the current query.
func (m *Model) findMatch(backward bool) {
	if m.query == "" {
		m.setNotice("no previous search", true)
		return
	}
	from := m.lineAt(m.offset)
	if m.matchLine >= 0 {
		if backward {
			from = m.matchLine - 1
		} else {
			from = m.matchLine + 1
		}
	}
	line, ok := m.doc.Search(m.query, from, backward)
	if !ok {
		m.setNotice(fmt.Sprintf("pattern not found: %s", m.query), true)
		return
	}
	m.matchLine = line
	m.setOffset(m.rowStart[line])
	m.setNotice(fmt.Sprintf("match at line %d", line+1), false)
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
}

func (m *Model) appendBlocks(batch [][]string) {
	tail := m.atBottom()
	for _, block := range batch {
		m.doc.Append(block)
		for _, line := range block {
			m.appendRows(line)
		}
	}
	if m.follow && tail {
		m.setOffset(m.maxOffset())
		return
	}
	m.refresh()
}

func (m *Model) appendRows(line string) {
	m.rowStart = append(m.rowStart, len(m.rows))
	if m.viewport.Width <= 0 {
		m.rows = append(m.rows, line)
		return
	}
	m.rows = append(m.rows, strings.Split(ansi.Hardwrap(line, m.viewport.Width, true), "\n")...)
}

// rewrap rebuilds every row for the current width, keeping the top document
// line in place.
func (m *Model) rewrap() {
	top := m.lineAt(m.offset)
	m.rows = m.rows[:0]
	m.rowStart = m.rowStart[:0]
	for i := 0; i < m.doc.LineCount(); i++ {
		m.appendRows(m.doc.Line(i))
	}
	m.offset = 0
	if top < len(m.rowStart) {
		m.offset = m.rowStart[top]
	}
}

// lineAt returns the document line shown on row.
func (m *Model) lineAt(row int) int {
	i := sort.Search(len(m.rowStart), func(i int) bool { return m.rowStart[i] > row })
	return maxInt(0, i-1)
}

func (m *Model) maxOffset() int {
	return maxInt(0, len(m.rows)-m.viewport.Height)
}

func (m *Model) atBottom() bool {
	return m.offset >= m.maxOffset()
}

func (m *Model) setOffset(n int) {
	m.offset = minInt(maxInt(0, n), m.maxOffset())
	m.refresh()
}

// refresh hands the visible window to the viewport.
func (m *Model) refresh() {
	end := minInt(len(m.rows), m.offset+m.viewport.Height)
	if m.offset >= end {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(strings.Join(m.rows[m.offset:end], "\n"))
}

func (m *Model) scrollPercent() float64 {
	if m.atBottom() {
		return 1
	}
	return float64(m.offset) / float64(m.maxOffset())
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	resized := m.viewport.Width != m.width
	m.viewport.Width = m.width
	m.viewport.Height = maxInt(1, m.height-footerHeight)
	m.help.Width = m.width
	m.input.Width = maxInt(10, m.width-2)
	if resized {
		m.rewrap()
	}
	if m.follow {
		m.setOffset(m.maxOffset())
		return
	}
	m.setOffset(m.offset)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	status := m.renderStatus()
	if m.searching {
		status = m.input.View()
	}
	return strings.Join([]string{m.viewport.View(), status, m.help.View(m.keys)}, "\n")
}

func (m *Model) renderStatus() string {
	state := "end"
	if m.streaming {
		state = m.spinner.View() + " streaming"
	}
	follow := "off"
	if m.follow {
		follow = "on"
	}
	segments := []string{
		state,
		fmt.Sprintf("%d lines", m.doc.LineCount()),
		fmt.Sprintf("%d%%", int(m.scrollPercent()*100)),
		"follow " + follow,
	}
	status := statusStyle.Render(strings.Join(segments, "  "))
	if m.notice != "" {
		style := noticeStyle
		if m.noticeIsError {
			style = errorStyle
		}
		status += "  " + style.Render(m.notice)
	}
	return status
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
