package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plank-cli/internal/drag"
	"plank-cli/internal/model"
	"plank-cli/internal/placement"
	"plank-cli/internal/planner"
	"plank-cli/internal/session"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNewItem
	inputNewSection
	inputEditItem
	inputRenameSection
)

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

type boardModel struct {
	sess   *session.Session
	notify *uiNotifier

	width  int
	height int

	// Cursor while idle.
	col int
	row int

	// Pointer while dragging: target column plus a 1-D row position fed to
	// the placement resolver on every move.
	targetCol int
	pos       float64

	mode  inputMode
	input textinput.Model
	// editTarget holds the section/item the input commits to.
	editSection string
	editItem    string

	status string
}

func newBoardModel(sess *session.Session, notify *uiNotifier) boardModel {
	ti := textinput.New()
	ti.CharLimit = 500
	return boardModel{sess: sess, notify: notify, input: ti}
}

func (m boardModel) Init() tea.Cmd { return tick() }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if err := m.notify.takeSaveErr(); err != nil {
			// Editing continues; the board in memory stays authoritative.
			m.status = "save failed: " + err.Error() + " (will retry on next change)"
		}
		return m, tick()

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		if m.sess.Drag().Active() {
			return m.updateDragging(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

func (m boardModel) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board := m.sess.Board()
	lay := buildColLayout(board, m.col)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(lay.rows)-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
	case "right", "l":
		if m.col < board.ColumnCount()-1 {
			m.col++
			m.clampRow()
		}

	case " ":
		r, ok := m.cursorRow(lay)
		if !ok {
			break
		}
		if r.kind == rowItem {
			_, err := m.sess.Drag().Start(drag.KindItem, r.itemID, r.sectionID)
			if err != nil {
				m.status = err.Error()
				break
			}
		} else {
			_, err := m.sess.Drag().Start(drag.KindSection, r.sectionID, drag.ColumnContainerID(m.col))
			if err != nil {
				m.status = err.Error()
				break
			}
		}
		m.targetCol = m.col
		m.pos = float64(m.row) + 0.5
		m.retarget()

	case "x":
		if r, ok := m.cursorRow(lay); ok && r.kind == rowItem {
			if _, err := board.ToggleItem(r.sectionID, r.itemID); err == nil {
				m.sess.Commit("toggle item " + r.itemID)
			}
		}

	case "d":
		if r, ok := m.cursorRow(lay); ok {
			if r.kind == rowItem {
				if err := board.RemoveItem(r.sectionID, r.itemID); err == nil {
					m.sess.Commit("remove item " + r.itemID)
				}
			} else if board.RemoveSection(r.sectionID) {
				m.sess.Commit("remove section " + r.sectionID)
			}
			m.clampRow()
		}

	case "a":
		if r, ok := m.cursorRow(lay); ok {
			if sec, found := board.Section(r.sectionID); found && sec.Kind == model.SectionKindList {
				m.mode = inputNewItem
				m.editSection = r.sectionID
				m.input.Placeholder = "new item"
				m.input.SetValue("")
				m.input.Focus()
			}
		}

	case "A":
		m.mode = inputNewSection
		m.input.Placeholder = "new section title"
		m.input.SetValue("")
		m.input.Focus()

	case "e":
		if r, ok := m.cursorRow(lay); ok && r.kind == rowItem {
			if sec, found := board.Section(r.sectionID); found {
				for _, it := range sec.Items {
					if it.ID == r.itemID {
						m.mode = inputEditItem
						m.editSection = r.sectionID
						m.editItem = r.itemID
						m.input.SetValue(it.Text)
						m.input.Focus()
						break
					}
				}
			}
		}

	case "r":
		if r, ok := m.cursorRow(lay); ok && r.kind == rowSection {
			if sec, found := board.Section(r.sectionID); found {
				m.mode = inputRenameSection
				m.editSection = r.sectionID
				m.input.SetValue(sec.Title)
				m.input.Focus()
			}
		}

	case "u":
		if m.sess.Undo() {
			m.status = fmt.Sprintf("undo (%d left)", m.sess.History().UndoSize())
		} else {
			m.status = "nothing to undo"
		}
		m.clampRow()
	case "U", "ctrl+r":
		if m.sess.Redo() {
			m.status = fmt.Sprintf("redo (%d left)", m.sess.History().RedoSize())
		} else {
			m.status = "nothing to redo"
		}
		m.clampRow()

	case "s":
		if err := m.sess.ForceSave(context.Background()); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved"
		}

	case "+":
		idx := board.AddColumn()
		m.sess.Commit("add column")
		m.col = idx
		m.row = 0
	case "-":
		if err := board.RemoveColumn(m.col); err == nil {
			m.sess.Commit("remove column")
			if m.col >= board.ColumnCount() {
				m.col = board.ColumnCount() - 1
			}
			m.clampRow()
		}
	}
	return m, nil
}

func (m boardModel) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board := m.sess.Board()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.sess.Drag().Cancel()
		m.status = m.notify.takeStatus()
		return m, nil

	case "enter", " ":
		if err := m.sess.Drag().Drop(); err != nil {
			m.status = err.Error()
		} else {
			m.status = m.notify.takeStatus()
		}
		m.clampRow()
		return m, nil

	case "up", "k":
		m.pos -= 1
		if m.pos < 0 {
			m.pos = 0
		}
	case "down", "j":
		lay := buildColLayout(board, m.targetCol)
		m.pos += 1
		if max := lay.height() + 1; m.pos > max {
			m.pos = max
		}
	case "left", "h":
		if m.targetCol > 0 {
			m.targetCol--
			m.clampPos()
		}
	case "right", "l":
		if m.targetCol < board.ColumnCount()-1 {
			m.targetCol++
			m.clampPos()
		}
	default:
		return m, nil
	}

	m.retarget()
	m.status = m.notify.takeStatus()
	return m, nil
}

// retarget runs the placement resolver against the current pointer position
// and feeds the result to the drag controller. Identical results are
// suppressed by the controller, not here.
func (m *boardModel) retarget() {
	ctrl := m.sess.Drag()
	if !ctrl.Active() {
		return
	}
	lay := buildColLayout(m.sess.Board(), m.targetCol)

	switch ctrl.State().Kind {
	case drag.KindSection:
		slot := placement.ResolveAnchor(
			drag.ColumnContainerID(m.targetCol), m.pos, lay.sectionBoxes, ctrl.State().DraggedID)
		ctrl.Retarget(slot)

	case drag.KindItem:
		containers := lay.listContainers()
		boxesBy := map[string][]placement.Box{}
		for _, c := range containers {
			boxesBy[c.ID] = lay.itemBoxes[c.ID]
		}
		if slot, ok := placement.Resolve(m.pos, m.pos, containers, boxesBy, ctrl.State().DraggedID); ok {
			ctrl.Retarget(slot)
		}
	}
}

func (m *boardModel) clampRow() {
	lay := buildColLayout(m.sess.Board(), m.col)
	if m.row >= len(lay.rows) {
		m.row = len(lay.rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *boardModel) clampPos() {
	lay := buildColLayout(m.sess.Board(), m.targetCol)
	if max := lay.height() + 1; m.pos > max {
		m.pos = max
	}
	if m.pos < 0 {
		m.pos = 0
	}
}

func (m boardModel) cursorRow(lay colLayout) (row, bool) {
	if m.row < 0 || m.row >= len(lay.rows) {
		return row{}, false
	}
	return lay.rows[m.row], true
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	board := m.sess.Board()

	switch msg.String() {
	case "esc":
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		switch mode {
		case inputNewItem:
			if it, err := board.AddItem(m.editSection, text); err == nil {
				m.sess.Commit("add item " + it.ID)
			}
		case inputNewSection:
			sec := board.AddSection(planner.SectionData{Title: text, Kind: model.SectionKindList})
			if err := board.AddSectionToColumn(sec.ID, m.col); err == nil {
				m.sess.Commit("add section " + sec.ID)
			}
		case inputEditItem:
			if err := board.SetItemText(m.editSection, m.editItem, text); err == nil {
				m.sess.Commit("edit item " + m.editItem)
			}
		case inputRenameSection:
			if err := board.RenameSection(m.editSection, text); err == nil {
				m.sess.Commit("rename section " + m.editSection)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	board := m.sess.Board()
	n := board.ColumnCount()
	if n == 0 || m.width == 0 {
		return ""
	}

	gap := 1
	colW := (m.width - gap*(n-1)) / n
	if colW < 12 {
		colW = 12
	}
	bodyH := m.height - 2
	if bodyH < 3 {
		bodyH = 3
	}

	panes := make([]string, 0, n)
	for c := 0; c < n; c++ {
		panes = append(panes, m.renderColumn(c, colW, bodyH))
	}
	out := panes[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(panes); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, panes[i])
	}

	return out + "\n" + m.renderStatus()
}

func (m boardModel) renderColumn(c, colW, bodyH int) string {
	board := m.sess.Board()
	lay := buildColLayout(board, c)
	ctrl := m.sess.Drag()

	dragging := ctrl.Active()
	var dragID string
	var target placement.Slot
	var haveTarget bool
	if dragging {
		st := ctrl.State()
		dragID = st.DraggedID
		target = st.Target
		haveTarget = target.ContainerID != "" || target.AtEnd
	}

	head := fmt.Sprintf("col %d (%d)", c, len(lay.sections))
	hs := styleHeader
	if c == m.col && !dragging {
		hs = styleHeaderSelected
	}
	lines := []string{hs.Width(colW).Render(xansi.Truncate(head, colW, "…"))}

	marker := styleDropMark.Render(xansi.Truncate("▸ "+strings.Repeat("─", colW-3), colW, ""))

	sectionEndMarker := func(sectionID string) bool {
		return haveTarget && target.AtEnd && target.ContainerID == sectionID
	}

	for i, sec := range lay.sections {
		// Section-drag drop marker in front of this section.
		if haveTarget && target.BeforeID == sec.ID && columnContainer(target.ContainerID) == c {
			lines = append(lines, marker)
		}

		title := sec.Title
		if title == "" {
			title = "(untitled)"
		}
		rowIdx := sectionRowIndex(lay, i)
		st := lipgloss.NewStyle().Bold(true)
		switch {
		case dragging && dragID == sec.ID:
			st = styleDragging
		case !dragging && c == m.col && m.row == rowIdx:
			st = styleSelected
		}
		lines = append(lines, st.Render(xansi.Truncate("■ "+title, colW, "…")))

		switch sec.Kind {
		case model.SectionKindList:
			for j, it := range sec.Items {
				if haveTarget && target.BeforeID == it.ID {
					lines = append(lines, marker)
				}
				mark := "[ ]"
				if it.Checked {
					mark = "[x]"
				}
				itemRowIdx := rowIdx + 1 + j
				st := lipgloss.NewStyle()
				switch {
				case dragging && dragID == it.ID:
					st = styleDragging
				case !dragging && c == m.col && m.row == itemRowIdx:
					st = styleSelected
				case it.Checked:
					st = styleMuted
				}
				lines = append(lines, st.Render(xansi.Truncate("  "+mark+" "+it.Text, colW, "…")))
			}
			if sectionEndMarker(sec.ID) {
				lines = append(lines, marker)
			}
		case model.SectionKindFreeform:
			body := renderMarkdown(sec.Freeform, colW-2)
			for _, ln := range firstLines(body, 3) {
				lines = append(lines, "  "+xansi.Truncate(ln, colW-2, "…"))
			}
		}
	}

	// Column-end drop marker for section drags.
	if haveTarget && target.AtEnd && columnContainer(target.ContainerID) == c {
		lines = append(lines, marker)
	}

	for len(lines) < bodyH {
		lines = append(lines, "")
	}
	if len(lines) > bodyH {
		lines = lines[:bodyH]
	}
	return lipgloss.NewStyle().Width(colW).Render(strings.Join(lines, "\n"))
}

func (m boardModel) renderStatus() string {
	if m.mode != inputNone {
		return m.input.View()
	}
	hist := m.sess.History()
	left := fmt.Sprintf("undo:%d redo:%d", hist.UndoSize(), hist.RedoSize())
	help := "space:drag enter:drop x:check a/A:add e:edit u/U:undo/redo s:save q:quit"
	status := m.status
	if status == "" {
		status = help
	}
	return styleMuted.Render(left + "  " + status)
}

// columnContainer parses a "col:<n>" container id, -1 for anything else.
func columnContainer(id string) int {
	n, ok := drag.ParseColumnContainer(id)
	if !ok {
		return -1
	}
	return n
}

func sectionRowIndex(lay colLayout, sectionIdx int) int {
	idx := 0
	for i := 0; i < sectionIdx; i++ {
		idx++
		if lay.sections[i].Kind == model.SectionKindList {
			idx += len(lay.sections[i].Items)
		}
	}
	return idx
}

func firstLines(s string, n int) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
