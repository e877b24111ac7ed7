package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelasco/stride/internal/cli/formatter"
	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/domain"
)

// turnMsg carries the outcome of one coaching turn back into the model.
type turnMsg struct {
	res *coach.TurnResult
	err error
}

// chatModel is the interactive coaching loop: a transcript viewport over
// a single-line input, with session phase and progress in the header.
type chatModel struct {
	app     *App
	session *domain.CoachSession

	input    textinput.Model
	viewport viewport.Model
	lines    []string

	waiting bool
	ready   bool
	width   int
	height  int
	err     error
}

func newChatModel(app *App, session *domain.CoachSession, history []*domain.Message) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.Placeholder = "Describe what you want to achieve..."

	m := &chatModel{
		app:     app,
		session: session,
		input:   ti,
	}

	if len(history) == 0 {
		m.lines = append(m.lines, formatter.Dim("Tell me about the goal you have in mind. I will help you shape it into an objective with measurable key results."), "")
	}
	for _, msg := range history {
		m.lines = append(m.lines, renderMessage(msg.Role, msg.Content)...)
	}

	return m
}

func renderMessage(role domain.MessageRole, content string) []string {
	label := formatter.StyleBlue.Render("you")
	if role == domain.RoleAssistant {
		label = formatter.StyleGreen.Render("coach")
	}
	lines := []string{label}
	lines = append(lines, strings.Split(content, "\n")...)
	lines = append(lines, "")
	return lines
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 4 // header, input, help line
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			content := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if content == "" {
				return m, nil
			}
			return m.handleInput(content)
		}

	case turnMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			m.lines = append(m.lines, formatter.StyleRed.Render("error: "+msg.err.Error()), "")
			m.syncViewport()
			return m, nil
		}
		m.applyTurn(msg.res)
		m.syncViewport()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := fmt.Sprintf("%s  %s  %s",
		formatter.StyleBold.Render(formatter.Truncate(m.session.Title, 40)),
		formatter.PhasePill(m.session.State.Phase),
		formatter.RenderProgress(m.session.State.Progress, 16),
	)

	prompt := formatter.StyleHeader.Render("> ")
	if m.waiting {
		prompt = formatter.Dim("thinking... ")
	}

	help := formatter.Dim("enter send · /status draft · esc quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		prompt+m.input.View(),
		help,
	)
}

// ── input handling ───────────────────────────────────────────────────────────

func (m *chatModel) handleInput(content string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(content) {
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	case "/status", "/draft":
		checkpoints, err := m.app.Sessions.Checkpoints(context.Background(), m.session.ID)
		if err != nil {
			checkpoints = nil
		}
		m.lines = append(m.lines, formatter.FormatSessionDetail(m.session, checkpoints), "")
		m.syncViewport()
		return m, nil
	}

	m.lines = append(m.lines, renderMessage(domain.RoleUser, content)...)
	m.waiting = true
	m.syncViewport()

	sessionID := m.session.ID
	app := m.app
	return m, func() tea.Msg {
		res, err := app.Sessions.HandleMessage(context.Background(), sessionID, content)
		return turnMsg{res: res, err: err}
	}
}

// applyTurn folds a finished turn into the transcript: the coach reply,
// plus detection and transition annotations when present.
func (m *chatModel) applyTurn(res *coach.TurnResult) {
	m.session = res.Session

	if dom := res.Detection.Dominant(); res.Detection.Detected && dom != nil {
		m.lines = append(m.lines, formatter.StyleYellow.Render(
			fmt.Sprintf("⚠ %s detected (%.0f%%)", dom.Name, dom.Confidence*100)), "")
	}

	m.lines = append(m.lines, renderMessage(domain.RoleAssistant, res.Reply)...)

	if cp := res.CompletedCheckpoint; cp != nil && len(cp.CompletionCriteria) > 0 {
		m.lines = append(m.lines, formatter.StyleGreen.Render("✔ "+cp.CompletionCriteria[0]), "")
	}
	if res.Decision.Backtracked {
		m.lines = append(m.lines, formatter.StylePurple.Render(
			"↩ Revisiting "+string(res.Session.State.Phase)), "")
	} else if res.Decision.Transitioned {
		m.lines = append(m.lines, formatter.StyleHeader.Render(
			"→ Moving to "+string(res.Session.State.Phase)), "")
		if res.Session.State.Phase == domain.PhaseCompleted {
			m.lines = append(m.lines, formatter.StyleGreen.Render("Your OKR is ready. Run 'stride session show' to review it."), "")
		}
	}
}

func (m *chatModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}
