package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/musicbox/agent"
	"github.com/jsphweid/musicbox/config"
	"github.com/jsphweid/musicbox/library"
	"github.com/jsphweid/musicbox/parse"
	"github.com/jsphweid/musicbox/scrape"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chats with the assistant",
	Long:  `Starts an interactive chat with the assistant for finding and saving chord sheets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := zap.NewNop()

		ctx := cmd.Context()
		parser, err := parse.NewGeminiParser(ctx, cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return err
		}
		lib, err := library.Open(cfg.LibraryDir)
		if err != nil {
			return err
		}

		session, err := agent.NewSession(ctx, cfg.GeminiAPIKey, cfg.Model, agent.Pipeline{
			Search: scrape.Search,
			Fetch:  scrape.FetchTab,
			Parser: parser,
			Lib:    lib,
			Log:    log,
		}, log)
		if err != nil {
			return err
		}

		program := tea.NewProgram(newChatModel(ctx, session), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

var (
	userStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type replyMsg struct {
	resp agent.Response
	err  error
}

type chatModel struct {
	ctx     context.Context
	session *agent.Session

	input    textinput.Model
	viewport viewport.Model
	lines    []string
	waiting  bool
	ready    bool
}

func newChatModel(ctx context.Context, session *agent.Session) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask for a song or suggestions... (Enter to send, Ctrl+C to quit)"
	ti.Focus()

	return chatModel{
		ctx:     ctx,
		session: session,
		input:   ti,
		lines: []string{
			botStyle.Render("MusicBox: ") + "Hey! I'm MusicBox. What song should we learn today?",
		},
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				break
			}
			m.lines = append(m.lines, userStyle.Render("You: ")+text)
			m.input.Reset()
			m.waiting = true
			m.refresh()
			return m, m.send(text)
		}

	case tea.WindowSizeMsg:
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - 4
		m.refresh()

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, dimStyle.Render("error: "+msg.err.Error()))
		} else {
			m.lines = append(m.lines, botStyle.Render("MusicBox: ")+msg.resp.Content)
			if msg.resp.SheetPath != "" {
				m.lines = append(m.lines, dimStyle.Render("sheet saved: "+msg.resp.SheetPath))
			}
		}
		m.refresh()
	}

	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) send(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.session.Chat(m.ctx, text)
		return replyMsg{resp: resp, err: err}
	}
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	status := ""
	if m.waiting {
		status = dimStyle.Render(" thinking...")
	}
	return fmt.Sprintf("%s\n%s%s\n", m.viewport.View(), m.input.View(), status)
}
