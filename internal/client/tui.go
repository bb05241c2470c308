package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"chatify/pkg/chat"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	userID      string
	peerID      string
	messages    []string
	onlineUsers []string
	input       textinput.Model
	ws          *WSClient
	msgChan     chan tea.Msg
}

func NewModel(host, userID, peerID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message here"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	ch := make(chan tea.Msg, 10)
	ws, err := NewWSClient(host, userID, ch)
	if err != nil {
		panic(err)
	}
	ws.Start()

	return Model{
		userID:  userID,
		peerID:  peerID,
		input:   ti,
		ws:      ws,
		msgChan: ch,
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgChan
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			_ = m.ws.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			m.input.Reset()

			if text == "" {
				return m, nil
			}

			_ = m.ws.SendMessage(m.userID, m.peerID, text)
			m.messages = append(m.messages, fmt.Sprintf("[me]: %s", text))

			return m, nil
		default:
			m.input, cmd = m.input.Update(msg)
		}

	case eventReceivedMsg:
		m.applyEvent(chat.WSEvent(msg))
		return m, func() tea.Msg {
			return <-m.msgChan
		}
	}

	return m, cmd
}

func (m *Model) applyEvent(ev chat.WSEvent) {
	switch ev.Event {
	case chat.EventReceiveMessage:
		var payload chat.ReceiveMessagePayload
		if err := json.Unmarshal(ev.Data, &payload); err == nil {
			m.messages = append(m.messages, fmt.Sprintf("[%s]: %s", payload.SenderID, payload.Message))
		}
	case chat.EventOnlineUsers:
		var online []string
		if err := json.Unmarshal(ev.Data, &online); err == nil {
			m.onlineUsers = online
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("online: %s\n\n", strings.Join(m.onlineUsers, ", ")))

	for _, msg := range m.messages {
		b.WriteString(msg + "\n")
	}

	b.WriteString("\n" + m.input.View())
	b.WriteString(fmt.Sprintf("\n[Enter] to send to %s, [Ctrl+C] to quit", m.peerID))
	return b.String()
}
