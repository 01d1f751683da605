// ABOUTME: Login and sign-up screen as a bubbletea model
// ABOUTME: Binds text inputs to the credential form controller and runs submissions async

package login

import (
	"context"
	"strings"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/icons"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/styles"
	"github.com/DAVEMANUJ/skill-genome-2/internal/tui/widgets"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AuthDoneMsg carries the result of a submission back into the update loop
type AuthDoneMsg struct {
	Result client.AuthResult
}

// LoggedInMsg is sent once a login stored a session
type LoggedInMsg struct {
	Path     string
	Username string
}

// Model is the credential form screen
type Model struct {
	ctrl    *form.Controller
	auth    form.Authenticator
	inputs  map[form.Field]textinput.Model
	focus   int
	spinner spinner.Model
	width   int

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the screen around a controller. Input values start from the
// controller's current fields.
func New(ctrl *form.Controller, auth form.Authenticator) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	st := ctrl.State()
	inputs := make(map[form.Field]textinput.Model, len(form.AllFields))
	for _, f := range form.AllFields {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.CharLimit = 256
		ti.Width = 40
		if f == form.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(st.Fields.Get(f))
		inputs[f] = ti
	}

	m := &Model{
		ctrl:    ctrl,
		auth:    auth,
		inputs:  inputs,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.KeyStyle)),
		ctx:     ctx,
		cancel:  cancel,
	}
	m.applyFocus()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the controller snapshot
func (m *Model) State() form.State {
	return m.ctrl.State()
}

// Focused returns the field that receives typed input
func (m *Model) Focused() form.Field {
	visible := m.visibleFields()
	return visible[m.focus]
}

// SetWidth sets the rendering width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Close detaches the controller and cancels any in-flight request.
// Results that arrive afterwards leave the session untouched.
func (m *Model) Close() {
	m.ctrl.Detach()
	m.cancel()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case AuthDoneMsg:
		return m.handleAuthDone(msg)

	case spinner.TickMsg:
		if m.submitting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Cursor blink and other input internals
	return m.updateFocusedInput(msg)
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Inputs are disabled while a request is in flight
	if m.submitting() {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+t":
		if err := m.ctrl.ToggleMode(); err != nil {
			return m, nil
		}
		m.focus = 0
		return m, m.applyFocus()
	case "tab", "down":
		m.moveFocus(1)
		return m, m.applyFocus()
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, m.applyFocus()
	case "enter":
		return m, m.submit()
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := m.Focused()
	ti, cmd := m.inputs[f].Update(msg)
	m.inputs[f] = ti
	if err := m.ctrl.UpdateField(f, ti.Value()); err != nil {
		// Busy or detached: resync the input with what the controller holds
		ti.SetValue(m.ctrl.State().Fields.Get(f))
		m.inputs[f] = ti
	}
	return m, cmd
}

// submit starts a request. Validation failures surface through the
// controller state and issue no request.
func (m *Model) submit() tea.Cmd {
	payload, err := m.ctrl.Begin()
	if err != nil {
		return nil
	}

	ctx := m.ctx
	auth := m.auth
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return AuthDoneMsg{Result: auth.Authenticate(ctx, payload)}
		},
	)
}

func (m *Model) handleAuthDone(msg AuthDoneMsg) (tea.Model, tea.Cmd) {
	before := m.ctrl.State().Mode
	out := m.ctrl.Complete(msg.Result)
	if out.Discarded {
		return m, nil
	}
	if out.NavigateTo != "" {
		in := LoggedInMsg{Path: out.NavigateTo, Username: m.ctrl.State().Fields.Username}
		return m, func() tea.Msg { return in }
	}
	// Sign-up success flips back to login mode, which shows fewer fields
	if m.ctrl.State().Mode != before {
		m.focus = 0
		return m, m.applyFocus()
	}
	return m, nil
}

func (m *Model) submitting() bool {
	return m.ctrl.State().Submission.Status == form.StatusSubmitting
}

func (m *Model) visibleFields() []form.Field {
	return form.RequiredFields(m.ctrl.State().Mode)
}

func (m *Model) moveFocus(delta int) {
	n := len(m.visibleFields())
	m.focus = (m.focus + delta + n) % n
}

func (m *Model) applyFocus() tea.Cmd {
	visible := m.visibleFields()
	if m.focus >= len(visible) {
		m.focus = 0
	}

	var cmd tea.Cmd
	for _, f := range form.AllFields {
		ti := m.inputs[f]
		if f == visible[m.focus] {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[f] = ti
	}
	return cmd
}

// View implements tea.Model
func (m *Model) View() string {
	st := m.ctrl.State()
	signUp := st.Mode == client.ModeSignUp

	var sb strings.Builder

	title := "Welcome back"
	if signUp {
		title = "Create your account"
	}
	sb.WriteString(styles.Title.Render(icons.App.String()+" "+title) + "  " + widgets.ModeBadge(signUp))
	sb.WriteString("\n\n")

	focused := m.Focused()
	for _, f := range m.visibleFields() {
		label := styles.Label
		if f == focused {
			label = styles.FocusedLabel
		}
		sb.WriteString(label.Render(f.Label()))
		sb.WriteString(m.inputs[f].View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch st.Submission.Status {
	case form.StatusSubmitting:
		action := "Signing in..."
		if signUp {
			action = "Creating account..."
		}
		sb.WriteString(m.spinner.View() + " " + action + "\n")
	case form.StatusFailed:
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String()+" "+st.Submission.Message) + "\n")
	}
	if st.Notice != "" {
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String()+" "+st.Notice) + "\n")
	}

	other := "Sign Up"
	if signUp {
		other = "Login"
	}
	sb.WriteString(styles.Help.Render("ctrl+t switch to " + other + "  •  enter submit"))

	return sb.String()
}
