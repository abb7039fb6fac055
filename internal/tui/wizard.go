package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cropxr/drivectl/internal/config"
)

// wizardStep identifies the current step.
type wizardStep int

const (
	stepLabels wizardStep = iota
	stepTitle
	stepSlug
	stepLevel
	stepPeople
	stepConfirm
)

// labelField identifies a field in the identity step.
type labelField int

const (
	labelWorkpackage labelField = iota
	labelInvestigation
	labelStudy
	labelFieldCount
)

// personField identifies a field in the contacts step.
type personField int

const (
	piName personField = iota
	piEmail
	daName
	daEmail
	personFieldCount
)

// wizardModel drives the multi-step study configuration wizard.
type wizardModel struct {
	step wizardStep

	// Step 1: identity labels
	labelCursor        labelField
	workpackageInput   textinput.Model
	investigationInput textinput.Model
	studyInput         textinput.Model

	// Step 2: title
	titleInput textinput.Model

	// Step 3: slug
	slugInput textinput.Model

	// Step 4: security level
	levelList list.Model

	// Step 5: contacts (all optional)
	personCursor personField
	piNameInput  textinput.Model
	piEmailInput textinput.Model
	daNameInput  textinput.Model
	daEmailInput textinput.Model

	selectedLevel config.SecurityLevel

	width  int
	height int
}

// levelItem implements list.Item for security level selection.
type levelItem struct {
	level config.SecurityLevel
}

func (l levelItem) Title() string       { return string(l.level) }
func (l levelItem) Description() string { return l.level.Description() }
func (l levelItem) FilterValue() string { return string(l.level) }

// skipLevelItem leaves the level unspecified.
type skipLevelItem struct{}

func (skipLevelItem) Title() string       { return "(decide later)" }
func (skipLevelItem) Description() string { return "Leave a placeholder in the folder policy" }
func (skipLevelItem) FilterValue() string { return "decide later" }

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
)

func newWizardModel() wizardModel {
	wi := textinput.New()
	wi.Placeholder = "WP001"
	wi.Focus()
	wi.CharLimit = 32
	wi.Width = 30

	ii := textinput.New()
	ii.Placeholder = "CXRP001"
	ii.CharLimit = 32
	ii.Width = 30

	si := textinput.New()
	si.Placeholder = "CXRS001"
	si.CharLimit = 32
	si.Width = 30

	ti := textinput.New()
	ti.Placeholder = "Plant Stress Response Analysis"
	ti.CharLimit = 256
	ti.Width = 60

	sl := textinput.New()
	sl.Placeholder = "plant-stress-response-analysis"
	sl.CharLimit = 128
	sl.Width = 60

	pn := textinput.New()
	pn.Placeholder = "First Last"
	pn.CharLimit = 128
	pn.Width = 50

	pe := textinput.New()
	pe.Placeholder = "pi@example.org"
	pe.CharLimit = 128
	pe.Width = 50

	dn := textinput.New()
	dn.Placeholder = "First Last"
	dn.CharLimit = 128
	dn.Width = 50

	de := textinput.New()
	de.Placeholder = "admin@example.org"
	de.CharLimit = 128
	de.Width = 50

	return wizardModel{
		step:               stepLabels,
		workpackageInput:   wi,
		investigationInput: ii,
		studyInput:         si,
		titleInput:         ti,
		slugInput:          sl,
		piNameInput:        pn,
		piEmailInput:       pe,
		daNameInput:        dn,
		daEmailInput:       de,
		levelList:          newLevelList(),
	}
}

func newLevelList() list.Model {
	items := make([]list.Item, 0, len(config.Levels())+1)
	for _, level := range config.Levels() {
		items = append(items, levelItem{level: level})
	}
	items = append(items, skipLevelItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 70, 16)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, config, cmd).
// done=true with a non-nil config means the wizard completed.
// done=true with nil config means the wizard was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepLabels:
		return w.updateLabels(msg)
	case stepTitle:
		return w.updateTitle(msg)
	case stepSlug:
		return w.updateSlug(msg)
	case stepLevel:
		return w.updateLevel(msg)
	case stepPeople:
		return w.updatePeople(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *config.StudyConfig, tea.Cmd) {
	switch w.step {
	case stepLabels:
		// Esc at first step cancels wizard
		return true, nil, nil
	case stepTitle:
		w.step = stepLabels
		w.titleInput.Blur()
		return false, nil, w.focusLabelField()
	case stepSlug:
		w.step = stepTitle
		w.slugInput.Blur()
		w.titleInput.Focus()
		return false, nil, textinput.Blink
	case stepLevel:
		w.step = stepSlug
		w.slugInput.Focus()
		return false, nil, textinput.Blink
	case stepPeople:
		w.step = stepLevel
		w.blurPersonInputs()
		return false, nil, nil
	case stepConfirm:
		w.step = stepPeople
		return false, nil, w.focusPersonField()
	}
	return false, nil, nil
}

func (w *wizardModel) activeLabelInput() *textinput.Model {
	switch w.labelCursor {
	case labelWorkpackage:
		return &w.workpackageInput
	case labelInvestigation:
		return &w.investigationInput
	case labelStudy:
		return &w.studyInput
	}
	return nil
}

func (w *wizardModel) labelValue(f labelField) string {
	switch f {
	case labelWorkpackage:
		return strings.TrimSpace(w.workpackageInput.Value())
	case labelInvestigation:
		return strings.TrimSpace(w.investigationInput.Value())
	case labelStudy:
		return strings.TrimSpace(w.studyInput.Value())
	}
	return ""
}

func (w *wizardModel) blurLabelInputs() {
	w.workpackageInput.Blur()
	w.investigationInput.Blur()
	w.studyInput.Blur()
}

func (w *wizardModel) focusLabelField() tea.Cmd {
	w.blurLabelInputs()
	if ti := w.activeLabelInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (w *wizardModel) updateLabels(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if w.labelCursor < labelFieldCount-1 {
				w.labelCursor++
				return false, nil, w.focusLabelField()
			}
			// Last field: all three labels must be filled to advance
			for f := labelWorkpackage; f < labelFieldCount; f++ {
				if w.labelValue(f) == "" {
					w.labelCursor = f
					return false, nil, w.focusLabelField()
				}
			}
			w.blurLabelInputs()
			w.step = stepTitle
			w.titleInput.Focus()
			return false, nil, textinput.Blink
		case tea.KeyTab, tea.KeyDown:
			w.labelCursor = (w.labelCursor + 1) % labelFieldCount
			return false, nil, w.focusLabelField()
		case tea.KeyUp:
			w.labelCursor = (w.labelCursor - 1 + labelFieldCount) % labelFieldCount
			return false, nil, w.focusLabelField()
		}
	}

	if ti := w.activeLabelInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return false, nil, cmd
	}
	return false, nil, nil
}

func (w *wizardModel) updateTitle(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		title := strings.TrimSpace(w.titleInput.Value())
		if title == "" {
			return false, nil, nil
		}
		w.titleInput.Blur()
		w.step = stepSlug
		// Auto-suggest a slug unless the user already edited one
		if strings.TrimSpace(w.slugInput.Value()) == "" {
			w.slugInput.SetValue(suggestSlug(title))
		}
		w.slugInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.titleInput, cmd = w.titleInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateSlug(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		slug := strings.TrimSpace(w.slugInput.Value())
		if slug == "" || suggestSlug(slug) != slug {
			return false, nil, nil
		}
		w.slugInput.Blur()
		w.step = stepLevel
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.slugInput, cmd = w.slugInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateLevel(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		switch item := w.levelList.SelectedItem().(type) {
		case levelItem:
			w.selectedLevel = item.level
		case skipLevelItem:
			w.selectedLevel = config.LevelUnspecified
		}
		w.step = stepPeople
		w.personCursor = piName
		return false, nil, w.focusPersonField()
	}

	var cmd tea.Cmd
	w.levelList, cmd = w.levelList.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) activePersonInput() *textinput.Model {
	switch w.personCursor {
	case piName:
		return &w.piNameInput
	case piEmail:
		return &w.piEmailInput
	case daName:
		return &w.daNameInput
	case daEmail:
		return &w.daEmailInput
	}
	return nil
}

func (w *wizardModel) blurPersonInputs() {
	w.piNameInput.Blur()
	w.piEmailInput.Blur()
	w.daNameInput.Blur()
	w.daEmailInput.Blur()
}

func (w *wizardModel) focusPersonField() tea.Cmd {
	w.blurPersonInputs()
	if ti := w.activePersonInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (w *wizardModel) updatePeople(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			w.blurPersonInputs()
			w.step = stepConfirm
			return false, nil, nil
		case tea.KeyTab, tea.KeyDown:
			w.personCursor = (w.personCursor + 1) % personFieldCount
			return false, nil, w.focusPersonField()
		case tea.KeyUp:
			w.personCursor = (w.personCursor - 1 + personFieldCount) % personFieldCount
			return false, nil, w.focusPersonField()
		}
	}

	if ti := w.activePersonInput(); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return false, nil, cmd
	}
	return false, nil, nil
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *config.StudyConfig, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, w.buildConfig(), nil
		case "n":
			// Restart wizard
			fresh := newWizardModel()
			fresh.width = w.width
			fresh.height = w.height
			*w = fresh
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

// buildConfig assembles the study configuration from the collected values.
func (w *wizardModel) buildConfig() *config.StudyConfig {
	cfg := &config.StudyConfig{
		AccessionCode:              w.labelValue(labelStudy),
		InvestigationAccessionCode: w.labelValue(labelInvestigation),
		InvestigationWorkPackage:   w.labelValue(labelWorkpackage),
		Title:                      strings.TrimSpace(w.titleInput.Value()),
		Slug:                       strings.TrimSpace(w.slugInput.Value()),
		SecurityLevel:              string(w.selectedLevel),
	}
	cfg.PrincipalInvestigator = buildPerson(w.piNameInput.Value(), w.piEmailInput.Value())
	cfg.DatasetAdministrator = buildPerson(w.daNameInput.Value(), w.daEmailInput.Value())
	return cfg
}

// buildPerson splits a free-form name on the last space. Both fields empty
// means the person was skipped.
func buildPerson(name, email string) *config.Person {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" && email == "" {
		return nil
	}

	first, last := name, ""
	if idx := strings.LastIndex(name, " "); idx >= 0 {
		first, last = name[:idx], name[idx+1:]
	}
	return &config.Person{FirstName: first, LastName: last, Email: email}
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Create Study Folder"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepLabels:
		b.WriteString(wizardLabelStyle.Render("Identity:"))
		b.WriteString("\n\n")
		b.WriteString(w.renderLabelInput(labelWorkpackage, "Work package", "Work package identifier, e.g. WP001", &w.workpackageInput))
		b.WriteString("\n")
		b.WriteString(w.renderLabelInput(labelInvestigation, "Investigation", "Investigation accession code, e.g. CXRP001", &w.investigationInput))
		b.WriteString("\n")
		b.WriteString(w.renderLabelInput(labelStudy, "Study", "Study accession code, e.g. CXRS001", &w.studyInput))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Tab/arrows to move, Enter to continue, Esc to cancel."))
	case stepTitle:
		b.WriteString(wizardLabelStyle.Render("Study title:"))
		b.WriteString("\n")
		b.WriteString(w.titleInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Human-readable study title. Enter to continue."))
	case stepSlug:
		b.WriteString(wizardLabelStyle.Render("Folder slug:"))
		b.WriteString("\n")
		b.WriteString(w.slugInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Lowercase letters, digits, and hyphens. Enter to continue."))
	case stepLevel:
		b.WriteString(wizardLabelStyle.Render("Data sensitivity level:"))
		b.WriteString("\n")
		b.WriteString(w.levelList.View())
	case stepPeople:
		b.WriteString(wizardLabelStyle.Render("Contacts (optional):"))
		b.WriteString("\n\n")
		b.WriteString(w.renderPersonInput(piName, "PI name", "Principal investigator full name", &w.piNameInput))
		b.WriteString("\n")
		b.WriteString(w.renderPersonInput(piEmail, "PI email", "Principal investigator email address", &w.piEmailInput))
		b.WriteString("\n")
		b.WriteString(w.renderPersonInput(daName, "Admin name", "Dataset administrator full name", &w.daNameInput))
		b.WriteString("\n")
		b.WriteString(w.renderPersonInput(daEmail, "Admin email", "Dataset administrator email address", &w.daEmailInput))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Tab/arrows to move, Enter to continue, Esc to go back."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Work package:  %s\n", wizardValueStyle.Render(w.labelValue(labelWorkpackage))))
		b.WriteString(fmt.Sprintf("  Investigation: %s\n", wizardValueStyle.Render(w.labelValue(labelInvestigation))))
		b.WriteString(fmt.Sprintf("  Study:         %s\n", wizardValueStyle.Render(w.labelValue(labelStudy))))
		b.WriteString(fmt.Sprintf("  Title:         %s\n", wizardValueStyle.Render(strings.TrimSpace(w.titleInput.Value()))))
		b.WriteString(fmt.Sprintf("  Slug:          %s\n", wizardValueStyle.Render(strings.TrimSpace(w.slugInput.Value()))))
		level := string(w.selectedLevel)
		if level == "" {
			level = "(decide later)"
		}
		b.WriteString(fmt.Sprintf("  Sensitivity:   %s\n", wizardValueStyle.Render(level)))
		if p := buildPerson(w.piNameInput.Value(), w.piEmailInput.Value()); p != nil {
			b.WriteString(fmt.Sprintf("  PI:            %s\n", wizardValueStyle.Render(p.Display())))
		}
		if p := buildPerson(w.daNameInput.Value(), w.daEmailInput.Value()); p != nil {
			b.WriteString(fmt.Sprintf("  Admin:         %s\n", wizardValueStyle.Render(p.Display())))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to create, n to restart, Esc to go back."))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Identity"},
		{2, "Title"},
		{3, "Slug"},
		{4, "Level"},
		{5, "Contacts"},
		{6, "Confirm"},
	}

	var parts []string
	currentStep := int(w.step) + 1
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		if s.num == currentStep {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) renderLabelInput(field labelField, name, desc string, ti *textinput.Model) string {
	return renderField(w.labelCursor == field, name, desc, ti)
}

func (w *wizardModel) renderPersonInput(field personField, name, desc string, ti *textinput.Model) string {
	return renderField(w.personCursor == field, name, desc, ti)
}

func renderField(active bool, name, desc string, ti *textinput.Model) string {
	if active {
		line := fmt.Sprintf("  > %s: %s", name, ti.View())
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}

	val := strings.TrimSpace(ti.Value())
	if val == "" {
		val = "(not set)"
	}
	line := fmt.Sprintf("    %s: %s", name, val)
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}

// sanitizeSlugRegex matches characters not valid in folder slugs.
var sanitizeSlugRegex = regexp.MustCompile(`[^a-z0-9-]`)

// suggestSlug derives a folder slug from the study title.
func suggestSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = sanitizeSlugRegex.ReplaceAllString(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// programModel wraps wizardModel as a tea.Model for standalone runs.
type programModel struct {
	wizard    wizardModel
	done      bool
	cfg       *config.StudyConfig
	cancelled bool
}

func (m programModel) Init() tea.Cmd {
	return m.wizard.Init()
}

func (m programModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.wizard.width = size.Width
		m.wizard.height = size.Height
	}

	done, cfg, cmd := m.wizard.Update(msg)
	if done {
		m.done = true
		m.cfg = cfg
		m.cancelled = cfg == nil
		return m, tea.Quit
	}
	return m, cmd
}

func (m programModel) View() string {
	if m.done {
		return ""
	}
	return m.wizard.View()
}

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = fmt.Errorf("wizard cancelled")

// RunWizard runs the interactive study configuration wizard and returns the
// assembled, not yet validated, study configuration.
func RunWizard() (*config.StudyConfig, error) {
	p := tea.NewProgram(programModel{wizard: newWizardModel()}, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(programModel)
	if m.cancelled || m.cfg == nil {
		return nil, ErrCancelled
	}
	return m.cfg, nil
}
