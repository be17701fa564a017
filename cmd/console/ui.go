package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calebwren/reel-engine/pkg/engine"
	"github.com/calebwren/reel-engine/pkg/state"
)

const PlaceHolderText = "reel | slack | use wax | spawn harbor | /help"

// markerFrames is the length of one full sweep of the timing marker.
const markerFrames = 40

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	snapshot     *state.Snapshot
	timing       *engine.Window
	logLines     []string
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Bundle selection state
	showBundleModal bool
	bundles         []string
	bundleMap       map[string]string
	selectedBundle  int
	loadingBundles  bool

	// Quit confirmation state
	showQuitModal bool

	// Timing marker state. The marker sweeps while a fight is live; the
	// offset sampled at the moment of submit becomes the action's grade.
	markerTick int
}

type snapshotMsg struct {
	resp *SnapshotResponse
	err  error
}

type bundlesLoadedMsg struct {
	bundles   []string
	bundleMap map[string]string
	err       error
}

type snapshotCreatedMsg struct {
	resp *SnapshotResponse
	err  error
}

type markerTickMsg struct{}

type bundleInfoMsg struct {
	regions []string
	err     error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	youStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	tensionHotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("39")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:          cfg,
		client:          client,
		textarea:        ta,
		logViewport:     logVp,
		metaViewport:    metaVp,
		ready:           false,
		showBundleModal: true,
		loadingBundles:  true,
		selectedBundle:  0,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showBundleModal {
		return m.loadBundles()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showBundleModal {
		return m.updateBundleModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.writeLogContent()
		if m.snapshot != nil {
			m.metaViewport.SetContent(m.writeMetadata())
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleSlashCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.appendLog(youStyle.Render("> ") + input)
			m.writeLogContent()
			return m, m.dispatch(input)
		}

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.applyResponse(msg.resp)
		}
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, m.markerCmd()

	case bundleInfoMsg:
		if msg.err == nil && len(msg.regions) > 0 {
			m.appendLog(promptStyle.Render("Waters: " + strings.Join(msg.regions, ", ")))
			m.writeLogContent()
		}
		return m, nil

	case markerTickMsg:
		if m.inFight() {
			m.markerTick++
			m.writeLogContent()
			return m, m.markerCmd()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	logWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

func (m *ConsoleUI) inFight() bool {
	return m.snapshot != nil && m.snapshot.Combat != nil &&
		m.snapshot.Combat.Outcome == state.OutcomeNone
}

func (m *ConsoleUI) markerCmd() tea.Cmd {
	if !m.inFight() {
		return nil
	}
	return tea.Tick(time.Millisecond*80, func(time.Time) tea.Msg {
		return markerTickMsg{}
	})
}

// markerOffset maps the tick to a triangle sweep over [-1, 1].
func (m *ConsoleUI) markerOffset() float64 {
	phase := float64(m.markerTick%markerFrames) / float64(markerFrames)
	return 2*abs(2*phase-1) - 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// dispatch turns console input into an API call. The first word selects the
// verb; anything unrecognized is sent as an action id graded against the
// marker's current position.
func (m *ConsoleUI) dispatch(input string) tea.Cmd {
	words := strings.Fields(strings.ToLower(input))
	verb, rest := words[0], words[1:]
	arg := ""
	if len(rest) > 0 {
		arg = rest[0]
	}

	id := m.snapshot.ID
	post := func(endpoint string, body any) tea.Cmd {
		return func() tea.Msg {
			resp, err := postVerb(m.client, m.config.APIBaseURL, id, endpoint, body)
			return snapshotMsg{resp, err}
		}
	}

	switch verb {
	case "spawn":
		return post("fight", map[string]string{"op": "spawn", "region_id": arg})
	case "retry":
		return post("fight", map[string]string{"op": "retry"})
	case "flee":
		return post("fight", map[string]string{"op": "flee"})
	case "use":
		return post("item", map[string]string{"item_id": arg})
	case "contract":
		return post("contract", map[string]string{"op": "start", "contract_id": arg})
	case "advance":
		return post("contract", map[string]string{"op": "advance"})
	case "finish":
		return post("contract", map[string]string{"op": "finish"})
	case "buy":
		return post("contract", map[string]string{"op": "buy", "ref_id": arg})
	case "stat":
		return post("player", map[string]string{"op": "stat", "stat": arg})
	case "skill":
		return post("player", map[string]string{"op": "skill", "skill_id": arg})
	case "respec":
		return post("player", map[string]string{"op": "respec"})
	default:
		offset := m.markerOffset()
		return post("action", map[string]any{"action_id": verb, "offset": offset})
	}
}

func (m *ConsoleUI) applyResponse(resp *SnapshotResponse) {
	m.snapshot = resp.Snapshot
	m.timing = resp.Timing
	if ev := resp.Snapshot.LastEvent; ev != nil {
		m.appendLog(formatEvent(ev))
	}
}

func (m *ConsoleUI) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	// Keep the scrollback bounded
	if len(m.logLines) > 500 {
		m.logLines = m.logLines[len(m.logLines)-500:]
	}
}

var titleCaser = cases.Title(language.English)

// displayName prettifies a snake_case content id for the log.
func displayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

// formatEvent renders one engine event as a log line.
func formatEvent(ev *state.Event) string {
	switch ev.Kind {
	case state.EventLog:
		return warnStyle.Render(ev.Message)
	case state.EventSpawn:
		return eventStyle.Render(fmt.Sprintf("A fish takes the line in %s!", ev.RegionID))
	case state.EventAction:
		parts := []string{fmt.Sprintf("%s lands (%s)", ev.ActionID, strings.ToLower(string(ev.Grade)))}
		if ev.StaminaDelta != 0 {
			parts = append(parts, fmt.Sprintf("stamina %+d", ev.StaminaDelta))
		}
		if ev.TensionDelta != 0 {
			parts = append(parts, fmt.Sprintf("tension %+d", ev.TensionDelta))
		}
		if ev.Pressure > 0 {
			parts = append(parts, fmt.Sprintf("pull +%d", ev.Pressure))
		}
		if ev.Wear > 0 {
			parts = append(parts, fmt.Sprintf("line wear -%d", ev.Wear))
		}
		return eventStyle.Render(strings.Join(parts, ", "))
	case state.EventItem:
		parts := []string{fmt.Sprintf("used %s", ev.ItemID)}
		if ev.Restored > 0 {
			parts = append(parts, fmt.Sprintf("line +%d", ev.Restored))
		}
		if ev.TensionDelta != 0 {
			parts = append(parts, fmt.Sprintf("tension %+d", ev.TensionDelta))
		}
		if ev.Pressure > 0 {
			parts = append(parts, fmt.Sprintf("pull +%d", ev.Pressure))
		}
		return eventStyle.Render(strings.Join(parts, ", "))
	case state.EventPhaseChange:
		return warnStyle.Render(fmt.Sprintf("The fish turns %s!", strings.ToLower(string(ev.Phase))))
	case state.EventWin:
		msg := fmt.Sprintf("Landed the %s! +%d xp", displayName(ev.FishID), ev.XP)
		if ev.Levels > 0 {
			msg += fmt.Sprintf(", level up x%d", ev.Levels)
		}
		if ev.Reward > 0 {
			msg += fmt.Sprintf(", +%d coin", ev.Reward)
		}
		return eventStyle.Render(msg)
	case state.EventDefeat:
		return errorStyle.Render("The line snapped! retry or flee.")
	case state.EventRetry:
		return warnStyle.Render("Fresh line, same fish.")
	case state.EventFlee:
		return warnStyle.Render("You cut the line and slip away.")
	case state.EventContract:
		return eventStyle.Render(fmt.Sprintf("Contract %s: fishing %s", ev.Message, ev.RegionID))
	case state.EventCamp:
		return eventStyle.Render("Camp: rest, shop, then advance.")
	case state.EventSummary:
		return eventStyle.Render(fmt.Sprintf("Contract complete. %d coin earned.", ev.Reward))
	case state.EventPurchase:
		name := ev.ItemID
		if name == "" {
			name = ev.Message
		}
		return eventStyle.Render(fmt.Sprintf("Bought %s for %d coin.", displayName(name), ev.Price))
	case state.EventLevelUp:
		msg := fmt.Sprintf("+%d xp", ev.XP)
		if ev.Levels > 0 {
			msg += fmt.Sprintf(", level up x%d", ev.Levels)
		}
		return eventStyle.Render(msg)
	case state.EventStatSpent:
		return eventStyle.Render("+1 " + ev.Message)
	case state.EventSkill:
		return eventStyle.Render("Learned " + ev.SkillID)
	case state.EventRespec:
		return eventStyle.Render("Stats and skills refunded.")
	default:
		return eventStyle.Render(ev.Message)
	}
}

// writeLogContent rebuilds the log viewport for the current width.
func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6
	if logWidth < 10 {
		logWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("REEL ENGINE") + "\n\n")
	content.WriteString("Hook a fish, manage the tension, don't snap the line.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", logWidth-6)) + "\n\n")

	for _, line := range m.logLines {
		content.WriteString(wordwrap.String(line, logWidth) + "\n")
	}

	if m.inFight() && m.timing != nil {
		content.WriteString("\n" + m.renderTimingBar(logWidth))
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// renderTimingBar draws the sweep bar with the grade windows marked. Submit
// an action while the marker sits in the bright center for a PERFECT.
func (m *ConsoleUI) renderTimingBar(width int) string {
	usable := width
	if usable > 60 {
		usable = 60
	} else if usable < 20 {
		usable = 20
	}

	center := usable / 2
	markerPos := center + int(m.markerOffset()*float64(center))
	if markerPos < 0 {
		markerPos = 0
	}
	if markerPos >= usable {
		markerPos = usable - 1
	}
	perfectRadius := int(m.timing.Perfect * float64(center))
	goodRadius := int(m.timing.Good * float64(center))

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		dist := i - center
		if dist < 0 {
			dist = -dist
		}
		switch {
		case i == markerPos:
			bar.WriteString("█")
		case dist <= perfectRadius:
			bar.WriteString("▓")
		case dist <= goodRadius:
			bar.WriteString("▒")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func (m *ConsoleUI) writeMetadata() string {
	s := m.snapshot
	if s == nil {
		return ""
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("ANGLER") + "\n\n")

	content.WriteString(fmt.Sprintf("Level %d  (%d/%d xp)\n", s.Player.Level, s.Player.XP, s.Player.XPToNext))
	content.WriteString(fmt.Sprintf("Coin: %d\n\n", s.Currency))

	content.WriteString("Tension:\n")
	tension := fmt.Sprintf("%d/100\n", s.Player.Tension)
	if s.Player.Tension > 58 {
		content.WriteString(tensionHotStyle.Render(tension))
	} else {
		content.WriteString(tension)
	}
	content.WriteString(fmt.Sprintf("Line: %d\n\n", s.Player.Integrity))

	st := s.Player.Stats
	content.WriteString("Stats:\n")
	content.WriteString(fmt.Sprintf("• control %d\n", st.Control))
	content.WriteString(fmt.Sprintf("• power %d\n", st.Power))
	content.WriteString(fmt.Sprintf("• durability %d\n", st.Durability))
	content.WriteString(fmt.Sprintf("• precision %d\n", st.Precision))
	content.WriteString(fmt.Sprintf("• tactics %d\n", st.Tactics))
	if s.Player.StatPoints > 0 || s.Player.SkillPoints > 0 {
		content.WriteString(fmt.Sprintf("Unspent: %d stat, %d skill\n", s.Player.StatPoints, s.Player.SkillPoints))
	}
	content.WriteString("\n")

	if c := s.Combat; c != nil {
		content.WriteString(titleStyle.Render("ON THE LINE") + "\n")
		content.WriteString(fmt.Sprintf("%s\n", displayName(c.FishID)))
		content.WriteString(fmt.Sprintf("stamina %d/%d\n", c.Stamina, c.MaxStamina))
		content.WriteString(fmt.Sprintf("phase %s, turn %d\n", strings.ToLower(string(c.Phase)), c.TurnCount))
		if c.Outcome == state.OutcomeDefeatPrompt {
			content.WriteString(errorStyle.Render("LINE SNAPPED\n"))
		}
		content.WriteString("\n")
	}

	if cr := s.Contract; cr != nil {
		content.WriteString(titleStyle.Render("CONTRACT") + "\n")
		content.WriteString(fmt.Sprintf("%s (%d/%d)\n", cr.ContractID, cr.Index+1, len(cr.Encounters)))
		content.WriteString(fmt.Sprintf("phase %s, earned %d\n\n", strings.ToLower(string(cr.Phase)), cr.Earned))
	}

	if len(s.Player.Inventory) > 0 {
		content.WriteString("Bag:\n")
		for id, n := range s.Player.Inventory {
			content.WriteString(fmt.Sprintf("• %s x%d\n", id, n))
		}
		content.WriteString("\n")
	}
	if len(s.TemporaryMods) > 0 {
		content.WriteString("Rig:\n")
		for _, id := range s.TemporaryMods {
			content.WriteString(fmt.Sprintf("• %s\n", id))
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

func (m ConsoleUI) handleSlashCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• spawn <region> - Hook a fish
• <action>       - Fight action, graded by the timing bar
• use <item>     - Use an inventory item
• retry / flee   - After a snapped line
• contract <id>  - Start a contract run
• advance        - Next contract fight from camp
• buy <id>       - Buy from the camp shop
• finish         - Collect the contract summary
• stat <name> / skill <id> / respec
• Ctrl+C         - Quit
`
		m.appendLog(titleStyle.Render("Help:") + helpText)
		m.writeLogContent()

	case "/actions":
		if m.snapshot != nil {
			m.appendLog("Known actions: " + strings.Join(m.snapshot.Player.KnownActions, ", "))
			m.writeLogContent()
		}

	case "/refresh":
		if m.snapshot != nil {
			m.textarea.Reset()
			m.loading = true
			id := m.snapshot.ID
			return m, func() tea.Msg {
				resp, err := getSnapshot(m.client, m.config.APIBaseURL, id)
				return snapshotMsg{resp, err}
			}
		}
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) loadBundles() tea.Cmd {
	return func() tea.Msg {
		ids, bundleMap, err := listBundles(m.client, m.config.APIBaseURL)
		return bundlesLoadedMsg{ids, bundleMap, err}
	}
}

func (m ConsoleUI) loadBundleInfo(bundleID string) tea.Cmd {
	return func() tea.Msg {
		b, err := getBundle(m.client, m.config.APIBaseURL, bundleID)
		if err != nil {
			return bundleInfoMsg{err: err}
		}
		regions := make([]string, 0, len(b.Regions))
		for _, r := range b.Regions {
			regions = append(regions, r.ID)
		}
		return bundleInfoMsg{regions: regions}
	}
}

func (m ConsoleUI) createSnapshotFromBundle(bundleID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := createSnapshot(m.client, m.config.APIBaseURL, bundleID)
		return snapshotCreatedMsg{resp, err}
	}
}

func (m ConsoleUI) updateBundleModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case bundlesLoadedMsg:
		m.loadingBundles = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.bundles = msg.bundles
			m.bundleMap = msg.bundleMap
		}

	case snapshotCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.snapshot = msg.resp.Snapshot
			m.timing = msg.resp.Timing
			m.showBundleModal = false
			if m.width > 0 && m.height > 0 {
				m.resizePanels()
			}
			m.appendLog(eventStyle.Render("Welcome to " + m.bundleMap[m.snapshot.BundleID] + "."))
			m.writeLogContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			m.ready = true
			return m, tea.Batch(textarea.Blink, m.loadBundleInfo(m.snapshot.BundleID))
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingBundles {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				m.showQuitModal = true
				return m, nil
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedBundle > 0 {
				m.selectedBundle--
			}
		case tea.KeyDown:
			if m.selectedBundle < len(m.bundles)-1 {
				m.selectedBundle++
			}
		case tea.KeyEnter:
			if len(m.bundles) > 0 {
				m.loading = true
				return m, m.createSnapshotFromBundle(m.bundles[m.selectedBundle])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showBundleModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Cut the line and head home?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep fishing, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderBundleModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingBundles {
		content.WriteString(modalTitleStyle.Render("Loading Waters..."))
		content.WriteString("\n\n")
		content.WriteString(warnStyle.Render("Fetching available content bundles..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load bundles: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Rigging Up..."))
		content.WriteString("\n\n")
		content.WriteString(warnStyle.Render("Setting up your run..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select Waters"))
		content.WriteString("\n\n")

		for i, id := range m.bundles {
			label := fmt.Sprintf("%s (%s)", m.bundleMap[id], id)
			if i == m.selectedBundle {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + label))
			} else {
				content.WriteString(modalItemStyle.Render("  " + label))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showBundleModal {
		return m.renderBundleModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
