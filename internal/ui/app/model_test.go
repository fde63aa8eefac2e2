package app

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	alarmdto "holoalarm/internal/modules/alarm/dto"
	profiledto "holoalarm/internal/modules/profile/dto"
	wakedto "holoalarm/internal/modules/wake/dto"
	"holoalarm/internal/ui/components"
	alarmingview "holoalarm/internal/ui/views/alarming"
	dashboardview "holoalarm/internal/ui/views/dashboard"
	settingsview "holoalarm/internal/ui/views/settings"
)

type fakePort struct {
	snap      wakedto.Snapshot
	added     []string
	dismissed int
	settings  int
	drafts    []string
	saved     []profiledto.ProfileOutput
}

func (f *fakePort) Snapshot(context.Context) (wakedto.Snapshot, error) { return f.snap, nil }
func (f *fakePort) Tick(context.Context, time.Time) (wakedto.TickOutput, error) {
	return wakedto.TickOutput{}, nil
}
func (f *fakePort) AddAlarm(_ context.Context, hm, label string) (alarmdto.AlarmOutput, error) {
	f.added = append(f.added, hm+" "+label)
	return alarmdto.AlarmOutput{ID: "new", Time: hm, Label: label, Enabled: true}, nil
}
func (f *fakePort) DeleteAlarm(_ context.Context, id string) (alarmdto.DeleteOutput, error) {
	return alarmdto.DeleteOutput{ID: id, Removed: true}, nil
}
func (f *fakePort) ToggleAlarm(context.Context, string) (alarmdto.ToggleOutput, error) {
	return alarmdto.ToggleOutput{}, nil
}
func (f *fakePort) SaveSettings(_ context.Context, name string, photo *string, voice string) (profiledto.ProfileOutput, error) {
	out := profiledto.ProfileOutput{Name: name, PhotoBase64: photo, VoiceName: voice}
	f.saved = append(f.saved, out)
	return out, nil
}
func (f *fakePort) StylizeDraft(_ context.Context, photo string) (profiledto.DraftOutput, error) {
	f.drafts = append(f.drafts, photo)
	return profiledto.DraftOutput{PhotoBase64: "holo:" + photo, Stylized: true}, nil
}
func (f *fakePort) StylizePhoto(context.Context) (profiledto.StylizeOutput, error) {
	return profiledto.StylizeOutput{}, nil
}
func (f *fakePort) Announce(context.Context, alarmdto.AlarmOutput, profiledto.ProfileOutput) (wakedto.AnnounceOutput, error) {
	return wakedto.AnnounceOutput{Seconds: 2, Played: true}, nil
}
func (f *fakePort) PreviewVoice(context.Context, string) (wakedto.AnnounceOutput, error) {
	return wakedto.AnnounceOutput{}, nil
}
func (f *fakePort) OpenSettings()  { f.settings++ }
func (f *fakePort) CloseSettings() {}
func (f *fakePort) Dismiss()       { f.dismissed++ }
func (f *fakePort) Voices() []profiledto.VoiceOutput {
	return []profiledto.VoiceOutput{{Name: "Kore", Description: "Authoritative"}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func newTestModel(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := NewModel(port, port, time.Second, 0)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, snapshotMsg{snap: port.snap})
	return m
}

func mainSnapshot() wakedto.Snapshot {
	return wakedto.Snapshot{
		View:    wakedto.ViewMain,
		Now:     time.Date(2026, 10, 19, 7, 29, 0, 0, time.Local),
		Profile: profiledto.ProfileOutput{Name: "Ada", VoiceName: "Kore"},
		Alarms:  []alarmdto.AlarmOutput{{ID: "a", Time: "07:30", Label: "Gym", Enabled: true}},
	}
}

func TestTriggerShowsOverlayAndDismissReturnsToMain(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	m := newTestModel(t, port)
	if !strings.Contains(m.View(), "Scheduled Wakeups") {
		t.Fatalf("expected dashboard")
	}

	active := port.snap.Alarms[0]
	alarming := port.snap
	alarming.View = wakedto.ViewAlarming
	alarming.Active = &active
	m, cmd := update(t, m, tickedMsg{
		out:  wakedto.TickOutput{Triggered: true, Alarm: active, Message: "Hello Ada."},
		snap: alarming,
	})
	if cmd == nil {
		t.Fatalf("expected announce command")
	}
	if !strings.Contains(m.View(), "WAKE PROTOCOL") {
		t.Fatalf("expected alarming overlay, got:\n%s", m.View())
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should request dismissal")
	}
	dismiss, ok := cmd().(alarmingview.DismissMsg)
	if !ok {
		t.Fatalf("expected DismissMsg")
	}
	port.snap.View = wakedto.ViewMain
	m, _ = update(t, m, dismiss)
	if port.dismissed != 1 {
		t.Fatalf("expected one dismissal, got %d", port.dismissed)
	}
	if m.view() != wakedto.ViewMain || m.snap.Active != nil {
		t.Fatalf("expected main view without active alarm")
	}
}

func TestQuitIsIgnoredWhileAlarming(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	active := port.snap.Alarms[0]
	port.snap.View = wakedto.ViewAlarming
	port.snap.Active = &active
	m := newTestModel(t, port)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q must not quit while an alarm is ringing")
		}
	}
}

func TestPaletteAddsAlarm(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	m := newTestModel(t, port)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	if !m.palette.Visible() {
		t.Fatalf("palette should open")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("alarm:add 6:45 Morning Run")})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	submit, ok := cmd().(components.PaletteSubmitMsg)
	if !ok {
		t.Fatalf("expected palette submit")
	}
	m, cmd = update(t, m, submit)
	if cmd == nil {
		t.Fatalf("expected add command")
	}
	done, ok := cmd().(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("unexpected result %#v", done)
	}
	if len(port.added) != 1 || port.added[0] != "6:45 Morning Run" {
		t.Fatalf("unexpected adds %v", port.added)
	}
	m, _ = update(t, m, done)
	if !strings.Contains(m.status, "alarm set for 6:45") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestOpenSettingsLoadsProfile(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	m := newTestModel(t, port)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatalf("expected the dashboard to request settings")
	}
	open, ok := cmd().(dashboardview.OpenSettingsMsg)
	if !ok {
		t.Fatalf("expected OpenSettingsMsg")
	}
	m, _ = update(t, m, open)
	if port.settings != 1 {
		t.Fatalf("expected OpenSettings call")
	}
	if m.view() != wakedto.ViewSettings || !strings.Contains(m.View(), "PROFILE SETTINGS") {
		t.Fatalf("expected settings view")
	}
}

func TestTriggerArmsOverlayWhenSnapshotFails(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	m := newTestModel(t, port)

	active := port.snap.Alarms[0]
	m, cmd := update(t, m, tickedMsg{
		out: wakedto.TickOutput{Triggered: true, Alarm: active, Message: "Hello Ada."},
		err: errors.New("store busy"),
	})
	if cmd == nil {
		t.Fatalf("expected announce command despite the snapshot error")
	}
	if m.view() != wakedto.ViewAlarming || m.snap.Active == nil || m.snap.Active.ID != active.ID {
		t.Fatalf("expected alarming view for %s, got %q %+v", active.ID, m.view(), m.snap.Active)
	}
	if !strings.Contains(m.View(), "WAKE PROTOCOL") {
		t.Fatalf("expected alarming overlay, got:\n%s", m.View())
	}
	if !strings.Contains(m.status, "store busy") {
		t.Fatalf("expected the error in the status line, got %q", m.status)
	}
}

func TestSettingsStylizesLoadedPhotoWithoutSaving(t *testing.T) {
	t.Parallel()
	port := &fakePort{snap: mainSnapshot()}
	stored := base64.StdEncoding.EncodeToString([]byte("photo-a"))
	port.snap.Profile.PhotoBase64 = &stored
	m := newTestModel(t, port)

	m, cmd := update(t, m, dashboardview.OpenSettingsMsg{})
	if cmd == nil {
		t.Fatalf("expected settings load command")
	}
	port.snap.View = wakedto.ViewSettings
	m, _ = update(t, m, snapshotMsg{snap: port.snap})

	path := filepath.Join(t.TempDir(), "b.png")
	if err := os.WriteFile(path, []byte("photo-b"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path)})

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if cmd == nil {
		t.Fatalf("ctrl+g should request stylization")
	}
	req, ok := cmd().(settingsview.StylizeMsg)
	if !ok {
		t.Fatalf("expected StylizeMsg")
	}
	loaded := base64.StdEncoding.EncodeToString([]byte("photo-b"))
	if req.PhotoBase64 != loaded {
		t.Fatalf("stylize should use the loaded photo, got %q", req.PhotoBase64)
	}

	m, cmd = update(t, m, req)
	result := cmd()
	if batch, ok := result.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if msg, ok := c().(draftStylizedMsg); ok {
				result = msg
			}
		}
	}
	drafted, ok := result.(draftStylizedMsg)
	if !ok {
		t.Fatalf("expected draftStylizedMsg, got %T", result)
	}
	if len(port.drafts) != 1 || port.drafts[0] != loaded {
		t.Fatalf("unexpected draft calls %v", port.drafts)
	}
	if len(port.saved) != 0 {
		t.Fatalf("stylizing must not save the profile")
	}

	m, _ = update(t, m, drafted)
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	save, ok := cmd().(settingsview.SaveMsg)
	if !ok {
		t.Fatalf("enter should save the form")
	}
	if save.PhotoBase64 == nil || *save.PhotoBase64 != "holo:"+loaded {
		t.Fatalf("save should carry the stylized loaded photo, got %v", save.PhotoBase64)
	}
}
