package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raksonibs/waffle/internal/core/domain"
)

// mockCalendarService records CLI calls against the driving port.
type mockCalendarService struct {
	accounts []domain.Account
	result   *domain.SyncResult
	err      error

	viewedUser string
	viewedOpts domain.SyncOptions
}

func (m *mockCalendarService) AddAccount(_ context.Context) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{Username: "user@example.com"}, nil
}

func (m *mockCalendarService) CalendarView(
	_ context.Context, _, _ time.Time, username string, opts domain.SyncOptions,
) (*domain.SyncResult, error) {
	m.viewedUser = username
	m.viewedOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.SyncResult{}, nil
}

func (m *mockCalendarService) Accounts(_ context.Context) ([]domain.Account, error) {
	return m.accounts, nil
}

func (m *mockCalendarService) RemoveAccount(_ context.Context, _ string) error {
	return m.err
}

func TestSetVersion(t *testing.T) {
	// Given
	originalVersion := version
	defer func() { version = originalVersion }()

	// When
	SetVersion("1.2.3")

	// Then
	assert.Equal(t, "1.2.3", version)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "waffle", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "account", "should have account command")
	assert.Contains(t, commandNames, "sync", "should have sync command")
	assert.Contains(t, commandNames, "config", "should have config command")
}

func TestExecute_ReturnsNoErrorWithHelp(t *testing.T) {
	// Save and restore stdout
	oldOut := rootCmd.OutOrStdout()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetOut(oldOut)
		rootCmd.SetArgs(nil)
	}()

	// When
	err := Execute()

	// Then
	assert.NoError(t, err)
}

func TestSetServices(t *testing.T) {
	oldCalendar := calendarService
	oldPath := configPath
	defer func() {
		calendarService = oldCalendar
		configPath = oldPath
	}()

	mock := &mockCalendarService{}
	SetServices(&Services{Calendar: mock, ConfigPath: "/tmp/config.toml"})

	assert.NotNil(t, calendarService)
	assert.Equal(t, "/tmp/config.toml", configPath)

	// Nil must not clobber the injected services.
	SetServices(nil)
	assert.NotNil(t, calendarService)
}

func TestResolveWindow_Defaults(t *testing.T) {
	start, end, err := resolveWindow("", "")
	require.NoError(t, err)

	assert.Equal(t, start.AddDate(0, 0, 30), end)
	assert.Equal(t, time.UTC, start.Location())
}

func TestResolveWindow_Explicit(t *testing.T) {
	start, end, err := resolveWindow("2026-03-01", "2026-03-15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_FromOnly(t *testing.T) {
	start, end, err := resolveWindow("2026-03-01", "")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_Invalid(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "bad from", from: "March 1st", to: ""},
		{name: "bad to", from: "", to: "soon"},
		{name: "inverted window", from: "2026-03-15", to: "2026-03-01"},
		{name: "empty window", from: "2026-03-01", to: "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := resolveWindow(tt.from, tt.to)
			assert.Error(t, err)
		})
	}
}

func TestRunSync_PicksSingleAccount(t *testing.T) {
	oldCalendar := calendarService
	defer func() { calendarService = oldCalendar }()

	mock := &mockCalendarService{
		accounts: []domain.Account{{Username: "user@example.com"}},
		result:   &domain.SyncResult{},
	}
	calendarService = mock

	syncAccount = ""
	syncFull = false
	syncNoTrack = false
	defer func() { syncAccount = "" }()

	err := runSync(syncCmd, nil)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", mock.viewedUser)
	assert.True(t, mock.viewedOpts.UseDelta)
	assert.True(t, mock.viewedOpts.TrackChanges)
}

func TestRunSync_NoAccounts(t *testing.T) {
	oldCalendar := calendarService
	defer func() { calendarService = oldCalendar }()

	calendarService = &mockCalendarService{}
	syncAccount = ""

	err := runSync(syncCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts connected")
}

func TestRunSync_MultipleAccountsNeedFlag(t *testing.T) {
	oldCalendar := calendarService
	defer func() { calendarService = oldCalendar }()

	calendarService = &mockCalendarService{
		accounts: []domain.Account{
			{Username: "a@example.com"},
			{Username: "b@example.com"},
		},
	}
	syncAccount = ""

	err := runSync(syncCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--account")
}

func TestRunSync_FullDisablesDelta(t *testing.T) {
	oldCalendar := calendarService
	defer func() { calendarService = oldCalendar }()

	mock := &mockCalendarService{result: &domain.SyncResult{}}
	calendarService = mock

	syncAccount = "user@example.com"
	syncFull = true
	syncNoTrack = true
	defer func() {
		syncAccount = ""
		syncFull = false
		syncNoTrack = false
	}()

	err := runSync(syncCmd, nil)
	require.NoError(t, err)

	assert.False(t, mock.viewedOpts.UseDelta)
	assert.False(t, mock.viewedOpts.TrackChanges)
}
