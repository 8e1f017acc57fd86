package cmd

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/penwyp/pushnote/internal/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRemoteLister 模拟远程仓库列表
type MockRemoteLister struct {
	mock.Mock
}

func (m *MockRemoteLister) GetRemotes(ctx context.Context) ([]git.Remote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]git.Remote), args.Error(1)
}

func (m *MockRemoteLister) SelectRemote(remotes []git.Remote, preferredName string) (*git.Remote, error) {
	args := m.Called(remotes, preferredName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*git.Remote), args.Error(1)
}

func withLister(t *testing.T, lister RemoteLister) {
	t.Helper()
	orig := remoteListerProvider
	remoteListerProvider = func() RemoteLister { return lister }
	t.Cleanup(func() { remoteListerProvider = orig })
}

func TestRemotesCommand(t *testing.T) {
	h := setupHarness(t, newFakeRunner())

	stdout, _, err := h.execute(t, "", "remotes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Remote")
	assert.Contains(t, lines[0], "Provider")
	assert.True(t, strings.HasPrefix(lines[1], "*"), "origin is selected by default")
	assert.Contains(t, lines[1], "GitHub")
	assert.Contains(t, lines[1], "user/repo")
	assert.True(t, strings.HasPrefix(lines[2], " "))
	assert.Contains(t, lines[2], "GitLab")
	assert.Contains(t, lines[2], "https://gitlab.com/group/repo.git")
}

func TestRemotesCommand_NoRemotes(t *testing.T) {
	h := setupHarness(t, newFakeRunner().on("remote -v", git.Result{}, nil))

	stdout, _, err := h.execute(t, "", "remotes")
	require.NoError(t, err)
	assert.Equal(t, "No git remotes found\n", stdout)
}

func TestRemotesCommand_Mock(t *testing.T) {
	remotes := []git.Remote{
		{Name: "upstream", FetchURL: "https://github.com/org/repo.git"},
		{Name: "fork", FetchURL: "git@github.com:me/repo.git"},
	}

	tests := []struct {
		name        string
		setup       func(*MockRemoteLister)
		expected    []string
		expectError bool
	}{
		{
			name: "no default selectable",
			setup: func(m *MockRemoteLister) {
				m.On("GetRemotes", mock.Anything).Return(remotes, nil)
				m.On("SelectRemote", remotes, "").Return(nil, fmt.Errorf("multiple remotes"))
			},
			expected: []string{"upstream", "org/repo", "fork", "me/repo"},
		},
		{
			name: "list fails",
			setup: func(m *MockRemoteLister) {
				m.On("GetRemotes", mock.Anything).Return(nil, fmt.Errorf("boom"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupHarness(t, newFakeRunner())
			lister := new(MockRemoteLister)
			tt.setup(lister)
			withLister(t, lister)

			stdout, _, err := h.execute(t, "", "remotes")
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to get git remotes")
				return
			}
			require.NoError(t, err)
			for _, s := range tt.expected {
				assert.Contains(t, stdout, s)
			}
			assert.NotContains(t, stdout, "*")
			lister.AssertExpectations(t)
		})
	}
}

func TestBuildRemoteRows(t *testing.T) {
	rows := buildRemoteRows([]git.Remote{
		{Name: "origin", FetchURL: "https://github.com/a/b.git", PushURL: "git@github.com:a/b.git"},
		{Name: "local", FetchURL: "/srv/git/repo.git"},
	}, "origin")

	require.Len(t, rows, 2)
	assert.Equal(t, RemoteRow{Name: "origin", Provider: "GitHub", Repo: "a/b", URL: "git@github.com:a/b.git", Selected: true}, rows[0])
	assert.Equal(t, RemoteRow{Name: "local", Provider: "-", Repo: "-", URL: "/srv/git/repo.git"}, rows[1])
}
