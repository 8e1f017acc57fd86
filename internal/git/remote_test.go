package git

import (
	"context"
	"testing"

	"github.com/penwyp/pushnote/internal/errors"
	"github.com/penwyp/pushnote/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunner 模拟 git 命令执行
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, command string, args ...string) (Result, error) {
	arguments := m.Called(ctx, command, args)
	return arguments.Get(0).(Result), arguments.Error(1)
}

func (m *MockRunner) onGit(stdout string, err error, args ...string) {
	m.On("Run", mock.Anything, "git", args).Return(Result{Stdout: stdout}, err)
}

func TestGetRemotes_KeepsListingOrder(t *testing.T) {
	runner := new(MockRunner)
	runner.onGit("upstream\tgit@github.com:org/repo.git (fetch)\n"+
		"upstream\tgit@github.com:org/repo.git (push)\n"+
		"fork\thttps://github.com/me/repo.git (fetch)\n"+
		"fork\tssh://git@github.com/me/repo.git (push)\n"+
		"backup\t/srv/git/repo.git (fetch)\n"+
		"backup\t/srv/git/repo.git (push)\n", nil, "remote", "-v")

	remotes, err := NewRemoteManager(runner).GetRemotes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Remote{
		{Name: "upstream", FetchURL: "git@github.com:org/repo.git", PushURL: "git@github.com:org/repo.git"},
		{Name: "fork", FetchURL: "https://github.com/me/repo.git", PushURL: "ssh://git@github.com/me/repo.git"},
		{Name: "backup", FetchURL: "/srv/git/repo.git", PushURL: "/srv/git/repo.git"},
	}, remotes)
	runner.AssertExpectations(t)
}

func TestGetRemotes_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		err      error
		expected []Remote
	}{
		{name: "empty repository", stdout: "", expected: []Remote{}},
		{name: "blank lines and junk", stdout: "\n\nnot-a-remote-line\n", expected: []Remote{}},
		{
			name:     "fetch only",
			stdout:   "origin\thttps://gitlab.com/g/r.git (fetch)\n",
			expected: []Remote{{Name: "origin", FetchURL: "https://gitlab.com/g/r.git"}},
		},
		{name: "git fails", err: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			runner.onGit(tt.stdout, tt.err, "remote", "-v")

			remotes, err := NewRemoteManager(runner).GetRemotes(context.Background())
			if tt.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, remotes)
		})
	}
}

func TestSelectRemote(t *testing.T) {
	origin := Remote{Name: "origin", FetchURL: "https://github.com/owner/repo.git"}
	upstream := Remote{Name: "upstream", FetchURL: "https://github.com/upstream/repo.git"}
	fork := Remote{Name: "fork", FetchURL: "https://github.com/fork/repo.git"}

	tests := []struct {
		name      string
		remotes   []Remote
		preferred string
		want      string
		errText   string
	}{
		{name: "preferred wins over origin", remotes: []Remote{origin, upstream}, preferred: "upstream", want: "upstream"},
		{name: "origin when nothing preferred", remotes: []Remote{upstream, origin}, want: "origin"},
		{name: "the only remote", remotes: []Remote{fork}, want: "fork"},
		{name: "ambiguous", remotes: []Remote{upstream, fork}, errText: "no 'origin' remote found"},
		{name: "preferred missing", remotes: []Remote{origin}, preferred: "mirror", errText: "remote 'mirror' not found"},
		{name: "no remotes", remotes: nil, errText: "no remotes configured"},
	}

	manager := NewRemoteManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, err := manager.SelectRemote(tt.remotes, tt.preferred)
			if tt.errText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
				assert.Equal(t, errors.ErrTypeGit, errors.GetType(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, selected.Name)
		})
	}
}

func TestSelectRemote_SuggestsFix(t *testing.T) {
	manager := NewRemoteManager(nil)

	_, err := manager.SelectRemote([]Remote{{Name: "origin"}}, "mirror")
	assert.Equal(t, "Run: git remote add mirror <url>", errors.GetSuggestion(err))

	_, err = manager.SelectRemote(nil, "")
	assert.ErrorIs(t, err, errors.ErrNoRemotes)
}

func TestSelectRemote_ReturnsCopy(t *testing.T) {
	remotes := []Remote{{Name: "origin", FetchURL: "a"}}
	selected, err := NewRemoteManager(nil).SelectRemote(remotes, "")
	require.NoError(t, err)

	selected.FetchURL = "b"
	assert.Equal(t, "a", remotes[0].FetchURL)
}

func TestGetCurrentBranch(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		err     error
		want    string
		wantErr error
	}{
		{name: "branch with slash", stdout: "feature/toast-links\n", want: "feature/toast-links"},
		{name: "trims whitespace", stdout: "  main \n", want: "main"},
		{name: "detached HEAD", stdout: "\n", wantErr: errors.ErrDetachedHead},
		{name: "git fails", err: assert.AnError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			runner.onGit(tt.stdout, tt.err, "branch", "--show-current")

			branch, err := NewRemoteManager(runner).GetCurrentBranch(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, branch)
		})
	}
}

func TestHasUpstreamBranch(t *testing.T) {
	runner := new(MockRunner)
	runner.onGit("origin/main\n", nil, "rev-parse", "--abbrev-ref", "main@{upstream}")
	runner.onGit("", assert.AnError, "rev-parse", "--abbrev-ref", "wip@{upstream}")

	manager := NewRemoteManager(runner)
	assert.True(t, manager.HasUpstreamBranch(context.Background(), "main"))
	assert.False(t, manager.HasUpstreamBranch(context.Background(), "wip"))
	runner.AssertExpectations(t)
}

func TestRemote_Descriptor(t *testing.T) {
	tests := []struct {
		name   string
		remote Remote
		want   remote.Remote
	}{
		{
			name:   "push URL preferred",
			remote: Remote{Name: "origin", FetchURL: "https://github.com/a/b.git", PushURL: "git@github.com:a/b.git"},
			want:   remote.Remote{Name: "origin", URL: "git@github.com:a/b.git"},
		},
		{
			name:   "falls back to fetch URL",
			remote: Remote{Name: "origin", FetchURL: "https://github.com/a/b.git"},
			want:   remote.Remote{Name: "origin", URL: "https://github.com/a/b.git"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.remote.Descriptor())
		})
	}
}

func TestResult_Output(t *testing.T) {
	res := Result{Stdout: "out", Stderr: "err", ExitCode: 1}
	assert.Equal(t, remote.Output{Stdout: "out", Stderr: "err"}, res.Output())
}
