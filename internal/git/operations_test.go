package git

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitoutofhours/internal/history"
	"gitoutofhours/internal/testutil"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// seedRepository creates one commit before, and two inside, the
// 2021-11-05 17:30 to 2021-11-06 08:30 UTC window
func seedRepository(t *testing.T) string {
	t.Helper()
	r := testutil.NewRepo(t,
		testutil.FixtureCommit{Author: "Bob Jones", Email: "bob@example.com", Message: "Lunch time change",
			When: time.Date(2021, 11, 5, 12, 0, 0, 0, time.UTC)},
		testutil.FixtureCommit{Author: "John Smith", Email: "john@example.com", Message: "Late fix\n\nwith a body",
			When: time.Date(2021, 11, 5, 22, 0, 0, 0, time.UTC)},
		testutil.FixtureCommit{Author: "John Smith", Email: "john@example.com", Message: "Early start",
			When: time.Date(2021, 11, 6, 7, 15, 0, 0, time.FixedZone("", 3600))},
	)
	return r.Dir
}

func testWindow() models.DayWindow {
	since := time.Date(2021, 11, 5, 17, 30, 0, 0, time.UTC)
	until := time.Date(2021, 11, 6, 8, 30, 0, 0, time.UTC)
	return models.DayWindow{
		Start: since.Format("2006-01-02 15:04:05 -0700"),
		End:   until.Format("2006-01-02 15:04:05 -0700"),
		Since: since,
		Until: until,
	}
}

func TestNewRepoSource(t *testing.T) {
	dir := testutil.NewRepo(t).Dir

	src, err := NewRepoSource(dir)
	assert.NoError(t, err)
	assert.NotNil(t, src)
	assert.Equal(t, dir, src.repoPath)

	_, err = NewRepoSource(t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeRepoNotFound, errors.GetErrorCode(err))
}

func TestRepoSourceLogWindow(t *testing.T) {
	dir := seedRepository(t)
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	out, err := src.Log(context.Background(), testWindow(), "master")
	require.NoError(t, err)

	commits := history.ParseLog(out)
	require.Len(t, commits, 2)

	// newest first, as git prints it
	assert.Equal(t, "Early start", commits[0].Message)
	assert.Equal(t, "2021-11-06 07:15:00 +0100", commits[0].Date)
	assert.Equal(t, "Late fix", commits[1].Message)
	assert.Equal(t, "John Smith", commits[1].Author)
	assert.Equal(t, "john@example.com", commits[1].Email)
	assert.Len(t, commits[1].Hash, 40)
}

func TestRepoSourceEmptyBranchUsesHead(t *testing.T) {
	dir := seedRepository(t)
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	out, err := src.Log(context.Background(), testWindow(), "")
	require.NoError(t, err)
	assert.Len(t, history.ParseLog(out), 2)
}

func TestRepoSourceUnknownBranch(t *testing.T) {
	dir := seedRepository(t)
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	_, err = src.Log(context.Background(), testWindow(), "aRandomBranch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRetrievingCommits))
	assert.Equal(t, "Error retrieving commits", err.Error())
}

func TestRepoSourceEmptyRepository(t *testing.T) {
	dir := testutil.NewRepo(t).Dir
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	_, err = src.Log(context.Background(), testWindow(), "")
	assert.True(t, IsRetrievalError(err))
}

func TestRepoSourceNothingInWindow(t *testing.T) {
	dir := seedRepository(t)
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	w := testWindow()
	w.Since = w.Since.AddDate(1, 0, 0)
	w.Until = w.Until.AddDate(1, 0, 0)

	out, err := src.Log(context.Background(), w, "master")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRepoSourceCancelled(t *testing.T) {
	dir := seedRepository(t)
	src, err := NewRepoSource(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Log(ctx, testWindow(), "master")
	assert.True(t, IsRetrievalError(err))
}

func TestRepoSourceConcurrentLog(t *testing.T) {
	r := testutil.NewRepo(t)
	first := time.Date(2021, 11, 5, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		r.Commit(testutil.FixtureCommit{
			Author:  "John Smith",
			Message: fmt.Sprintf("change %d", i),
			When:    first.Add(time.Duration(i) * time.Hour),
		})
	}
	// packed objects go through the shared pack index
	if _, err := exec.LookPath("git"); err == nil {
		gc := exec.Command("git", "gc", "--quiet")
		gc.Dir = r.Dir
		require.NoError(t, gc.Run())
	}

	src, err := NewRepoSource(r.Dir)
	require.NoError(t, err)

	w := testWindow()
	w.Until = first.Add(48 * time.Hour)

	var wg sync.WaitGroup
	outputs := make([]string, 8)
	errs := make([]error, 8)
	for i := range outputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outputs[i], errs[i] = src.Log(context.Background(), w, "master")
		}(i)
	}
	wg.Wait()

	for i := range outputs {
		require.NoError(t, errs[i])
		assert.Len(t, history.ParseLog(outputs[i]), 40)
		assert.Equal(t, outputs[0], outputs[i])
	}
}

func TestFormatCommit(t *testing.T) {
	r := testutil.NewRepo(t)
	hash := r.Commit(testutil.FixtureCommit{Author: "Jane Smith", Email: "jane@example.com",
		Message: "First line\nsecond line", When: time.Date(2022, 8, 11, 22, 28, 39, 0, time.FixedZone("", 3600))})

	ref, err := r.Repo.Head()
	require.NoError(t, err)
	c, err := r.Repo.CommitObject(ref.Hash())
	require.NoError(t, err)

	expected := "commit " + hash + "\n" +
		"Author: Jane Smith <jane@example.com>\n" +
		"Date:   2022-08-11 22:28:39 +0100\n" +
		"\n" +
		"    First line\n" +
		"    second line\n"
	assert.Equal(t, expected, FormatCommit(c))
}
