package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samin124/portfolio/internal/portfolio"
)

func newStore(t *testing.T, content string) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "portfolio.json")
	if content != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return NewFileStore(path)
}

func TestFileStore_LoadMissingReturnsSample(t *testing.T) {
	s := newStore(t, "")
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, portfolio.Sample(), doc)

	exists, err := s.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_LoadMalformed(t *testing.T) {
	s := newStore(t, `{"about": `)
	_, err := s.Load(context.Background())
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "load", storeErr.Op)
}

func TestFileStore_Section(t *testing.T) {
	s := newStore(t, `{"about":{"name":"A"},"projects":[]}`)
	ctx := context.Background()

	raw, err := s.Section(ctx, portfolio.SectionAbout)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A"}`, string(raw))

	raw, err = s.Section(ctx, portfolio.SectionProjects)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	_, err = s.Section(ctx, portfolio.SectionCourses)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestFileStore_ReplaceSection(t *testing.T) {
	s := newStore(t, `{"about":{"name":"A"},"projects":[]}`)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSection(ctx, portfolio.SectionProjects, json.RawMessage(`[{"id":1,"title":"X"}]`)))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"about":{"name":"A"},"projects":[{"id":1,"title":"X"}]}`, string(data))

	onDisk, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(onDisk), "\n  \"about\"")
}

func TestFileStore_FirstWriteStartsFromSample(t *testing.T) {
	s := newStore(t, "")
	ctx := context.Background()
	require.NoError(t, s.ReplaceSection(ctx, portfolio.SectionProjects, json.RawMessage(`[]`)))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	sample := portfolio.Sample()
	for _, sec := range portfolio.Sections() {
		if sec == portfolio.SectionProjects {
			assert.JSONEq(t, `[]`, string(doc[sec]))
			continue
		}
		assert.JSONEq(t, string(sample[sec]), string(doc[sec]), sec)
	}
}

func TestFileStore_IdempotentResave(t *testing.T) {
	s := newStore(t, `{"about":{"name":"A"}}`)
	ctx := context.Background()
	content := json.RawMessage(`[{"id":1,"title":"X"}]`)

	require.NoError(t, s.ReplaceSection(ctx, portfolio.SectionProjects, content))
	once, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceSection(ctx, portfolio.SectionProjects, content))
	twice, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestFileStore_Replace(t *testing.T) {
	s := newStore(t, `{"about":{"name":"A"}}`)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, portfolio.Skeleton()))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc, len(portfolio.Sections()))
	assert.JSONEq(t, `[]`, string(doc[portfolio.SectionProjects]))
}

func TestFileStore_FailedWriteKeepsPreviousContent(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	s := newStore(t, `{"about":{"name":"A"}}`)
	dir := filepath.Dir(s.Path())
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := s.ReplaceSection(context.Background(), portfolio.SectionProjects, json.RawMessage(`[]`))
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "save", storeErr.Op)

	onDisk, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"about":{"name":"A"}}`, string(onDisk))
}

func TestFileStore_CancelledContext(t *testing.T) {
	s := newStore(t, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.ReplaceSection(ctx, portfolio.SectionAbout, json.RawMessage(`{}`)), context.Canceled)
}

// Writers to different sections must all land even when they run at once.
func TestFileStore_ConcurrentSectionWrites(t *testing.T) {
	s := newStore(t, `{}`)
	ctx := context.Background()
	secs := []portfolio.Section{
		portfolio.SectionProjects,
		portfolio.SectionSkills,
		portfolio.SectionExperience,
		portfolio.SectionEducation,
		portfolio.SectionCourses,
		portfolio.SectionResearch,
		portfolio.SectionCompetitions,
	}
	var wg sync.WaitGroup
	for i, sec := range secs {
		wg.Add(1)
		go func(i int, sec portfolio.Section) {
			defer wg.Done()
			raw := json.RawMessage(fmt.Sprintf(`[{"id":%d}]`, i))
			assert.NoError(t, s.ReplaceSection(ctx, sec, raw))
		}(i, sec)
	}
	wg.Wait()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	for i, sec := range secs {
		assert.JSONEq(t, fmt.Sprintf(`[{"id":%d}]`, i), string(doc[sec]), sec)
	}
}
