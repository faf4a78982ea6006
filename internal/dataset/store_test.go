package dataset

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) []models.Record {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []models.Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec models.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "line %q", sc.Text())
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestMerge_CreatesFileAndBuildsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")

	res, err := Merge(path, "inst", []models.Candidate{
		{Context: "  Design ", Input: "  first paragraph  "},
		{Context: "", Input: "second <b>paragraph</b> & more"},
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 2}, res)

	got := readRecords(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, models.Record{Instruction: "inst", Context: "Design", Input: "first paragraph", Output: ""}, got[0])
	assert.Equal(t, "second <b>paragraph</b> & more", got[1].Input)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"instruction":"inst","context":"Design","input":"first paragraph","output":""}`)
	assert.Contains(t, string(raw), `<b>paragraph</b> & more`)
	assert.NotContains(t, string(raw), `\u003c`)
}

func TestMerge_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	candidates := []models.Candidate{
		{Context: "A", Input: "alpha"},
		{Context: "B", Input: "beta"},
	}

	first, err := Merge(path, DefaultInstruction, candidates)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Added)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := Merge(path, DefaultInstruction, candidates)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 2, second.Duplicates)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMerge_TrimmedInputIsIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"instruction":"x","context":"","input":"  same text ","output":""}`+"\n"), 0644))

	res, err := Merge(path, "x", []models.Candidate{
		{Input: "same text"},
		{Input: "new text"},
		{Input: " new text"},
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 1, Duplicates: 2}, res)
	assert.Len(t, readRecords(t, path), 2)
}

func TestMerge_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := `{"instruction":"x","context":"","input":"kept","output":""}` + "\n" +
		`not json at all` + "\n" +
		"\n" +
		`{"instruction":"x","input":` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	existing, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, existing.Skipped)
	assert.Equal(t, 3, existing.Lines)
	assert.True(t, existing.Has("kept"))

	res, err := Merge(path, "x", []models.Candidate{{Input: "kept"}, {Input: "fresh"}})
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 1, Duplicates: 1, Skipped: 2}, res)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content+`{"instruction":"x","context":"","input":"fresh","output":""}`+"\n", string(raw))
}

func TestAppend_RepairsMissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"instruction":"x","context":"","input":"old","output":""}`), 0644))

	res, err := Merge(path, "x", []models.Candidate{{Input: "new"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)

	got := readRecords(t, path)
	require.Len(t, got, 2)
	assert.Equal(t, "old", got[0].Input)
	assert.Equal(t, "new", got[1].Input)
}

func TestMerge_NoCandidatesCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")

	res, err := Merge(path, "x", nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestMerge_SkipsOversizedLine(t *testing.T) {
	old := maxLineBytes
	maxLineBytes = 1024
	t.Cleanup(func() { maxLineBytes = old })

	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := `{"instruction":"x","context":"","input":"kept","output":""}` + "\n" +
		strings.Repeat("j", 200*1024) + "\n" +
		`{"instruction":"x","context":"","input":"after","output":""}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	existing, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, existing.Lines)
	assert.Equal(t, 1, existing.Skipped)
	assert.True(t, existing.Has("kept"))
	assert.True(t, existing.Has("after"))

	res, err := Merge(path, "x", []models.Candidate{{Input: "fresh"}, {Input: "after"}})
	require.NoError(t, err)
	assert.Equal(t, Result{Added: 1, Duplicates: 1, Skipped: 1}, res)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), `"input":"fresh","output":""}`+"\n"))
}

func TestLoad_OversizedLastLineWithoutNewline(t *testing.T) {
	old := maxLineBytes
	maxLineBytes = 64
	t.Cleanup(func() { maxLineBytes = old })

	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := `{"input":"kept"}` + "\n" + strings.Repeat("j", 5000)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	existing, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, existing.Lines)
	assert.Equal(t, 1, existing.Skipped)
	assert.True(t, existing.Has("kept"))
}

func TestStore_DefaultInstruction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	s := NewStore(path, "")
	assert.Equal(t, path, s.Path())

	_, err := s.Merge([]models.Candidate{{Context: "Verdict", Input: "text"}})
	require.NoError(t, err)

	got := readRecords(t, path)
	require.Len(t, got, 1)
	assert.Equal(t, DefaultInstruction, got[0].Instruction)
}
