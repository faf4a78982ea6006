// Package dataset persists extracted paragraphs as JSON lines and keeps the
// file free of duplicate inputs.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultInstruction is the instruction text stamped on every new record
const DefaultInstruction = "Rewrite the following product review paragraph in the ReviewCave.co.uk house style."

// maxLineBytes bounds a single dataset line. Longer lines are skipped.
var maxLineBytes = 16 * 1024 * 1024

// Existing is the result of reading a dataset file
type Existing struct {
	Inputs  map[string]struct{}
	Lines   int
	Skipped int
}

// Has reports whether input is already present after trimming
func (e *Existing) Has(input string) bool {
	_, ok := e.Inputs[strings.TrimSpace(input)]
	return ok
}

// Result summarizes a Merge call
type Result struct {
	Added      int
	Duplicates int
	Skipped    int
}

// Store appends deduplicated records to a dataset file
type Store struct {
	path        string
	instruction string
}

// NewStore creates a Store for path.
// An empty instruction falls back to DefaultInstruction.
func NewStore(path, instruction string) *Store {
	if instruction == "" {
		instruction = DefaultInstruction
	}
	return &Store{path: path, instruction: instruction}
}

// Path returns the dataset file path
func (s *Store) Path() string {
	return s.path
}

// Merge appends the candidates whose trimmed input is not in the file yet
func (s *Store) Merge(candidates []models.Candidate) (Result, error) {
	return Merge(s.path, s.instruction, candidates)
}

// Load reads the fingerprints already present in path.
// A missing file yields an empty set. Malformed lines are skipped.
func Load(path string) (*Existing, error) {
	existing := &Existing{Inputs: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)

	lineNo := 0
	for {
		raw, tooLong, err := readLine(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		atEOF := err != nil
		if atEOF && len(raw) == 0 && !tooLong {
			break
		}
		lineNo++

		if tooLong {
			existing.Lines++
			existing.Skipped++
			log.Warn().
				Str("file", path).
				Int("line", lineNo).
				Int("max_bytes", maxLineBytes).
				Msg("Skipping oversized dataset line")
		} else if line := bytes.TrimSpace(raw); len(line) > 0 {
			existing.Lines++
			var rec models.Record
			if err := json.Unmarshal(line, &rec); err != nil {
				existing.Skipped++
				log.Warn().
					Str("file", path).
					Int("line", lineNo).
					Err(err).
					Msg("Skipping malformed dataset line")
			} else {
				existing.Inputs[strings.TrimSpace(rec.Input)] = struct{}{}
			}
		}

		if atEOF {
			break
		}
	}

	return existing, nil
}

// readLine returns the next line without its newline. A line longer than
// maxLineBytes is consumed to its end and reported as tooLong with no data.
// err is io.EOF when the file ended on this line.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == nil {
			buf = bytes.TrimSuffix(buf, []byte{'\n'})
		}
		if tooLong {
			return nil, true, err
		}
		return buf, false, err
	}
}

// Filter builds records for the candidates not already in existing, in
// candidate order. Repeats within candidates are dropped too.
func Filter(existing *Existing, instruction string, candidates []models.Candidate) ([]models.Record, int) {
	seen := make(map[string]struct{}, len(candidates))
	var fresh []models.Record
	duplicates := 0

	for _, c := range candidates {
		input := strings.TrimSpace(c.Input)
		if existing.Has(input) {
			duplicates++
			continue
		}
		if _, ok := seen[input]; ok {
			duplicates++
			continue
		}
		seen[input] = struct{}{}
		fresh = append(fresh, models.Record{
			Instruction: instruction,
			Context:     strings.TrimSpace(c.Context),
			Input:       input,
			Output:      "",
		})
	}

	return fresh, duplicates
}

// Append writes records to the end of path in one pass. The file is
// created if absent, even when there is nothing to write.
func Append(path string, records []models.Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open dataset for append: %w", err)
	}
	defer f.Close()

	if len(records) == 0 {
		return nil
	}

	bw := bufio.NewWriter(f)

	needsNewline, err := missingTrailingNewline(f)
	if err != nil {
		return err
	}
	if needsNewline {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		// Encode terminates each value with '\n'
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return f.Sync()
}

// Merge loads path, filters candidates against it and appends the new records
func Merge(path, instruction string, candidates []models.Candidate) (Result, error) {
	var res Result

	existing, err := Load(path)
	if err != nil {
		return res, err
	}
	res.Skipped = existing.Skipped

	fresh, duplicates := Filter(existing, instruction, candidates)
	res.Duplicates = duplicates

	if err := Append(path, fresh); err != nil {
		return res, err
	}
	res.Added = len(fresh)

	log.Debug().
		Str("file", path).
		Int("existing", len(existing.Inputs)).
		Int("added", res.Added).
		Int("duplicates", res.Duplicates).
		Int("skipped_lines", res.Skipped).
		Msg("Dataset merged")

	return res, nil
}

func missingTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat dataset: %w", err)
	}
	if info.Size() == 0 {
		return false, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read dataset tail: %w", err)
	}
	return last[0] != '\n', nil
}
