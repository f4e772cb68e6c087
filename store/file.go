package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/plus3/blockfall/tetris"
	"github.com/rs/zerolog"
)

const recordHeader = "[Tetris scores]"

var recordLabels = [4]string{
	"Highest lines in one game :   ",
	"Total lines cleared :         ",
	"Games played :                ",
	"Highest score :               ",
}

// EncodeRecord writes l in the line-oriented record format.
func EncodeRecord(w io.Writer, l tetris.Lifetime) error {
	values := [4]uint{l.HighestLines, l.TotalLinesCleared, l.GamesPlayed, l.HighestScore}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, recordHeader)
	for i, label := range recordLabels {
		fmt.Fprintf(bw, "%sdata[ %d ]\n", label, values[i])
	}
	return bw.Flush()
}

// DecodeRecord parses a record written by EncodeRecord. Labels are not
// checked; each value is read from the "data[" marker on its line.
func DecodeRecord(r io.Reader) (tetris.Lifetime, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() && len(lines) < 5 {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return tetris.Lifetime{}, err
	}
	if len(lines) < 5 {
		return tetris.Lifetime{}, fmt.Errorf("%w: %d of 5 lines", ErrMalformedRecord, len(lines))
	}
	if strings.TrimSpace(lines[0]) != recordHeader {
		return tetris.Lifetime{}, fmt.Errorf("%w: bad header %q", ErrMalformedRecord, lines[0])
	}

	var values [4]uint
	for i := range values {
		v, err := parseValue(lines[i+1])
		if err != nil {
			return tetris.Lifetime{}, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, i+2, err)
		}
		values[i] = v
	}
	return tetris.Lifetime{
		HighestLines:      values[0],
		TotalLinesCleared: values[1],
		GamesPlayed:       values[2],
		HighestScore:      values[3],
	}, nil
}

func parseValue(line string) (uint, error) {
	_, rest, ok := strings.Cut(line, "data[")
	if !ok {
		return 0, errors.New("missing data marker")
	}
	rest, _, ok = strings.Cut(rest, "]")
	if !ok {
		return 0, errors.New("unterminated value")
	}
	n, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// FileStore keeps the lifetime record in a small text file.
type FileStore struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileLogger sets the logger used to report recovered records.
func WithFileLogger(l zerolog.Logger) FileOption {
	return func(s *FileStore) { s.log = l }
}

// NewFileStore creates a store backed by the file at path. The file and its
// directory are created on first use.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the record file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. A missing file is created with a zero record and an
// unparsable one is overwritten with a zero record, so Load only fails when
// the file cannot be read or rewritten.
func (s *FileStore) Load(ctx context.Context) (tetris.Lifetime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Save(ctx context.Context, l tetris.Lifetime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(l)
}

// UpdateLifetime reads, changes and rewrites the record under the store's
// lock. Other processes sharing the file are not excluded.
func (s *FileStore) UpdateLifetime(ctx context.Context, fn func(l *tetris.Lifetime)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.load()
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("lifetime stats unavailable, starting fresh")
		l = tetris.Lifetime{}
	}
	fn(&l)
	return s.write(l)
}

func (s *FileStore) load() (tetris.Lifetime, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tetris.Lifetime{}, s.write(tetris.Lifetime{})
	}
	if err != nil {
		return tetris.Lifetime{}, fmt.Errorf("open lifetime record: %w", err)
	}
	defer f.Close()

	l, err := DecodeRecord(f)
	if errors.Is(err, ErrMalformedRecord) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("resetting unreadable lifetime record")
		return tetris.Lifetime{}, s.write(tetris.Lifetime{})
	}
	if err != nil {
		return tetris.Lifetime{}, fmt.Errorf("read lifetime record: %w", err)
	}
	return l, nil
}

func (s *FileStore) Reset(ctx context.Context) error {
	return s.Save(ctx, tetris.Lifetime{})
}

func (s *FileStore) Close() error {
	return nil
}

// write replaces the record through a temporary file in the same directory.
func (s *FileStore) write(l tetris.Lifetime) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".blockfall-*")
	if err != nil {
		return fmt.Errorf("write lifetime record: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeRecord(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("write lifetime record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write lifetime record: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write lifetime record: %w", err)
	}
	return nil
}
