package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var stepsHeader = []string{"index", "phase", "kind", "message", "payload"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	InputKind string             `json:"input_kind"`
	Input     string             `json:"input"`
	Steps     int                `json:"steps"`
	TickMs    int64              `json:"tick_ms"`
	ElapsedNs int64              `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// StepRecord is one row of steps.csv. Payload is the JSON-encoded state.
type StepRecord struct {
	Index   int
	Phase   trace.Phase
	Kind    trace.Kind
	Message string
	Payload string
}

// Save writes res under a new run directory and returns its ID.
func (s *Store) Save(res *sim.Result, tick time.Duration) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", res.Algorithm, now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: res.Algorithm,
		Timestamp: now,
		Steps:     res.Trace.Len(),
		TickMs:    tick.Milliseconds(),
		ElapsedNs: res.Elapsed.Nanoseconds(),
		Metrics:   res.Metrics,
	}
	if res.Input != nil {
		meta.InputKind = string(res.Input.Kind())
		meta.Input = res.Input.String()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteStepsCSV(f, res.Trace); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("run %s: bad index %q", runID, rec[0])
		}
		steps = append(steps, StepRecord{
			Index:   idx,
			Phase:   trace.Phase(rec[1]),
			Kind:    trace.Kind(rec[2]),
			Message: rec[3],
			Payload: rec[4],
		})
	}
	return steps, nil
}

// LoadTrace rebuilds the saved trace and checks it is well formed.
func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	recs, err := s.LoadSteps(runID)
	if err != nil {
		return nil, err
	}

	steps := make([]trace.Step, len(recs))
	for i, rec := range recs {
		st, err := trace.DecodeState(rec.Kind, []byte(rec.Payload))
		if err != nil {
			return nil, fmt.Errorf("run %s step %d: %w", runID, rec.Index, err)
		}
		steps[i] = trace.Step{Index: rec.Index, Phase: rec.Phase, State: st, Message: rec.Message}
	}

	tr := trace.New(meta.Algorithm, steps)
	if err := trace.Validate(tr); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return tr, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if runID == "" || filepath.Base(runID) != runID {
		return errors.New("invalid run id")
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
