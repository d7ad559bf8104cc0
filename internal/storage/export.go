package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/algoviz/internal/sim"
	"github.com/san-kum/algoviz/internal/trace"
)

type ExportData struct {
	Algorithm string             `json:"algorithm"`
	InputKind string             `json:"input_kind"`
	Input     string             `json:"input"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	Trace     []trace.Step       `json:"trace"`
}

func newExportData(res *sim.Result) ExportData {
	data := ExportData{
		Algorithm: res.Algorithm,
		Steps:     res.Trace.Len(),
		Metrics:   res.Metrics,
		Trace:     res.Trace.Steps(),
	}
	if res.Input != nil {
		data.InputKind = string(res.Input.Kind())
		data.Input = res.Input.String()
	}
	return data
}

func ExportJSON(path string, res *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res)
}

func ExportJSONStdout(res *sim.Result) error {
	return WriteJSON(os.Stdout, res)
}

func WriteJSON(w io.Writer, res *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(res))
}

// WriteRunJSON exports a saved run in the same layout as WriteJSON.
func WriteRunJSON(w io.Writer, meta *RunMetadata, tr *trace.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{
		Algorithm: meta.Algorithm,
		InputKind: meta.InputKind,
		Input:     meta.Input,
		Steps:     tr.Len(),
		Metrics:   meta.Metrics,
		Trace:     tr.Steps(),
	})
}

// ReadJSON decodes an export written by WriteJSON.
func ReadJSON(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// WriteStepsCSV writes one row per step in the steps.csv layout.
func WriteStepsCSV(w io.Writer, t *trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepsHeader); err != nil {
		return err
	}
	for _, s := range t.Steps() {
		payload, err := json.Marshal(s.State)
		if err != nil {
			return err
		}
		row := []string{
			strconv.Itoa(s.Index),
			string(s.Phase),
			string(s.State.Kind()),
			s.Message,
			string(payload),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
