package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	historyFile  = "history.csv"
)

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Ticks      int                `json:"ticks"`
	Globs      int                `json:"globs"`
	FinalCount int                `json:"final_count"`
	Metrics    map[string]float64 `json:"metrics"`
}

var historyHeader = []string{"tick", "population", "groups", "mean_radius", "total_radius", "splits", "merges", "culled"}

// Save writes a run directory holding metadata, the config it ran with and
// the per-tick history. It returns the run id.
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Ticks:      result.TicksTaken,
		Globs:      cfg.Globs,
		FinalCount: len(result.Final.Globs),
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteHistoryCSV(csvFile, result.History); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteHistoryCSV writes samples with a header row.
func WriteHistoryCSV(out io.Writer, history []sim.Sample) error {
	w := csv.NewWriter(out)

	if err := w.Write(historyHeader); err != nil {
		return err
	}
	for _, h := range history {
		row := []string{
			strconv.Itoa(h.Tick),
			strconv.Itoa(h.Population),
			strconv.Itoa(h.Groups),
			strconv.FormatFloat(h.MeanRadius, 'f', 6, 64),
			strconv.FormatFloat(h.TotalRadius, 'f', 6, 64),
			strconv.Itoa(h.Splits),
			strconv.Itoa(h.Merges),
			strconv.Itoa(h.Culled),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig returns the config a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadHistory(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, historyFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	history := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(historyHeader) {
			continue
		}
		ints := make([]int, 0, 6)
		floats := make([]float64, 0, 2)
		bad := false
		for j, field := range record[:len(historyHeader)] {
			if j == 3 || j == 4 {
				v, err := strconv.ParseFloat(field, 64)
				bad = bad || err != nil
				floats = append(floats, v)
				continue
			}
			v, err := strconv.Atoi(field)
			bad = bad || err != nil
			ints = append(ints, v)
		}
		if bad {
			continue
		}
		history = append(history, sim.Sample{
			Tick:        ints[0],
			Population:  ints[1],
			Groups:      ints[2],
			MeanRadius:  floats[0],
			TotalRadius: floats[1],
			Splits:      ints[3],
			Merges:      ints[4],
			Culled:      ints[5],
		})
	}

	return history, nil
}

type ExportData struct {
	Run     RunMetadata  `json:"run"`
	History []sim.Sample `json:"history"`
}

// ExportJSON writes a run and its full history as indented JSON.
func ExportJSON(out io.Writer, meta *RunMetadata, history []sim.Sample) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, History: history})
}
