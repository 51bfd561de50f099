//go:generate go run go.uber.org/mock/mockgen -source=run.go -destination=../mocks/mock_run_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"review-sentiment/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const runPrefix = "run:"

type IRunRepository interface {
	Store(report domain.RunReport) error
	List() ([]domain.RunReport, error)
}

type RunRepository struct {
	db        *badger.DB
	log       *slog.Logger
	limitRuns *int
}

func NewRunRepository(db *badger.DB, log *slog.Logger, limitRuns *int) RunRepository {
	return RunRepository{db: db, log: log, limitRuns: limitRuns}
}

// Store persists a run report.
// The key is "run:{timestamp_padded}:{uuid}" so that a prefix scan returns runs chronologically.
func (r RunRepository) Store(report domain.RunReport) error {
	key := fmt.Sprintf("%s%019d:%s", runPrefix, report.At.UnixNano(), report.ID)
	value, err := structpb.NewStruct(fromRunReport(report))
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List returns the stored runs, newest first, up to limitRuns when set.
func (r RunRepository) List() ([]domain.RunReport, error) {
	var reports []domain.RunReport
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(runPrefix)
		// Reverse iteration starts past the last key of the prefix.
		seek := append([]byte(runPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if r.limitRuns != nil && len(reports) >= *r.limitRuns {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var value structpb.Struct
				if err := proto.Unmarshal(val, &value); err != nil {
					return err
				}
				report, err := toRunReport(value.AsMap())
				if err != nil {
					return err
				}
				reports = append(reports, report)
				return nil
			})
			if err != nil {
				r.log.Error("Skipping unreadable run", "key", string(it.Item().Key()), "err", err)
			}
		}
		return nil
	})
	return reports, err
}

func fromRunReport(report domain.RunReport) map[string]any {
	return map[string]any{
		"id":                report.ID.String(),
		"at":                report.At.UTC().Format(time.RFC3339Nano),
		"duration":          report.Duration.String(),
		"reviews":           report.Reviews,
		"vocabulary_size":   report.VocabularySize,
		"max_len":           report.MaxLen,
		"batch_size":        report.BatchSize,
		"batches":           report.Batches,
		"epochs":            report.Epochs,
		"final_loss":        report.FinalLoss,
		"error_rate":        report.ErrorRate,
		"accuracy":          report.Accuracy,
		"sample_index":      report.SampleIndex,
		"sample_prediction": report.SamplePrediction,
		"rss_bytes":         float64(report.RSSBytes),
		"cpu_percent":       report.CPUPercent,
		"process_status":    report.ProcessStatus,
	}
}

func toRunReport(fields map[string]any) (domain.RunReport, error) {
	id, err := uuid.Parse(stringField(fields, "id"))
	if err != nil {
		return domain.RunReport{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, stringField(fields, "at"))
	if err != nil {
		return domain.RunReport{}, err
	}
	duration, err := time.ParseDuration(stringField(fields, "duration"))
	if err != nil {
		return domain.RunReport{}, err
	}

	return domain.RunReport{
		ID:               id,
		At:               at,
		Duration:         duration,
		Reviews:          int(numberField(fields, "reviews")),
		VocabularySize:   int(numberField(fields, "vocabulary_size")),
		MaxLen:           int(numberField(fields, "max_len")),
		BatchSize:        int(numberField(fields, "batch_size")),
		Batches:          int(numberField(fields, "batches")),
		Epochs:           int(numberField(fields, "epochs")),
		FinalLoss:        numberField(fields, "final_loss"),
		ErrorRate:        numberField(fields, "error_rate"),
		Accuracy:         numberField(fields, "accuracy"),
		SampleIndex:      int(numberField(fields, "sample_index")),
		SamplePrediction: numberField(fields, "sample_prediction"),
		RSSBytes:         uint64(numberField(fields, "rss_bytes")),
		CPUPercent:       numberField(fields, "cpu_percent"),
		ProcessStatus:    stringField(fields, "process_status"),
	}, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

func numberField(fields map[string]any, name string) float64 {
	f, _ := fields[name].(float64)
	return f
}
