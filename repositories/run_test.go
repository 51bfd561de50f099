package repositories

import (
	"log/slog"
	"review-sentiment/domain"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newReport(at time.Time, accuracy float64) domain.RunReport {
	return domain.RunReport{
		ID:               uuid.New(),
		At:               at,
		Duration:         1500 * time.Millisecond,
		Reviews:          120,
		VocabularySize:   999,
		MaxLen:           291,
		BatchSize:        50,
		Batches:          2,
		Epochs:           1,
		FinalLoss:        34.5,
		ErrorRate:        1 - accuracy,
		Accuracy:         accuracy,
		SampleIndex:      1,
		SamplePrediction: 0.73,
		RSSBytes:         42 << 20,
		CPUPercent:       12.5,
		ProcessStatus:    "R",
	}
}

func Test_Store_And_List_Runs(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewRunRepository(db, slog.Default(), nil)
	at := time.Now().UTC()
	reports := []domain.RunReport{
		newReport(at, 0.5),
		newReport(at.Add(1*time.Minute), 0.6),
		newReport(at.Add(2*time.Minute), 0.7),
	}

	// Given three stored runs
	for _, report := range reports {
		req.NoError(repository.Store(report))
	}

	// When listing them
	fetched, err := repository.List()

	// Then the newest run comes first and every field survives
	req.NoError(err)
	req.Len(fetched, 3)
	req.Equal(lo.Reverse(reports), fetched)
}

func Test_List_Runs_With_Limit(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewRunRepository(db, slog.Default(), lo.ToPtr(2))
	at := time.Now().UTC()
	for i := 0; i < 5; i++ {
		req.NoError(repository.Store(newReport(at.Add(time.Duration(i)*time.Second), 0.5)))
	}

	fetched, err := repository.List()
	req.NoError(err)
	req.Len(fetched, 2)
	req.True(fetched[0].At.After(fetched[1].At))
}

func Test_List_Runs_Empty(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	fetched, err := NewRunRepository(db, slog.Default(), nil).List()

	req.NoError(err)
	req.Empty(fetched)
}
