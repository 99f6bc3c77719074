package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfemdash/pkg/contracts/domain"
)

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Records: []domain.MineRecord{{PrimaryKey: "1-A"}, {PrimaryKey: "2-B"}},
		Columns: []string{"chaveprimaria", "cpf_cnpj"},
	}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()

	_, ok := s.Snapshot()
	assert.False(t, ok)

	_, ok = s.Summary()
	assert.False(t, ok)
}

func TestStoreSetAndSnapshot(t *testing.T) {
	s := NewStore()
	ds := testDataset()

	summary := s.Set(ds, "cfem.csv")

	assert.NotEmpty(t, summary.Version)
	assert.Equal(t, "cfem.csv", summary.SourceName)
	assert.Equal(t, 2, summary.RowCount)
	assert.Equal(t, 2, summary.ColumnCount)
	assert.False(t, summary.LoadedAt.IsZero())

	got, ok := s.Snapshot()
	require.True(t, ok)
	assert.Same(t, ds, got)
}

func TestStoreReplaceChangesVersion(t *testing.T) {
	s := NewStore()

	first := s.Set(testDataset(), "a.csv")
	second := s.Set(testDataset(), "b.csv")

	assert.NotEqual(t, first.Version, second.Version)

	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, "b.csv", summary.SourceName)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Set(testDataset(), "cfem.csv")

	s.Reset()

	_, ok := s.Snapshot()
	assert.False(t, ok)
	_, ok = s.Summary()
	assert.False(t, ok)
}

func TestStoreConcurrentReaders(t *testing.T) {
	s := NewStore()
	s.Set(testDataset(), "cfem.csv")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if ds, ok := s.Snapshot(); ok {
					_ = ds.Len()
				}
				s.Summary()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			s.Set(testDataset(), "swap.csv")
		}
	}()
	wg.Wait()
}
