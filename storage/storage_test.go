package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores_GetSet(t *testing.T) {
	disk, err := NewDiskStore(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)

	stores := map[string]KeyValueStore{
		"disk":     disk,
		"memory":   NewMemoryStore(),
		"prefixed": WithPrefix(NewMemoryStore(), "profile/abc/"),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("ecotravel_favorites")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("ecotravel_favorites", `{"routes":[],"attractions":[]}`))
			v, ok, err := s.Get("ecotravel_favorites")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"routes":[],"attractions":[]}`, v)

			require.NoError(t, s.Set("ecotravel_favorites", "second"))
			v, _, _ = s.Get("ecotravel_favorites")
			assert.Equal(t, "second", v)
		})
	}
}

func TestWithPrefix_IsolatesProfiles(t *testing.T) {
	base := NewMemoryStore()
	a := WithPrefix(base, "profile/a/")
	b := WithPrefix(base, "profile/b/")

	require.NoError(t, a.Set("k", "from a"))
	_, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, _ := base.Get("profile/a/k")
	assert.True(t, ok)
	assert.Equal(t, "from a", v)
	assert.Equal(t, []string{"profile/a/k"}, base.Keys())
}

func TestDiskStore_KeyEscaping(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("profile/../../escape:key", "v"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDir())

	v, ok, err := s.Get("profile/../../escape:key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestDiskStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "persisted"))

	reopened, err := NewDiskStore(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestDiskStore_ConcurrentSetKeepsOneValue(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir)
	require.NoError(t, err)

	long := `{"routes":[` + strings.Repeat(`{"id":"r","title":"t","description":"d","image":""},`, 200) + `],"attractions":[]}`
	short := `{"routes":[],"attractions":[]}`
	for round := 0; round < 50; round++ {
		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			value := short
			if i%2 == 0 {
				value = long
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Set("k", value)
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		v, ok, err := s.Get("k")
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, v == long || v == short, "round %d left a torn value", round)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")
}

func TestNewDiskStore_EmptyPath(t *testing.T) {
	_, err := NewDiskStore("")
	assert.Error(t, err)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New("floppy")
	assert.ErrorIs(t, err, ErrUnknownStorageType)
}

func TestNew_Memory(t *testing.T) {
	s, err := New(StorageTypeMemory)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}

func TestS3Store_RemotePath(t *testing.T) {
	s := &S3Store{prefix: "favorites/"}
	assert.Equal(t, "favorites/profile/x/ecotravel_favorites.json", s.getRemotePath("profile/x/ecotravel_favorites"))
	assert.Equal(t, "favorites/k.json", s.getRemotePath("/k"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(S3Options{Region: "us-east-1"})
	assert.Error(t, err)
}
