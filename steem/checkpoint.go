package steem

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/anyswap/steem-client/leveldb"
	"github.com/anyswap/steem-client/log"
)

const checkpointKeyPrefix = "checkpoint:"

// Checkpoint stores the last block number a named stream has processed
type Checkpoint interface {
	Load(name string) (num uint32, exist bool, err error)
	Save(name string, num uint32) error
}

// MemoryCheckpoint in process checkpoint store
type MemoryCheckpoint struct {
	mu   sync.RWMutex
	nums map[string]uint32
}

// NewMemoryCheckpoint returns an empty memory checkpoint store
func NewMemoryCheckpoint() *MemoryCheckpoint {
	return &MemoryCheckpoint{nums: make(map[string]uint32)}
}

// Load implements Checkpoint
func (m *MemoryCheckpoint) Load(name string) (num uint32, exist bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	num, exist = m.nums[name]
	return num, exist, nil
}

// Save implements Checkpoint
func (m *MemoryCheckpoint) Save(name string, num uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nums[name] = num
	return nil
}

// LevelDBCheckpoint persistent checkpoint store
type LevelDBCheckpoint struct {
	db leveldb.KeyValueStore
}

// NewLevelDBCheckpoint returns a checkpoint store kept in db
func NewLevelDBCheckpoint(db leveldb.KeyValueStore) *LevelDBCheckpoint {
	return &LevelDBCheckpoint{db: db}
}

// OpenLevelDBCheckpoint opens the leveldb database in path
func OpenLevelDBCheckpoint(path string) (*LevelDBCheckpoint, error) {
	db, err := leveldb.New(path, 0, 0, false)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db %v: %w", path, err)
	}
	return NewLevelDBCheckpoint(db), nil
}

func checkpointKey(name string) []byte {
	return []byte(checkpointKeyPrefix + name)
}

func uint32ToBytes(num uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, num)
	return buf
}

// Load implements Checkpoint
func (l *LevelDBCheckpoint) Load(name string) (num uint32, exist bool, err error) {
	value, err := l.db.Get(checkpointKey(name))
	if leveldb.IsNotFoundErr(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(value) != 4 {
		return 0, false, fmt.Errorf("wrong checkpoint value length %v of %q", len(value), name)
	}
	return binary.BigEndian.Uint32(value), true, nil
}

// Save implements Checkpoint
func (l *LevelDBCheckpoint) Save(name string, num uint32) error {
	err := l.db.Put(checkpointKey(name), uint32ToBytes(num))
	if err != nil {
		log.Warn("save checkpoint failed", "name", name, "num", num, "err", err)
	}
	return err
}

// Delete removes the checkpoint of name
func (l *LevelDBCheckpoint) Delete(name string) error {
	return l.db.Delete(checkpointKey(name))
}

// Close closes the underlying store
func (l *LevelDBCheckpoint) Close() error {
	return l.db.Close()
}
