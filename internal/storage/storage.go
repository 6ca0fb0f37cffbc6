package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

// Storage wraps the JSON datastore with typed, guild-keyed accessors.
// Every record lives under its guild ID; mutations are written through
// to disk immediately.
type Storage struct {
	ds    *datastore.DataStore
	locks lockTable
}

type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// Record is everything the bot persists for one guild.
type Record struct {
	RoleMessages     map[string]RoleMessage `json:"role_messages"`
	TimezoneChannels map[string]string      `json:"timezone_channels"`
	CommandsDisabled []string               `json:"commands_disabled"`
	CommandsHistory  []CommandHistoryRecord `json:"commands_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		// An unreadable store must not block startup. Move the broken
		// file aside so nothing is silently overwritten, start empty.
		backup := fmt.Sprintf("%s.corrupt.%s", filePath, time.Now().Format("20060102_150405"))
		if renameErr := os.Rename(filePath, backup); renameErr != nil {
			return nil, err
		}
		log.Printf("[WARN] Storage file unreadable (%v), moved aside to %s", err, backup)
		ds, err = datastore.New(filePath)
		if err != nil {
			return nil, err
		}
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreateGuildRecord decodes the guild's record, creating an empty
// one when the guild is unknown.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		return &Record{}, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	return &record, nil
}

// saveGuildRecord writes the record back and flushes the store to disk.
func (s *Storage) saveGuildRecord(guildID string, record *Record) error {
	s.ds.Add(guildID, record)
	return s.ds.SaveToFile()
}

// lockTable hands out one mutex per key so handlers mutating the same
// entry serialize without blocking unrelated guilds or messages.
type lockTable struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (t *lockTable) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m == nil {
		t.m = make(map[string]*sync.Mutex)
	}
	l, ok := t.m[key]
	if !ok {
		l = &sync.Mutex{}
		t.m[key] = l
	}
	return l
}

func (s *Storage) AppendCommandHistory(guildID string, entry CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistory = append(record.CommandsHistory, entry)
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	return s.saveGuildRecord(guildID, record)
}

func (s *Storage) CommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
