package storage

import "fmt"

// RoleBinding is one role-to-button association on a tracked message.
type RoleBinding struct {
	RoleID string `json:"role_id"`
	Emoji  string `json:"emoji"`
	Color  string `json:"color"` // "red", "green" or "blue"
}

// RoleMessage is the persisted record for one message carrying role
// buttons. Bindings is a slice so listing preserves insertion order
// across save/load cycles.
type RoleMessage struct {
	ChannelID   string        `json:"channel_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Bindings    []RoleBinding `json:"bindings"`
}

func roleMessageKey(guildID, messageID string) string {
	return guildID + "/" + messageID
}

// CreateRoleMessage tracks a freshly posted button message. The entry is
// created with its first binding; an already tracked message is rejected
// so callers reach for AddRoleBinding instead.
func (s *Storage) CreateRoleMessage(guildID, messageID, channelID, title, description string, first RoleBinding) error {
	lock := s.locks.get(roleMessageKey(guildID, messageID))
	lock.Lock()
	defer lock.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	if _, exists := record.RoleMessages[messageID]; exists {
		return fmt.Errorf("message %s: %w", messageID, ErrDuplicateEntry)
	}

	if record.RoleMessages == nil {
		record.RoleMessages = make(map[string]RoleMessage)
	}
	record.RoleMessages[messageID] = RoleMessage{
		ChannelID:   channelID,
		Title:       title,
		Description: description,
		Bindings:    []RoleBinding{first},
	}
	return s.saveGuildRecord(guildID, record)
}

// AddRoleBinding appends a binding to an existing entry.
func (s *Storage) AddRoleBinding(guildID, messageID string, binding RoleBinding) error {
	lock := s.locks.get(roleMessageKey(guildID, messageID))
	lock.Lock()
	defer lock.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	msg, exists := record.RoleMessages[messageID]
	if !exists {
		return fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}

	for _, b := range msg.Bindings {
		if b.RoleID == binding.RoleID {
			return fmt.Errorf("role %s on message %s: %w", binding.RoleID, messageID, ErrAlreadyBound)
		}
	}

	msg.Bindings = append(msg.Bindings, binding)
	record.RoleMessages[messageID] = msg
	return s.saveGuildRecord(guildID, record)
}

// RemoveRoleBinding drops a binding. When the last binding goes, the
// whole entry goes with it — the registry never persists an empty
// binding set — and last=true tells the caller to delete the Discord
// message as well.
func (s *Storage) RemoveRoleBinding(guildID, messageID, roleID string) (last bool, err error) {
	lock := s.locks.get(roleMessageKey(guildID, messageID))
	lock.Lock()
	defer lock.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return false, err
	}

	msg, exists := record.RoleMessages[messageID]
	if !exists {
		return false, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}

	idx := -1
	for i, b := range msg.Bindings {
		if b.RoleID == roleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, fmt.Errorf("role %s on message %s: %w", roleID, messageID, ErrNotFound)
	}

	msg.Bindings = append(msg.Bindings[:idx], msg.Bindings[idx+1:]...)

	if len(msg.Bindings) == 0 {
		delete(record.RoleMessages, messageID)
		return true, s.saveGuildRecord(guildID, record)
	}

	record.RoleMessages[messageID] = msg
	return false, s.saveGuildRecord(guildID, record)
}

// ListRoleBindings returns the bindings of a tracked message in insertion
// order, or an empty slice when the message is not tracked.
func (s *Storage) ListRoleBindings(guildID, messageID string) ([]RoleBinding, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	msg, exists := record.RoleMessages[messageID]
	if !exists {
		return nil, nil
	}
	out := make([]RoleBinding, len(msg.Bindings))
	copy(out, msg.Bindings)
	return out, nil
}

// GetRoleMessage fetches one tracked entry.
func (s *Storage) GetRoleMessage(guildID, messageID string) (RoleMessage, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return RoleMessage{}, err
	}
	msg, exists := record.RoleMessages[messageID]
	if !exists {
		return RoleMessage{}, fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	return msg, nil
}

// RoleMessages returns every tracked entry of a guild, keyed by message ID.
func (s *Storage) RoleMessages(guildID string) (map[string]RoleMessage, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.RoleMessages, nil
}
