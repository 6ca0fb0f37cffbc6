package storage

import "fmt"

// SetTimezoneChannel binds a voice channel to a timezone code for the guild.
func (s *Storage) SetTimezoneChannel(guildID, code, channelID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	if record.TimezoneChannels == nil {
		record.TimezoneChannels = make(map[string]string)
	}
	record.TimezoneChannels[code] = channelID
	return s.saveGuildRecord(guildID, record)
}

// RemoveTimezoneChannel drops a binding, returning the channel that was bound.
func (s *Storage) RemoveTimezoneChannel(guildID, code string) (string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}

	channelID, exists := record.TimezoneChannels[code]
	if !exists {
		return "", fmt.Errorf("timezone %s: %w", code, ErrNotFound)
	}

	delete(record.TimezoneChannels, code)
	return channelID, s.saveGuildRecord(guildID, record)
}

// TimezoneChannels returns the guild's timezone-code to channel-ID bindings.
func (s *Storage) TimezoneChannels(guildID string) (map[string]string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.TimezoneChannels, nil
}
