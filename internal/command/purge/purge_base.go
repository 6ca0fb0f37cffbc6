package purge

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord refuses bulk deletion of messages older than 14 days; those
// fall back to one-by-one deletion with a delay between calls.
const (
	bulkDeleteMaxAge = 14 * 24 * time.Hour
	singleDeletePace = 300 * time.Millisecond
	fetchPageSize    = 100
)

// MessageFilter decides whether a fetched message gets deleted.
type MessageFilter func(*discordgo.Message) bool

// Any matches every message.
func Any(*discordgo.Message) bool { return true }

// ByAuthor matches messages written by the given user.
func ByAuthor(userID string) MessageFilter {
	return func(m *discordgo.Message) bool {
		return m.Author != nil && m.Author.ID == userID
	}
}

// ByBots matches messages written by any bot account.
func ByBots(m *discordgo.Message) bool {
	return m.Author != nil && m.Author.Bot
}

// chunkIDs splits ids into runs of at most size.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > 0 {
		n := size
		if len(ids) < n {
			n = len(ids)
		}
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}
	return chunks
}

// DeleteMatching walks the channel history newest-first, examining up to
// limit messages, and deletes the ones the filter matches. Returns how
// many were deleted. The limit counts messages examined, not deleted.
func DeleteMatching(s *discordgo.Session, channelID string, limit int, filter MessageFilter) (int, error) {
	var lastID string
	var young, old []string
	examined := 0

	for examined < limit {
		page := fetchPageSize
		if remaining := limit - examined; remaining < page {
			page = remaining
		}

		msgs, err := s.ChannelMessages(channelID, page, lastID, "", "")
		if err != nil {
			return 0, err
		}
		if len(msgs) == 0 {
			break
		}

		for _, msg := range msgs {
			examined++
			if !filter(msg) {
				continue
			}
			if time.Since(msg.Timestamp) < bulkDeleteMaxAge {
				young = append(young, msg.ID)
			} else {
				old = append(old, msg.ID)
			}
		}

		lastID = msgs[len(msgs)-1].ID
		if len(msgs) < page {
			break
		}
	}

	deleted := 0
	for _, chunk := range chunkIDs(young, fetchPageSize) {
		if len(chunk) == 1 {
			// Bulk delete needs at least two messages.
			if err := s.ChannelMessageDelete(channelID, chunk[0]); err == nil {
				deleted++
			}
			continue
		}
		if err := s.ChannelMessagesBulkDelete(channelID, chunk); err == nil {
			deleted += len(chunk)
		}
	}
	for _, id := range old {
		if err := s.ChannelMessageDelete(channelID, id); err == nil {
			deleted++
		}
		time.Sleep(singleDeletePace)
	}

	return deleted, nil
}

// DeleteAll wipes the channel history completely, page by page, until
// nothing is left.
func DeleteAll(s *discordgo.Session, channelID string) (int, error) {
	total := 0
	for {
		n, err := DeleteMatching(s, channelID, fetchPageSize, Any)
		if err != nil {
			return total, err
		}
		total += n
		if n == 0 {
			return total, nil
		}
	}
}
