package update

import (
	"fmt"
	"strconv"
	"strings"
)

// User is a denormalized user record shipped alongside changes.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat is a denormalized chat record shipped alongside changes.
type Chat struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
}

// References holds the entities referenced by a batch of changes.
// Duplicates across batches are expected; consumers upsert last-write-wins.
type References struct {
	Users []User `json:"users,omitempty"`
	Chats []Chat `json:"chats,omitempty"`
}

// IsEmpty reports whether no users or chats are carried.
func (r References) IsEmpty() bool {
	return len(r.Users) == 0 && len(r.Chats) == 0
}

// Message is the payload of new and edited messages.
type Message struct {
	ID     int32  `json:"id"`
	PeerID int64  `json:"peer_id"`
	FromID int64  `json:"from_id,omitempty"`
	Date   int32  `json:"date"`
	Text   string `json:"text,omitempty"`
}

func (m Message) String() string {
	return fmt.Sprintf("message(id: %d, peer: %d, from: %d, date: %d, text: %q)", m.ID, m.PeerID, m.FromID, m.Date, m.Text)
}

// EncryptedMessage is the payload of secondary-channel arrivals.
type EncryptedMessage struct {
	ChatID   int32  `json:"chat_id"`
	RandomID int64  `json:"random_id"`
	Date     int32  `json:"date"`
	Bytes    []byte `json:"bytes,omitempty"`
}

func (m EncryptedMessage) String() string {
	return fmt.Sprintf("encryptedMessage(chat: %d, random: %d, date: %d, %d bytes)", m.ChatID, m.RandomID, m.Date, len(m.Bytes))
}

// WebPage is the payload of web page preview updates.
type WebPage struct {
	ID  int64  `json:"id"`
	URL string `json:"url,omitempty"`
}

func (w WebPage) String() string {
	return fmt.Sprintf("webPage(id: %d, url: %q)", w.ID, w.URL)
}

func joinIDs(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
