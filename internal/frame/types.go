package frame

import (
	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/update"
)

// Frame is one decoded protocol payload.
type Frame struct {
	Records []update.Record
	Refs    update.References
	Date    int32
	Seq     *group.SeqRange

	// Marker is a Reset or CounterAdvance fed in by the transport layer.
	// A frame with a marker carries nothing else.
	Marker group.Group
}

// Groups classifies the frame, or returns its marker group.
func (f Frame) Groups() []group.Group {
	if f.Marker != nil {
		return []group.Group{f.Marker}
	}
	return group.Classify(f.Records, f.Refs, f.Date, f.Seq)
}

// File is the top-level frames document.
type File struct {
	Frames []Doc `yaml:"frames" json:"frames"`
}

// Doc is the serialized form of a Frame.
type Doc struct {
	Date           int32       `yaml:"date,omitempty" json:"date,omitempty"`
	Seq            []int32     `yaml:"seq,omitempty" json:"seq,omitempty"`
	Records        []RecordDoc `yaml:"records,omitempty" json:"records,omitempty"`
	Users          []UserDoc   `yaml:"users,omitempty" json:"users,omitempty"`
	Chats          []ChatDoc   `yaml:"chats,omitempty" json:"chats,omitempty"`
	Reset          bool        `yaml:"reset,omitempty" json:"reset,omitempty"`
	CounterAdvance *AdvanceDoc `yaml:"counter_advance,omitempty" json:"counter_advance,omitempty"`
}

// AdvanceDoc is a counter_advance marker.
type AdvanceDoc struct {
	Pts      int32 `yaml:"pts" json:"pts"`
	PtsCount int32 `yaml:"pts_count" json:"pts_count"`
}

// RecordDoc is a change record tagged by Kind. Only the fields of that kind
// are meaningful.
type RecordDoc struct {
	Kind string `yaml:"kind" json:"kind"`

	Pts      int32 `yaml:"pts,omitempty" json:"pts,omitempty"`
	PtsCount int32 `yaml:"pts_count,omitempty" json:"pts_count,omitempty"`
	Qts      int32 `yaml:"qts,omitempty" json:"qts,omitempty"`

	MessageIDs []int32       `yaml:"message_ids,omitempty" json:"message_ids,omitempty"`
	Message    *MessageDoc   `yaml:"message,omitempty" json:"message,omitempty"`
	Encrypted  *EncryptedDoc `yaml:"encrypted,omitempty" json:"encrypted,omitempty"`
	WebPage    *WebPageDoc   `yaml:"web_page,omitempty" json:"web_page,omitempty"`

	PeerID    int64  `yaml:"peer_id,omitempty" json:"peer_id,omitempty"`
	MaxID     int32  `yaml:"max_id,omitempty" json:"max_id,omitempty"`
	ChatID    int64  `yaml:"chat_id,omitempty" json:"chat_id,omitempty"`
	UserID    int64  `yaml:"user_id,omitempty" json:"user_id,omitempty"`
	Action    string `yaml:"action,omitempty" json:"action,omitempty"`
	Status    string `yaml:"status,omitempty" json:"status,omitempty"`
	FirstName string `yaml:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty" json:"last_name,omitempty"`
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
}

// MessageDoc is the payload of new_message and edit_message.
type MessageDoc struct {
	ID     int32  `yaml:"id" json:"id"`
	PeerID int64  `yaml:"peer_id" json:"peer_id"`
	FromID int64  `yaml:"from_id,omitempty" json:"from_id,omitempty"`
	Date   int32  `yaml:"date,omitempty" json:"date,omitempty"`
	Text   string `yaml:"text,omitempty" json:"text,omitempty"`
}

// EncryptedDoc is the payload of new_encrypted_message. Bytes is base64.
type EncryptedDoc struct {
	ChatID   int32  `yaml:"chat_id" json:"chat_id"`
	RandomID int64  `yaml:"random_id" json:"random_id"`
	Date     int32  `yaml:"date,omitempty" json:"date,omitempty"`
	Bytes    string `yaml:"bytes,omitempty" json:"bytes,omitempty"`
}

// WebPageDoc is the payload of web_page.
type WebPageDoc struct {
	ID  int64  `yaml:"id" json:"id"`
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
}

// UserDoc is a reference user.
type UserDoc struct {
	ID        int64  `yaml:"id" json:"id"`
	FirstName string `yaml:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty" json:"last_name,omitempty"`
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
}

// ChatDoc is a reference chat.
type ChatDoc struct {
	ID    int64  `yaml:"id" json:"id"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}
