package update

import "fmt"

// Record kinds.
const (
	KindDeleteMessages       = "delete_messages"
	KindNewMessage           = "new_message"
	KindReadHistoryInbox     = "read_history_inbox"
	KindReadHistoryOutbox    = "read_history_outbox"
	KindEditMessage          = "edit_message"
	KindReadMessagesContents = "read_messages_contents"
	KindWebPage              = "web_page"
	KindNewEncryptedMessage  = "new_encrypted_message"
	KindUserTyping           = "user_typing"
	KindChatUserTyping       = "chat_user_typing"
	KindUserStatus           = "user_status"
	KindUserName             = "user_name"
)

// PrimaryKinds lists the kinds that advance the primary counter.
var PrimaryKinds = []string{
	KindDeleteMessages,
	KindNewMessage,
	KindReadHistoryInbox,
	KindReadHistoryOutbox,
	KindEditMessage,
	KindReadMessagesContents,
	KindWebPage,
}

// SecondaryKinds lists the kinds that advance the secondary counter.
var SecondaryKinds = []string{KindNewEncryptedMessage}

// UnstampedKinds lists the kinds that carry no counter.
var UnstampedKinds = []string{
	KindUserTyping,
	KindChatUserTyping,
	KindUserStatus,
	KindUserName,
}

// DeleteMessages removes messages by ID.
type DeleteMessages struct {
	PrimaryStamp
	MessageIDs []int32 `json:"message_ids"`
}

func (DeleteMessages) Kind() string { return KindDeleteMessages }

func (u DeleteMessages) String() string {
	return fmt.Sprintf("deleteMessages(ids: %s, pts: %d, ptsCount: %d)", joinIDs(u.MessageIDs), u.Pts, u.PtsCount)
}

// NewMessage delivers a new message.
type NewMessage struct {
	PrimaryStamp
	Message Message `json:"message"`
}

func (NewMessage) Kind() string { return KindNewMessage }

func (u NewMessage) String() string {
	return fmt.Sprintf("newMessage(%s, pts: %d, ptsCount: %d)", u.Message, u.Pts, u.PtsCount)
}

// ReadHistoryInbox marks incoming messages up to MaxID as read.
type ReadHistoryInbox struct {
	PrimaryStamp
	PeerID int64 `json:"peer_id"`
	MaxID  int32 `json:"max_id"`
}

func (ReadHistoryInbox) Kind() string { return KindReadHistoryInbox }

func (u ReadHistoryInbox) String() string {
	return fmt.Sprintf("readHistoryInbox(peer: %d, maxId: %d, pts: %d, ptsCount: %d)", u.PeerID, u.MaxID, u.Pts, u.PtsCount)
}

// ReadHistoryOutbox marks outgoing messages up to MaxID as read by the peer.
type ReadHistoryOutbox struct {
	PrimaryStamp
	PeerID int64 `json:"peer_id"`
	MaxID  int32 `json:"max_id"`
}

func (ReadHistoryOutbox) Kind() string { return KindReadHistoryOutbox }

func (u ReadHistoryOutbox) String() string {
	return fmt.Sprintf("readHistoryOutbox(peer: %d, maxId: %d, pts: %d, ptsCount: %d)", u.PeerID, u.MaxID, u.Pts, u.PtsCount)
}

// EditMessage replaces the content of an existing message.
type EditMessage struct {
	PrimaryStamp
	Message Message `json:"message"`
}

func (EditMessage) Kind() string { return KindEditMessage }

func (u EditMessage) String() string {
	return fmt.Sprintf("editMessage(%s, pts: %d, ptsCount: %d)", u.Message, u.Pts, u.PtsCount)
}

// ReadMessagesContents marks media contents of messages as consumed.
type ReadMessagesContents struct {
	PrimaryStamp
	MessageIDs []int32 `json:"message_ids"`
}

func (ReadMessagesContents) Kind() string { return KindReadMessagesContents }

func (u ReadMessagesContents) String() string {
	return fmt.Sprintf("readMessagesContents(ids: %s, pts: %d, ptsCount: %d)", joinIDs(u.MessageIDs), u.Pts, u.PtsCount)
}

// WebPageUpdate refreshes a web page preview.
type WebPageUpdate struct {
	PrimaryStamp
	WebPage WebPage `json:"web_page"`
}

func (WebPageUpdate) Kind() string { return KindWebPage }

func (u WebPageUpdate) String() string {
	return fmt.Sprintf("webPage(%s, pts: %d, ptsCount: %d)", u.WebPage, u.Pts, u.PtsCount)
}

// NewEncryptedMessage delivers a message on the secondary channel.
type NewEncryptedMessage struct {
	SecondaryStamp
	Message EncryptedMessage `json:"message"`
}

func (NewEncryptedMessage) Kind() string { return KindNewEncryptedMessage }

func (u NewEncryptedMessage) String() string {
	return fmt.Sprintf("newEncryptedMessage(%s, qts: %d)", u.Message, u.Qts)
}

// UserTyping reports typing activity in a private chat.
type UserTyping struct {
	Unstamped
	UserID int64  `json:"user_id"`
	Action string `json:"action"`
}

func (UserTyping) Kind() string { return KindUserTyping }

func (u UserTyping) String() string {
	return fmt.Sprintf("userTyping(user: %d, action: %s)", u.UserID, u.Action)
}

// ChatUserTyping reports typing activity in a group chat.
type ChatUserTyping struct {
	Unstamped
	ChatID int64  `json:"chat_id"`
	UserID int64  `json:"user_id"`
	Action string `json:"action"`
}

func (ChatUserTyping) Kind() string { return KindChatUserTyping }

func (u ChatUserTyping) String() string {
	return fmt.Sprintf("chatUserTyping(chat: %d, user: %d, action: %s)", u.ChatID, u.UserID, u.Action)
}

// UserStatus reports a presence change.
type UserStatus struct {
	Unstamped
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

func (UserStatus) Kind() string { return KindUserStatus }

func (u UserStatus) String() string {
	return fmt.Sprintf("userStatus(user: %d, status: %s)", u.UserID, u.Status)
}

// UserName reports a name change.
type UserName struct {
	Unstamped
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (UserName) Kind() string { return KindUserName }

func (u UserName) String() string {
	return fmt.Sprintf("userName(user: %d, first: %q, last: %q, username: %q)", u.UserID, u.FirstName, u.LastName, u.Username)
}

// Compile-time check that every variant satisfies Record.
var (
	_ Record = DeleteMessages{}
	_ Record = NewMessage{}
	_ Record = ReadHistoryInbox{}
	_ Record = ReadHistoryOutbox{}
	_ Record = EditMessage{}
	_ Record = ReadMessagesContents{}
	_ Record = WebPageUpdate{}
	_ Record = NewEncryptedMessage{}
	_ Record = UserTyping{}
	_ Record = ChatUserTyping{}
	_ Record = UserStatus{}
	_ Record = UserName{}
)
