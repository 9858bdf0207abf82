// Package testutil provides record builders and deterministic generators
// shared by package tests.
package testutil

import "github.com/roach88/updseq/internal/update"

// Delete builds a primary DeleteMessages record.
func Delete(pts, count int32, ids ...int32) update.DeleteMessages {
	return update.DeleteMessages{
		PrimaryStamp: update.PrimaryStamp{Pts: pts, PtsCount: count},
		MessageIDs:   ids,
	}
}

// NewMessage builds a primary NewMessage record with message ID id.
func NewMessage(pts, count int32, id int32) update.NewMessage {
	return update.NewMessage{
		PrimaryStamp: update.PrimaryStamp{Pts: pts, PtsCount: count},
		Message:      update.Message{ID: id, PeerID: 12, FromID: 3, Date: 990, Text: "hi"},
	}
}

// ReadInbox builds a primary ReadHistoryInbox record.
func ReadInbox(pts, count int32, maxID int32) update.ReadHistoryInbox {
	return update.ReadHistoryInbox{
		PrimaryStamp: update.PrimaryStamp{Pts: pts, PtsCount: count},
		PeerID:       12,
		MaxID:        maxID,
	}
}

// Encrypted builds a secondary NewEncryptedMessage record.
func Encrypted(qts int32) update.NewEncryptedMessage {
	return update.NewEncryptedMessage{
		SecondaryStamp: update.SecondaryStamp{Qts: qts},
		Message:        update.EncryptedMessage{ChatID: 9, RandomID: int64(qts), Date: 995},
	}
}

// Typing builds an unstamped UserTyping record.
func Typing(userID int64) update.UserTyping {
	return update.UserTyping{UserID: userID, Action: "typing"}
}

// Status builds an unstamped UserStatus record.
func Status(userID int64, status string) update.UserStatus {
	return update.UserStatus{UserID: userID, Status: status}
}

// Refs builds references holding one user and one chat.
func Refs(userID, chatID int64) update.References {
	return update.References{
		Users: []update.User{{ID: userID, FirstName: "Ada"}},
		Chats: []update.Chat{{ID: chatID, Title: "General"}},
	}
}
