package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allVariants returns one instance of every record variant.
func allVariants() []Record {
	msg := Message{ID: 7, PeerID: 12, FromID: 3, Date: 990, Text: "hi"}
	return []Record{
		DeleteMessages{PrimaryStamp: PrimaryStamp{Pts: 100, PtsCount: 2}, MessageIDs: []int32{1, 2}},
		NewMessage{PrimaryStamp: PrimaryStamp{Pts: 101, PtsCount: 1}, Message: msg},
		ReadHistoryInbox{PrimaryStamp: PrimaryStamp{Pts: 102, PtsCount: 1}, PeerID: 12, MaxID: 7},
		ReadHistoryOutbox{PrimaryStamp: PrimaryStamp{Pts: 103, PtsCount: 1}, PeerID: 12, MaxID: 7},
		EditMessage{PrimaryStamp: PrimaryStamp{Pts: 104, PtsCount: 1}, Message: msg},
		ReadMessagesContents{PrimaryStamp: PrimaryStamp{Pts: 105, PtsCount: 1}, MessageIDs: []int32{7}},
		WebPageUpdate{PrimaryStamp: PrimaryStamp{Pts: 106, PtsCount: 1}, WebPage: WebPage{ID: 5, URL: "https://example.org"}},
		NewEncryptedMessage{SecondaryStamp: SecondaryStamp{Qts: 5}, Message: EncryptedMessage{ChatID: 9, RandomID: 1}},
		UserTyping{UserID: 3, Action: "typing"},
		ChatUserTyping{ChatID: 12, UserID: 3, Action: "typing"},
		UserStatus{UserID: 3, Status: "online"},
		UserName{UserID: 3, FirstName: "Ada"},
	}
}

func TestRangesAreMutuallyExclusive(t *testing.T) {
	for _, rec := range allVariants() {
		t.Run(rec.Kind(), func(t *testing.T) {
			_, primary := rec.PrimaryRange()
			_, secondary := rec.SecondaryRange()
			assert.False(t, primary && secondary, "record reports both ranges")
		})
	}
}

func TestKindListsCoverVariants(t *testing.T) {
	for _, rec := range allVariants() {
		_, primary := rec.PrimaryRange()
		_, secondary := rec.SecondaryRange()
		switch {
		case primary:
			assert.Contains(t, PrimaryKinds, rec.Kind())
		case secondary:
			assert.Contains(t, SecondaryKinds, rec.Kind())
		default:
			assert.Contains(t, UnstampedKinds, rec.Kind())
		}
	}
	assert.Len(t, allVariants(), len(PrimaryKinds)+len(SecondaryKinds)+len(UnstampedKinds))
}

func TestPrimaryRange(t *testing.T) {
	rec := DeleteMessages{PrimaryStamp: PrimaryStamp{Pts: 100, PtsCount: 2}}

	r, ok := rec.PrimaryRange()
	require.True(t, ok)
	assert.Equal(t, CounterRange{Start: 100, Count: 2}, r)

	_, ok = rec.SecondaryRange()
	assert.False(t, ok)
}

func TestSecondaryRangeAlwaysCountsOne(t *testing.T) {
	rec := NewEncryptedMessage{SecondaryStamp: SecondaryStamp{Qts: 42}}

	r, ok := rec.SecondaryRange()
	require.True(t, ok)
	assert.Equal(t, CounterRange{Start: 42, Count: 1}, r)

	_, ok = rec.PrimaryRange()
	assert.False(t, ok)
}

func TestUnstampedHasNoRange(t *testing.T) {
	rec := UserTyping{UserID: 1, Action: "typing"}

	_, ok := rec.PrimaryRange()
	assert.False(t, ok)
	_, ok = rec.SecondaryRange()
	assert.False(t, ok)
}

func TestStringDescriptions(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{
			rec:  DeleteMessages{PrimaryStamp: PrimaryStamp{Pts: 100, PtsCount: 2}, MessageIDs: []int32{1, 2}},
			want: "deleteMessages(ids: [1, 2], pts: 100, ptsCount: 2)",
		},
		{
			rec:  NewEncryptedMessage{SecondaryStamp: SecondaryStamp{Qts: 5}, Message: EncryptedMessage{ChatID: 9, RandomID: 1, Bytes: []byte{1, 2, 3}}},
			want: "newEncryptedMessage(encryptedMessage(chat: 9, random: 1, date: 0, 3 bytes), qts: 5)",
		},
		{
			rec:  UserStatus{UserID: 3, Status: "online"},
			want: "userStatus(user: 3, status: online)",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rec.String())
	}
}

func TestCounterRangeString(t *testing.T) {
	assert.Equal(t, "200/3", CounterRange{Start: 200, Count: 3}.String())
}

func TestReferencesIsEmpty(t *testing.T) {
	assert.True(t, References{}.IsEmpty())
	assert.False(t, References{Users: []User{{ID: 1}}}.IsEmpty())
	assert.False(t, References{Chats: []Chat{{ID: 1}}}.IsEmpty())
}
