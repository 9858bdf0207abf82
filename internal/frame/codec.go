package frame

import (
	"encoding/base64"
	"fmt"

	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/update"
)

// DecodeAll decodes every document, stopping at the first error.
func DecodeAll(docs []Doc) ([]Frame, error) {
	frames := make([]Frame, 0, len(docs))
	for i, doc := range docs {
		f, err := Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("frames[%d]: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Decode converts a document into a Frame.
func Decode(doc Doc) (Frame, error) {
	if doc.Reset {
		return Frame{Marker: group.Reset{}}, nil
	}
	if doc.CounterAdvance != nil {
		return Frame{Marker: group.CounterAdvance{
			Counter: doc.CounterAdvance.Pts,
			Count:   doc.CounterAdvance.PtsCount,
		}}, nil
	}

	f := Frame{Date: doc.Date}

	switch len(doc.Seq) {
	case 0:
	case 2:
		f.Seq = &group.SeqRange{Start: doc.Seq[0], End: doc.Seq[1]}
	default:
		return Frame{}, fmt.Errorf("seq: want [start, end], got %d values", len(doc.Seq))
	}

	for i, rd := range doc.Records {
		rec, err := DecodeRecord(rd)
		if err != nil {
			return Frame{}, fmt.Errorf("records[%d]: %w", i, err)
		}
		f.Records = append(f.Records, rec)
	}

	for _, u := range doc.Users {
		f.Refs.Users = append(f.Refs.Users, update.User{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Username:  u.Username,
		})
	}
	for _, c := range doc.Chats {
		f.Refs.Chats = append(f.Refs.Chats, update.Chat{ID: c.ID, Title: c.Title})
	}

	return f, nil
}

// DecodeRecord converts a tagged record document into its variant.
func DecodeRecord(rd RecordDoc) (update.Record, error) {
	primary := update.PrimaryStamp{Pts: rd.Pts, PtsCount: rd.PtsCount}

	switch rd.Kind {
	case update.KindDeleteMessages:
		return update.DeleteMessages{PrimaryStamp: primary, MessageIDs: rd.MessageIDs}, nil
	case update.KindNewMessage:
		msg, err := decodeMessage(rd)
		if err != nil {
			return nil, err
		}
		return update.NewMessage{PrimaryStamp: primary, Message: msg}, nil
	case update.KindEditMessage:
		msg, err := decodeMessage(rd)
		if err != nil {
			return nil, err
		}
		return update.EditMessage{PrimaryStamp: primary, Message: msg}, nil
	case update.KindReadHistoryInbox:
		return update.ReadHistoryInbox{PrimaryStamp: primary, PeerID: rd.PeerID, MaxID: rd.MaxID}, nil
	case update.KindReadHistoryOutbox:
		return update.ReadHistoryOutbox{PrimaryStamp: primary, PeerID: rd.PeerID, MaxID: rd.MaxID}, nil
	case update.KindReadMessagesContents:
		return update.ReadMessagesContents{PrimaryStamp: primary, MessageIDs: rd.MessageIDs}, nil
	case update.KindWebPage:
		if rd.WebPage == nil {
			return nil, fmt.Errorf("%s: web_page is required", rd.Kind)
		}
		return update.WebPageUpdate{
			PrimaryStamp: primary,
			WebPage:      update.WebPage{ID: rd.WebPage.ID, URL: rd.WebPage.URL},
		}, nil
	case update.KindNewEncryptedMessage:
		if rd.Encrypted == nil {
			return nil, fmt.Errorf("%s: encrypted is required", rd.Kind)
		}
		payload, err := base64.StdEncoding.DecodeString(rd.Encrypted.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: bytes: %w", rd.Kind, err)
		}
		if len(payload) == 0 {
			payload = nil
		}
		return update.NewEncryptedMessage{
			SecondaryStamp: update.SecondaryStamp{Qts: rd.Qts},
			Message: update.EncryptedMessage{
				ChatID:   rd.Encrypted.ChatID,
				RandomID: rd.Encrypted.RandomID,
				Date:     rd.Encrypted.Date,
				Bytes:    payload,
			},
		}, nil
	case update.KindUserTyping:
		return update.UserTyping{UserID: rd.UserID, Action: rd.Action}, nil
	case update.KindChatUserTyping:
		return update.ChatUserTyping{ChatID: rd.ChatID, UserID: rd.UserID, Action: rd.Action}, nil
	case update.KindUserStatus:
		return update.UserStatus{UserID: rd.UserID, Status: rd.Status}, nil
	case update.KindUserName:
		return update.UserName{UserID: rd.UserID, FirstName: rd.FirstName, LastName: rd.LastName, Username: rd.Username}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", rd.Kind)
	}
}

func decodeMessage(rd RecordDoc) (update.Message, error) {
	if rd.Message == nil {
		return update.Message{}, fmt.Errorf("%s: message is required", rd.Kind)
	}
	m := rd.Message
	return update.Message{ID: m.ID, PeerID: m.PeerID, FromID: m.FromID, Date: m.Date, Text: m.Text}, nil
}

// Encode converts a Frame back into its document form.
func Encode(f Frame) (Doc, error) {
	if f.Marker != nil {
		var m markerEncoder
		f.Marker.Accept(&m)
		return m.doc, m.err
	}

	doc := Doc{Date: f.Date}
	if f.Seq != nil {
		doc.Seq = []int32{f.Seq.Start, f.Seq.End}
	}
	for i, rec := range f.Records {
		rd, err := EncodeRecord(rec)
		if err != nil {
			return Doc{}, fmt.Errorf("records[%d]: %w", i, err)
		}
		doc.Records = append(doc.Records, rd)
	}
	for _, u := range f.Refs.Users {
		doc.Users = append(doc.Users, UserDoc{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Username: u.Username})
	}
	for _, c := range f.Refs.Chats {
		doc.Chats = append(doc.Chats, ChatDoc{ID: c.ID, Title: c.Title})
	}
	return doc, nil
}

// EncodeRecord converts a record variant into its tagged document.
// Records of types outside package update cannot be encoded.
func EncodeRecord(rec update.Record) (RecordDoc, error) {
	rd := RecordDoc{Kind: rec.Kind()}

	switch r := rec.(type) {
	case update.DeleteMessages:
		rd.Pts, rd.PtsCount, rd.MessageIDs = r.Pts, r.PtsCount, r.MessageIDs
	case update.NewMessage:
		rd.Pts, rd.PtsCount, rd.Message = r.Pts, r.PtsCount, encodeMessage(r.Message)
	case update.EditMessage:
		rd.Pts, rd.PtsCount, rd.Message = r.Pts, r.PtsCount, encodeMessage(r.Message)
	case update.ReadHistoryInbox:
		rd.Pts, rd.PtsCount, rd.PeerID, rd.MaxID = r.Pts, r.PtsCount, r.PeerID, r.MaxID
	case update.ReadHistoryOutbox:
		rd.Pts, rd.PtsCount, rd.PeerID, rd.MaxID = r.Pts, r.PtsCount, r.PeerID, r.MaxID
	case update.ReadMessagesContents:
		rd.Pts, rd.PtsCount, rd.MessageIDs = r.Pts, r.PtsCount, r.MessageIDs
	case update.WebPageUpdate:
		rd.Pts, rd.PtsCount = r.Pts, r.PtsCount
		rd.WebPage = &WebPageDoc{ID: r.WebPage.ID, URL: r.WebPage.URL}
	case update.NewEncryptedMessage:
		rd.Qts = r.Qts
		rd.Encrypted = &EncryptedDoc{
			ChatID:   r.Message.ChatID,
			RandomID: r.Message.RandomID,
			Date:     r.Message.Date,
			Bytes:    base64.StdEncoding.EncodeToString(r.Message.Bytes),
		}
	case update.UserTyping:
		rd.UserID, rd.Action = r.UserID, r.Action
	case update.ChatUserTyping:
		rd.ChatID, rd.UserID, rd.Action = r.ChatID, r.UserID, r.Action
	case update.UserStatus:
		rd.UserID, rd.Status = r.UserID, r.Status
	case update.UserName:
		rd.UserID, rd.FirstName, rd.LastName, rd.Username = r.UserID, r.FirstName, r.LastName, r.Username
	default:
		return RecordDoc{}, fmt.Errorf("cannot encode record type %T", rec)
	}

	return rd, nil
}

func encodeMessage(m update.Message) *MessageDoc {
	return &MessageDoc{ID: m.ID, PeerID: m.PeerID, FromID: m.FromID, Date: m.Date, Text: m.Text}
}

// markerEncoder encodes transport marker groups. Classified batches never
// appear as frame markers.
type markerEncoder struct {
	doc Doc
	err error
}

func (m *markerEncoder) VisitPrimary(group.PrimaryBatch) {
	m.err = fmt.Errorf("primary batch is not a frame marker")
}

func (m *markerEncoder) VisitSecondary(group.SecondaryBatch) {
	m.err = fmt.Errorf("secondary batch is not a frame marker")
}

func (m *markerEncoder) VisitSession(group.SessionBatch) {
	m.err = fmt.Errorf("session batch is not a frame marker")
}

func (m *markerEncoder) VisitTimestamp(group.TimestampBatch) {
	m.err = fmt.Errorf("timestamp batch is not a frame marker")
}

func (m *markerEncoder) VisitReset(group.Reset) {
	m.doc = Doc{Reset: true}
}

func (m *markerEncoder) VisitCounterAdvance(g group.CounterAdvance) {
	m.doc = Doc{CounterAdvance: &AdvanceDoc{Pts: g.Counter, PtsCount: g.Count}}
}
