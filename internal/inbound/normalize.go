// Package inbound normalizes raw webhook payloads from the supported chat
// platforms into a single canonical message shape.
package inbound

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Message is the canonical representation of an inbound chat event,
// independent of the source platform shape. UserID is always a string
// (numeric identifiers are coerced); Text may be empty but is never absent.
// An empty UserID means the event carries no usable sender and must not be
// replied to.
type Message struct {
	UserID    string `json:"userId"`
	Text      string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// now is the wall-clock source for the generic shape's timestamp fallback.
var now = func() int64 { return time.Now().UnixMilli() }

// scalar accepts a JSON string or number and exposes it as a string.
// Platform payloads disagree on identifier types: Telegram sends numeric ids,
// Messenger and the generic shape send strings.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = scalar(n.String())
	return nil
}

func (s scalar) String() string { return string(s) }

// epoch accepts a JSON integer or numeric string and exposes it as int64.
type epoch int64

func (e *epoch) UnmarshalJSON(data []byte) error {
	var v scalar
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
	if err != nil {
		*e = 0
		return nil
	}
	*e = epoch(parsed)
	return nil
}

// messengerShape is the Facebook Messenger webhook envelope:
// entry[0].messaging[0].{sender.id, message.text, timestamp}.
type messengerShape struct {
	Entry []struct {
		Messaging []struct {
			Sender struct {
				ID scalar `json:"id"`
			} `json:"sender"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Timestamp epoch `json:"timestamp"`
		} `json:"messaging"`
	} `json:"entry"`
}

func (s messengerShape) matches(raw map[string]json.RawMessage) bool {
	if _, ok := raw["entry"]; !ok {
		return false
	}
	return len(s.Entry) > 0 && s.Entry[0].Messaging != nil
}

func (s messengerShape) extract() Message {
	if len(s.Entry) == 0 || len(s.Entry[0].Messaging) == 0 {
		return Message{}
	}
	event := s.Entry[0].Messaging[0]
	return Message{
		UserID:    event.Sender.ID.String(),
		Text:      event.Message.Text,
		Timestamp: int64(event.Timestamp),
	}
}

// telegramShape is the Telegram update envelope:
// message.{from.id, text, date}.
type telegramShape struct {
	TgMessage struct {
		From struct {
			ID scalar `json:"id"`
		} `json:"from"`
		Text string `json:"text"`
		Date epoch  `json:"date"`
	} `json:"message"`
}

func (s telegramShape) matches(raw map[string]json.RawMessage) bool {
	_, ok := raw["message"]
	return ok
}

func (s telegramShape) extract() Message {
	return Message{
		UserID:    s.TgMessage.From.ID.String(),
		Text:      s.TgMessage.Text,
		Timestamp: int64(s.TgMessage.Date),
	}
}

// genericShape is the fallback for custom integrations:
// {userId|sender_id, message|text, timestamp|now}.
type genericShape struct {
	UserID    scalar `json:"userId"`
	SenderID  scalar `json:"sender_id"`
	Text      string `json:"message"`
	AltText   string `json:"text"`
	Timestamp epoch  `json:"timestamp"`
}

func (s genericShape) extract() Message {
	userID := s.UserID.String()
	if userID == "" {
		userID = s.SenderID.String()
	}
	text := s.Text
	if text == "" {
		text = s.AltText
	}
	ts := int64(s.Timestamp)
	if ts == 0 {
		ts = now()
	}
	return Message{UserID: userID, Text: text, Timestamp: ts}
}

// Normalize extracts a Message from an arbitrary inbound JSON body, trying the
// Messenger shape, then the Telegram shape, then the generic fallback. The
// first matching shape wins; once matched there is no fallthrough. Malformed
// or unrecognized input is never an error: absent fields degrade to zero
// values, and callers treat an empty UserID as "do not respond".
func Normalize(body []byte) Message {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Message{Timestamp: now()}
	}

	var messenger messengerShape
	if json.Unmarshal(body, &messenger) == nil && messenger.matches(raw) {
		return messenger.extract()
	}

	var telegram telegramShape
	if telegram.matches(raw) {
		// Decode errors degrade to empty fields, same as a missing sender.
		_ = json.Unmarshal(body, &telegram)
		return telegram.extract()
	}

	var generic genericShape
	_ = json.Unmarshal(body, &generic)
	return generic.extract()
}
