package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// TargetType selects who receives a message.
type TargetType string

const (
	TargetUsers      TargetType = "users"
	TargetChatGroups TargetType = "chatgroups"
	TargetChatRooms  TargetType = "chatrooms"
)

// TargetTypes lists every valid TargetType.
var TargetTypes = []TargetType{TargetUsers, TargetChatGroups, TargetChatRooms}

// ParseTargetType validates a target type name.
func ParseTargetType(s string) (TargetType, error) {
	for _, t := range TargetTypes {
		if string(t) == strings.TrimSpace(s) {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "target_type", Reason: fmt.Sprintf("%q is not one of users, chatgroups, chatrooms", s)}
}

// MessageBody is the "msg" object of a send request.
type MessageBody struct {
	Type string `json:"type"`
	Msg  string `json:"msg,omitempty"`

	// file-based messages
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
	Secret   string `json:"secret,omitempty"`

	// cmd messages
	Action string `json:"action,omitempty"`
}

// Message is a send request.
type Message struct {
	TargetType TargetType     `json:"target_type"`
	Target     []string       `json:"target"`
	Msg        MessageBody    `json:"msg"`
	From       string         `json:"from,omitempty"`
	Ext        map[string]any `json:"ext,omitempty"`
}

// TextMessage builds a plain text message.
func TextMessage(targetType TargetType, targets []string, from, text string) Message {
	return Message{
		TargetType: targetType,
		Target:     targets,
		Msg:        MessageBody{Type: "txt", Msg: text},
		From:       from,
	}
}

// Send delivers a message to users, groups, or chat rooms. The response
// "data" maps each target to its delivery result.
func (s MessagesService) Send(ctx context.Context, msg Message) (*Response, error) {
	if _, err := ParseTargetType(string(msg.TargetType)); err != nil {
		return nil, err
	}
	if len(msg.Target) == 0 {
		return nil, &ValidationError{Field: "target", Reason: "must not be empty"}
	}
	if err := requireArg("msg.type", msg.Msg.Type); err != nil {
		return nil, err
	}
	return s.r.Dispatch(ctx, Request{
		Method: http.MethodPost,
		Path:   "messages",
		Body:   msg,
	})
}
