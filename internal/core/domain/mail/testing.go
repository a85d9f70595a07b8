package mail

import (
	"context"
	"fmt"
	"sync"
)

type FakeMailer struct {
	Sent        []Message
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{}
}

func (m *FakeMailer) Send(ctx context.Context, msg Message) error {
	if m.ReturnError {
		return fmt.Errorf("could not send message to %s", msg.To)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *FakeMailer) LastSent() Message {
	m.lock.Lock()
	defer m.lock.Unlock()
	l := len(m.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return m.Sent[l-1]
}
