package service_test

import (
	"context"
	"errors"
	"sync"

	appErrors "github.com/unclebandit/mailer-backend/internal/errors"
	"github.com/unclebandit/mailer-backend/internal/mailer"
	"github.com/unclebandit/mailer-backend/internal/model"
)

// MockEmailRepo stores emails in memory
type MockEmailRepo struct {
	mu      sync.Mutex
	emails  []model.Email
	saves   []model.Email
	nextID  int64
	saveErr error
	lastReq model.PageRequest
	// honorCtx makes Save fail on a done context, as database/sql does
	honorCtx bool
}

func (m *MockEmailRepo) Save(ctx context.Context, e *model.Email) (*model.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	m.saves = append(m.saves, *e)
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.nextID++
	e.ID = m.nextID
	m.emails = append(m.emails, *e)
	return e, nil
}

func (m *MockEmailRepo) FindAll(ctx context.Context, req model.PageRequest) (*model.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastReq = req

	// newest first, like ORDER BY id DESC
	all := make([]model.Email, 0, len(m.emails))
	for i := len(m.emails) - 1; i >= 0; i-- {
		all = append(all, m.emails[i])
	}
	start := req.Offset()
	end := start + req.Size
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return model.NewPage(all[start:end], len(all), req), nil
}

func (m *MockEmailRepo) FindByID(ctx context.Context, id int64) (*model.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.emails {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, appErrors.NewEmailNotFound(id)
}

// MockTransport records deliveries and optionally fails them
type MockTransport struct {
	mu    sync.Mutex
	sent  []mailer.Message
	err   error
	panic bool
	// afterSend runs once the message is accepted
	afterSend func()
}

func (m *MockTransport) Deliver(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.panic {
		panic("smtp connection reset")
	}
	if m.afterSend != nil {
		m.afterSend()
	}
	return m.err
}

func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var errMailServer = errors.New("550 mailbox unavailable")
