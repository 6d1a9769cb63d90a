package customer_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/ignite/customer-registry/internal/domain"
	"github.com/ignite/customer-registry/internal/messaging"
	"github.com/ignite/customer-registry/internal/service/customer"
)

// memRepo is an in-memory customer repository for unit testing.
type memRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer // keyed by email
	nextID    int64
	saves     int
	deletes   int
}

func newMemRepo() *memRepo {
	return &memRepo{customers: make(map[string]*domain.Customer), nextID: 1}
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[email]
	if !ok {
		return nil, customer.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) Save(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	cp := *c
	if cp.ID == 0 {
		cp.ID = m.nextID
		m.nextID++
	}
	m.customers[cp.EmailID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepo) Delete(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.EmailID]; !ok {
		return customer.ErrNotFound
	}
	m.deletes++
	delete(m.customers, c.EmailID)
	return nil
}

// capturePublisher records published messages; fails when err is set.
type capturePublisher struct {
	topics   []string
	messages []any
	err      error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, message any) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, message)
	return "msg-1", nil
}

// captureQueue records sent messages; fails when err is set.
type captureQueue struct {
	queues   []string
	messages []any
	err      error
}

func (q *captureQueue) Send(_ context.Context, queue string, message any) error {
	if q.err != nil {
		return q.err
	}
	q.queues = append(q.queues, queue)
	q.messages = append(q.messages, message)
	return nil
}

const deletedQueue = "customer-deleted-queue"

func newTestService(repo *memRepo, pub *capturePublisher, q *captureQueue) *customer.Service {
	created := messaging.NewCustomerCreatedEvent(pub, "customer-created")
	return customer.NewService(repo, created, q, deletedQueue)
}

func TestRegisterForcesRegisteredStatus(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &capturePublisher{}, &captureQueue{})

	c, err := svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Status != domain.CustomerRegistered {
		t.Fatalf("expected status REGISTERED, got %s", c.Status)
	}
	if c.ID == 0 {
		t.Fatal("expected surrogate key to be populated after persistence")
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &capturePublisher{}, &captureQueue{})

	in := customer.RegisterInput{Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.GetByEmail(context.Background(), in.EmailID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != in.Name || got.EmailID != in.EmailID || got.Address != in.Address {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRegisterEmitsOneCreatedEvent(t *testing.T) {
	repo := newMemRepo()
	pub := &capturePublisher{}
	svc := newTestService(repo, pub, &captureQueue{})

	_, err := svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected exactly one creation event, got %d", len(pub.messages))
	}
	if pub.topics[0] != "customer-created" {
		t.Fatalf("expected topic customer-created, got %s", pub.topics[0])
	}
	msg, ok := pub.messages[0].(domain.CustomerMessage)
	if !ok {
		t.Fatalf("unexpected message type %T", pub.messages[0])
	}
	if msg.EmailID != "ashok@yopmail.com" || msg.FirstName != "Ashok" {
		t.Fatalf("unexpected payload: %+v", msg)
	}
}

func TestRegisterSucceedsWhenPublishFails(t *testing.T) {
	repo := newMemRepo()
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := newTestService(repo, pub, &captureQueue{})

	_, err := svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})
	if err != nil {
		t.Fatalf("expected registration to succeed despite publish failure, got %v", err)
	}
	if _, err := svc.GetByEmail(context.Background(), "ashok@yopmail.com"); err != nil {
		t.Fatalf("customer should be persisted: %v", err)
	}
}

func TestUpdateReplacesMutableFields(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &capturePublisher{}, &captureQueue{})

	svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})

	err := svc.Update(context.Background(), "ashok@yopmail.com", customer.UpdateInput{
		Name: "Ashok", Address: "Pune",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.GetByEmail(context.Background(), "ashok@yopmail.com")
	if got.Address != "Pune" {
		t.Fatalf("expected address Pune, got %s", got.Address)
	}
	if got.Status != domain.CustomerRegistered {
		t.Fatalf("update must not touch status, got %s", got.Status)
	}
}

func TestUpdateNotFoundSkipsWritePath(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &capturePublisher{}, &captureQueue{})

	err := svc.Update(context.Background(), "missing@yopmail.com", customer.UpdateInput{
		Name: "Ashok", Address: "Pune",
	})
	if !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected zero persistence writes, got %d", repo.saves)
	}
}

func TestDeleteSendsOneNotification(t *testing.T) {
	repo := newMemRepo()
	q := &captureQueue{}
	svc := newTestService(repo, &capturePublisher{}, q)

	svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})

	if err := svc.Delete(context.Background(), "ashok@yopmail.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if repo.deletes != 1 {
		t.Fatalf("expected one store delete, got %d", repo.deletes)
	}
	if len(q.messages) != 1 {
		t.Fatalf("expected exactly one deletion notification, got %d", len(q.messages))
	}
	if q.queues[0] != deletedQueue {
		t.Fatalf("expected queue %s, got %s", deletedQueue, q.queues[0])
	}
	msg := q.messages[0].(domain.CustomerMessage)
	if msg.EmailID != "ashok@yopmail.com" || msg.FirstName != "Ashok" {
		t.Fatalf("unexpected deletion payload: %+v", msg)
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := newMemRepo()
	q := &captureQueue{}
	svc := newTestService(repo, &capturePublisher{}, q)

	err := svc.Delete(context.Background(), "missing@yopmail.com")
	if !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.deletes != 0 || len(q.messages) != 0 {
		t.Fatal("not-found delete must not touch the store or the queue")
	}
}

func TestDeleteSucceedsWhenQueueSendFails(t *testing.T) {
	repo := newMemRepo()
	q := &captureQueue{err: errors.New("queue unavailable")}
	svc := newTestService(repo, &capturePublisher{}, q)

	svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: "ashok@yopmail.com", Address: "Gujarat",
	})

	if err := svc.Delete(context.Background(), "ashok@yopmail.com"); err != nil {
		t.Fatalf("expected delete to succeed despite send failure, got %v", err)
	}
	if _, err := svc.GetByEmail(context.Background(), "ashok@yopmail.com"); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("customer should be gone, got %v", err)
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	svc := newTestService(newMemRepo(), &capturePublisher{}, &captureQueue{})
	_, err := svc.GetByEmail(context.Background(), "missing@yopmail.com")
	if !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogLinesMaskEmailAddresses(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &capturePublisher{}, &captureQueue{})

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	email := "ashok@yopmail.com"
	if _, err := svc.Register(context.Background(), customer.RegisterInput{
		Name: "Ashok", EmailID: email, Address: "Gujarat",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Update(context.Background(), email, customer.UpdateInput{Name: "Ashok", Address: "Pune"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(context.Background(), email); err != nil {
		t.Fatalf("delete: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, email) {
		t.Fatalf("log output leaks the raw email address:\n%s", out)
	}
	if !strings.Contains(out, "as***@yopmail.com") {
		t.Fatalf("log output is missing the masked email address:\n%s", out)
	}
}
