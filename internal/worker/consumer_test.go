package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/ignite/customer-registry/internal/domain"
)

// fakeSQS serves one batch of messages, then cancels the consumer context.
type fakeSQS struct {
	mu       sync.Mutex
	bodies   []string
	served   bool
	deleted  []string
	cancelFn context.CancelFunc
}

func (f *fakeSQS) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	url := "https://sqs.test/" + aws.ToString(params.QueueName)
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String(url)}, nil
}

func (f *fakeSQS) ReceiveMessage(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.served {
		f.cancelFn()
		return &sqs.ReceiveMessageOutput{}, nil
	}
	f.served = true

	out := &sqs.ReceiveMessageOutput{}
	for i, body := range f.bodies {
		out.Messages = append(out.Messages, types.Message{
			Body:          aws.String(body),
			ReceiptHandle: aws.String("rh-" + string(rune('a'+i))),
		})
	}
	return out, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func runConsumer(t *testing.T, fake *fakeSQS, unwrapSNS bool) []domain.CustomerMessage {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake.cancelFn = cancel

	var mu sync.Mutex
	var got []domain.CustomerMessage
	c := NewConsumer(fake, "customer-queue", unwrapSNS, func(_ context.Context, msg domain.CustomerMessage) {
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
	})

	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	return got
}

func TestConsumerRawMessage(t *testing.T) {
	fake := &fakeSQS{bodies: []string{`{"emailId":"ashok@yopmail.com","firstName":"Ashok"}`}}

	got := runConsumer(t, fake, false)

	if len(got) != 1 {
		t.Fatalf("expected 1 handled message, got %d", len(got))
	}
	if got[0].EmailID != "ashok@yopmail.com" || got[0].FirstName != "Ashok" {
		t.Fatalf("unexpected message: %+v", got[0])
	}
	if len(fake.deleted) != 1 {
		t.Fatalf("expected 1 deletion, got %d", len(fake.deleted))
	}
}

func TestConsumerUnwrapsSNSEnvelope(t *testing.T) {
	fake := &fakeSQS{bodies: []string{`{"Message":"{\"emailId\":\"ashok@yopmail.com\",\"firstName\":\"Ashok\"}"}`}}

	got := runConsumer(t, fake, true)

	if len(got) != 1 {
		t.Fatalf("expected 1 handled message, got %d", len(got))
	}
	if got[0].EmailID != "ashok@yopmail.com" {
		t.Fatalf("unexpected message: %+v", got[0])
	}
}

func TestConsumerSkipsUndecodableWithoutDeleting(t *testing.T) {
	fake := &fakeSQS{bodies: []string{
		`not json at all`,
		`{"emailId":"ok@yopmail.com","firstName":"Ok"}`,
	}}

	got := runConsumer(t, fake, false)

	if len(got) != 1 {
		t.Fatalf("expected only the valid message handled, got %d", len(got))
	}
	if len(fake.deleted) != 1 {
		t.Fatalf("undecodable message must stay on the queue, deleted %d", len(fake.deleted))
	}
}
