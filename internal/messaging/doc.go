// Package messaging provides the vendor-neutral event publication path.
//
// Two delivery models are exposed: Publisher (publish-by-topic broadcast,
// fan-out to subscribers) and Queue (point-to-point send, single consumer
// per message). Concrete backends are AWS SNS, RabbitMQ, and AWS SQS; a
// logging no-op covers unconfigured backends. The backend is resolved once
// at process start from configuration (NewPublisher/NewQueue) and injected
// into every consumer; there is no runtime re-resolution.
//
// Delivery is best-effort. Backends return publish errors to their caller,
// but the event emitters in this package log and swallow them so that a
// downstream messaging failure never reaches the request path that produced
// the event. Nothing is persisted for replay.
package messaging
